/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// TwoDCmd represents the 2D command
var TwoDCmd = &cobra.Command{
	Use:   "2D",
	Short: "Two dimensional solver, able to read netCDF bathymetry and output solutions",
	Long: `
Runs a two dimensional patch with dimensional splitting of the f-wave solver. Solutions,
checkpoints and station time series are written to the output directory.

goswe 2D -I tsunami.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("2D called")
		inputFile, _ := cmd.Flags().GetString("inputConditionsFile")
		runOrExit(runOptions(inputFile), 2)
	},
}

func init() {
	rootCmd.AddCommand(TwoDCmd)
	TwoDCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- Setup\n\t- NX, NY, SizeX, SizeY\n\t- BathymetryFile, DisplacementFile")
}
