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

// OneDCmd represents the 1D command
var OneDCmd = &cobra.Command{
	Use:   "1D",
	Short: "One dimensional shallow water problems",
	Long: `
Runs a one dimensional patch with the f-wave or Roe solver: dam breaks, shock-shock and
rare-rare Riemann problems, flow over a bump and tsunami events along a transect.

goswe 1D -I dambreak.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("1D called")
		inputFile, _ := cmd.Flags().GetString("inputConditionsFile")
		runOrExit(runOptions(inputFile), 1)
	},
}

func init() {
	rootCmd.AddCommand(OneDCmd)
	OneDCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- Setup\n\t- Solver (fwave or roe)\n\t- NX, SizeX, EndTime, CFL")
}
