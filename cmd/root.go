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
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "goswe",
	Short: "Finite volume shallow water solver",
	Long: `
Solves the shallow water equations with f-wave or Roe edge solvers on Cartesian patches,
from dam breaks to tsunami events read from netCDF bathymetry.

goswe 1D -I dambreak.yaml
goswe 2D -I tsunami.yaml --progress`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.goswe.yaml)")
	rootCmd.PersistentFlags().IntP("procs", "p", 0, "number of go routines for 2D sweeps, 0 uses all CPUs")
	rootCmd.PersistentFlags().StringP("outputDir", "o", ".", "directory for solution, checkpoint and station files")
	rootCmd.PersistentFlags().Bool("progress", false, "show a progress bar instead of the iteration table")
	rootCmd.PersistentFlags().String("profile", "", "write a cpu or mem profile to the output directory")
	rootCmd.PersistentFlags().Bool("perfCounters", false, "report CPU instructions of the time stepping loop (linux)")
	for _, name := range []string{"procs", "outputDir", "progress", "profile", "perfCounters"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			panic(err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".goswe")
	}
	viper.SetEnvPrefix("GOSWE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
