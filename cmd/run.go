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
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/pkg/profile"
	"github.com/spf13/viper"

	"github.com/notargets/goswe/InputParameters"
	"github.com/notargets/goswe/simulator"
)

type RunOptions struct {
	InputFile    string
	Procs        int
	OutputDir    string
	Progress     bool
	Profile      string // cpu, mem or empty
	PerfCounters bool
}

func runOptions(inputFile string) RunOptions {
	return RunOptions{
		InputFile:    inputFile,
		Procs:        viper.GetInt("procs"),
		OutputDir:    viper.GetString("outputDir"),
		Progress:     viper.GetBool("progress"),
		Profile:      viper.GetString("profile"),
		PerfCounters: viper.GetBool("perfCounters"),
	}
}

const exampleFile = `
########################################
Title: "Dam Break"
Dimensions: 1
Setup: DamBreak1d
SetupParameters:
  hL: 10
  hR: 5
  location: 5
Solver: fwave
NX: 200
SizeX: 10
EndTime: 1
CFL: 0.5
BCs:
  Left: outflow
  Right: wall
OutputFile: dambreak.nc
OutputFrames: 20
########################################
`

// loadInput reads the input file for a run of the given dimension, relative output paths are placed in outputDir
func loadInput(inputFile, outputDir string, dims int) (ip *InputParameters.InputParameters, err error) {
	if len(inputFile) == 0 {
		return nil, fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile), example:%s", exampleFile)
	}
	if ip, err = InputParameters.ReadFile(inputFile); err != nil {
		return nil, err
	}
	if ip.Dimensions != dims {
		return nil, fmt.Errorf("%s describes a %dD run, use the %dD command", inputFile, ip.Dimensions, ip.Dimensions)
	}
	if dims == 1 {
		ip.NY, ip.SizeY = 1, 1
	}
	if err = ip.Validate(); err != nil {
		return nil, err
	}
	for _, file := range []*string{&ip.OutputFile, &ip.CheckpointFile} {
		if len(*file) != 0 && !filepath.IsAbs(*file) {
			*file = filepath.Join(outputDir, *file)
		}
	}
	return
}

func Run(opts RunOptions, dims int) (err error) {
	var (
		ip  *InputParameters.InputParameters
		sim *simulator.Simulator
		sum simulator.Summary
	)
	if ip, err = loadInput(opts.InputFile, opts.OutputDir, dims); err != nil {
		return
	}
	if err = os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return
	}
	switch opts.Profile {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(opts.OutputDir)).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(opts.OutputDir)).Stop()
	default:
		return fmt.Errorf("unknown profile %q, must be cpu or mem", opts.Profile)
	}
	ip.Print()
	if sim, err = simulator.Build(ip, opts.Procs); err != nil {
		return
	}
	sim.Progress, sim.OutputDir = opts.Progress, opts.OutputDir
	sim.Initialize()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	step := func() (err error) {
		sum, err = sim.Run(ctx)
		return
	}
	if opts.PerfCounters {
		var instructions uint64
		if instructions, err = countInstructions(step); err == nil {
			fmt.Printf("CPU instructions = %d, %8.2f per cell and iteration\n", instructions,
				float64(instructions)/float64(max(sum.Steps, 1)*sim.NX*sim.NY))
		}
	} else {
		err = step()
	}
	if errors.Is(err, context.Canceled) {
		fmt.Printf("\nInterrupted at time %8.5f after %d iterations\n", sum.Time, sum.Steps)
		if len(sum.CheckpointFile) != 0 {
			fmt.Printf("Restart from [%s]\n", sum.CheckpointFile)
		}
		return nil
	}
	return
}

func runOrExit(opts RunOptions, dims int) {
	if err := Run(opts, dims); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
}
