package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/goswe/netcdf"
)

func TestLoadInput(t *testing.T) {
	var (
		dir  = t.TempDir()
		file = filepath.Join(dir, "input.yaml")
	)
	fileInput := []byte(`
Title: Test Case
Dimensions: 2
Setup: ArtificialTsunami2d
NX: 20
NY: 20
SizeX: 0
SizeY: 0
EndTime: 4.
OutputFile: tsunami.nc
CheckpointFile: /tmp/restart.nc
`)
	require.NoError(t, os.WriteFile(file, fileInput, 0644))
	ip, err := loadInput(file, "out", 2)
	require.NoError(t, err)
	assert.Equal(t, 4., ip.EndTime)
	assert.Equal(t, filepath.Join("out", "tsunami.nc"), ip.OutputFile)
	assert.Equal(t, "/tmp/restart.nc", ip.CheckpointFile)

	_, err = loadInput(file, "out", 1)
	assert.Error(t, err)
	_, err = loadInput("", "out", 2)
	assert.Error(t, err)
}

func TestRun1D(t *testing.T) {
	var (
		dir  = t.TempDir()
		file = filepath.Join(dir, "input.yaml")
	)
	require.NoError(t, os.WriteFile(file, []byte(`
Title: Shock Shock
Setup: ShockShock1d
Solver: roe
NX: 50
SizeX: 10
EndTime: 0.5
OutputFile: shock.nc
OutputFrames: 5
`), 0644))
	require.NoError(t, Run(RunOptions{InputFile: file, OutputDir: dir, Procs: 1}, 1))
	sr, err := netcdf.OpenSolution(filepath.Join(dir, "shock.nc"))
	require.NoError(t, err)
	defer sr.Close()
	assert.Equal(t, 6, sr.NumFrames())

	assert.Error(t, Run(RunOptions{InputFile: file, OutputDir: dir, Profile: "disk"}, 1))
}
