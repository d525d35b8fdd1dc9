package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStudy(t *testing.T) {
	for _, solver := range []string{"fwave", "roe"} {
		cs, err := RunStudy(solver, 0.5, []int{50, 100, 200})
		require.NoError(t, err)
		require.Len(t, cs.numCells, 3)
		for i := 1; i < 3; i++ {
			assert.Less(t, cs.hL1[i], cs.hL1[i-1], solver)
			assert.Less(t, cs.huL1[i], cs.huL1[i-1], solver)
		}
		hOrder, huOrder := cs.Orders()
		assert.Len(t, hOrder, 2)
		assert.Len(t, huOrder, 2)
		cs.Print()
	}
}

func TestStudyCSV(t *testing.T) {
	file := filepath.Join(t.TempDir(), "study.csv")
	cs := NewConvergenceStudy("DamBreak1d", "fwave", 0.5)
	cs.Add(100, 0.4, 2, 0.8, 4)
	cs.Add(200, 0.2, 1, 0.7, 3)
	require.NoError(t, writeCSV(file, map[string]*ConvergenceStudy{cs.Key(): cs}))
	studies, err := readCSV(file)
	require.NoError(t, err)
	require.Contains(t, studies, "DamBreak1dfwave")
	assert.Equal(t, cs, studies["DamBreak1dfwave"])
	hOrder, huOrder := cs.Orders()
	assert.InDelta(t, 1., hOrder[0], 1.e-12)
	assert.InDelta(t, 1., huOrder[0], 1.e-12)

	_, err = readCSV(filepath.Join(t.TempDir(), "none.csv"))
	assert.Error(t, err)
}
