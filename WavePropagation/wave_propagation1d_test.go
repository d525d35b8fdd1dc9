package WavePropagation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/goswe/solvers"
	"github.com/notargets/goswe/types"
)

var (
	outflow1d = [2]types.BCFLAG{types.BC_Outflow, types.BC_Outflow}
)

// newDamBreak1d sets up h=hL left of cell iDam and h=hR from iDam on, at rest on a flat bottom
func newDamBreak1d(n, iDam int, hL, hR float64, solver solvers.SolverType, bc [2]types.BCFLAG) (wp *WavePropagation1d) {
	wp = NewWavePropagation1d(n, solver, bc)
	for i := 0; i < n; i++ {
		if i < iDam {
			wp.SetHeight(i, 0, hL)
		} else {
			wp.SetHeight(i, 0, hR)
		}
	}
	return
}

func TestWavePropagation1d_SteadyState(t *testing.T) {
	for _, solver := range []solvers.SolverType{solvers.SOLVER_Fwave, solvers.SOLVER_Roe} {
		wp := newDamBreak1d(50, 0, 7, 7, solver, outflow1d)
		for step := 0; step < 10; step++ {
			wp.SetGhostOutflow()
			wp.TimeStep(0.1, 0)
		}
		for i := 0; i < 50; i++ {
			assert.Equal(t, 7., wp.GetHeight()[i])
			assert.Equal(t, 0., wp.GetMomentumX()[i])
		}
	}
}

func TestWavePropagation1d_DamBreak(t *testing.T) {
	for _, solver := range []solvers.SolverType{solvers.SOLVER_Fwave, solvers.SOLVER_Roe} {
		// 100 cells of width 1, h=10 for x<50 and h=8 from x=50 on
		wp := newDamBreak1d(100, 50, 10, 8, solver, outflow1d)
		wp.SetGhostOutflow()
		wp.TimeStep(0.1, 0)
		var (
			h, hu = wp.GetHeight(), wp.GetMomentumX()
		)
		require.Len(t, h, 100)
		for i := 0; i < 49; i++ {
			assert.Equal(t, 10., h[i])
			assert.Equal(t, 0., hu[i])
		}
		for i := 51; i < 100; i++ {
			assert.Equal(t, 8., h[i])
			assert.Equal(t, 0., hu[i])
		}
		assert.InDelta(t, 10-0.1*9.394671362, h[49], 1.e-7)
		assert.InDelta(t, 0.1*88.25985, hu[49], 1.e-7)
		assert.InDelta(t, 8+0.1*9.394671362, h[50], 1.e-7)
		assert.InDelta(t, 0.1*88.25985, hu[50], 1.e-7)
	}
}

func TestWavePropagation1d_WetDryReflection(t *testing.T) {
	var (
		nWet = 5
	)
	// Wet cells followed by dry land
	dry := NewWavePropagation1d(2*nWet, solvers.SOLVER_Fwave, outflow1d)
	// The same wet cells closed by a wall
	wall := NewWavePropagation1d(nWet, solvers.SOLVER_Fwave, [2]types.BCFLAG{types.BC_Outflow, types.BC_Wall})
	for i := 0; i < nWet; i++ {
		h, hu := 5.+0.1*float64(i), 0.5*float64(i)
		for _, wp := range []*WavePropagation1d{dry, wall} {
			wp.SetHeight(i, 0, h)
			wp.SetMomentumX(i, 0, hu)
			wp.SetBathymetry(i, 0, -5)
		}
	}
	for i := nWet; i < 2*nWet; i++ {
		dry.SetBathymetry(i, 0, 2)
	}
	for step := 0; step < 5; step++ {
		for _, wp := range []*WavePropagation1d{dry, wall} {
			wp.SetGhostOutflow()
			wp.TimeStep(0.02, 0)
		}
		for i := 0; i < nWet; i++ {
			assert.Equal(t, wall.GetHeight()[i], dry.GetHeight()[i])
			assert.Equal(t, wall.GetMomentumX()[i], dry.GetMomentumX()[i])
		}
		for i := nWet; i < 2*nWet; i++ {
			assert.Equal(t, 0., dry.GetHeight()[i])
			assert.Equal(t, 0., dry.GetMomentumX()[i])
		}
	}
}

func TestWavePropagation1d_DryDomain(t *testing.T) {
	// Edges with two dry neighbors are solved in 1D, the dry override must keep NaNs out of the state
	wp := NewWavePropagation1d(20, solvers.SOLVER_Fwave, outflow1d)
	for i := 10; i < 20; i++ {
		wp.SetHeight(i, 0, 3)
	}
	for step := 0; step < 3; step++ {
		wp.SetGhostOutflow()
		wp.TimeStep(0.05, 0)
	}
	for i := 0; i < 20; i++ {
		assert.False(t, math.IsNaN(wp.GetHeight()[i]))
		assert.False(t, math.IsNaN(wp.GetMomentumX()[i]))
		assert.GreaterOrEqual(t, wp.GetHeight()[i], 0.)
	}
	for i := 0; i < 9; i++ {
		assert.Equal(t, 0., wp.GetHeight()[i])
	}
}

func TestWavePropagation1d_Ghosts(t *testing.T) {
	{ // Outflow copies the neighbor, repeated calls are idempotent
		wp := NewWavePropagation1d(4, solvers.SOLVER_Fwave, outflow1d)
		for i := 0; i < 4; i++ {
			wp.SetHeight(i, 0, float64(i+1))
			wp.SetMomentumX(i, 0, -float64(i+1))
			wp.SetBathymetry(i, 0, -10*float64(i+1))
		}
		wp.SetGhostOutflow()
		h, hu, b := append([]float64{}, wp.h[wp.step]...), append([]float64{}, wp.hu[wp.step]...), append([]float64{}, wp.b...)
		assert.Equal(t, []float64{1, 1, 2, 3, 4, 4}, h)
		assert.Equal(t, []float64{-1, -1, -2, -3, -4, -4}, hu)
		assert.Equal(t, []float64{-10, -10, -20, -30, -40, -40}, b)
		wp.SetGhostOutflow()
		assert.Equal(t, h, wp.h[wp.step])
		assert.Equal(t, hu, wp.hu[wp.step])
		assert.Equal(t, b, wp.b)
	}
	{ // Walls zero the ghost height only
		wp := NewWavePropagation1d(3, solvers.SOLVER_Fwave, [2]types.BCFLAG{types.BC_Wall, types.BC_Wall})
		for i := 0; i < 3; i++ {
			wp.SetHeight(i, 0, 2)
			wp.SetMomentumX(i, 0, 1)
		}
		wp.h[wp.step][0], wp.h[wp.step][4] = 9, 9
		wp.SetGhostOutflow()
		assert.Equal(t, []float64{0, 2, 2, 2, 0}, wp.h[wp.step])
		assert.Equal(t, []float64{0, 1, 1, 1, 0}, wp.hu[wp.step])
	}
}

func TestWavePropagation1d_AdjustWaterHeight(t *testing.T) {
	wp := NewWavePropagation1d(4, solvers.SOLVER_Fwave, outflow1d)
	var (
		bathy = []float64{-10, -0.5, 3, 20}
	)
	for i, b := range bathy {
		wp.SetHeight(i, 0, 10)
		wp.SetBathymetry(i, 0, b)
	}
	wp.AdjustWaterHeight()
	assert.Equal(t, []float64{10, 10, 7, 0}, wp.GetHeight())
	{ // Idempotent once bathymetry is non-positive
		wp := NewWavePropagation1d(3, solvers.SOLVER_Fwave, outflow1d)
		for i := 0; i < 3; i++ {
			wp.SetHeight(i, 0, float64(i))
			wp.SetBathymetry(i, 0, -float64(i)-1)
		}
		wp.AdjustWaterHeight()
		first := append([]float64{}, wp.GetHeight()...)
		wp.AdjustWaterHeight()
		assert.Equal(t, first, wp.GetHeight())
	}
}

func TestWavePropagation1d_Accessors(t *testing.T) {
	wp := NewWavePropagation1d(6, solvers.SOLVER_Roe, outflow1d)
	assert.Equal(t, 8, wp.GetStride())
	nx, ny := wp.GetNCells()
	assert.Equal(t, 6, nx)
	assert.Equal(t, 1, ny)
	wp.SetHeight(0, 0, 1.5)
	wp.SetMomentumY(0, 0, 99) // No Y momentum in 1D
	assert.Equal(t, 1.5, wp.GetHeight()[0])
	assert.Len(t, wp.GetHeight(), 6)
	assert.Nil(t, wp.GetMomentumY())
	assert.Panics(t, func() { NewWavePropagation1d(0, solvers.SOLVER_Fwave, outflow1d) })
	var _ WavePropagation = wp
}
