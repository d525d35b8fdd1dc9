package WavePropagation

import (
	"fmt"

	"github.com/notargets/goswe/solvers"
	"github.com/notargets/goswe/types"
)

/*
WavePropagation1d stores nCells interior cells plus a ghost cell on each end:

	index:  0 | 1 ... nCells | nCells+1
	        ghost   interior   ghost

Heights and momenta are kept at two time levels, step selects the current one.
*/
type WavePropagation1d struct {
	nCells     int
	step       int
	h, hu      [2][]float64
	b          []float64
	Boundary   [2]types.BCFLAG // Left, Right
	Solver     solvers.SolverType
	netUpdates solvers.NetUpdateFunc
}

func NewWavePropagation1d(nCells int, solver solvers.SolverType, boundary [2]types.BCFLAG) (wp *WavePropagation1d) {
	if nCells < 1 {
		panic(fmt.Errorf("a 1D patch needs at least one cell, have %d", nCells))
	}
	wp = &WavePropagation1d{
		nCells:     nCells,
		Boundary:   boundary,
		Solver:     solver,
		netUpdates: solver.NetUpdates(),
		b:          make([]float64, nCells+2),
	}
	for st := 0; st < 2; st++ {
		wp.h[st] = make([]float64, nCells+2)
		wp.hu[st] = make([]float64, nCells+2)
	}
	return
}

func (wp *WavePropagation1d) TimeStep(scaling, _ float64) {
	var (
		hOld, huOld = wp.h[wp.step], wp.hu[wp.step]
		hNew, huNew = wp.h[1-wp.step], wp.hu[1-wp.step]
		b           = wp.b
	)
	// Cells not touched below keep their current state
	copy(hNew, hOld)
	copy(huNew, huOld)

	// Edge iL+1/2 sits between cells iL and iL+1, both boundary edges included
	for iL := 0; iL < wp.nCells+1; iL++ {
		iR := iL + 1
		hL, hR, huL, huR, bL, bR := WetDryEdge(hOld[iL], hOld[iR], huOld[iL], huOld[iR], b[iL], b[iR])
		netL, netR := wp.netUpdates(hL, hR, huL, huR, bL, bR)
		applyNetUpdate(iL, netL, scaling, hOld, hNew, huNew)
		applyNetUpdate(iR, netR, scaling, hOld, hNew, huNew)
	}
	clampHeights(hNew, huNew, 0, wp.nCells+2, 1)
	wp.step = 1 - wp.step
}

func (wp *WavePropagation1d) SetGhostOutflow() {
	var (
		h, hu = wp.h[wp.step], wp.hu[wp.step]
		b     = wp.b
		n     = wp.nCells
	)
	setGhost := func(bc types.BCFLAG, ghost, interior int) {
		switch bc {
		case types.BC_Wall:
			h[ghost] = 0
		default:
			h[ghost] = h[interior]
			hu[ghost] = hu[interior]
			b[ghost] = b[interior]
		}
	}
	setGhost(wp.Boundary[types.Left], 0, 1)
	setGhost(wp.Boundary[types.Right], n+1, n)
}

func (wp *WavePropagation1d) AdjustWaterHeight() {
	h := wp.h[wp.step]
	for i := 1; i < wp.nCells+1; i++ {
		h[i] = landCorrection(h[i], wp.b[i])
	}
}

func (wp *WavePropagation1d) GetStride() int { return wp.nCells + 2 }

func (wp *WavePropagation1d) GetNCells() (nx, ny int) { return wp.nCells, 1 }

func (wp *WavePropagation1d) GetHeight() []float64 { return wp.h[wp.step][1 : wp.nCells+1] }

func (wp *WavePropagation1d) GetMomentumX() []float64 { return wp.hu[wp.step][1 : wp.nCells+1] }

// GetMomentumY is always nil in 1D
func (wp *WavePropagation1d) GetMomentumY() []float64 { return nil }

func (wp *WavePropagation1d) GetBathymetry() []float64 { return wp.b[1 : wp.nCells+1] }

func (wp *WavePropagation1d) SetHeight(ix, _ int, h float64) { wp.h[wp.step][ix+1] = h }

func (wp *WavePropagation1d) SetMomentumX(ix, _ int, hu float64) { wp.hu[wp.step][ix+1] = hu }

func (wp *WavePropagation1d) SetMomentumY(_, _ int, _ float64) {}

func (wp *WavePropagation1d) SetBathymetry(ix, _ int, b float64) { wp.b[ix+1] = b }
