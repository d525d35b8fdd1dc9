package WavePropagation

import (
	"fmt"

	"github.com/notargets/goswe/solvers"
	"github.com/notargets/goswe/types"
	"github.com/notargets/goswe/utils"
)

/*
WavePropagation2d stores (nCellsX+2)*(nCellsY+2) cells row by row, cell (i, j) of the full array including
ghosts lives at i + j*stride with stride = nCellsX+2. Row 0 and row nCellsY+1 are ghost rows, column 0 and
column nCellsX+1 are ghost columns.

The time step is dimensionally split: an X sweep over all rows followed by a Y sweep over all columns which
sees the heights produced by the X sweep. Rows are independent in the X sweep and columns in the Y sweep,
so each sweep is partitioned over go routines by rows or columns.
*/
type WavePropagation2d struct {
	nCellsX, nCellsY int
	stride           int
	step             int
	h, huX, huY      [2][]float64
	b                []float64
	Boundary         [4]types.BCFLAG // Left, Right, Bottom, Top
	netUpdates       solvers.NetUpdateFunc
	ParallelDegree   int
	rowPartitions    *utils.PartitionMap
	colPartitions    *utils.PartitionMap
}

func NewWavePropagation2d(nCellsX, nCellsY int, boundary [4]types.BCFLAG) (wp *WavePropagation2d) {
	if nCellsX < 1 || nCellsY < 1 {
		panic(fmt.Errorf("a 2D patch needs at least one cell in each direction, have %d x %d", nCellsX, nCellsY))
	}
	var (
		stride = nCellsX + 2
		nTotal = stride * (nCellsY + 2)
	)
	wp = &WavePropagation2d{
		nCellsX:    nCellsX,
		nCellsY:    nCellsY,
		stride:     stride,
		Boundary:   boundary,
		netUpdates: solvers.Fwave,
		b:          make([]float64, nTotal),
	}
	for st := 0; st < 2; st++ {
		wp.h[st] = make([]float64, nTotal)
		wp.huX[st] = make([]float64, nTotal)
		wp.huY[st] = make([]float64, nTotal)
	}
	wp.SetParallelDegree(1)
	return
}

// SetParallelDegree sets the number of go routines used by each sweep, zero selects one per CPU
func (wp *WavePropagation2d) SetParallelDegree(ProcLimit int) {
	var (
		nRows = wp.nCellsY + 2
		nCols = wp.nCellsX + 2
	)
	wp.ParallelDegree = utils.GetParallelDegree(ProcLimit, min(nRows, nCols))
	wp.rowPartitions = utils.NewPartitionMap(wp.ParallelDegree, nRows)
	wp.colPartitions = utils.NewPartitionMap(wp.ParallelDegree, nCols)
}

func (wp *WavePropagation2d) TimeStep(scalingX, scalingY float64) {
	wp.sweepX(scalingX)
	wp.step = 1 - wp.step
	wp.sweepY(scalingY)
	wp.step = 1 - wp.step
}

func (wp *WavePropagation2d) sweepX(scaling float64) {
	var (
		hOld, huOld = wp.h[wp.step], wp.huX[wp.step]
		hNew, huNew = wp.h[1-wp.step], wp.huX[1-wp.step]
		b           = wp.b
		nx          = wp.nCellsX
	)
	copy(hNew, hOld)
	copy(huNew, huOld)
	copy(wp.huY[1-wp.step], wp.huY[wp.step])
	wp.rowPartitions.Run(func(_, jMin, jMax int) {
		for j := jMin; j < jMax; j++ {
			row := j * wp.stride
			for i := 0; i < nx+1; i++ {
				iL := row + i
				iR := iL + 1
				if hOld[iL] < DryTolerance && hOld[iR] < DryTolerance {
					continue
				}
				hL, hR, huL, huR, bL, bR := WetDryEdge(hOld[iL], hOld[iR], huOld[iL], huOld[iR], b[iL], b[iR])
				netL, netR := wp.netUpdates(hL, hR, huL, huR, bL, bR)
				applyNetUpdate(iL, netL, scaling, hOld, hNew, huNew)
				applyNetUpdate(iR, netR, scaling, hOld, hNew, huNew)
			}
			clampHeights(hNew, huNew, row, row+wp.stride, 1)
		}
	})
}

func (wp *WavePropagation2d) sweepY(scaling float64) {
	var (
		hOld, hvOld = wp.h[wp.step], wp.huY[wp.step]
		hNew, hvNew = wp.h[1-wp.step], wp.huY[1-wp.step]
		b           = wp.b
		ny          = wp.nCellsY
		stride      = wp.stride
	)
	copy(hNew, hOld)
	copy(hvNew, hvOld)
	copy(wp.huX[1-wp.step], wp.huX[wp.step])
	wp.colPartitions.Run(func(_, iMin, iMax int) {
		for i := iMin; i < iMax; i++ {
			for j := 0; j < ny+1; j++ {
				iB := i + j*stride
				iT := iB + stride
				if hOld[iB] < DryTolerance && hOld[iT] < DryTolerance {
					continue
				}
				hB, hT, hvB, hvT, bB, bT := WetDryEdge(hOld[iB], hOld[iT], hvOld[iB], hvOld[iT], b[iB], b[iT])
				netB, netT := wp.netUpdates(hB, hT, hvB, hvT, bB, bT)
				applyNetUpdate(iB, netB, scaling, hOld, hNew, hvNew)
				applyNetUpdate(iT, netT, scaling, hOld, hNew, hvNew)
			}
			clampHeights(hNew, hvNew, i, i+(ny+2)*stride, stride)
		}
	})
}

func (wp *WavePropagation2d) SetGhostOutflow() {
	var (
		h, hu, hv = wp.h[wp.step], wp.huX[wp.step], wp.huY[wp.step]
		b         = wp.b
		nx, ny    = wp.nCellsX, wp.nCellsY
		stride    = wp.stride
	)
	setGhost := func(bc types.BCFLAG, ghost, interior int) {
		switch bc {
		case types.BC_Wall:
			h[ghost] = 0
		default:
			h[ghost] = h[interior]
			hu[ghost] = hu[interior]
			hv[ghost] = hv[interior]
			b[ghost] = b[interior]
		}
	}
	// Left and right ghost columns, interior rows only
	for j := 1; j < ny+1; j++ {
		row := j * stride
		setGhost(wp.Boundary[types.Left], row, row+1)
		setGhost(wp.Boundary[types.Right], row+nx+1, row+nx)
	}
	// Bottom and top ghost rows, the full width fills in the corners
	for i := 0; i < nx+2; i++ {
		setGhost(wp.Boundary[types.Bottom], i, i+stride)
		setGhost(wp.Boundary[types.Top], i+(ny+1)*stride, i+ny*stride)
	}
}

func (wp *WavePropagation2d) AdjustWaterHeight() {
	h := wp.h[wp.step]
	for j := 1; j < wp.nCellsY+1; j++ {
		for i := 1; i < wp.nCellsX+1; i++ {
			ind := i + j*wp.stride
			h[ind] = landCorrection(h[ind], wp.b[ind])
		}
	}
}

func (wp *WavePropagation2d) GetStride() int { return wp.stride }

func (wp *WavePropagation2d) GetNCells() (nx, ny int) { return wp.nCellsX, wp.nCellsY }

// interior trims a full array to start at the first interior cell and end after the last one
func (wp *WavePropagation2d) interior(A []float64) []float64 {
	return A[wp.stride+1 : wp.nCellsY*wp.stride+wp.nCellsX+1]
}

func (wp *WavePropagation2d) GetHeight() []float64 { return wp.interior(wp.h[wp.step]) }

func (wp *WavePropagation2d) GetMomentumX() []float64 { return wp.interior(wp.huX[wp.step]) }

func (wp *WavePropagation2d) GetMomentumY() []float64 { return wp.interior(wp.huY[wp.step]) }

func (wp *WavePropagation2d) GetBathymetry() []float64 { return wp.interior(wp.b) }

func (wp *WavePropagation2d) index(ix, iy int) int { return (ix + 1) + (iy+1)*wp.stride }

func (wp *WavePropagation2d) SetHeight(ix, iy int, h float64) { wp.h[wp.step][wp.index(ix, iy)] = h }

func (wp *WavePropagation2d) SetMomentumX(ix, iy int, hu float64) {
	wp.huX[wp.step][wp.index(ix, iy)] = hu
}

func (wp *WavePropagation2d) SetMomentumY(ix, iy int, hv float64) {
	wp.huY[wp.step][wp.index(ix, iy)] = hv
}

func (wp *WavePropagation2d) SetBathymetry(ix, iy int, b float64) { wp.b[wp.index(ix, iy)] = b }
