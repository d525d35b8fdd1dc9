package WavePropagation

const (
	// DryTolerance is the height below which a cell is treated as dry by the edge solvers
	DryTolerance = 1.e-5
)

/*
WavePropagation is a patch of cells surrounded by one layer of ghost cells. All getters return views of the
current time level positioned so that index 0 is the first interior cell, a cell (ix, iy) is found at
ix + iy*GetStride().

A patch is not safe for concurrent use: TimeStep mutates the next time level and then flips the current one.
*/
type WavePropagation interface {
	// TimeStep advances the patch by one step, the scalings are dt/dx and dt/dy
	TimeStep(scalingX, scalingY float64)
	// SetGhostOutflow refreshes the ghost cells from the interior and the boundary conditions
	SetGhostOutflow()
	// AdjustWaterHeight removes water from cells above sea level, called once before time stepping
	AdjustWaterHeight()

	GetStride() int
	GetNCells() (nx, ny int)
	GetHeight() []float64
	GetMomentumX() []float64
	GetMomentumY() []float64
	GetBathymetry() []float64

	SetHeight(ix, iy int, h float64)
	SetMomentumX(ix, iy int, hu float64)
	SetMomentumY(ix, iy int, hv float64)
	SetBathymetry(ix, iy int, b float64)
}

/*
WetDryEdge builds the Riemann solver inputs for an edge. When one side is dry the wet side is mirrored
into it with reversed momentum, which turns the drying front into a reflecting wall.
*/
func WetDryEdge(hL, hR, huL, huR, bL, bR float64) (hLo, hRo, huLo, huRo, bLo, bRo float64) {
	switch {
	case hR < DryTolerance:
		return hL, hL, huL, -huL, bL, bL
	case hL < DryTolerance:
		return hR, hR, -huR, huR, bR, bR
	}
	return hL, hR, huL, huR, bL, bR
}

// applyNetUpdate advances one cell by one edge contribution. A cell that was dry at the start of the
// step ends it with no water and no momentum, whatever the edge produced.
func applyNetUpdate(i int, net [2]float64, scaling float64, hOld, hNew, huNew []float64) {
	if hOld[i] > 0 {
		hNew[i] -= scaling * net[0]
		huNew[i] -= scaling * net[1]
	} else {
		hNew[i], huNew[i] = 0, 0
	}
}

// clampHeights removes negative heights left behind by strong drying
func clampHeights(hNew, huNew []float64, iMin, iMax, inc int) {
	for i := iMin; i < iMax; i += inc {
		if hNew[i] < 0 {
			hNew[i], huNew[i] = 0, 0
		}
	}
}

// landCorrection subtracts positive bathymetry from the water height and clamps to zero
func landCorrection(h, b float64) float64 {
	if b > 0 {
		h -= b
		if h < 0 {
			h = 0
		}
	}
	return h
}
