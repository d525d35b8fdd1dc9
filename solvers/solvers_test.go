package solvers

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func physicalFlux(h, hu float64) (f [2]float64) {
	f = [2]float64{hu, hu*hu/h + 0.5*Gravity*h*h}
	return
}

func TestFwave(t *testing.T) {
	{ // Identical states produce no waves
		netL, netR := Fwave(10, 10, 3, 3, -5, -5)
		assert.Equal(t, [2]float64{0, 0}, netL)
		assert.Equal(t, [2]float64{0, 0}, netR)
	}
	{ // Dam break with water at rest on both sides
		netL, netR := Fwave(10, 8, 0, 0, 0, 0)
		assert.InDelta(t, 9.394671362, netL[0], 1.e-8)
		assert.InDelta(t, -88.25985, netL[1], 1.e-8)
		assert.InDelta(t, -9.394671362, netR[0], 1.e-8)
		assert.InDelta(t, -88.25985, netR[1], 1.e-8)
	}
	{ // Supersonic flow to the right puts everything into the right cell
		netL, netR := Fwave(1, 1.2, 20, 22, 0, 0)
		assert.Equal(t, [2]float64{0, 0}, netL)
		fL, fR := physicalFlux(1, 20), physicalFlux(1.2, 22)
		assert.InDelta(t, fR[0]-fL[0], netR[0], 1.e-10)
		assert.InDelta(t, fR[1]-fL[1], netR[1], 1.e-10)
	}
	{ // Water at rest over a bathymetry step stays at rest
		netL, netR := Fwave(10, 5, 0, 0, -10, -5)
		for n := 0; n < 2; n++ {
			assert.InDelta(t, 0, netL[n], 1.e-10)
			assert.InDelta(t, 0, netR[n], 1.e-10)
		}
	}
	{ // A mirrored state acts as a wall: no mass flux through the edge
		var (
			h, hu = 4., 3.
		)
		netL, _ := Fwave(h, h, hu, -hu, -2, -2)
		// Interface mass flux is hu_left + netL[0]
		assert.InDelta(t, 0, hu+netL[0], 1.e-12)
		assert.InDelta(t, hu*math.Sqrt(Gravity*h), netL[1], 1.e-10)
	}
}

func TestConservation(t *testing.T) {
	states := [][4]float64{
		{10, 8, 0, 0},
		{2, 3, 1, -1},
		{5, 1, -2, 0.5},
		{1, 1, 2, -2},
		{10, 1, 0, 0},
		{1, 0.5, 2, 2.5}, // transonic rarefaction
		{0.5, 6, 0, 0},
	}
	for _, s := range states {
		hL, hR, huL, huR := s[0], s[1], s[2], s[3]
		fL, fR := physicalFlux(hL, huL), physicalFlux(hR, huR)
		for _, solve := range []NetUpdateFunc{Fwave, Roe} {
			netL, netR := solve(hL, hR, huL, huR, 0, 0)
			for n := 0; n < 2; n++ {
				assert.InDelta(t, fR[n]-fL[n], netL[n]+netR[n], 1.e-9, "state %v", s)
				assert.False(t, math.IsNaN(netL[n]) || math.IsNaN(netR[n]))
			}
		}
	}
}

func TestRoe(t *testing.T) {
	{ // Away from sonic points the Roe fluctuations coincide with the f-waves on a flat bottom
		states := [][4]float64{
			{10, 8, 0, 0},
			{2, 3, 1, -1},
			{3, 2.5, 4, 3},
			{1, 1.2, 20, 22},
		}
		for _, s := range states {
			fL, fR := Fwave(s[0], s[1], s[2], s[3], 0, 0)
			rL, rR := Roe(s[0], s[1], s[2], s[3], 0, 0)
			for n := 0; n < 2; n++ {
				assert.InDelta(t, fL[n], rL[n], 1.e-9, "state %v", s)
				assert.InDelta(t, fR[n], rR[n], 1.e-9, "state %v", s)
			}
		}
	}
	{ // Roe ignores bathymetry
		nL1, nR1 := Roe(3, 2, 1, 1, 0, 0)
		nL2, nR2 := Roe(3, 2, 1, 1, -4, 7)
		assert.Equal(t, nL1, nL2)
		assert.Equal(t, nR1, nR2)
	}
	{ // Transonic rarefaction sends part of the left going wave into the right cell
		netL, netR := Roe(1, 0.5, 2, 2.5, 0, 0)
		fL, fR := Fwave(1, 0.5, 2, 2.5, 0, 0)
		assert.Equal(t, 0., fL[0])
		assert.Greater(t, netL[0], 0.)
		assert.InDelta(t, fL[0]+fR[0], netL[0]+netR[0], 1.e-9)
	}
}

func TestSolverType(t *testing.T) {
	assert.Equal(t, SOLVER_Fwave, NewSolverType("FWave"))
	assert.Equal(t, SOLVER_Fwave, NewSolverType(""))
	assert.Equal(t, SOLVER_Roe, NewSolverType("roe"))
	assert.Panics(t, func() { NewSolverType("hllc") })
	assert.Equal(t, "Roe", SOLVER_Roe.Print())
	{ // An unknown solver value computes no update
		netL, netR := SolverType(9).NetUpdates()(10, 8, 0, 0, 0, 0)
		assert.Equal(t, [2]float64{}, netL)
		assert.Equal(t, [2]float64{}, netR)
	}
}
