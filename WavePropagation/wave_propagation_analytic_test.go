package WavePropagation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/goswe/dam_break"
	"github.com/notargets/goswe/solvers"
)

func TestWavePropagation1d_ConvergesToAnalyticDamBreak(t *testing.T) {
	var (
		n      = 200
		dx, dt = 1., 0.05
		tFinal = 5.
		db     = dam_break.NewDamBreak(10, 8, 0, 0, 100)
	)
	for _, solver := range []solvers.SolverType{solvers.SOLVER_Fwave, solvers.SOLVER_Roe} {
		wp := newDamBreak1d(n, 100, 10, 8, solver, outflow1d)
		nSteps := int(math.Round(tFinal / dt))
		for step := 0; step < nSteps; step++ {
			wp.SetGhostOutflow()
			wp.TimeStep(dt/dx, 0)
		}
		var (
			errH, errHU float64
			h, hu       = wp.GetHeight(), wp.GetMomentumX()
		)
		for i := 0; i < n; i++ {
			hE, huE := db.Sample((float64(i)+0.5)*dx, tFinal)
			errH += math.Abs(h[i] - hE)
			errHU += math.Abs(hu[i] - huE)
		}
		assert.Less(t, errH/float64(n), 0.05)
		assert.Less(t, errHU/float64(n), 0.5)
	}
}
