package solvers

import (
	"fmt"
	"math"
	"strings"
)

const (
	Gravity = 9.80665
)

/*
NetUpdateFunc solves the Riemann problem at one edge and returns the net updates (height, momentum) for
the cells on the left and right side of the edge. A cell is advanced by subtracting the scaled net update.
*/
type NetUpdateFunc func(hL, hR, huL, huR, bL, bR float64) (netL, netR [2]float64)

type SolverType uint

const (
	SOLVER_Fwave SolverType = iota
	SOLVER_Roe
)

var (
	SolverNames = map[string]SolverType{
		"fwave":  SOLVER_Fwave,
		"f-wave": SOLVER_Fwave,
		"roe":    SOLVER_Roe,
	}
	SolverPrintNames = []string{"F-Wave", "Roe"}
)

func (st SolverType) Print() (txt string) {
	if int(st) < len(SolverPrintNames) {
		txt = SolverPrintNames[st]
		return
	}
	txt = fmt.Sprintf("SolverType(%d)", st)
	return
}

func NewSolverType(label string) (st SolverType) {
	var (
		ok  bool
		err error
	)
	if len(label) == 0 {
		st = SOLVER_Fwave
		return
	}
	label = strings.ToLower(label)
	if st, ok = SolverNames[label]; !ok {
		err = fmt.Errorf("unable to use solver named %s", label)
		panic(err)
	}
	return
}

// NetUpdates resolves the solver once, unknown solver values compute no update at all
func (st SolverType) NetUpdates() NetUpdateFunc {
	switch st {
	case SOLVER_Fwave:
		return Fwave
	case SOLVER_Roe:
		return Roe
	}
	return func(hL, hR, huL, huR, bL, bR float64) (netL, netR [2]float64) { return }
}

// roeEigenvalues returns the Roe averaged wave speeds of the edge
func roeEigenvalues(hL, hR, uL, uR float64) (lambda [2]float64) {
	var (
		sqrtHL, sqrtHR = math.Sqrt(hL), math.Sqrt(hR)
		hRoe           = 0.5 * (hL + hR)
		uRoe           = (sqrtHL*uL + sqrtHR*uR) / (sqrtHL + sqrtHR)
		cRoe           = math.Sqrt(Gravity * hRoe)
	)
	lambda = [2]float64{uRoe - cRoe, uRoe + cRoe}
	return
}

// waveStrengths multiplies the inverse of the right eigenvector matrix [[1,1],[l1,l2]] with the jump
func waveStrengths(lambda, jump [2]float64) (alpha [2]float64) {
	oodet := 1. / (lambda[1] - lambda[0])
	alpha[0] = oodet * (lambda[1]*jump[0] - jump[1])
	alpha[1] = oodet * (-lambda[0]*jump[0] + jump[1])
	return
}
