package dam_break

import (
	"fmt"
	"math"

	"github.com/notargets/goswe/solvers"
)

/*
DamBreak is the exact solution of the Riemann problem for the shallow water equations over a flat bottom.
The left state (HL, UL) and right state (HR, UR) are separated at X0 at time zero. The solution is made of a
left wave, a middle state (hM, uM) and a right wave, each wave is either a shock or a rarefaction fan.

A dry side gives the Ritter solution, a single rarefaction fan running into the dry bed.
*/
type DamBreak struct {
	HL, HR, UL, UR float64
	X0             float64
	hM, uM         float64
	vacuum         bool
}

func NewDamBreak(hL, hR, uL, uR, x0 float64) (db *DamBreak) {
	if hL < 0 || hR < 0 {
		panic(fmt.Errorf("negative water height in dam break, hL = %v, hR = %v", hL, hR))
	}
	db = &DamBreak{HL: hL, HR: hR, UL: uL, UR: uR, X0: x0}
	var (
		cL, cR = math.Sqrt(solvers.Gravity * hL), math.Sqrt(solvers.Gravity * hR)
	)
	switch {
	case hL == 0 && hR == 0:
		db.vacuum = true
	case hL == 0 || hR == 0:
		// Ritter, the middle state never appears
		db.vacuum = true
	case uR-uL >= 2*(cL+cR):
		// The two rarefactions separate and leave a dry region in between
		db.vacuum = true
	default:
		db.hM = fzero(db.middleFunc, db.startGuess())
		db.uM = 0.5*(uL+uR) + 0.5*(waveFunc(db.hM, hR)-waveFunc(db.hM, hL))
	}
	return
}

// Middle returns the height and velocity between the two waves
func (db *DamBreak) Middle() (hM, uM float64) {
	return db.hM, db.uM
}

// startGuess is the two rarefaction approximation of the middle height
func (db *DamBreak) startGuess() (h0 float64) {
	var (
		cL, cR = math.Sqrt(solvers.Gravity * db.HL), math.Sqrt(solvers.Gravity * db.HR)
		c0     = 0.5*(cL+cR) - 0.25*(db.UR-db.UL)
	)
	h0 = c0 * c0 / solvers.Gravity
	if h0 <= 0 {
		h0 = 0.5 * (db.HL + db.HR)
	}
	return
}

func (db *DamBreak) middleFunc(h float64) (y float64) {
	y = waveFunc(h, db.HL) + waveFunc(h, db.HR) + db.UR - db.UL
	return
}

// waveFunc is the velocity jump across a wave connecting height hK to height h
func waveFunc(h, hK float64) (y float64) {
	if h <= hK {
		y = 2 * (math.Sqrt(solvers.Gravity*h) - math.Sqrt(solvers.Gravity*hK))
		return
	}
	y = (h - hK) * math.Sqrt(0.5*solvers.Gravity*(h+hK)/(h*hK))
	return
}

// fzero finds the root of f with the secant method, staying on the positive axis
func fzero(f func(h float64) (y float64), start float64) float64 {
	var (
		tol         = 1.e-12
		maxIter     = 100
		hOld, h     = start, 1.1 * start
		res, resNew = f(hOld), f(h)
	)
	for iter := 0; iter < maxIter; iter++ {
		if resNew == res {
			return h
		}
		hNew := h - resNew*(h-hOld)/(resNew-res)
		if hNew <= 0 {
			hNew = 0.5 * h
		}
		hOld, res = h, resNew
		h, resNew = hNew, f(hNew)
		if math.Abs(h-hOld) < tol*h {
			return h
		}
	}
	panic(fmt.Errorf("dam break middle state did not converge, h = %v, f(h) = %v", h, resNew))
}

// Sample returns the exact height and momentum at position x and time t
func (db *DamBreak) Sample(x, t float64) (h, hu float64) {
	var (
		u float64
	)
	if t <= 0 {
		if x < db.X0 {
			return db.HL, db.HL * db.UL
		}
		return db.HR, db.HR * db.UR
	}
	xi := (x - db.X0) / t
	if db.vacuum {
		h, u = db.sampleDry(xi)
	} else if xi <= db.uM {
		h, u = db.sampleLeft(xi)
	} else {
		h, u = db.sampleRight(xi)
	}
	hu = h * u
	return
}

func (db *DamBreak) sampleLeft(xi float64) (h, u float64) {
	var (
		g      = solvers.Gravity
		cL, cM = math.Sqrt(g * db.HL), math.Sqrt(g * db.hM)
	)
	if db.hM > db.HL {
		shock := db.UL - cL*math.Sqrt(0.5*(db.hM+db.HL)*db.hM/(db.HL*db.HL))
		if xi < shock {
			return db.HL, db.UL
		}
		return db.hM, db.uM
	}
	switch {
	case xi < db.UL-cL:
		return db.HL, db.UL
	case xi > db.uM-cM:
		return db.hM, db.uM
	}
	return leftFan(db.HL, db.UL, xi)
}

func (db *DamBreak) sampleRight(xi float64) (h, u float64) {
	var (
		g      = solvers.Gravity
		cR, cM = math.Sqrt(g * db.HR), math.Sqrt(g * db.hM)
	)
	if db.hM > db.HR {
		shock := db.UR + cR*math.Sqrt(0.5*(db.hM+db.HR)*db.hM/(db.HR*db.HR))
		if xi > shock {
			return db.HR, db.UR
		}
		return db.hM, db.uM
	}
	switch {
	case xi > db.UR+cR:
		return db.HR, db.UR
	case xi < db.uM+cM:
		return db.hM, db.uM
	}
	return rightFan(db.HR, db.UR, xi)
}

// sampleDry handles a dry bed on either side or between the two waves
func (db *DamBreak) sampleDry(xi float64) (h, u float64) {
	var (
		g      = solvers.Gravity
		cL, cR = math.Sqrt(g * db.HL), math.Sqrt(g * db.HR)
	)
	if db.HL > 0 {
		switch {
		case xi < db.UL-cL:
			return db.HL, db.UL
		case xi < db.UL+2*cL:
			return leftFan(db.HL, db.UL, xi)
		}
	}
	if db.HR > 0 {
		switch {
		case xi > db.UR+cR:
			return db.HR, db.UR
		case xi > db.UR-2*cR:
			return rightFan(db.HR, db.UR, xi)
		}
	}
	return 0, 0
}

func leftFan(hK, uK, xi float64) (h, u float64) {
	var (
		cK = math.Sqrt(solvers.Gravity * hK)
	)
	h = math.Pow(uK+2*cK-xi, 2) / (9 * solvers.Gravity)
	u = (uK + 2*cK + 2*xi) / 3
	return
}

func rightFan(hK, uK, xi float64) (h, u float64) {
	var (
		cK = math.Sqrt(solvers.Gravity * hK)
	)
	h = math.Pow(-uK+2*cK+xi, 2) / (9 * solvers.Gravity)
	u = (uK - 2*cK + 2*xi) / 3
	return
}

// Calc samples the solution at every position of X at time t
func (db *DamBreak) Calc(X []float64, t float64) (H, HU []float64) {
	H = make([]float64, len(X))
	HU = make([]float64, len(X))
	for i, x := range X {
		H[i], HU[i] = db.Sample(x, t)
	}
	return
}

func (db *DamBreak) Print() {
	fmt.Printf("Dam break hL = %8.5f, uL = %8.5f, hR = %8.5f, uR = %8.5f at x0 = %8.5f\n",
		db.HL, db.UL, db.HR, db.UR, db.X0)
	if db.vacuum {
		fmt.Printf("Dry bed solution\n")
		return
	}
	fmt.Printf("Middle state hM = %12.8f, uM = %12.8f\n", db.hM, db.uM)
}
