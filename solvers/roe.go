package solvers

import "math"

/*
Roe decomposes the jump in the conserved state into the Roe eigenvectors and forms the fluctuations
lambda_k * alpha_k * r_k. The bathymetry is ignored, this solver assumes a flat bottom.

Transonic rarefactions are split between both cells with the Harten-Hyman entropy fix, using the
characteristic speeds on either side of the wave: the intermediate state is qL + alpha_1 * r_1.
*/
func Roe(hL, hR, huL, huR, bL, bR float64) (netL, netR [2]float64) {
	var (
		uL, uR = huL / hL, huR / hR
		lambda = roeEigenvalues(hL, hR, uL, uR)
		dq     = [2]float64{hR - hL, huR - huL}
		alpha  = waveStrengths(lambda, dq)
		// Intermediate state between the two waves
		hM  = hL + alpha[0]
		huM = huL + alpha[0]*lambda[0]
	)
	// Characteristic speeds to the left and right of each wave
	var (
		sL, sR [2]float64
		haveM  = hM > 0
	)
	if haveM {
		uM, cM := huM/hM, math.Sqrt(Gravity*hM)
		sL[0], sR[0] = uL-math.Sqrt(Gravity*hL), uM-cM
		sL[1], sR[1] = uM+cM, uR+math.Sqrt(Gravity*hR)
	}
	for k := 0; k < 2; k++ {
		r := [2]float64{1, lambda[k]}
		if haveM && sL[k] < 0 && sR[k] > 0 {
			beta := (sR[k] - lambda[k]) / (sR[k] - sL[k])
			for n := 0; n < 2; n++ {
				netL[n] += beta * sL[k] * alpha[k] * r[n]
				netR[n] += (1 - beta) * sR[k] * alpha[k] * r[n]
			}
			continue
		}
		for n := 0; n < 2; n++ {
			if lambda[k] < 0 {
				netL[n] += lambda[k] * alpha[k] * r[n]
			} else {
				netR[n] += lambda[k] * alpha[k] * r[n]
			}
		}
	}
	return
}
