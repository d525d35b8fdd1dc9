package solvers

/*
Fwave decomposes the jump in the physical flux into the two Roe eigenvectors of the shallow water system.

	Flux:       f(q) = [hu, hu*u + g*h*h/2]
	Source:     dxPsi = [0, -g*(bR-bL)*(hL+hR)/2]
	Waves:      Z_k = alpha_k * [1, lambda_k], with sum(alpha_k * r_k) = f(qR) - f(qL) - dxPsi

The source term is removed from the flux jump before the decomposition, which equals subtracting its
projection from each wave. A lake at rest (h + b constant, u = 0) therefore produces no waves.

Waves travelling left (lambda < 0) update the left cell, all others the right cell.
*/
func Fwave(hL, hR, huL, huR, bL, bR float64) (netL, netR [2]float64) {
	var (
		uL, uR = huL / hL, huR / hR
		lambda = roeEigenvalues(hL, hR, uL, uR)
		dxPsi  = -Gravity * (bR - bL) * 0.5 * (hL + hR)
		df     = [2]float64{
			huR - huL,
			(huR*uR + 0.5*Gravity*hR*hR) - (huL*uL + 0.5*Gravity*hL*hL) - dxPsi,
		}
		alpha = waveStrengths(lambda, df)
	)
	for k := 0; k < 2; k++ {
		z := [2]float64{alpha[k], alpha[k] * lambda[k]}
		if lambda[k] < 0 {
			netL[0] += z[0]
			netL[1] += z[1]
		} else {
			netR[0] += z[0]
			netR[1] += z[1]
		}
	}
	return
}
