package kernel

import (
	"github.com/pmansfield-lab/dipolefmm/geom"
	"github.com/pmansfield-lab/dipolefmm/harmonic"
	"github.com/pmansfield-lab/dipolefmm/particle"
)

// P2M accumulates the multipole moments of a set of point dipoles into M,
// a coefficient vector of length harmonic.Nterms(p), expanded about
// centre. M is not zeroed first; callers that reuse an arena slice across
// builds must clear it themselves.
//
// The moment of total degree n (1 <= n <= p) along multi-index beta is
//
//	M[beta] = - sum_l mu_l * (-d)^(beta-e_l) / (beta-e_l)!
//
// summed over the axis l for which beta_l >= 1, where d = r_s - centre.
// M[(0,0,0)] is left untouched (and should be zero): a point dipole
// carries no monopole moment.
func P2M(ps []particle.Particle, centre geom.Vec, p int, M []float64) {
	for _, part := range ps {
		d := part.R.Sub(centre)
		for n := 1; n <= p; n++ {
			for i := n; i >= 0; i-- {
				for j := n - i; j >= 0; j-- {
					k := n - i - j
					idx := harmonic.Index(i, j, k)
					var acc float64
					if i >= 1 {
						acc += axisTerm(part.Mu[0], d, i-1, j, k)
					}
					if j >= 1 {
						acc += axisTerm(part.Mu[1], d, i, j-1, k)
					}
					if k >= 1 {
						acc += axisTerm(part.Mu[2], d, i, j, k-1)
					}
					M[idx] -= acc
				}
			}
		}
	}
}

// axisTerm returns mu_l * (-d)^gamma / gamma! for gamma=(gi,gj,gk).
func axisTerm(muComponent float64, d geom.Vec, gi, gj, gk int) float64 {
	sign := 1.0
	if (gi+gj+gk)%2 == 1 {
		sign = -1.0
	}
	return muComponent * sign * monomial(d, gi, gj, gk) / multiFactorial(gi, gj, gk)
}
