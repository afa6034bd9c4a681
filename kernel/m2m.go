package kernel

import (
	"github.com/pmansfield-lab/dipolefmm/geom"
	"github.com/pmansfield-lab/dipolefmm/harmonic"
)

// M2M shifts a child cell's multipole moments Mchild, expanded about
// childCentre, into a contribution added onto Mparent, expanded about
// parentCentre. Both slices have length harmonic.Nterms(p).
//
// Derived from re-centring the far-field identity
// sum_beta Mchild[beta] D^beta g(R - t) (t = childCentre - parentCentre)
// as a Taylor series in t:
//
//	Mparent[eps] += sum_{beta <= eps} Mchild[beta] * (-t)^(eps-beta) / (eps-beta)!
func M2M(Mchild []float64, childCentre, parentCentre geom.Vec, p int, Mparent []float64) {
	t := childCentre.Sub(parentCentre)
	for ne := 0; ne <= p; ne++ {
		for ei := ne; ei >= 0; ei-- {
			for ej := ne - ei; ej >= 0; ej-- {
				ek := ne - ei - ej
				epsIdx := harmonic.Index(ei, ej, ek)
				var acc float64
				for bi := 0; bi <= ei; bi++ {
					for bj := 0; bj <= ej; bj++ {
						for bk := 0; bk <= ek; bk++ {
							gi, gj, gk := ei-bi, ej-bj, ek-bk
							sign := 1.0
							if (gi+gj+gk)%2 == 1 {
								sign = -1.0
							}
							betaIdx := harmonic.Index(bi, bj, bk)
							acc += Mchild[betaIdx] * sign * monomial(t, gi, gj, gk) / multiFactorial(gi, gj, gk)
						}
					}
				}
				Mparent[epsIdx] += acc
			}
		}
	}
}
