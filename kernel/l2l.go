package kernel

import (
	"github.com/pmansfield-lab/dipolefmm/geom"
	"github.com/pmansfield-lab/dipolefmm/harmonic"
)

// L2L shifts a parent cell's local expansion Lparent, expanded about
// parentCentre, into a contribution added onto Lchild, expanded about
// childCentre. Both slices have length harmonic.Nterms(p).
//
// Derived from re-centring the local Taylor series
// sum_beta Lparent[beta]/beta! * (R + t)^beta (t = childCentre - parentCentre)
// about R = r - childCentre:
//
//	Lchild[delta] += sum_{beta >= delta} Lparent[beta] * t^(beta-delta) / (beta-delta)!
func L2L(Lparent []float64, parentCentre, childCentre geom.Vec, p int, Lchild []float64) {
	t := childCentre.Sub(parentCentre)
	for nd := 0; nd <= p; nd++ {
		for di := nd; di >= 0; di-- {
			for dj := nd - di; dj >= 0; dj-- {
				dk := nd - di - dj
				deltaIdx := harmonic.Index(di, dj, dk)
				var acc float64
				for bi := di; bi <= p; bi++ {
					for bj := dj; bi+bj <= p; bj++ {
						for bk := dk; bi+bj+bk <= p; bk++ {
							gi, gj, gk := bi-di, bj-dj, bk-dk
							betaIdx := harmonic.Index(bi, bj, bk)
							acc += Lparent[betaIdx] * monomial(t, gi, gj, gk) / multiFactorial(gi, gj, gk)
						}
					}
				}
				Lchild[deltaIdx] += acc
			}
		}
	}
}
