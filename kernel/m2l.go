package kernel

import (
	"github.com/pmansfield-lab/dipolefmm/geom"
	"github.com/pmansfield-lab/dipolefmm/harmonic"
)

// M2L translates a source cell's multipole moments M (order pm, expanded
// about sourceCentre) into a contribution added onto a target cell's
// local expansion L (order pl, expanded about targetCentre).
//
// Derived from Taylor-expanding the multipole far-field sum in the
// target cell's local coordinate R = r - targetCentre, around v =
// targetCentre - sourceCentre:
//
//	L[delta] += sum_{beta, |beta|<=pm} M[beta] * T(beta+delta)(v)
//
// where T is the derivative tensor of 1/r, needed here up to order
// pm+pl.
func M2L(M []float64, sourceCentre geom.Vec, pm int, targetCentre geom.Vec, pl int, L []float64) {
	v := targetCentre.Sub(sourceCentre)
	T := DerivTensor(v, pm+pl)
	for nd := 0; nd <= pl; nd++ {
		for di := nd; di >= 0; di-- {
			for dj := nd - di; dj >= 0; dj-- {
				dk := nd - di - dj
				deltaIdx := harmonic.Index(di, dj, dk)
				var acc float64
				for nb := 0; nb <= pm; nb++ {
					for bi := nb; bi >= 0; bi-- {
						for bj := nb - bi; bj >= 0; bj-- {
							bk := nb - bi - bj
							betaIdx := harmonic.Index(bi, bj, bk)
							tIdx := harmonic.Index(bi+di, bj+dj, bk+dk)
							acc += M[betaIdx] * T[tIdx]
						}
					}
				}
				L[deltaIdx] += acc
			}
		}
	}
}
