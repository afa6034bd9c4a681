package kernel

import (
	"github.com/pmansfield-lab/dipolefmm/geom"
	"github.com/pmansfield-lab/dipolefmm/harmonic"
)

// M2P evaluates a source cell's multipole expansion M (order p, expanded
// about centre) directly at a single far-field target position, writing
// Mode.Stride() values into out (out[0] for Potential, out[0:3] for
// Force). Used by the Barnes-Hut branch of the traversal, which opens an
// admissible pair down to individual target particles instead of
// building a local expansion.
func M2P(M []float64, centre geom.Vec, p int, target geom.Vec, mode Mode, out []float64) {
	v := target.Sub(centre)
	switch mode {
	case Force:
		T := DerivTensor(v, p+1)
		for l := 0; l < 3; l++ {
			var acc float64
			for n := 0; n <= p; n++ {
				for i := n; i >= 0; i-- {
					for j := n - i; j >= 0; j-- {
						k := n - i - j
						gi, gj, gk := i, j, k
						switch l {
						case 0:
							gi++
						case 1:
							gj++
						case 2:
							gk++
						}
						acc += M[harmonic.Index(i, j, k)] * T[harmonic.Index(gi, gj, gk)]
					}
				}
			}
			out[l] = -acc
		}
	default:
		T := DerivTensor(v, p)
		var acc float64
		for n := 0; n <= p; n++ {
			for i := n; i >= 0; i-- {
				for j := n - i; j >= 0; j-- {
					k := n - i - j
					idx := harmonic.Index(i, j, k)
					acc += M[idx] * T[idx]
				}
			}
		}
		out[0] = acc
	}
}
