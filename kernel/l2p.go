package kernel

import (
	"github.com/pmansfield-lab/dipolefmm/geom"
	"github.com/pmansfield-lab/dipolefmm/harmonic"
)

// L2P evaluates a target cell's local expansion L (order p, expanded
// about centre) at a single particle position inside that cell, writing
// Mode.Stride() values into out.
func L2P(L []float64, centre geom.Vec, p int, target geom.Vec, mode Mode, out []float64) {
	R := target.Sub(centre)
	switch mode {
	case Force:
		for l := 0; l < 3; l++ {
			var acc float64
			for n := 0; n <= p; n++ {
				for i := n; i >= 0; i-- {
					for j := n - i; j >= 0; j-- {
						k := n - i - j
						exp := [3]int{i, j, k}
						if exp[l] == 0 {
							continue
						}
						mult := float64(exp[l])
						exp[l]--
						acc += mult * L[harmonic.Index(i, j, k)] * monomial(R, exp[0], exp[1], exp[2]) / multiFactorial(i, j, k)
					}
				}
			}
			out[l] = -acc
		}
	default:
		var acc float64
		for n := 0; n <= p; n++ {
			for i := n; i >= 0; i-- {
				for j := n - i; j >= 0; j-- {
					k := n - i - j
					acc += L[harmonic.Index(i, j, k)] * monomial(R, i, j, k) / multiFactorial(i, j, k)
				}
			}
		}
		out[0] = acc
	}
}
