package kernel

import (
	"github.com/pmansfield-lab/dipolefmm/geom"
	"github.com/pmansfield-lab/dipolefmm/harmonic"
)

// P2P evaluates the exact dipole-dipole interaction of a single source
// particle (at srcR with moment srcMu) on a single target position,
// writing Mode.Stride() values into out. This is the kernel used for
// every near-field pair the traversal does not admit for a multipole
// approximation, including the self-interaction of particles within the
// same leaf.
//
// The potential of a point dipole is phi(r) = -mu . grad g(r - r_s),
// i.e. minus the dot of the moment with the gradient of the derivative
// tensor; the force is the dipole moment contracted against the
// Hessian of the same tensor.
func P2P(srcR, srcMu geom.Vec, target geom.Vec, mode Mode, out []float64) {
	delta := target.Sub(srcR)
	switch mode {
	case Force:
		T := DerivTensor(delta, 2)
		for l := 0; l < 3; l++ {
			var acc float64
			for kAxis := 0; kAxis < 3; kAxis++ {
				i, j, k := 0, 0, 0
				switch l {
				case 0:
					i++
				case 1:
					j++
				case 2:
					k++
				}
				switch kAxis {
				case 0:
					i++
				case 1:
					j++
				case 2:
					k++
				}
				acc += srcMu[kAxis] * T[harmonic.Index(i, j, k)]
			}
			out[l] = acc
		}
	default:
		T := DerivTensor(delta, 1)
		grad := geom.Vec{
			T[harmonic.Index(1, 0, 0)],
			T[harmonic.Index(0, 1, 0)],
			T[harmonic.Index(0, 0, 1)],
		}
		out[0] = -srcMu.Dot(grad)
	}
}
