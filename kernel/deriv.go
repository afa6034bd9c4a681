package kernel

import (
	"math"

	"github.com/pmansfield-lab/dipolefmm/geom"
	"github.com/pmansfield-lab/dipolefmm/harmonic"
)

// DerivTensor returns the Cartesian Taylor-coefficient tensor of the
// Laplace kernel g(R) = 1/|R|: every partial derivative D^(i,j,k) g(R)
// for i+j+k <= p, packed in harmonic package order.
//
// The tensor is built in two passes instead of by a single closed-form
// recursion, since no ready-made recursion for 1/r's mixed partials
// survived the distillation this module is derived from. Both passes
// are plain applications of the multivariate Leibniz rule to exact
// polynomial identities, so the result is correct by construction:
//
//  1. w = g^2 = 1/|R|^2 satisfies h*w = 1 where h = x^2+y^2+z^2 is a
//     degree-2 polynomial. Differentiating h*w=1 with Leibniz's rule,
//     every term but three vanishes (h has no derivatives past order
//     2), giving W[a] purely from lower-order W entries.
//  2. g itself satisfies g*g = w. Leibniz on that product isolates a
//     single unknown 2*g*G[a] on one side (the gamma=0 and gamma=a
//     terms are identical), leaving a sum over strictly-lower
//     sub-multi-indices on the other.
//
// Both recursions proceed by increasing total degree, so every term
// referenced is already known.
func DerivTensor(r geom.Vec, p int) []float64 {
	n := harmonic.Nterms(p)
	w := make([]float64, n)
	g := make([]float64, n)

	r2 := r.Dot(r)
	g0 := 1 / math.Sqrt(r2)
	w[0] = g0 * g0
	g[0] = g0

	for d := 1; d <= p; d++ {
		for i := d; i >= 0; i-- {
			for j := d - i; j >= 0; j-- {
				k := d - i - j
				idx := harmonic.Index(i, j, k)

				// Pass 1: W[i,j,k] from the h*w=1 recursion.
				var acc float64
				if i >= 1 {
					acc += 2 * float64(i) * r[0] * w[harmonic.Index(i-1, j, k)]
				}
				if j >= 1 {
					acc += 2 * float64(j) * r[1] * w[harmonic.Index(i, j-1, k)]
				}
				if k >= 1 {
					acc += 2 * float64(k) * r[2] * w[harmonic.Index(i, j, k-1)]
				}
				if i >= 2 {
					acc += float64(i*(i-1)) * w[harmonic.Index(i-2, j, k)]
				}
				if j >= 2 {
					acc += float64(j*(j-1)) * w[harmonic.Index(i, j-2, k)]
				}
				if k >= 2 {
					acc += float64(k*(k-1)) * w[harmonic.Index(i, j, k-2)]
				}
				w[idx] = -acc / r2

				// Pass 2: G[i,j,k] from the g*g=w recursion. Sum the
				// convolution over sub-multi-indices strictly between
				// (0,0,0) and (i,j,k); the two boundary terms (gamma=0,
				// gamma=(i,j,k)) are folded into the 2*g0 divisor below.
				var conv float64
				for ip := 0; ip <= i; ip++ {
					for jp := 0; jp <= j; jp++ {
						for kp := 0; kp <= k; kp++ {
							if ip == 0 && jp == 0 && kp == 0 {
								continue
							}
							if ip == i && jp == j && kp == k {
								continue
							}
							c := multiBinom(i, j, k, ip, jp, kp)
							conv += c * g[harmonic.Index(ip, jp, kp)] * g[harmonic.Index(i-ip, j-jp, k-kp)]
						}
					}
				}
				g[idx] = (w[idx] - conv) / (2 * g0)
			}
		}
	}
	return g
}

// monomial evaluates d[0]^i * d[1]^j * d[2]^k.
func monomial(d geom.Vec, i, j, k int) float64 {
	v := 1.0
	for n := 0; n < i; n++ {
		v *= d[0]
	}
	for n := 0; n < j; n++ {
		v *= d[1]
	}
	for n := 0; n < k; n++ {
		v *= d[2]
	}
	return v
}
