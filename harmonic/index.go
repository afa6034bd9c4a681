// Package harmonic implements the index arithmetic shared by every
// expansion kernel: the count of Cartesian Taylor-expansion coefficients
// through a given order, and the flat offset of an individual (i,j,k)
// coefficient within a packed array.
//
// The basis is real Cartesian multi-index Taylor coefficients of the
// dipole potential kernel 1/r, addressed by total degree n = i+j+k and a
// packed multi-index within that degree — not complex spherical harmonics.
// This mirrors the only available reference for the translation
// arithmetic (a sympy code generator that works entirely in Cartesian
// multi-index form). See SPEC_FULL.md section 11.
//
// Within a degree n, monomials (i,j,k) with i+j+k=n are ordered by
// decreasing i, then decreasing j (k is determined). This fixes a single,
// total ordering used consistently by every kernel in this module.
package harmonic

// Nterms returns the number of scalar Taylor coefficients of total degree
// 0 through p inclusive, i.e. the number of monomials x^i y^j z^k with
// i+j+k <= p.
func Nterms(p int) int {
	if p < 0 {
		return 0
	}
	return (p + 1) * (p + 2) * (p + 3) / 6
}

// degreeStart returns the number of coefficients of degree strictly less
// than n, i.e. the flat offset at which degree n begins.
func degreeStart(n int) int {
	if n <= 0 {
		return 0
	}
	return Nterms(n - 1)
}

// Index returns the flat offset of coefficient (i,j,k) within a
// length-Nterms(p) array laid out by this package's ordering, for any p
// >= i+j+k. The offset does not depend on p.
func Index(i, j, k int) int {
	n := i + j + k
	off := degreeStart(n)
	// Within degree n, (i,j,k) is the subIdx-th monomial under decreasing-i,
	// then decreasing-j order. For a fixed i, j ranges over [0, n-i], giving
	// n-i+1 monomials; summing that count for i' > i gives the number of
	// monomials preceding index i within this degree.
	for ip := n; ip > i; ip-- {
		off += n - ip + 1
	}
	off += (n - i) - j
	return off
}

// Decode returns the (i,j,k) multi-index stored at flat offset idx within
// the ordering this package defines, for the given maximum degree p
// (idx must be < Nterms(p)).
func Decode(idx, p int) (i, j, k int) {
	n := 0
	for n <= p && degreeStart(n+1) <= idx {
		n++
	}
	rem := idx - degreeStart(n)
	// rem-th monomial under decreasing-i ordering within degree n.
	for i = n; i >= 0; i-- {
		count := n - i + 1
		if rem < count {
			j = (n - i) - rem
			k = n - i - j
			return i, j, k
		}
		rem -= count
	}
	return 0, 0, 0
}
