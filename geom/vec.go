// Package geom contains the geometric primitives shared by the octree
// builder, the expansion kernels, and the interaction driver: a 3-vector
// type and the axis-aligned cube bounds used to describe octree cells.
package geom

import "math"

// Vec is a three dimensional vector of double-precision components,
// ordered x, y, z.
type Vec [3]float64

// Add returns v1 + v2.
func (v1 Vec) Add(v2 Vec) Vec {
	return Vec{v1[0] + v2[0], v1[1] + v2[1], v1[2] + v2[2]}
}

// Sub returns v1 - v2.
func (v1 Vec) Sub(v2 Vec) Vec {
	return Vec{v1[0] - v2[0], v1[1] - v2[1], v1[2] - v2[2]}
}

// Scale returns v scaled by c.
func (v Vec) Scale(c float64) Vec {
	return Vec{v[0] * c, v[1] * c, v[2] * c}
}

// Dot returns the inner product of v1 and v2.
func (v1 Vec) Dot(v2 Vec) float64 {
	return v1[0]*v2[0] + v1[1]*v2[1] + v1[2]*v2[2]
}

// Norm returns the Euclidean length of v.
func (v Vec) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// NormInf returns the Chebyshev (L-infinity) norm of v.
func (v Vec) NormInf() float64 {
	ax, ay, az := math.Abs(v[0]), math.Abs(v[1]), math.Abs(v[2])
	m := ax
	if ay > m {
		m = ay
	}
	if az > m {
		m = az
	}
	return m
}

// Dist returns the Euclidean distance between v1 and v2.
func (v1 Vec) Dist(v2 Vec) float64 {
	return v1.Sub(v2).Norm()
}
