// Package particle defines the point-dipole source type shared by every
// layer of the tree: the octree builder, the expansion kernels, and the
// interaction driver.
package particle

import "github.com/pmansfield-lab/dipolefmm/geom"

// Particle is a point dipole: a position and a dipole moment. It is
// immutable for the duration of a computation; the tree holds a
// non-owning view of a caller-provided slice.
type Particle struct {
	R  geom.Vec
	Mu geom.Vec
}

// FromFlat decodes the flat x,y,z-interleaved position and moment arrays
// the external interface (BuildTree) accepts into a slice of Particle.
func FromFlat(positions, moments []float64) []Particle {
	n := len(positions) / 3
	ps := make([]Particle, n)
	for i := 0; i < n; i++ {
		ps[i] = Particle{
			R:  geom.Vec{positions[3*i], positions[3*i+1], positions[3*i+2]},
			Mu: geom.Vec{moments[3*i], moments[3*i+1], moments[3*i+2]},
		}
	}
	return ps
}
