package kernel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pmansfield-lab/dipolefmm/geom"
	"github.com/pmansfield-lab/dipolefmm/harmonic"
	"github.com/pmansfield-lab/dipolefmm/particle"
)

func oneParticle(r, mu geom.Vec) []particle.Particle {
	return []particle.Particle{{R: r, Mu: mu}}
}

func TestDerivTensorMatchesKnownDerivatives(t *testing.T) {
	r := geom.Vec{1.3, -0.7, 2.1}
	r2 := r.Dot(r)
	g0 := 1 / math.Sqrt(r2)
	T := DerivTensor(r, 2)

	assert.InDelta(t, g0, T[harmonic.Index(0, 0, 0)], 1e-12)

	g3 := g0 * g0 * g0
	assert.InDelta(t, -r[0]*g3, T[harmonic.Index(1, 0, 0)], 1e-12)
	assert.InDelta(t, -r[1]*g3, T[harmonic.Index(0, 1, 0)], 1e-12)
	assert.InDelta(t, -r[2]*g3, T[harmonic.Index(0, 0, 1)], 1e-12)

	g5 := g3 * g0 * g0
	want200 := 3*r[0]*r[0]*g5 - g3
	assert.InDelta(t, want200, T[harmonic.Index(2, 0, 0)], 1e-12)

	want110 := 3 * r[0] * r[1] * g5
	assert.InDelta(t, want110, T[harmonic.Index(1, 1, 0)], 1e-12)
}

func TestDerivTensorIsHarmonic(t *testing.T) {
	r := geom.Vec{0.9, 1.8, -1.1}
	T := DerivTensor(r, 2)
	laplacian := T[harmonic.Index(2, 0, 0)] + T[harmonic.Index(0, 2, 0)] + T[harmonic.Index(0, 0, 2)]
	assert.InDelta(t, 0, laplacian, 1e-10)
}

func TestP2MThenM2PMatchesP2P(t *testing.T) {
	centre := geom.Vec{0, 0, 0}
	srcR := geom.Vec{0.2, -0.1, 0.05}
	srcMu := geom.Vec{1.0, 0.5, -0.3}
	target := geom.Vec{12, 7, -5}

	order := 8
	M := make([]float64, harmonic.Nterms(order))
	P2M(oneParticle(srcR, srcMu), centre, order, M)

	var got, want [1]float64
	M2P(M, centre, order, target, Potential, got[:])
	P2P(srcR, srcMu, target, Potential, want[:])

	assert.InDelta(t, want[0], got[0], 1e-6)
}

func TestM2MPreservesFarField(t *testing.T) {
	childCentre := geom.Vec{0.3, -0.2, 0.1}
	parentCentre := geom.Vec{0, 0, 0}
	srcR := geom.Vec{0.35, -0.25, 0.12}
	srcMu := geom.Vec{0.7, -0.4, 0.9}
	target := geom.Vec{15, -9, 6}

	order := 6
	Mchild := make([]float64, harmonic.Nterms(order))
	P2M(oneParticle(srcR, srcMu), childCentre, order, Mchild)

	Mparent := make([]float64, harmonic.Nterms(order))
	M2M(Mchild, childCentre, parentCentre, order, Mparent)

	var gotChild, gotParent, want [1]float64
	M2P(Mchild, childCentre, order, target, Potential, gotChild[:])
	M2P(Mparent, parentCentre, order, target, Potential, gotParent[:])
	P2P(srcR, srcMu, target, Potential, want[:])

	assert.InDelta(t, want[0], gotChild[0], 1e-6)
	assert.InDelta(t, want[0], gotParent[0], 1e-6)
}

func TestM2LThenL2PMatchesP2P(t *testing.T) {
	sourceCentre := geom.Vec{0, 0, 0}
	targetCentre := geom.Vec{10, 0, 0}
	srcR := geom.Vec{0.1, 0.2, -0.1}
	srcMu := geom.Vec{1.2, -0.3, 0.4}
	target := geom.Vec{10.3, -0.4, 0.2}

	order := 7
	M := make([]float64, harmonic.Nterms(order))
	P2M(oneParticle(srcR, srcMu), sourceCentre, order, M)

	L := make([]float64, harmonic.Nterms(order))
	M2L(M, sourceCentre, order, targetCentre, order, L)

	var got, want [1]float64
	L2P(L, targetCentre, order, target, Potential, got[:])
	P2P(srcR, srcMu, target, Potential, want[:])

	assert.InDelta(t, want[0], got[0], 1e-6)
}

func TestL2LPreservesLocalField(t *testing.T) {
	sourceCentre := geom.Vec{0, 0, 0}
	parentCentre := geom.Vec{10, 0, 0}
	childCentre := geom.Vec{10.2, 0.1, -0.1}
	srcR := geom.Vec{0.1, 0.2, -0.1}
	srcMu := geom.Vec{1.2, -0.3, 0.4}
	target := geom.Vec{10.25, 0.05, -0.15}

	order := 7
	M := make([]float64, harmonic.Nterms(order))
	P2M(oneParticle(srcR, srcMu), sourceCentre, order, M)

	Lparent := make([]float64, harmonic.Nterms(order))
	M2L(M, sourceCentre, order, parentCentre, order, Lparent)

	Lchild := make([]float64, harmonic.Nterms(order))
	L2L(Lparent, parentCentre, childCentre, order, Lchild)

	var got, want [1]float64
	L2P(Lchild, childCentre, order, target, Potential, got[:])
	P2P(srcR, srcMu, target, Potential, want[:])

	assert.InDelta(t, want[0], got[0], 1e-6)
}

func TestForceMatchesFiniteDifferenceOfPotential(t *testing.T) {
	srcR := geom.Vec{0, 0, 0}
	srcMu := geom.Vec{0.4, -0.6, 0.9}
	target := geom.Vec{3, 2, -4}

	var force [3]float64
	P2P(srcR, srcMu, target, Force, force[:])

	h := 1e-5
	for axis := 0; axis < 3; axis++ {
		plus := target
		minus := target
		plus[axis] += h
		minus[axis] -= h

		var phiPlus, phiMinus [1]float64
		P2P(srcR, srcMu, plus, Potential, phiPlus[:])
		P2P(srcR, srcMu, minus, Potential, phiMinus[:])

		fd := -(phiPlus[0] - phiMinus[0]) / (2 * h)
		assert.InDelta(t, fd, force[axis], 1e-4)
	}
}
