package octree

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmansfield-lab/dipolefmm/geom"
	"github.com/pmansfield-lab/dipolefmm/particle"
)

func uniformParticles(n int, seed int64) []particle.Particle {
	rng := rand.New(rand.NewSource(seed))
	ps := make([]particle.Particle, n)
	for i := range ps {
		ps[i] = particle.Particle{
			R:  geom.Vec{2*rng.Float64() - 1, 2*rng.Float64() - 1, 2*rng.Float64() - 1},
			Mu: geom.Vec{2*rng.Float64() - 1, 2*rng.Float64() - 1, 2*rng.Float64() - 1},
		}
	}
	return ps
}

func TestBuildRejectsInvalidParameters(t *testing.T) {
	root := geom.Bounds{Centre: geom.Vec{0, 0, 0}, Radius: 1}
	ps := uniformParticles(4, 1)

	_, err := Build(ps, root, 0, 4)
	assert.ErrorIs(t, err, ErrInvalidParameters)

	_, err = Build(ps, root, 8, 1)
	assert.ErrorIs(t, err, ErrInvalidParameters)
}

func TestBuildRejectsParticleOutsideRoot(t *testing.T) {
	root := geom.Bounds{Centre: geom.Vec{0, 0, 0}, Radius: 1}
	ps := []particle.Particle{{R: geom.Vec{5, 0, 0}}}

	_, err := Build(ps, root, 1, 4)
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

func TestBuildPartitionsAllParticles(t *testing.T) {
	root := geom.Bounds{Centre: geom.Vec{0, 0, 0}, Radius: 1}
	ps := uniformParticles(500, 2)

	tree, err := Build(ps, root, 8, 4)
	require.NoError(t, err)

	total := 0
	seen := make(map[int]bool)
	for _, cell := range tree.Cells {
		if !cell.IsLeaf() {
			assert.Empty(t, cell.Leaf)
			continue
		}
		total += len(cell.Leaf)
		for _, pi := range cell.Leaf {
			assert.False(t, seen[pi], "particle %d assigned to more than one leaf", pi)
			seen[pi] = true
		}
		assert.LessOrEqual(t, len(cell.Leaf), cell.Nleaf)
	}
	assert.Equal(t, len(ps), total)
}

func TestBuildChildGeometryMatchesParent(t *testing.T) {
	root := geom.Bounds{Centre: geom.Vec{0, 0, 0}, Radius: 1}
	ps := uniformParticles(300, 3)

	tree, err := Build(ps, root, 4, 4)
	require.NoError(t, err)

	for i, cell := range tree.Cells {
		for oct, childIdx := range cell.Child {
			if childIdx < 0 {
				continue
			}
			child := tree.Cells[childIdx]
			assert.Equal(t, cell.Level+1, child.Level)
			assert.Equal(t, i, child.Parent)
			assert.InDelta(t, cell.Bounds.Radius/2, child.Bounds.Radius, 1e-12)
			wantCentre := cell.Bounds.Child(oct).Centre
			assert.InDelta(t, wantCentre[0], child.Bounds.Centre[0], 1e-12)
			assert.InDelta(t, wantCentre[1], child.Bounds.Centre[1], 1e-12)
			assert.InDelta(t, wantCentre[2], child.Bounds.Centre[2], 1e-12)
		}
	}
}

func TestComputeRmaxBoundsParticleDistances(t *testing.T) {
	root := geom.Bounds{Centre: geom.Vec{0, 0, 0}, Radius: 1}
	ps := uniformParticles(400, 4)

	tree, err := Build(ps, root, 6, 4)
	require.NoError(t, err)

	for _, cell := range tree.Cells {
		bound := cell.Bounds.Radius*math.Sqrt(3) + cell.Bounds.Radius
		assert.LessOrEqual(t, cell.Rmax, bound+1e-9)
	}

	for i, pi := range leafParticleIndices(tree) {
		_ = i
		cell := cellOwning(tree, pi)
		d := cell.Bounds.Centre.Dist(ps[pi].R)
		assert.LessOrEqual(t, d, cell.Rmax+1e-9)
	}
}

func leafParticleIndices(tree *Tree) []int {
	var out []int
	for _, cell := range tree.Cells {
		if cell.IsLeaf() {
			out = append(out, cell.Leaf...)
		}
	}
	return out
}

func cellOwning(tree *Tree, pi int) Cell {
	for _, cell := range tree.Cells {
		if !cell.IsLeaf() {
			continue
		}
		for _, p := range cell.Leaf {
			if p == pi {
				return cell
			}
		}
	}
	panic("particle not found in any leaf")
}
