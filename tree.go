package dipole

import (
	"fmt"

	"github.com/pmansfield-lab/dipolefmm/geom"
	"github.com/pmansfield-lab/dipolefmm/kernel"
	"github.com/pmansfield-lab/dipolefmm/octree"
	"github.com/pmansfield-lab/dipolefmm/particle"
	"github.com/pmansfield-lab/dipolefmm/traverse"
)

// Tree is a built octree over a fixed point-dipole cloud, ready to
// evaluate the potential or force every particle feels from every other
// particle, either exactly, via FMM, or via Barnes-Hut.
type Tree struct {
	octree *octree.Tree
	ps     []particle.Particle
	theta  float64
}

// BuildTree constructs the adaptive octree over n point dipoles, given
// flat x,y,z-interleaved position and moment arrays of length 3n each.
// The root cube is sized automatically from the particle set: centred on
// the particles' bounding-box midpoint, with a radius just large enough
// to contain every particle.
//
// Returns ErrInvalidParameters if n == 0, theta <= 0, ncrit < 1, or
// order < 2. Returns ErrInvalidGeometry if a particle's coordinates are
// not finite, since no computed root cube can then contain it.
func BuildTree(positions, moments []float64, n, ncrit, order int, theta float64) (*Tree, error) {
	if n == 0 || theta <= 0 {
		return nil, fmt.Errorf("dipole: n=%d theta=%g: %w", n, theta, ErrInvalidParameters)
	}
	ps := particle.FromFlat(positions, moments)
	root := boundingCube(ps)

	oct, err := octree.Build(ps, root, ncrit, order)
	if err != nil {
		return nil, err
	}
	return &Tree{octree: oct, ps: ps, theta: theta}, nil
}

// boundingCube returns the smallest origin-centred-on-the-data cube that
// contains every particle in ps, padded slightly so that particles
// exactly on the computed boundary still satisfy Bounds.Contains after
// floating-point rounding.
func boundingCube(ps []particle.Particle) geom.Bounds {
	lo, hi := ps[0].R, ps[0].R
	for _, p := range ps[1:] {
		for k := 0; k < 3; k++ {
			if p.R[k] < lo[k] {
				lo[k] = p.R[k]
			}
			if p.R[k] > hi[k] {
				hi[k] = p.R[k]
			}
		}
	}
	centre := lo.Add(hi).Scale(0.5)

	var radius float64
	for _, p := range ps {
		if d := centre.Sub(p.R).NormInf(); d > radius {
			radius = d
		}
	}
	radius = radius*(1+1e-9) + 1e-12
	return geom.Bounds{Centre: centre, Radius: radius}
}

// NumParticles returns the number of particles the tree was built over.
func (t *Tree) NumParticles() int { return len(t.ps) }

// ComputeFieldExact evaluates the exact O(n^2) direct-sum field at every
// particle, for validating the FMM and Barnes-Hut approximations it
// otherwise produces. out must have length n*mode.Stride(), laid out
// stride-major per particle.
func (t *Tree) ComputeFieldExact(mode kernel.Mode, out []float64) {
	stride := mode.Stride()
	parallelRange(len(t.ps), func(lo, hi int) {
		buf := make([]float64, stride)
		for i := lo; i < hi; i++ {
			target := t.ps[i].R
			for j, src := range t.ps {
				if j == i {
					continue
				}
				kernel.P2P(src.R, src.Mu, target, mode, buf)
				for c := 0; c < stride; c++ {
					out[i*stride+c] += buf[c]
				}
			}
		}
	})
}

// ComputeFieldFMM evaluates the field at every particle via the full
// fast multipole method: P2M on every leaf, M2M swept upward level by
// level, a dual-tree interaction pass (M2L for admissible pairs, direct
// P2P for inadmissible leaf pairs), L2L swept downward level by level,
// then L2P to close out each leaf. out must have length
// n*mode.Stride().
func (t *Tree) ComputeFieldFMM(mode kernel.Mode, out []float64) {
	tree := t.octree
	tree.MArena.Zero()
	tree.LArena.Zero()
	leaves := leafIndices(tree)

	parallelRange(len(leaves), func(lo, hi int) {
		for _, idx := range leaves[lo:hi] {
			cell := &tree.Cells[idx]
			kernel.P2M(particlesAt(t.ps, cell.Leaf), cell.Bounds.Centre, tree.Order, cell.M)
		}
	})

	for lvl := traverse.MaxLevel(tree) - 1; lvl >= 0; lvl-- {
		cells := traverse.LevelCells(tree, lvl)
		parallelRange(len(cells), func(lo, hi int) {
			for _, idx := range cells[lo:hi] {
				traverse.UpwardM2M(tree, idx)
			}
		})
	}

	// List construction is a single serial tree walk (branch-heavy, cheap
	// relative to the FLOPs it dispatches); applying the M2L translations
	// it finds is the expensive part and is parallel across disjoint
	// target cells.
	lists := traverse.BuildFMMLists(tree, t.theta)
	m2lGroups := traverse.GroupByTarget(lists.M2L, len(tree.Cells))
	parallelRange(len(tree.Cells), func(lo, hi int) {
		for idx := lo; idx < hi; idx++ {
			if pairs := m2lGroups[idx]; len(pairs) > 0 {
				traverse.ApplyM2L(tree, pairs)
			}
		}
	})

	for lvl := 0; lvl <= traverse.MaxLevel(tree); lvl++ {
		cells := traverse.LevelCells(tree, lvl)
		parallelRange(len(cells), func(lo, hi int) {
			for _, idx := range cells[lo:hi] {
				traverse.DownwardL2L(tree, idx)
			}
		})
	}

	p2pGroups := traverse.GroupByTarget(lists.P2P, len(tree.Cells))
	parallelRange(len(leaves), func(lo, hi int) {
		for _, idx := range leaves[lo:hi] {
			traverse.ApplyP2P(tree, t.ps, p2pGroups[idx], mode, out)
			traverse.ApplyL2P(tree, t.ps, idx, mode, out)
		}
	})
}

// ComputeFieldBH evaluates the field at every particle via Barnes-Hut:
// P2M on every leaf, M2M swept upward level by level, then a single-tree
// descent per target particle, opening cells with the same Dehnen
// criterion the FMM driver uses. Unlike ComputeFieldFMM, the parallel
// phase is partitioned across target particles rather than target cells.
func (t *Tree) ComputeFieldBH(mode kernel.Mode, out []float64) {
	tree := t.octree
	tree.MArena.Zero()
	leaves := leafIndices(tree)

	parallelRange(len(leaves), func(lo, hi int) {
		for _, idx := range leaves[lo:hi] {
			cell := &tree.Cells[idx]
			kernel.P2M(particlesAt(t.ps, cell.Leaf), cell.Bounds.Centre, tree.Order, cell.M)
		}
	})

	for lvl := traverse.MaxLevel(tree) - 1; lvl >= 0; lvl-- {
		cells := traverse.LevelCells(tree, lvl)
		parallelRange(len(cells), func(lo, hi int) {
			for _, idx := range cells[lo:hi] {
				traverse.UpwardM2M(tree, idx)
			}
		})
	}

	parallelRange(len(t.ps), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			traverse.EvaluateBH(tree, t.ps, t.theta, mode, i, out)
		}
	})
}

func leafIndices(tree *octree.Tree) []int {
	var out []int
	for i := range tree.Cells {
		if tree.Cells[i].IsLeaf() {
			out = append(out, i)
		}
	}
	return out
}

func particlesAt(ps []particle.Particle, idxs []int) []particle.Particle {
	out := make([]particle.Particle, len(idxs))
	for i, pi := range idxs {
		out[i] = ps[pi]
	}
	return out
}
