package traverse

import (
	"github.com/pmansfield-lab/dipolefmm/kernel"
	"github.com/pmansfield-lab/dipolefmm/octree"
	"github.com/pmansfield-lab/dipolefmm/particle"
)

// EvaluateBH computes the field at a single target particle by
// descending the tree from the root, treating the particle as a
// zero-radius cell: a source cell is admissible once the distance from
// the particle to its centre exceeds rmax/theta. Admissible cells
// contribute via M2P; leaves contribute via direct P2P, with
// self-exclusion when the source particle is the target itself.
//
// Safe to call concurrently for distinct targetIdx values, since each
// call only ever writes to out[targetIdx*stride:...].
func EvaluateBH(tree *octree.Tree, ps []particle.Particle, theta float64, mode kernel.Mode, targetIdx int, out []float64) {
	stride := mode.Stride()
	target := ps[targetIdx].R
	acc := make([]float64, stride)
	buf := make([]float64, stride)

	var recurse func(k int)
	recurse = func(k int) {
		cell := &tree.Cells[k]
		if cell.IsLeaf() {
			for _, si := range cell.Leaf {
				if si == targetIdx {
					continue
				}
				kernel.P2P(ps[si].R, ps[si].Mu, target, mode, buf)
				for c := 0; c < stride; c++ {
					acc[c] += buf[c]
				}
			}
			return
		}
		dist := cell.Bounds.Centre.Dist(target)
		if dist > cell.Rmax/theta {
			kernel.M2P(cell.M, cell.Bounds.Centre, tree.Order, target, mode, buf)
			for c := 0; c < stride; c++ {
				acc[c] += buf[c]
			}
			return
		}
		for _, cc := range cell.Child {
			if cc >= 0 {
				recurse(cc)
			}
		}
	}
	recurse(tree.Root())

	for c := 0; c < stride; c++ {
		out[targetIdx*stride+c] += acc[c]
	}
}
