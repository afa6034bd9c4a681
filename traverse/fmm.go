// Package traverse implements the dual-tree interaction driver: the
// Dehnen/Barnes-Hut admissibility test and the recursion that dispatches
// P2P, M2L (FMM mode), or M2P (BH mode) over an already-built octree.
//
// The package exposes plain, single-threaded functions; the worker-pool
// fan-out described by the concurrency model lives in the root package,
// which partitions the Pair lists this package produces across disjoint
// target-cell ranges before calling Apply*.
package traverse

import (
	"github.com/pmansfield-lab/dipolefmm/kernel"
	"github.com/pmansfield-lab/dipolefmm/octree"
	"github.com/pmansfield-lab/dipolefmm/particle"
)

// Pair names a target/source cell index pair produced by the traversal.
type Pair struct {
	Target int
	Source int
}

// Lists is the interaction list the FMM traversal produces: every
// admissible (target, source) cell pair destined for M2L, and every
// leaf/leaf pair destined for direct P2P.
type Lists struct {
	M2L []Pair
	P2P []Pair
}

// BuildFMMLists runs the dual-tree recursion from (root, root) and
// returns the admissible M2L pairs and the leaf P2P pairs it bottoms out
// at. theta is the Dehnen opening angle; a pair (j,k) is admissible when
// the distance between centres exceeds (rmax_j+rmax_k)/theta.
//
// A self-pair (j, j), starting with (root, root), is never tested for
// admissibility (it can never be separated from itself); unless j is a
// leaf (then it is a P2P pair), it is expanded directly into the
// diagonal pairs of j's children plus both orderings of every
// off-diagonal pair, each of which recurses normally. Every other pair
// either resolves to P2P (both leaves), resolves to M2L (admissible), or
// descends into the children of whichever side cannot yet be resolved (a
// leaf can never be descended, so the recursion always makes progress).
// Because a pair keeps its target/source roles fixed for the rest of its
// descent, both orderings of every sibling pair must be seeded so that
// each side of an interaction ends up as a target at least once.
func BuildFMMLists(tree *octree.Tree, theta float64) *Lists {
	lists := &Lists{}
	var recurse func(j, k int)
	recurse = func(j, k int) {
		cj, ck := &tree.Cells[j], &tree.Cells[k]
		if cj.IsLeaf() && ck.IsLeaf() {
			lists.P2P = append(lists.P2P, Pair{Target: j, Source: k})
			return
		}
		if j == k {
			recurseSelfPair(tree, j, recurse)
			return
		}
		if admissible(cj.Bounds.Centre.Dist(ck.Bounds.Centre), cj.Rmax, ck.Rmax, theta) {
			lists.M2L = append(lists.M2L, Pair{Target: j, Source: k})
			return
		}
		if descendSource(cj, ck) {
			for _, cc := range ck.Child {
				if cc >= 0 {
					recurse(j, cc)
				}
			}
		} else {
			for _, cc := range cj.Child {
				if cc >= 0 {
					recurse(cc, k)
				}
			}
		}
	}
	recurse(tree.Root(), tree.Root())
	return lists
}

// admissible implements the Dehnen multipole-acceptance criterion.
func admissible(dist, rmaxJ, rmaxK, theta float64) bool {
	return dist > (rmaxJ+rmaxK)/theta
}

// descendSource reports whether, for an inadmissible non-self pair
// (j,k), the recursion should split k rather than j: true whenever k can
// still be split and either j cannot be split or k is not smaller.
func descendSource(cj, ck *octree.Cell) bool {
	if ck.IsLeaf() {
		return false
	}
	return cj.IsLeaf() || ck.Bounds.Radius >= cj.Bounds.Radius
}

// recurseSelfPair expands a cell's self-interaction into every pair of
// its children, including each child's own self-pair, then recurses
// normally on each. This must be special-cased: the generic descend rule
// would otherwise compare a shrinking child against the un-shrunk
// original cell forever.
//
// Every subsequent recurse(j,k) call keeps j in the target slot and k in
// the source slot for the rest of that subtree's descent (a pair only
// ever narrows the side it split; it never swaps sides), and Pair.Target
// is what Apply{M2L,P2P} write into. So each off-diagonal sibling pair
// (ca,cb) must be recursed in both orders: recurse(ca,cb) alone would
// only ever compute the field cb's subtree induces on ca's, never the
// reverse.
func recurseSelfPair(tree *octree.Tree, j int, recurse func(a, b int)) {
	cj := &tree.Cells[j]
	for a := 0; a < 8; a++ {
		ca := cj.Child[a]
		if ca < 0 {
			continue
		}
		recurse(ca, ca)
		for b := a + 1; b < 8; b++ {
			cb := cj.Child[b]
			if cb < 0 {
				continue
			}
			recurse(ca, cb)
			recurse(cb, ca)
		}
	}
}

// GroupByTarget buckets pairs by their Target cell index, so that a
// caller partitioning work across a worker pool can hand each worker a
// contiguous range of target indices: every pair in a bucket writes only
// to that one target's coefficient slice, so disjoint index ranges never
// write to the same memory.
func GroupByTarget(pairs []Pair, ncells int) [][]Pair {
	groups := make([][]Pair, ncells)
	for _, p := range pairs {
		groups[p.Target] = append(groups[p.Target], p)
	}
	return groups
}

// ApplyM2L translates every source cell's multipole moments in pairs
// into the corresponding target cell's local expansion. Safe to call
// concurrently across disjoint Target index ranges (see GroupByTarget).
func ApplyM2L(tree *octree.Tree, pairs []Pair) {
	for _, pr := range pairs {
		src := &tree.Cells[pr.Source]
		tgt := &tree.Cells[pr.Target]
		kernel.M2L(src.M, src.Bounds.Centre, tree.Order, tgt.Bounds.Centre, tree.Order, tgt.L)
	}
}

// ApplyP2P evaluates the direct dipole-dipole field for every leaf pair
// in pairs, accumulating into out (laid out stride-major per particle).
// Safe to call concurrently across disjoint Target index ranges.
func ApplyP2P(tree *octree.Tree, ps []particle.Particle, pairs []Pair, mode kernel.Mode, out []float64) {
	stride := mode.Stride()
	var buf [3]float64
	for _, pr := range pairs {
		targetLeaf := &tree.Cells[pr.Target]
		sourceLeaf := &tree.Cells[pr.Source]
		for _, ti := range targetLeaf.Leaf {
			for _, si := range sourceLeaf.Leaf {
				if si == ti {
					continue
				}
				kernel.P2P(ps[si].R, ps[si].Mu, ps[ti].R, mode, buf[:stride])
				for c := 0; c < stride; c++ {
					out[ti*stride+c] += buf[c]
				}
			}
		}
	}
}

// ApplyL2P evaluates leafIdx's local expansion at every particle it
// owns, accumulating into out. Safe to call concurrently across
// disjoint leaf indices, since a leaf's particles belong to no other
// leaf.
func ApplyL2P(tree *octree.Tree, ps []particle.Particle, leafIdx int, mode kernel.Mode, out []float64) {
	leaf := &tree.Cells[leafIdx]
	stride := mode.Stride()
	var buf [3]float64
	for _, pi := range leaf.Leaf {
		kernel.L2P(leaf.L, leaf.Bounds.Centre, tree.Order, ps[pi].R, mode, buf[:stride])
		for c := 0; c < stride; c++ {
			out[pi*stride+c] += buf[c]
		}
	}
}
