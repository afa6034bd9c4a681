// Package octree builds the adaptive spatial hierarchy the FMM and
// Barnes-Hut traversals run over: a flat, append-only slice of Cell
// values addressed by index rather than pointer, in the same spirit as
// the teacher's flat-array density grids.
package octree

import "github.com/pmansfield-lab/dipolefmm/geom"

// noParent marks the root cell, which has no parent index.
const noParent = -1

// Cell is one node of the octree, addressed by its position in Tree.Cells
// rather than by pointer. Child cells are referenced the same way: by
// index into the same slice, or -1 for an absent child.
type Cell struct {
	Bounds geom.Bounds
	Rmax   float64
	Level  int
	Parent int
	Child  [8]int

	// Nleaf counts particles appended to this cell's Leaf list during the
	// build. It stops changing once the cell is split (later particles
	// descend straight into the children), so a split cell keeps the
	// count it had when it grew past ncrit. Leaf status after the build
	// is decided by IsLeaf, not by Nleaf.
	Nleaf int

	// Leaf holds the indices (into the caller's particle slice) of the
	// particles directly owned by this cell. Only ever non-empty for
	// cells that finished the build as leaves: the builder's split clears
	// it on every cell it subdivides.
	Leaf []int

	// M and L are this cell's multipole and local expansion coefficient
	// slices, borrowed from the tree's two arenas. Populated by the
	// P2M/M2M and M2L/L2L sweeps, not by the builder.
	M []float64
	L []float64
}

// IsLeaf reports whether c finished the build as a leaf: a cell with no
// children, and therefore one that still owns its Leaf particle list.
// Nleaf >= ncrit is what triggers a split during the build, but a cell
// pinned at the maximum build depth can exceed ncrit without ever being
// split, so childlessness is the only discriminant that holds for every
// finished cell.
func (c *Cell) IsLeaf() bool {
	return c.NumChildren() == 0
}

// NumChildren returns how many of c's eight child slots are occupied.
func (c *Cell) NumChildren() int {
	n := 0
	for _, ch := range c.Child {
		if ch >= 0 {
			n++
		}
	}
	return n
}
