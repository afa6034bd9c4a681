package octree

import (
	"fmt"

	"github.com/pmansfield-lab/dipolefmm/geom"
	"github.com/pmansfield-lab/dipolefmm/particle"
)

// maxDepth caps the build recursion so that coincident or near-coincident
// particle clusters cannot drive the radius to zero and recurse forever;
// a cell pinned at maxDepth simply keeps accumulating particles past
// ncrit instead of splitting again.
const maxDepth = 32

// Build adaptively subdivides ps into an octree rooted at root, with at
// most ncrit particles per leaf and multipole/local expansions of order
// order. It returns ErrInvalidParameters if ncrit < 1 or order < 2, and
// ErrInvalidGeometry if any particle lies outside root.
func Build(ps []particle.Particle, root geom.Bounds, ncrit, order int) (*Tree, error) {
	if ncrit < 1 || order < 2 {
		return nil, fmt.Errorf("octree: ncrit=%d order=%d: %w", ncrit, order, ErrInvalidParameters)
	}
	for i, p := range ps {
		if !root.Contains(p.R) {
			return nil, fmt.Errorf("octree: particle %d at %v outside root %+v: %w", i, p.R, root, ErrInvalidGeometry)
		}
	}

	t := &Tree{Ncrit: ncrit, Order: order}
	t.Cells = append(t.Cells, Cell{Bounds: root, Level: 0, Parent: noParent, Child: emptyChildren()})

	b := &builder{tree: t, ps: ps, ncrit: ncrit}
	for i := range ps {
		b.insert(0, i)
	}
	t.bindArenas()
	ComputeRmax(t, ps)
	return t, nil
}

func emptyChildren() [8]int {
	var c [8]int
	for i := range c {
		c[i] = -1
	}
	return c
}

type builder struct {
	tree  *Tree
	ps    []particle.Particle
	ncrit int
}

// insert descends from cellIdx, placing particle index pi in the leaf
// list of the cell it ultimately belongs to, splitting cells as their
// leaf list grows past ncrit.
func (b *builder) insert(cellIdx, pi int) {
	for {
		cell := &b.tree.Cells[cellIdx]
		if cell.NumChildren() == 0 {
			cell.Leaf = append(cell.Leaf, pi)
			cell.Nleaf++
			if cell.Nleaf > b.ncrit && cell.Level < maxDepth {
				b.split(cellIdx)
			}
			return
		}
		oct := cell.Bounds.Octant(b.ps[pi].R)
		childIdx := b.childOrCreate(cellIdx, oct)
		cellIdx = childIdx
	}
}

// split redistributes a cell's leaf list into its (possibly newly
// created) children, then clears the leaf list: a split cell never
// holds particles directly again.
func (b *builder) split(cellIdx int) {
	members := b.tree.Cells[cellIdx].Leaf
	b.tree.Cells[cellIdx].Leaf = nil
	for _, pi := range members {
		cell := &b.tree.Cells[cellIdx]
		oct := cell.Bounds.Octant(b.ps[pi].R)
		childIdx := b.childOrCreate(cellIdx, oct)
		b.insert(childIdx, pi)
	}
}

// childOrCreate returns the index of parentIdx's child occupying octant,
// allocating and linking a new cell if it does not yet exist.
func (b *builder) childOrCreate(parentIdx, octant int) int {
	parent := &b.tree.Cells[parentIdx]
	if parent.Child[octant] >= 0 {
		return parent.Child[octant]
	}
	child := Cell{
		Bounds: parent.Bounds.Child(octant),
		Level:  parent.Level + 1,
		Parent: parentIdx,
		Child:  emptyChildren(),
	}
	childIdx := len(b.tree.Cells)
	b.tree.Cells = append(b.tree.Cells, child)
	b.tree.Cells[parentIdx].Child[octant] = childIdx
	return childIdx
}
