package traverse

import (
	"github.com/pmansfield-lab/dipolefmm/kernel"
	"github.com/pmansfield-lab/dipolefmm/octree"
)

// LevelCells returns the indices of every cell at the given level, in
// the order they were created. Cells within one level never depend on
// each other's M or L values within the same sweep, so a caller can
// fan a level's indices out across a worker pool freely.
func LevelCells(tree *octree.Tree, level int) []int {
	var out []int
	for i, cell := range tree.Cells {
		if cell.Level == level {
			out = append(out, i)
		}
	}
	return out
}

// MaxLevel returns the deepest level any cell in the tree occupies.
func MaxLevel(tree *octree.Tree) int {
	max := 0
	for _, cell := range tree.Cells {
		if cell.Level > max {
			max = cell.Level
		}
	}
	return max
}

// UpwardM2M shifts the multipole moments of every child of cellIdx into
// cellIdx's own M slice; a no-op for leaves, which get their moments
// from P2M instead. Call level-by-level from the deepest level up to and
// including the root's level, so a cell's children are always already
// finalised.
func UpwardM2M(tree *octree.Tree, cellIdx int) {
	cell := &tree.Cells[cellIdx]
	if cell.IsLeaf() {
		return
	}
	for _, ch := range cell.Child {
		if ch < 0 {
			continue
		}
		child := &tree.Cells[ch]
		kernel.M2M(child.M, child.Bounds.Centre, cell.Bounds.Centre, tree.Order, cell.M)
	}
}

// DownwardL2L shifts cellIdx's parent's local expansion into cellIdx's
// own L slice; a no-op for the root, which has no parent contribution.
// Call level-by-level from the root's level down to the deepest level,
// so a cell's parent is always already finalised.
func DownwardL2L(tree *octree.Tree, cellIdx int) {
	cell := &tree.Cells[cellIdx]
	if cell.Parent < 0 {
		return
	}
	parent := &tree.Cells[cell.Parent]
	kernel.L2L(parent.L, parent.Bounds.Centre, cell.Bounds.Centre, tree.Order, cell.L)
}
