package octree

import (
	"github.com/pmansfield-lab/dipolefmm/arena"
	"github.com/pmansfield-lab/dipolefmm/harmonic"
)

// Tree is the built octree plus the M and L coefficient arenas its cells
// borrow their slices from. Cells is append-only and index-stable: once
// assigned, a cell's index in Cells never changes, so parent/child links
// and arena row numbers can be plain ints.
type Tree struct {
	Cells []Cell
	Ncrit int
	Order int

	MArena arena.Arena
	LArena arena.Arena
}

const root = 0

// bindArenas allocates the M and L arenas for the tree's current cell
// count and points every cell's M/L fields at its row, after the
// geometry of Cells is final. Arena rows are zeroed on allocation, so
// P2M and the two sweeps can accumulate directly into them.
func (t *Tree) bindArenas() {
	width := harmonic.Nterms(t.Order)
	t.MArena = arena.New(len(t.Cells), width)
	t.LArena = arena.New(len(t.Cells), width)
	for i := range t.Cells {
		t.Cells[i].M = t.MArena.Slice(i)
		t.Cells[i].L = t.LArena.Slice(i)
	}
}

// Root returns the index of the tree's root cell. It is always 0: Build
// allocates the root first and never removes cells.
func (t *Tree) Root() int { return root }
