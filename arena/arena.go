// Package arena implements the flat, contiguous backing storage for the
// per-cell multipole (M) and local (L) expansion coefficient vectors.
//
// A single []float64 holds every cell's coefficients back to back; a cell
// borrows a fixed-length slice of it by offset. This mirrors the flat
// Vals-plus-dimensions idiom the teacher's mat.Matrix uses for a 2D array,
// generalized here to a 1D array of fixed-width rows, and matches the raw
// pointer-into-one-big-array layout the original C++ reference
// (Cell::M / Cell::L) uses.
package arena

import (
	"errors"
	"fmt"
)

// ErrMisaligned marks a request for the slice of a cell index that has no
// row in the arena: a programming error (a mismatched cell count or a
// corrupted cell index), never a condition caused by input data, so
// callers are expected to let it propagate as a panic rather than
// recover from it.
var ErrMisaligned = errors.New("arena: misaligned cell index")

// Arena is a flat array of ncells fixed-width rows, zeroed on allocation.
type Arena struct {
	vals  []float64
	width int
}

// New allocates an Arena of ncells rows, each of length width, zeroed.
func New(ncells, width int) Arena {
	if width < 0 {
		panic("arena: width must be non-negative")
	}
	if ncells < 0 {
		panic("arena: ncells must be non-negative")
	}
	return Arena{vals: make([]float64, ncells*width), width: width}
}

// Width returns the per-cell coefficient count.
func (a Arena) Width() int { return a.width }

// Slice returns the coefficient vector owned by cell k. The returned slice
// aliases the arena's backing array; writes through it are visible to
// later reads of the same cell's slice.
func (a Arena) Slice(k int) []float64 {
	lo := k * a.width
	if k < 0 || lo+a.width > len(a.vals) {
		panic(fmt.Errorf("arena: cell %d out of range for %d rows of width %d: %w", k, len(a.vals)/a.width, a.width, ErrMisaligned))
	}
	return a.vals[lo : lo+a.width]
}

// Zero clears every cell's coefficients back to zero, for reuse across a
// second field computation without reallocating.
func (a Arena) Zero() {
	for i := range a.vals {
		a.vals[i] = 0
	}
}
