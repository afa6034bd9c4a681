package octree

import "github.com/pmansfield-lab/dipolefmm/particle"

// ComputeRmax fills in Rmax for every cell, bottom-up: for a leaf, the
// farthest owned particle from the cell's centre; for an internal cell,
// the farthest reach of any child's bounding sphere from the cell's own
// centre. Every cell is appended to Cells strictly after its parent, so
// walking the slice in reverse visits every cell's children before the
// cell itself, with no separate per-level pass needed.
func ComputeRmax(t *Tree, ps []particle.Particle) {
	for i := len(t.Cells) - 1; i >= 0; i-- {
		cell := &t.Cells[i]
		var max float64
		if cell.IsLeaf() {
			for _, pi := range cell.Leaf {
				if d := cell.Bounds.Centre.Dist(ps[pi].R); d > max {
					max = d
				}
			}
		} else {
			for _, ch := range cell.Child {
				if ch < 0 {
					continue
				}
				child := &t.Cells[ch]
				if d := cell.Bounds.Centre.Dist(child.Bounds.Centre) + child.Rmax; d > max {
					max = d
				}
			}
		}
		cell.Rmax = max
	}
}
