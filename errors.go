// Package dipole is the public façade over this module's octree
// builder, expansion kernels, and dual-tree traversal: BuildTree
// constructs the hierarchy over a point-dipole cloud, and a built
// Tree's ComputeField* methods evaluate the potential or force each
// particle feels from every other particle, either exactly, via FMM, or
// via Barnes-Hut.
package dipole

import (
	"github.com/pmansfield-lab/dipolefmm/arena"
	"github.com/pmansfield-lab/dipolefmm/octree"
)

// ErrInvalidParameters is returned by BuildTree when ncrit < 1, order <
// 2, theta <= 0, or the particle count is zero.
var ErrInvalidParameters = octree.ErrInvalidParameters

// ErrInvalidGeometry is returned by BuildTree when a particle position
// lies outside the automatically-computed root bounds (in practice this
// can only happen for non-finite input coordinates, since the root is
// sized to the particle set itself).
var ErrInvalidGeometry = octree.ErrInvalidGeometry

// ErrArenaMisalignment marks a coefficient-arena indexing bug. It is
// never returned from an exported function: arena.Arena.Slice panics
// with it wrapped in, since a misaligned cell index is a defect in this
// module, not a condition any caller input can trigger.
var ErrArenaMisalignment = arena.ErrMisaligned
