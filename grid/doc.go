// Package grid partitions a lattice into a regular grid of sub-cells sized for
// a cutoff radius, and assigns points to sub-cells.
//
// What:
//
//   - Partition chooses the sub-cell counts (nx, ny, nz) so that the width of a
//     sub-cell, measured perpendicular to its faces, exceeds the cutoff along every axis.
//   - Periodic axes subdivide the plane spacing of the lattice.
//   - Non-periodic axes subdivide the extent of the point set plus one cutoff of margin.
//   - Locate maps a Cartesian point to its sub-cell and the lattice fold applied to it.
//   - Wrap folds an unwrapped sub-cell index into range, reporting the image shift.
//   - Reach lists the unwrapped sub-cells a sphere of any radius can touch.
//
// Why:
//
//   - With sub-cells wider than the cutoff, every pair within the cutoff sits in the same
//     or in adjacent sub-cells, so the 26 neighbors plus self are enough and neighbor
//     search is linear in the number of points.
//
// Complexity:
//
//   - Partition: O(N) for the non-periodic extent, O(1) otherwise.
//   - Locate, Wrap, Reach, Linear, Unlinear: O(1).
//
// Options:
//
//   - WithMaxCells: cap on the total number of sub-cells (default DefaultMaxCells).
//   - WithWidthTolerance: relative margin by which a sub-cell must exceed the cutoff.
//
// There is no minimum of three sub-cells along a periodic axis. A cutoff just
// below half the plane spacing yields two sub-cells, and WithMaxCells may go
// down to one. Wrap maps each unwrapped index to exactly one sub-cell and
// image for any count, so neighbor search stays exact on such coarse grids.
//
// Errors:
//
//   - ErrDegenerateCutoff: cutoff ≤ 0, non-finite, or ≥ half a periodic plane spacing.
//   - ErrOutOfRange: a point is non-finite or outside the non-periodic extent.
//   - ErrNilLattice: Partition called without a lattice.
package grid
