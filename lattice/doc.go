// Package lattice models the simulation cell of a periodic system.
//
// What:
//
//   - Lattice holds three row vectors and a periodic flag per row.
//   - Any subset of rows may be periodic: 0D (molecule), 1D (wire), 2D (slab), 3D (crystal).
//   - Non-periodic rows are replaced by an orthonormal completion of the periodic span, so
//     fractional coordinates along non-periodic axes are plain Cartesian projections.
//   - Fractional ⇄ Cartesian conversion, reciprocal vectors, plane spacings, volume.
//   - Minimum-image and in-box wrapping of relative vectors and points.
//   - Pairwise (Lagrange/Gauss) reduction to short, nearly orthogonal periodic vectors.
//
// Why:
//
//   - One data shape drives every downstream component: the grid partitioner reads the
//     plane spacings, the neighbor iterator reads the periodic flags and the vectors.
//     Orthogonal, triclinic and aperiodic cells differ only in their values.
//
// Complexity:
//
//   - New: O(1) (one 3×3 inverse). Fractional/Cartesian/Translate: O(1).
//   - Reduce: O(1) per sweep, bounded number of sweeps.
//
// Errors:
//
//   - ErrSingularLattice: periodic vectors are (nearly) linearly dependent.
//   - ErrNonFinite: a periodic vector has a NaN or ±Inf component.
//   - ErrAxis: an axis index outside 0..2 was requested.
//
// A Lattice is immutable after construction and safe for concurrent reads.
package lattice
