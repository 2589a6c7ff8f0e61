// Package neighbors enumerates every pair of points within a cutoff radius,
// across the periodic images of the lattice, using a cell-linked-list.
//
// What:
//
//   - Neighbors returns a lazy, restartable Iterator over Pair records
//     (i, j, image shift, displacement, distance).
//   - Query lists all points, with their image shift, within a cutoff of an
//     arbitrary center. Its cutoff may exceed the partition cutoff; the search
//     then walks every sub-cell and image in grid.Reach.
//   - BruteForce is the O(N²) reference over all images, with the same
//     orientation rules after Canonical.
//
// Why:
//
//   - Sub-cells are wider than the cutoff, so every pair within the cutoff sits
//     in the same or in adjacent sub-cells. Visiting each occupied sub-cell, its
//     own bucket and its 13 forward neighbors covers every unordered sub-cell pair
//     once, including the wrapped images of a sub-cell onto itself when an axis
//     has one or two sub-cells.
//
// Pair semantics:
//
//   - Delta = points[J] + Σ Shift[k]·aₖ - points[I], Distance = |Delta| ≤ cutoff.
//   - (i, i, 0) is never produced. (i, j, Δ) and (j, i, -Δ) describe the same
//     physical pair and only one of them is produced.
//   - The boundary is inclusive: Distance == cutoff is a neighbor.
//
// Complexity:
//
//   - Neighbors: O(N) validation. A full pass over the iterator: O(N + C + P·ρ),
//     P pairs visited, ρ the mean bucket occupancy.
//   - Query: O(27·ρ), or O(K·ρ) for K sub-cells in reach above the partition
//     cutoff. BruteForce: O(N²·I), I the number of images within reach.
//
// Errors:
//
//   - ErrInconsistentState: the cell-linked-list does not match the lattice, the
//     points or the cutoff it is queried with.
//   - grid.ErrDegenerateCutoff: the query cutoff is not positive and finite.
//
// Errors are reported by the constructors only; iteration never fails. An
// Iterator holds a cursor and must not be shared between goroutines.
package neighbors
