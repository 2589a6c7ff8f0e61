// Package celllist builds the cell-linked-list of a point set: the mapping from
// every sub-cell of a grid.Grid to the ascending sequence of point indices it
// holds.
//
// What:
//
//   - Build assigns each point to a sub-cell with grid.Locate and groups the
//     indices with a counting sort into one compressed bucket array.
//   - The fold applied to each point along periodic axes is kept, so image shifts
//     found between sub-cells can be translated back to the caller's coordinates.
//   - Validate checks that the buckets form a true partition of 0..N-1.
//   - Stale detects that the point set moved since the build.
//
// Why:
//
//   - The list is an explicit snapshot value. Nothing is cached at package level;
//     moving points or changing the cutoff means building a new list.
//
// Complexity:
//
//   - Build: O(N + C) time and memory, C = number of sub-cells.
//   - Bucket, BucketLinear, CellOf, Fold: O(1). Validate, Stale: O(N + C).
//
// Errors:
//
//   - ErrNilGrid: Build called without a grid.
//   - grid.ErrOutOfRange (wrapped with the point index): a point outside the
//     non-periodic extent of the grid, or with non-finite coordinates.
//   - ErrBrokenPartition: Validate found a point missing, duplicated or misplaced.
//   - ErrStale: Stale found a different point count or a point in another sub-cell.
//
// A CellList is immutable after Build and safe for concurrent reads.
package celllist
