package celllist

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/golang/geo/r3"

	"github.com/katalvlaran/celllists/grid"
	"github.com/katalvlaran/celllists/lattice"
)

// CellList is the bucket layout of one point set on one grid.
//
// Bucket c (linear encoding) is order[start[c]:start[c+1]]; indices inside a
// bucket are ascending.
type CellList struct {
	grid     *grid.Grid
	start    []int           // len = grid.Len()+1
	order    []int           // point indices grouped by cell
	cells    []int           // linear cell of each point
	folds    []lattice.Shift // periodic fold applied to each point
	occupied []int           // non-empty linear cells, ascending
}

// Build assigns every point to its sub-cell of g.
//
// Implementation:
//   - Stage 1 (Locate): linear cell and fold of each point; fails fast on the
//     first point outside the non-periodic extent.
//   - Stage 2 (Count): bucket sizes, then exclusive prefix sums into start.
//   - Stage 3 (Scatter): points in index order, so each bucket is ascending.
//   - Stage 4 (Occupied): collect non-empty cells in linear order.
//
// Complexity: O(N + C) time and memory.
func Build(points []r3.Vector, g *grid.Grid) (*CellList, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	n := len(points)
	cl := &CellList{
		grid:  g,
		start: make([]int, g.Len()+1),
		order: make([]int, n),
		cells: make([]int, n),
		folds: make([]lattice.Shift, n),
	}

	// Stage 1: locate.
	for i, p := range points {
		idx, fold, err := g.Locate(p)
		if err != nil {
			return nil, fmt.Errorf("Build: point %d: %w", i, err)
		}
		c := g.Linear(idx)
		cl.cells[i], cl.folds[i] = c, fold
		cl.start[c+1]++
	}

	// Stage 2: prefix sums.
	for c := 1; c < len(cl.start); c++ {
		cl.start[c] += cl.start[c-1]
	}

	// Stage 3: scatter.
	next := make([]int, g.Len())
	copy(next, cl.start[:g.Len()])
	for i, c := range cl.cells {
		cl.order[next[c]] = i
		next[c]++
	}

	// Stage 4: occupied cells.
	for c := 0; c < g.Len(); c++ {
		if cl.start[c+1] > cl.start[c] {
			cl.occupied = append(cl.occupied, c)
		}
	}

	return cl, nil
}

// Len returns the number of points in the list.
func (cl *CellList) Len() int { return len(cl.cells) }

// Grid returns the grid the list was built on.
func (cl *CellList) Grid() *grid.Grid { return cl.grid }

// Lattice returns the lattice of the grid.
func (cl *CellList) Lattice() *lattice.Lattice { return cl.grid.Lattice() }

// Bucket returns the ascending point indices of sub-cell idx, or nil when idx
// is outside the grid. The slice aliases internal storage and must not be modified.
func (cl *CellList) Bucket(idx grid.Index) []int {
	if !cl.grid.InBounds(idx) {
		return nil
	}
	return cl.BucketLinear(cl.grid.Linear(idx))
}

// BucketLinear is Bucket addressed by the linear cell encoding.
func (cl *CellList) BucketLinear(c int) []int {
	if c < 0 || c >= cl.grid.Len() {
		return nil
	}
	lo, hi := cl.start[c], cl.start[c+1]
	return cl.order[lo:hi:hi]
}

// Occupied returns the linear encodings of all non-empty sub-cells, ascending.
// The slice aliases internal storage and must not be modified.
func (cl *CellList) Occupied() []int { return cl.occupied }

// CellOf returns the sub-cell of point i. Panics when i is out of range.
func (cl *CellList) CellOf(i int) grid.Index { return cl.grid.Unlinear(cl.cells[i]) }

// Fold returns the lattice translation removed from point i to place it in the
// home cell: the point lies at home + Σ Fold[k]·aₖ. Panics when i is out of range.
func (cl *CellList) Fold(i int) lattice.Shift { return cl.folds[i] }

// Validate checks that every point index appears in exactly one bucket, and that
// it is the bucket recorded for that point.
// Complexity: O(N + C).
func (cl *CellList) Validate() error {
	n := cl.Len()
	if cl.start[len(cl.start)-1] != n || len(cl.order) != n {
		return fmt.Errorf("Validate: %d bucketed entries for %d points: %w",
			cl.start[len(cl.start)-1], n, ErrBrokenPartition)
	}
	seen := bitset.New(uint(n))
	for c := 0; c < cl.grid.Len(); c++ {
		if cl.start[c+1] < cl.start[c] {
			return fmt.Errorf("Validate: cell %d has negative size: %w", c, ErrBrokenPartition)
		}
		prev := -1
		for _, i := range cl.BucketLinear(c) {
			switch {
			case i < 0 || i >= n:
				return fmt.Errorf("Validate: cell %d holds unknown point %d: %w", c, i, ErrBrokenPartition)
			case seen.Test(uint(i)):
				return fmt.Errorf("Validate: point %d appears twice: %w", i, ErrBrokenPartition)
			case cl.cells[i] != c:
				return fmt.Errorf("Validate: point %d in cell %d, recorded %d: %w", i, c, cl.cells[i], ErrBrokenPartition)
			case i <= prev:
				return fmt.Errorf("Validate: cell %d not ascending at point %d: %w", c, i, ErrBrokenPartition)
			}
			seen.Set(uint(i))
			prev = i
		}
	}
	if missing := n - int(seen.Count()); missing != 0 {
		return fmt.Errorf("Validate: %d points in no cell: %w", missing, ErrBrokenPartition)
	}

	return nil
}

// Stale reports whether points differ from the snapshot the list was built
// from, as far as the bucket layout is concerned: a different count, or a point
// that now falls in another sub-cell or another periodic image. Moves inside a
// sub-cell are not stale.
// Complexity: O(N).
func (cl *CellList) Stale(points []r3.Vector) error {
	if len(points) != cl.Len() {
		return fmt.Errorf("Stale: %d points, built with %d: %w", len(points), cl.Len(), ErrStale)
	}
	for i, p := range points {
		idx, fold, err := cl.grid.Locate(p)
		if err != nil {
			return fmt.Errorf("Stale: point %d: %v: %w", i, err, ErrStale)
		}
		if cl.grid.Linear(idx) != cl.cells[i] || fold != cl.folds[i] {
			return fmt.Errorf("Stale: point %d moved to cell %v: %w", i, idx, ErrStale)
		}
	}

	return nil
}

// String implements fmt.Stringer.
func (cl *CellList) String() string {
	return fmt.Sprintf("CellList{points=%d occupied=%d/%d}", cl.Len(), len(cl.occupied), cl.grid.Len())
}
