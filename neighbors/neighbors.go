package neighbors

import (
	"fmt"
	"iter"
	"math"

	"github.com/golang/geo/r3"

	"github.com/katalvlaran/celllists/celllist"
	"github.com/katalvlaran/celllists/grid"
	"github.com/katalvlaran/celllists/lattice"
)

// selfBucket marks the cursor stage that scans the home bucket against itself,
// before the forward offsets 0..12.
const selfBucket = -1

// Iterator yields the neighbor pairs of one cell-linked-list in a fixed order:
// occupied sub-cells ascending, for each the home bucket first, then the
// forward neighbors in grid.ForwardOffsets order, each bucket pair by ascending
// index.
//
// The zero value is not usable; obtain one from Neighbors.
type Iterator struct {
	cl     *celllist.CellList
	points []r3.Vector
	lat    *lattice.Lattice
	cutoff float64

	// cursor
	cell  int           // position in cl.Occupied()
	stage int           // selfBucket, or index into grid.ForwardOffsets
	home  []int         // bucket of the current cell, nil before it is loaded
	other []int         // bucket paired with home at this stage
	wrap  lattice.Shift // image of the other bucket
	a, b  int           // next positions in home and other
	done  bool
}

// Neighbors validates its inputs against the cell-linked-list and returns an
// iterator positioned before the first pair.
//
// Validation:
//   - cl non-nil, lat equal to the lattice cl was built on.
//   - cutoff finite and > 0 (grid.ErrDegenerateCutoff), not above the cutoff
//     the grid was sized for.
//   - points of the same length, each still in its recorded sub-cell and image.
//
// Every failure except the degenerate cutoff wraps ErrInconsistentState.
// Complexity: O(N).
func Neighbors(cl *celllist.CellList, points []r3.Vector, lat *lattice.Lattice, cutoff float64) (*Iterator, error) {
	if err := validate(cl, points, lat, cutoff); err != nil {
		return nil, fmt.Errorf("Neighbors: %w", err)
	}

	return &Iterator{cl: cl, points: points, lat: lat, cutoff: cutoff}, nil
}

// validate performs the checks of Neighbors.
func validate(cl *celllist.CellList, points []r3.Vector, lat *lattice.Lattice, cutoff float64) error {
	if err := validateList(cl, lat, cutoff); err != nil {
		return err
	}
	if cutoff > cl.Grid().Cutoff() {
		return fmt.Errorf("cutoff %g above partition cutoff %g: %w", cutoff, cl.Grid().Cutoff(), ErrInconsistentState)
	}
	return validatePoints(cl, points)
}

// validateList checks the list, its lattice and the cutoff value.
func validateList(cl *celllist.CellList, lat *lattice.Lattice, cutoff float64) error {
	if cl == nil {
		return fmt.Errorf("nil cell list: %w", ErrInconsistentState)
	}
	if lat == nil || !lat.Equal(cl.Lattice()) {
		return fmt.Errorf("lattice %v, built with %v: %w", lat, cl.Lattice(), ErrInconsistentState)
	}
	return validateCutoff(cutoff)
}

func validatePoints(cl *celllist.CellList, points []r3.Vector) error {
	if err := cl.Stale(points); err != nil {
		return fmt.Errorf("%w: %w", ErrInconsistentState, err)
	}
	return nil
}

func validateCutoff(cutoff float64) error {
	if math.IsNaN(cutoff) || math.IsInf(cutoff, 0) || cutoff <= 0 {
		return fmt.Errorf("cutoff %g: %w", cutoff, grid.ErrDegenerateCutoff)
	}
	return nil
}

// Cutoff returns the query cutoff.
func (it *Iterator) Cutoff() float64 { return it.cutoff }

// Reset rewinds the cursor to the first pair.
func (it *Iterator) Reset() {
	*it = Iterator{cl: it.cl, points: it.points, lat: it.lat, cutoff: it.cutoff}
}

// Next returns the next pair, or false once the sequence is exhausted. Stopping
// early is always safe.
func (it *Iterator) Next() (Pair, bool) {
	for !it.done {
		if it.home == nil && !it.loadCell() {
			it.done = true
			break
		}
		if p, ok := it.scan(); ok {
			return p, true
		}
		it.advance()
	}

	return Pair{}, false
}

// loadCell points the cursor at the self stage of the current occupied cell.
func (it *Iterator) loadCell() bool {
	occupied := it.cl.Occupied()
	if it.cell >= len(occupied) {
		return false
	}
	it.home = it.cl.BucketLinear(occupied[it.cell])
	it.stage, it.other, it.wrap = selfBucket, it.home, lattice.Shift{}
	it.a, it.b = 0, 1
	return true
}

// scan resumes the current bucket pair and returns its next pair within the cutoff.
func (it *Iterator) scan() (Pair, bool) {
	for it.a < len(it.home) {
		i := it.home[it.a]
		for it.b < len(it.other) {
			j := it.other[it.b]
			it.b++
			shift := it.wrap.Sub(it.cl.Fold(j)).Add(it.cl.Fold(i))
			if i == j && shift.IsZero() {
				continue
			}
			d := it.lat.Translate(it.points[j], shift).Sub(it.points[i])
			if r := d.Norm(); r <= it.cutoff {
				return Pair{I: i, J: j, Shift: shift, Delta: d, Distance: r}, true
			}
		}
		it.a++
		it.b = 0
		if it.stage == selfBucket {
			it.b = it.a + 1
		}
	}

	return Pair{}, false
}

// advance moves to the next non-empty forward neighbor of the current cell, or
// to the next occupied cell.
//
// Along a periodic axis the neighbor wraps and its image is recorded; along a
// non-periodic axis an out-of-range neighbor is skipped.
func (it *Iterator) advance() {
	g := it.cl.Grid()
	center := g.Unlinear(it.cl.Occupied()[it.cell])
	forward := grid.ForwardOffsets()
	for it.stage++; it.stage < len(forward); it.stage++ {
		nb, wrap, ok := g.Wrap(center.Add(forward[it.stage]))
		if !ok {
			continue
		}
		if bucket := it.cl.Bucket(nb); len(bucket) > 0 {
			it.other, it.wrap = bucket, wrap
			it.a, it.b = 0, 0
			return
		}
	}
	it.cell++
	it.home = nil
}

// All returns the pairs as a range-over-func sequence. Each call starts from
// the first pair on a private cursor, so the sequence can be ranged over any
// number of times and does not move the receiver's cursor.
func (it *Iterator) All() iter.Seq[Pair] {
	return func(yield func(Pair) bool) {
		c := &Iterator{cl: it.cl, points: it.points, lat: it.lat, cutoff: it.cutoff}
		for p, ok := c.Next(); ok; p, ok = c.Next() {
			if !yield(p) {
				return
			}
		}
	}
}

// Collect returns every pair from the start of the sequence.
func (it *Iterator) Collect() []Pair {
	var out []Pair
	for p := range it.All() {
		out = append(out, p)
	}
	return out
}

// Count returns the number of pairs in the sequence.
func (it *Iterator) Count() int {
	n := 0
	for range it.All() {
		n++
	}
	return n
}
