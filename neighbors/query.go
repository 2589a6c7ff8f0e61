package neighbors

import (
	"fmt"

	"github.com/golang/geo/r3"

	"github.com/katalvlaran/celllists/celllist"
	"github.com/katalvlaran/celllists/grid"
	"github.com/katalvlaran/celllists/lattice"
)

// Query returns every point image within cutoff of center, which may lie
// anywhere in space. A point at the center itself is a hit at distance 0.
//
// The cutoff may exceed the one the grid was sized for. Up to the partition
// cutoff, hits follow the order of grid.Offsets; above it, the ascending
// unwrapped sub-cell order of grid.Reach. Within a bucket indices ascend.
//
// Implementation:
//   - Stage 1: the same validation as Neighbors, without the partition bound.
//   - Stage 2: the unwrapped sub-cells of the center's sphere: the 27
//     surrounding the center, or the whole grid.Reach range for a larger cutoff.
//     Along a periodic axis an unwrapped index encodes the image it sits in.
//   - Stage 3: fold each index into the grid and test the points of that
//     bucket at the recorded image.
//
// Complexity: O(N) validation, then O(27·ρ), or O(K·ρ) for K sub-cells in reach.
func Query(cl *celllist.CellList, points []r3.Vector, lat *lattice.Lattice, center r3.Vector, cutoff float64) ([]Hit, error) {
	if err := validateList(cl, lat, cutoff); err != nil {
		return nil, fmt.Errorf("Query: %w", err)
	}
	if err := validatePoints(cl, points); err != nil {
		return nil, fmt.Errorf("Query: %w", err)
	}

	q := &query{cl: cl, points: points, lat: lat, center: center, cutoff: cutoff}
	g := cl.Grid()
	if cutoff <= g.Cutoff() {
		u, err := g.Unwrapped(center)
		if err != nil {
			return nil, fmt.Errorf("Query: center %v: %w", center, err)
		}
		for _, o := range grid.Offsets() {
			q.visit(u.Add(o))
		}
		return q.hits, nil
	}

	lo, hi, ok, err := g.Reach(center, cutoff)
	if err != nil {
		return nil, fmt.Errorf("Query: center %v: %w", center, err)
	}
	if !ok {
		return nil, nil
	}
	for a := lo[0]; a <= hi[0]; a++ {
		for b := lo[1]; b <= hi[1]; b++ {
			for c := lo[2]; c <= hi[2]; c++ {
				q.visit(grid.Index{a, b, c})
			}
		}
	}

	return q.hits, nil
}

// query accumulates the hits of one Query call.
type query struct {
	cl     *celllist.CellList
	points []r3.Vector
	lat    *lattice.Lattice
	center r3.Vector
	cutoff float64
	hits   []Hit
}

// visit tests the bucket of the unwrapped index u at the image it encodes.
func (q *query) visit(u grid.Index) {
	nb, wrap, ok := q.cl.Grid().Wrap(u)
	if !ok {
		return
	}
	for _, j := range q.cl.Bucket(nb) {
		shift := wrap.Sub(q.cl.Fold(j))
		d := q.lat.Translate(q.points[j], shift).Sub(q.center)
		if r := d.Norm(); r <= q.cutoff {
			q.hits = append(q.hits, Hit{Index: j, Shift: shift, Delta: d, Distance: r})
		}
	}
}
