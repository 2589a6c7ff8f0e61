package neighbors

import (
	"fmt"
	"math"
	"slices"

	"github.com/golang/geo/r3"

	"github.com/katalvlaran/celllists/grid"
	"github.com/katalvlaran/celllists/lattice"
)

// BruteForce returns every pair within cutoff by testing all point pairs
// against all lattice images in reach. It needs no grid, accepts any positive
// cutoff, and serves as the reference for Neighbors.
//
// Pairs are canonical (see Canonical) and sorted by (I, J, Shift).
//
// Implementation:
//   - Stage 1: fold every point into the home cell, so that one more image
//     than cutoff/spacing along each periodic axis is always enough.
//   - Stage 2: test (i, j ≥ i) at every image, skipping the non-positive
//     images of a point with itself.
//
// Complexity: O(N²·I), I = Π(2·reach_k+1) over periodic axes.
func BruteForce(points []r3.Vector, lat *lattice.Lattice, cutoff float64) ([]Pair, error) {
	if lat == nil {
		return nil, fmt.Errorf("BruteForce: %w", grid.ErrNilLattice)
	}
	if err := validateCutoff(cutoff); err != nil {
		return nil, fmt.Errorf("BruteForce: %w", err)
	}

	// Stage 1: folds.
	folds := make([]lattice.Shift, len(points))
	for i, p := range points {
		for _, f := range lat.Fractional(p) {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return nil, fmt.Errorf("BruteForce: point %d not finite: %w", i, grid.ErrOutOfRange)
			}
		}
		_, s := lat.WrapBox(p)
		folds[i] = s.Neg()
	}

	// Stage 2: all pairs, all images.
	images := imagesInReach(lat, cutoff)
	var out []Pair
	for i := range points {
		for j := i; j < len(points); j++ {
			for _, w := range images {
				if i == j && !(lattice.Shift{}).Less(w) {
					continue
				}
				shift := w.Sub(folds[j]).Add(folds[i])
				d := lat.Translate(points[j], shift).Sub(points[i])
				if r := d.Norm(); r <= cutoff {
					out = append(out, Pair{I: i, J: j, Shift: shift, Delta: d, Distance: r})
				}
			}
		}
	}
	slices.SortFunc(out, func(a, b Pair) int {
		switch {
		case less(a, b):
			return -1
		case less(b, a):
			return 1
		}
		return 0
	})

	return out, nil
}

// imagesInReach lists every shift with |w_k| ≤ ⌈cutoff/s_k⌉+1 along periodic
// axes and w_k = 0 elsewhere.
func imagesInReach(lat *lattice.Lattice, cutoff float64) []lattice.Shift {
	spacings := lat.Spacings()
	var reach [lattice.Dim]int
	for _, k := range lat.Directions() {
		reach[k] = int(math.Ceil(cutoff/spacings[k])) + 1
	}
	var out []lattice.Shift
	for a := -reach[0]; a <= reach[0]; a++ {
		for b := -reach[1]; b <= reach[1]; b++ {
			for c := -reach[2]; c <= reach[2]; c++ {
				out = append(out, lattice.Shift{a, b, c})
			}
		}
	}
	return out
}
