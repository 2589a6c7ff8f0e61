package grid

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"

	"github.com/katalvlaran/celllists/lattice"
)

// maxFold bounds the number of whole cells a point may sit away from the home
// cell; beyond it the unwrapped index would overflow.
const maxFold = 1 << 30

// Locate assigns p to a sub-cell.
//
// Along a periodic axis the fractional coordinate is folded into [0, 1) first;
// the fold (the integer part that was removed) is returned so the caller can
// translate image shifts back to the original coordinates. Along a
// non-periodic axis the coordinate must lie in the grid's extent, else
// ErrOutOfRange.
// Complexity: O(1).
func (g *Grid) Locate(p r3.Vector) (Index, lattice.Shift, error) {
	f := g.lattice.Fractional(p)
	var (
		idx  Index
		fold lattice.Shift
	)
	for k := 0; k < lattice.Dim; k++ {
		if math.IsNaN(f[k]) || math.IsInf(f[k], 0) {
			return Index{}, lattice.Shift{}, fmt.Errorf("Locate: axis %d not finite: %w", k, ErrOutOfRange)
		}
		n := g.shape[k]
		if g.lattice.IsPeriodic(k) {
			m := math.Floor(f[k])
			if math.Abs(m) > maxFold {
				return Index{}, lattice.Shift{}, fmt.Errorf("Locate: axis %d fold %g: %w", k, m, ErrOutOfRange)
			}
			idx[k], fold[k] = bucket(f[k]-m, n), int(m)
			continue
		}
		t := (f[k] - g.lower[k]) / g.extent[k]
		if !(t >= 0 && t < 1) {
			return Index{}, lattice.Shift{}, fmt.Errorf("Locate: axis %d coordinate %g outside [%g, %g): %w",
				k, f[k], g.lower[k], g.lower[k]+g.extent[k], ErrOutOfRange)
		}
		idx[k] = bucket(t, n)
	}

	return idx, fold, nil
}

// Unwrapped returns the sub-cell of an arbitrary point without folding:
// along a periodic axis the index may fall outside [0, n) and encodes the
// image, along a non-periodic axis it is clamped to [-2, n+1], which keeps
// every 3×3×3 neighborhood of a far-away point outside the grid.
// Complexity: O(1).
func (g *Grid) Unwrapped(p r3.Vector) (Index, error) {
	f := g.lattice.Fractional(p)
	var idx Index
	for k := 0; k < lattice.Dim; k++ {
		if math.IsNaN(f[k]) || math.IsInf(f[k], 0) {
			return Index{}, fmt.Errorf("Unwrapped: axis %d not finite: %w", k, ErrOutOfRange)
		}
		n := g.shape[k]
		if g.lattice.IsPeriodic(k) {
			m := math.Floor(f[k])
			if math.Abs(m) > maxFold {
				return Index{}, fmt.Errorf("Unwrapped: axis %d fold %g: %w", k, m, ErrOutOfRange)
			}
			idx[k] = bucket(f[k]-m, n) + int(m)*n
			continue
		}
		t := (f[k] - g.lower[k]) / g.extent[k]
		if t >= 0 && t < 1 {
			idx[k] = bucket(t, n)
			continue
		}
		c := math.Floor(t * float64(n))
		idx[k] = int(math.Max(-2, math.Min(float64(n+1), c)))
	}

	return idx, nil
}

// bucket maps t ∈ [0, 1) to a sub-cell in [0, n). Rounding may push t·n to n
// for t just below 1; such points belong to the last sub-cell.
func bucket(t float64, n int) int {
	c := int(t * float64(n))
	if c >= n {
		c = n - 1
	}
	if c < 0 {
		c = 0
	}
	return c
}

// Reach returns the inclusive range [lo, hi] of unwrapped sub-cell indices
// whose sub-cells can hold a point within radius of p, for any radius.
//
// Along axis k the sphere spans radius·|gₖ| in fractional coordinates, gₖ the
// reciprocal row. Along a periodic axis the range may leave [0, n): every
// index in it names a distinct sub-cell and image through Wrap. Along a
// non-periodic axis the range is clipped to the grid, and ok is false when
// the sphere misses the grid. One sub-cell of margin on each side absorbs
// rounding in the fractional coordinates.
// Complexity: O(1).
func (g *Grid) Reach(p r3.Vector, radius float64) (lo, hi Index, ok bool, err error) {
	if math.IsNaN(radius) || math.IsInf(radius, 0) || radius < 0 {
		return Index{}, Index{}, false, fmt.Errorf("Reach: radius %g: %w", radius, ErrDegenerateCutoff)
	}
	f := g.lattice.Fractional(p)
	recip := g.lattice.Reciprocal()
	for k := 0; k < lattice.Dim; k++ {
		if math.IsNaN(f[k]) || math.IsInf(f[k], 0) {
			return Index{}, Index{}, false, fmt.Errorf("Reach: axis %d not finite: %w", k, ErrOutOfRange)
		}
		h := radius * recip[k].Norm()
		n := float64(g.shape[k])
		if g.lattice.IsPeriodic(k) {
			if math.Abs(f[k])+h > maxFold {
				return Index{}, Index{}, false, fmt.Errorf("Reach: axis %d spans %g cells: %w", k, math.Abs(f[k])+h, ErrOutOfRange)
			}
			lo[k] = int(math.Floor((f[k]-h)*n)) - 1
			hi[k] = int(math.Floor((f[k]+h)*n)) + 1
			continue
		}
		a := math.Floor((f[k]-h-g.lower[k])/g.extent[k]*n) - 1
		b := math.Floor((f[k]+h-g.lower[k])/g.extent[k]*n) + 1
		a, b = math.Max(a, 0), math.Min(b, n-1)
		if a > b {
			return Index{}, Index{}, false, nil
		}
		lo[k], hi[k] = int(a), int(b)
	}

	return lo, hi, true, nil
}
