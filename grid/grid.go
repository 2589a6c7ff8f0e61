package grid

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/celllists/lattice"
)

// Partition chooses the sub-cell grid for lat and cutoff.
//
// Implementation:
//   - Stage 1 (Validate): lat non-nil, cutoff finite and > 0.
//   - Stage 2 (Periodic axes): reject 2·cutoff ≥ plane spacing (strict at
//     equality); subdivide the spacing.
//   - Stage 3 (Non-periodic axes): subdivide the projected extent of points,
//     widened by one cutoff on each side.
//   - Stage 4 (Cap): halve the largest axis until the total fits MaxCells.
//
// Every axis gets the largest count whose sub-cell width exceeds
// cutoff·(1+tol), and at least one sub-cell.
// Complexity: O(N) time when an axis is non-periodic, O(1) otherwise.
func Partition(lat *lattice.Lattice, cutoff float64, points []r3.Vector, opts ...Option) (*Grid, error) {
	o := gatherOptions(opts...)
	if lat == nil {
		return nil, ErrNilLattice
	}
	if math.IsNaN(cutoff) || math.IsInf(cutoff, 0) || cutoff <= 0 {
		return nil, fmt.Errorf("Partition: cutoff %g: %w", cutoff, ErrDegenerateCutoff)
	}

	g := &Grid{cutoff: cutoff, lattice: lat}
	periodic := lat.Periodic()
	spacings := lat.Spacings()
	proj, err := projections(lat, points)
	if err != nil {
		return nil, fmt.Errorf("Partition: %w", err)
	}

	for k := 0; k < lattice.Dim; k++ {
		if periodic[k] {
			if 2*cutoff >= spacings[k] {
				return nil, fmt.Errorf("Partition: axis %d plane spacing %g, cutoff %g: %w",
					k, spacings[k], cutoff, ErrDegenerateCutoff)
			}
			g.lower[k], g.extent[k], g.span[k] = 0, 1, spacings[k]
			g.shape[k] = subdivide(spacings[k], cutoff, o)
			continue
		}
		lo, hi := 0.0, 0.0
		if len(proj[k]) > 0 {
			lo, hi = floats.Min(proj[k]), floats.Max(proj[k])
		}
		lo, hi = lo-cutoff, hi+cutoff
		g.lower[k], g.extent[k], g.span[k] = lo, hi-lo, hi-lo
		g.shape[k] = subdivide(hi-lo, cutoff, o)
	}
	capCells(&g.shape, o.maxCells)

	return g, nil
}

// projections returns, per non-periodic axis, the fractional coordinate of
// every point. Periodic axes are left nil.
func projections(lat *lattice.Lattice, points []r3.Vector) ([lattice.Dim][]float64, error) {
	var proj [lattice.Dim][]float64
	if lat.NumPeriodic() == lattice.Dim || len(points) == 0 {
		return proj, nil
	}
	for k := 0; k < lattice.Dim; k++ {
		if !lat.IsPeriodic(k) {
			proj[k] = make([]float64, len(points))
		}
	}
	for i, p := range points {
		f := lat.Fractional(p)
		for k := 0; k < lattice.Dim; k++ {
			if proj[k] == nil {
				continue
			}
			if math.IsNaN(f[k]) || math.IsInf(f[k], 0) {
				return proj, fmt.Errorf("point %d is not finite: %w", i, ErrOutOfRange)
			}
			proj[k][i] = f[k]
		}
	}
	return proj, nil
}

// subdivide returns the largest n ≥ 1 with span/n > cutoff·(1+tol), bounded by maxCells.
func subdivide(span, cutoff float64, o Options) int {
	q := math.Floor(span / cutoff)
	if q > float64(o.maxCells) {
		q = float64(o.maxCells)
	}
	n := int(q)
	if n < 1 {
		n = 1
	}
	limit := cutoff * (1 + o.tol)
	for n > 1 && span/float64(n) <= limit {
		n--
	}
	return n
}

// capCells halves the largest axis until the product fits maxCells. Merging
// sub-cells only widens them.
func capCells(shape *[lattice.Dim]int, maxCells int) {
	for float64(shape[0])*float64(shape[1])*float64(shape[2]) > float64(maxCells) {
		k := 0
		for j := 1; j < lattice.Dim; j++ {
			if shape[j] > shape[k] {
				k = j
			}
		}
		shape[k] = (shape[k] + 1) / 2
	}
}

// Shape returns the number of sub-cells along each axis.
func (g *Grid) Shape() [lattice.Dim]int { return g.shape }

// Len returns the total number of sub-cells.
func (g *Grid) Len() int { return g.shape[0] * g.shape[1] * g.shape[2] }

// Cutoff returns the cutoff the grid was sized for. Any query cutoff up to this
// value is served correctly.
func (g *Grid) Cutoff() float64 { return g.cutoff }

// Lattice returns the lattice the grid partitions.
func (g *Grid) Lattice() *lattice.Lattice { return g.lattice }

// Bounds returns the fractional lower bound and extent per axis: (0, 1) on
// periodic axes, the widened point range on non-periodic axes.
func (g *Grid) Bounds() (lower, extent [lattice.Dim]float64) { return g.lower, g.extent }

// Width returns the physical width of one sub-cell along axis k, measured
// perpendicular to its faces. Returns 0 for an invalid axis.
func (g *Grid) Width(k int) float64 {
	if k < 0 || k >= lattice.Dim {
		return 0
	}
	return g.span[k] / float64(g.shape[k])
}

// InBounds reports whether idx lies inside the grid without wrapping.
// Complexity: O(1).
func (g *Grid) InBounds(idx Index) bool {
	for k := 0; k < lattice.Dim; k++ {
		if idx[k] < 0 || idx[k] >= g.shape[k] {
			return false
		}
	}
	return true
}

// Linear maps an in-bounds index to its canonical row-major encoding
// (i0·n1 + i1)·n2 + i2, so linear order equals lexicographic order.
// Complexity: O(1).
func (g *Grid) Linear(idx Index) int {
	return (idx[0]*g.shape[1]+idx[1])*g.shape[2] + idx[2]
}

// Unlinear converts a row-major encoding back to an Index.
// Complexity: O(1).
func (g *Grid) Unlinear(lin int) Index {
	i2 := lin % g.shape[2]
	lin /= g.shape[2]
	return Index{lin / g.shape[1], lin % g.shape[1], i2}
}

// Wrap folds an unwrapped index into the grid. Along a periodic axis the index
// is taken modulo the shape and the number of whole lattice translations is
// returned in the shift. Along a non-periodic axis an out-of-range index has no
// image and ok is false.
// Complexity: O(1).
func (g *Grid) Wrap(idx Index) (wrapped Index, shift lattice.Shift, ok bool) {
	for k := 0; k < lattice.Dim; k++ {
		n, c := g.shape[k], idx[k]
		if g.lattice.IsPeriodic(k) {
			w := floorDiv(c, n)
			wrapped[k], shift[k] = c-w*n, w
			continue
		}
		if c < 0 || c >= n {
			return Index{}, lattice.Shift{}, false
		}
		wrapped[k] = c
	}
	return wrapped, shift, true
}

// String implements fmt.Stringer.
func (g *Grid) String() string {
	return fmt.Sprintf("Grid{shape=%v cutoff=%g}", g.shape, g.cutoff)
}

// floorDiv is integer division rounding toward -∞.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
