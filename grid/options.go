package grid

import "math"

// DefaultMaxCells caps the total number of sub-cells. Very small cutoffs or
// sparse aperiodic clouds would otherwise allocate huge, mostly empty grids;
// merging sub-cells keeps every width above the cutoff, so the cap never
// affects correctness.
const DefaultMaxCells = 1 << 20

// MaxCellsLimit is the largest value accepted by WithMaxCells.
const MaxCellsLimit = 1 << 30

// DefaultWidthTolerance is the relative margin by which a sub-cell width must
// exceed the cutoff. It absorbs rounding in the bucket assignment of points
// lying exactly on a sub-cell face.
const DefaultWidthTolerance = 1e-9

const (
	panicMaxCellsInvalid  = "grid: WithMaxCells: m must be in [1, MaxCellsLimit]"
	panicToleranceInvalid = "grid: WithWidthTolerance: tol must be finite, in [0, 1)"
)

// Option mutates internal options.
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	maxCells int
	tol      float64
}

// WithMaxCells caps the total sub-cell count. Panics when m is outside
// [1, MaxCellsLimit].
func WithMaxCells(m int) Option {
	if m < 1 || m > MaxCellsLimit {
		panic(panicMaxCellsInvalid)
	}
	return func(o *Options) { o.maxCells = m }
}

// WithWidthTolerance sets the relative width margin. Panics on a negative,
// non-finite or ≥ 1 value.
func WithWidthTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 || tol >= 1 {
		panic(panicToleranceInvalid)
	}
	return func(o *Options) { o.tol = tol }
}

// gatherOptions applies opts over the defaults.
func gatherOptions(opts ...Option) Options {
	o := Options{maxCells: DefaultMaxCells, tol: DefaultWidthTolerance}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
