package grid

import "errors"

var (
	// ErrDegenerateCutoff indicates a cutoff that is not positive and finite, or
	// that reaches half of a periodic plane spacing, where one image shift per
	// axis no longer bounds the search.
	ErrDegenerateCutoff = errors.New("grid: degenerate cutoff")
	// ErrOutOfRange indicates a point outside the precomputed non-periodic extent,
	// or a point with non-finite coordinates.
	ErrOutOfRange = errors.New("grid: point out of range")
	// ErrNilLattice indicates a nil *lattice.Lattice.
	ErrNilLattice = errors.New("grid: lattice is nil")
)
