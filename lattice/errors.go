package lattice

import "errors"

var (
	// ErrSingularLattice indicates the periodic vectors do not span a proper cell.
	ErrSingularLattice = errors.New("lattice: singular lattice vectors")
	// ErrNonFinite indicates a NaN or ±Inf component in a periodic vector.
	ErrNonFinite = errors.New("lattice: non-finite lattice vector")
	// ErrAxis indicates an axis index outside 0..2.
	ErrAxis = errors.New("lattice: axis index out of range")
)
