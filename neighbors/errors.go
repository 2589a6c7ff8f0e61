package neighbors

import "errors"

// ErrInconsistentState indicates that a cell-linked-list is queried with inputs
// it was not built from: another lattice, another point count, moved points,
// or a cutoff larger than the one its grid was sized for.
var ErrInconsistentState = errors.New("neighbors: inconsistent state")
