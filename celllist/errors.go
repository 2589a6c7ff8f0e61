package celllist

import "errors"

var (
	// ErrNilGrid indicates a nil *grid.Grid.
	ErrNilGrid = errors.New("celllist: grid is nil")
	// ErrBrokenPartition indicates buckets that do not hold every point exactly once.
	ErrBrokenPartition = errors.New("celllist: buckets are not a partition of the points")
	// ErrStale indicates that the points no longer match the snapshot the list was built from.
	ErrStale = errors.New("celllist: point set changed since build")
)
