package grid

import "github.com/katalvlaran/celllists/lattice"

// Index identifies one sub-cell by its integer coordinate along each lattice
// axis. Values produced by Locate and Wrap lie in [0, Shape[k]).
type Index [lattice.Dim]int

// Add returns the index displaced by o, without wrapping.
func (i Index) Add(o Index) Index {
	return Index{i[0] + o[0], i[1] + o[1], i[2] + o[2]}
}

// Grid is an immutable partition of a lattice into Shape[0]×Shape[1]×Shape[2]
// sub-cells. Along a periodic axis the grid covers the fractional range [0, 1);
// along a non-periodic axis it covers [lower, lower+extent) of the projection
// on the completion vector.
type Grid struct {
	shape   [lattice.Dim]int
	cutoff  float64
	lower   [lattice.Dim]float64
	extent  [lattice.Dim]float64
	span    [lattice.Dim]float64 // physical width of the whole grid along each axis
	lattice *lattice.Lattice
}
