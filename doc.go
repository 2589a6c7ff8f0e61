// Package celllists finds every pair of points within a cutoff radius in a
// simulation cell that is periodic along zero, one, two or three lattice
// vectors, in time linear in the number of points.
//
// The work is split into four packages, used in this order:
//
//	lattice/    the cell: periodic flags, fractional ⇄ Cartesian, wrapping, reduction
//	grid/       sub-cell grid sized for the cutoff, point location, offset tables
//	celllist/   cell-linked-list: point indices bucketed per sub-cell
//	neighbors/  lazy pair iterator over periodic images, single-center query,
//	            brute-force reference
//
// Typical use:
//
//	lat, _ := lattice.NewCubic(10)
//	g, _ := grid.Partition(lat, cutoff, points)
//	cl, _ := celllist.Build(points, g)
//	it, _ := neighbors.Neighbors(cl, points, lat, cutoff)
//	for p := range it.All() {
//		// p.I, p.J, p.Shift, p.Delta, p.Distance
//	}
//
// Every value is immutable after construction except the iterator cursor. A
// moved point set or a larger cutoff needs a new grid and cell-linked-list.
//
// The celllists command (cmd/celllists) reads a system from a TOML file and
// prints its pairs.
package celllists
