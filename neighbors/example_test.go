package neighbors_test

import (
	"fmt"

	"github.com/golang/geo/r3"

	"github.com/katalvlaran/celllists/celllist"
	"github.com/katalvlaran/celllists/grid"
	"github.com/katalvlaran/celllists/lattice"
	"github.com/katalvlaran/celllists/neighbors"
)

// ExampleNeighbors finds the one pair of a unit cube that only exists across
// the periodic boundary.
func ExampleNeighbors() {
	cube, _ := lattice.NewCubic(1)
	points := []r3.Vector{{X: 0.05, Y: 0.05, Z: 0.05}, {X: 0.95, Y: 0.05, Z: 0.05}}

	g, err := grid.Partition(cube, 0.2, points)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	cl, err := celllist.Build(points, g)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	it, err := neighbors.Neighbors(cl, points, cube, 0.2)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for p := range it.All() {
		fmt.Printf("i=%d j=%d shift=%v r=%.3f\n", p.I, p.J, p.Shift, p.Distance)
	}
	// Output:
	// i=1 j=0 shift=[1 0 0] r=0.100
}

// ExampleQuery lists the images near a center on the corner of the cell.
func ExampleQuery() {
	cube, _ := lattice.NewCubic(1)
	points := []r3.Vector{{X: 0.1, Y: 0.1, Z: 0.1}, {X: 0.9, Y: 0.9, Z: 0.9}, {X: 0.5, Y: 0.5, Z: 0.5}}
	g, _ := grid.Partition(cube, 0.3, points)
	cl, _ := celllist.Build(points, g)

	hits, err := neighbors.Query(cl, points, cube, r3.Vector{}, 0.3)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, h := range hits {
		fmt.Printf("point %d shift=%v r=%.3f\n", h.Index, h.Shift, h.Distance)
	}
	// Output:
	// point 1 shift=[-1 -1 -1] r=0.173
	// point 0 shift=[0 0 0] r=0.173
}
