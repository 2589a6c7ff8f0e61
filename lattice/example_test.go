package lattice_test

import (
	"fmt"

	"github.com/golang/geo/r3"

	"github.com/katalvlaran/celllists/lattice"
)

// ExampleNew builds a slab (2D periodic) cell and inspects its geometry.
func ExampleNew() {
	l, err := lattice.New([3]r3.Vector{{X: 4}, {X: 2, Y: 4}, {}}, [3]bool{true, true, false})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	s := l.Spacings()
	fmt.Printf("periodic axes: %v\n", l.Directions())
	fmt.Printf("area: %.1f\n", l.Volume())
	fmt.Printf("spacings: %.3f %.3f\n", s[0], s[1])
	// Output:
	// periodic axes: [0 1]
	// area: 16.0
	// spacings: 3.578 4.000
}

// ExampleLattice_WrapMIC wraps a relative vector to its minimum image.
func ExampleLattice_WrapMIC() {
	l, _ := lattice.NewCubic(10)
	d, s := l.WrapMIC(r3.Vector{X: 9, Y: -6, Z: 1})
	fmt.Printf("d=(%.0f, %.0f, %.0f) shift=%v\n", d.X, d.Y, d.Z, s)
	// Output:
	// d=(-1, 4, 1) shift=[-1 1 0]
}
