package neighbors

import (
	"fmt"

	"github.com/golang/geo/r3"

	"github.com/katalvlaran/celllists/lattice"
)

// Pair is one neighbor pair: point J, translated by Shift lattice vectors, lies
// within the cutoff of point I.
type Pair struct {
	I, J     int
	Shift    lattice.Shift
	Delta    r3.Vector // points[J] + Shift·A - points[I]
	Distance float64   // |Delta|
}

// String implements fmt.Stringer.
func (p Pair) String() string {
	return fmt.Sprintf("(%d, %d, %v) r=%.6g", p.I, p.J, p.Shift, p.Distance)
}

// Hit is one point within the cutoff of a query center.
type Hit struct {
	Index    int
	Shift    lattice.Shift
	Delta    r3.Vector // points[Index] + Shift·A - center
	Distance float64
}

// Canonical returns the orientation of p used by BruteForce: I < J, or I == J
// with a lexicographically positive shift. The reversed pair (J, I, -Shift) has
// the opposite displacement and the same distance.
func Canonical(p Pair) Pair {
	if p.I < p.J || (p.I == p.J && !p.Shift.Less(lattice.Shift{})) {
		return p
	}
	return Pair{I: p.J, J: p.I, Shift: p.Shift.Neg(), Delta: p.Delta.Mul(-1), Distance: p.Distance}
}

// less orders canonical pairs by (I, J, Shift).
func less(a, b Pair) bool {
	if a.I != b.I {
		return a.I < b.I
	}
	if a.J != b.J {
		return a.J < b.J
	}
	return a.Shift.Less(b.Shift)
}
