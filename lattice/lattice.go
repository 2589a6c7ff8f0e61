package lattice

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// Cartesian unit vectors, used as the completion of an aperiodic lattice.
var unitAxes = [Dim]r3.Vector{{X: 1}, {Y: 1}, {Z: 1}}

// New constructs a Lattice from three row vectors and their periodic flags.
// Rows whose flag is false are ignored; they may be zero.
//
// Implementation:
//   - Stage 1: reject non-finite periodic vectors (ErrNonFinite).
//   - Stage 2: reject (nearly) dependent periodic vectors via the normalized Gram
//     determinant (ErrSingularLattice).
//   - Stage 3: complete the periodic rows to a full basis with orthonormal vectors.
//   - Stage 4: invert the 3×3 matrix to obtain the reciprocal rows.
//
// Complexity: O(1).
func New(vecs [Dim]r3.Vector, periodic [Dim]bool) (*Lattice, error) {
	var dirs []int
	for k := 0; k < Dim; k++ {
		if !periodic[k] {
			continue
		}
		if !isFinite(vecs[k]) {
			return nil, fmt.Errorf("New: vector %d: %w", k, ErrNonFinite)
		}
		dirs = append(dirs, k)
	}
	if err := checkIndependent(vecs, dirs); err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}

	return build(complete(vecs, periodic, dirs), periodic)
}

// NewAperiodic returns the 0D lattice: no periodic axis, Cartesian frame.
func NewAperiodic() *Lattice {
	l, _ := build(unitAxes, [Dim]bool{})
	return l
}

// NewCubic returns a fully periodic cubic lattice with edge a.
func NewCubic(a float64) (*Lattice, error) {
	return NewCuboid(a, a, a)
}

// NewCuboid returns a fully periodic orthorhombic lattice with edges a, b and c
// along x, y and z.
func NewCuboid(a, b, c float64) (*Lattice, error) {
	return New([Dim]r3.Vector{{X: a}, {Y: b}, {Z: c}}, [Dim]bool{true, true, true})
}

// build inverts the completed basis and assembles the Lattice.
func build(full [Dim]r3.Vector, periodic [Dim]bool) (*Lattice, error) {
	m := mat.NewDense(Dim, Dim, []float64{
		full[0].X, full[0].Y, full[0].Z,
		full[1].X, full[1].Y, full[1].Z,
		full[2].X, full[2].Y, full[2].Z,
	})
	var inv mat.Dense
	if err := inv.Inverse(m); err != nil {
		return nil, fmt.Errorf("New: inverse: %v: %w", err, ErrSingularLattice)
	}

	l := &Lattice{vecs: full, periodic: periodic}
	for k := 0; k < Dim; k++ {
		// Column k of A⁻¹ is the reciprocal vector gₖ.
		l.gvecs[k] = r3.Vector{X: inv.At(0, k), Y: inv.At(1, k), Z: inv.At(2, k)}
		if periodic[k] {
			l.nper++
		}
	}

	return l, nil
}

// checkIndependent rejects periodic vectors that are zero or (nearly) linearly
// dependent. The Gram determinant is normalized by the squared lengths so the
// test does not depend on the unit of length.
func checkIndependent(vecs [Dim]r3.Vector, dirs []int) error {
	k := len(dirs)
	if k == 0 {
		return nil
	}
	gram := mat.NewDense(k, k, nil)
	norm := 1.0
	for a := 0; a < k; a++ {
		va := vecs[dirs[a]]
		n2 := va.Norm2()
		if n2 == 0 {
			return fmt.Errorf("vector %d has zero length: %w", dirs[a], ErrSingularLattice)
		}
		norm *= n2
		for b := 0; b < k; b++ {
			gram.Set(a, b, va.Dot(vecs[dirs[b]]))
		}
	}
	if ratio := mat.Det(gram) / norm; !(ratio > SingularTolerance) {
		return fmt.Errorf("normalized Gram determinant %g: %w", ratio, ErrSingularLattice)
	}

	return nil
}

// complete fills the non-periodic rows with unit vectors orthogonal to the
// periodic span and to each other.
func complete(vecs [Dim]r3.Vector, periodic [Dim]bool, dirs []int) [Dim]r3.Vector {
	var fill []r3.Vector
	switch len(dirs) {
	case 0:
		return unitAxes
	case 1:
		a := vecs[dirs[0]]
		u := a.Ortho()
		fill = []r3.Vector{u, a.Cross(u).Normalize()}
	case 2:
		fill = []r3.Vector{vecs[dirs[0]].Cross(vecs[dirs[1]]).Normalize()}
	}

	var out [Dim]r3.Vector
	for k := 0; k < Dim; k++ {
		if periodic[k] {
			out[k] = vecs[k]
			continue
		}
		out[k], fill = fill[0], fill[1:]
	}

	return out
}

// Vectors returns the three rows. Non-periodic rows are zero.
func (l *Lattice) Vectors() [Dim]r3.Vector {
	var out [Dim]r3.Vector
	for k := 0; k < Dim; k++ {
		if l.periodic[k] {
			out[k] = l.vecs[k]
		}
	}
	return out
}

// Vector returns row k, or the zero vector for a non-periodic row.
func (l *Lattice) Vector(k int) (r3.Vector, error) {
	if k < 0 || k >= Dim {
		return r3.Vector{}, fmt.Errorf("Vector(%d): %w", k, ErrAxis)
	}
	if !l.periodic[k] {
		return r3.Vector{}, nil
	}
	return l.vecs[k], nil
}

// Basis returns the completed basis used for coordinate conversion.
func (l *Lattice) Basis() [Dim]r3.Vector { return l.vecs }

// Reciprocal returns the reciprocal rows gₖ, gₖ·aⱼ = δₖⱼ, of the completed basis.
func (l *Lattice) Reciprocal() [Dim]r3.Vector { return l.gvecs }

// Periodic returns the periodic flags.
func (l *Lattice) Periodic() [Dim]bool { return l.periodic }

// IsPeriodic reports whether axis k is periodic. Out-of-range k is not.
func (l *Lattice) IsPeriodic(k int) bool {
	return k >= 0 && k < Dim && l.periodic[k]
}

// Directions returns the periodic axes in ascending order.
func (l *Lattice) Directions() []int {
	dirs := make([]int, 0, l.nper)
	for k := 0; k < Dim; k++ {
		if l.periodic[k] {
			dirs = append(dirs, k)
		}
	}
	return dirs
}

// NumPeriodic returns the number of periodic axes (0..3).
func (l *Lattice) NumPeriodic() int { return l.nper }

// Lengths returns |aₖ| for periodic axes and 0 elsewhere.
func (l *Lattice) Lengths() [Dim]float64 {
	var out [Dim]float64
	for k := 0; k < Dim; k++ {
		if l.periodic[k] {
			out[k] = l.vecs[k].Norm()
		}
	}
	return out
}

// Spacings returns the distance between neighboring lattice planes, 1/|gₖ|,
// for periodic axes and 0 elsewhere. It is the width of the cell measured
// perpendicular to the planes spanned by the other vectors.
func (l *Lattice) Spacings() [Dim]float64 {
	var out [Dim]float64
	for k := 0; k < Dim; k++ {
		if l.periodic[k] {
			out[k] = 1 / l.gvecs[k].Norm()
		}
	}
	return out
}

// MinSpacing returns the smallest periodic plane spacing, or +Inf when no axis
// is periodic.
func (l *Lattice) MinSpacing() float64 {
	best := math.Inf(1)
	for k, s := range l.Spacings() {
		if l.periodic[k] && s < best {
			best = s
		}
	}
	return best
}

// Volume returns the measure of the periodic part of the cell: volume for 3D,
// area for 2D, length for 1D and 0 for an aperiodic lattice.
func (l *Lattice) Volume() float64 {
	dirs := l.Directions()
	switch len(dirs) {
	case 3:
		return math.Abs(l.vecs[0].Dot(l.vecs[1].Cross(l.vecs[2])))
	case 2:
		return l.vecs[dirs[0]].Cross(l.vecs[dirs[1]]).Norm()
	case 1:
		return l.vecs[dirs[0]].Norm()
	}
	return 0
}

// IsCuboid reports whether every periodic vector k is aligned with Cartesian axis k.
func (l *Lattice) IsCuboid() bool {
	for k := 0; k < Dim; k++ {
		if !l.periodic[k] {
			continue
		}
		c := [Dim]float64{l.vecs[k].X, l.vecs[k].Y, l.vecs[k].Z}
		for j := 0; j < Dim; j++ {
			if j != k && c[j] != 0 {
				return false
			}
		}
	}
	return true
}

// IsCubic reports whether the lattice is cuboid with equal periodic lengths.
func (l *Lattice) IsCubic() bool {
	if !l.IsCuboid() {
		return false
	}
	first := -1.0
	for k, n := range l.Lengths() {
		if !l.periodic[k] {
			continue
		}
		if first < 0 {
			first = n
		} else if n != first {
			return false
		}
	}
	return true
}

// Equal reports whether two lattices have identical periodic vectors and flags.
func (l *Lattice) Equal(o *Lattice) bool {
	if l == o {
		return true
	}
	if l == nil || o == nil || l.periodic != o.periodic {
		return false
	}
	for k := 0; k < Dim; k++ {
		if l.periodic[k] && l.vecs[k] != o.vecs[k] {
			return false
		}
	}
	return true
}

// String implements fmt.Stringer.
func (l *Lattice) String() string {
	return fmt.Sprintf("Lattice{a=%v b=%v c=%v periodic=%v}",
		l.vecs[0], l.vecs[1], l.vecs[2], l.periodic)
}

func isFinite(v r3.Vector) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}
