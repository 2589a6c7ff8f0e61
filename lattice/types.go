package lattice

import "github.com/golang/geo/r3"

// Dim is the dimension of the embedding space.
const Dim = 3

// SingularTolerance is the smallest accepted value of det(Gram)/Π|aᵢ|² over the
// periodic vectors. It equals the squared volume of the cell spanned by the
// normalized vectors, so it is scale-free: 1 for an orthogonal cell, 0 for a
// degenerate one.
const SingularTolerance = 1e-12

// maxReduceSweeps bounds the number of full pairwise sweeps in Reduce.
const maxReduceSweeps = 100

// Lattice is an immutable simulation cell.
//
// Rows of vecs are the lattice vectors. For a periodic row the vector is the
// one given by the caller; for a non-periodic row it is a unit vector of the
// orthonormal completion and never generates images. gvecs are the reciprocal
// rows (gᵢ·aⱼ = δᵢⱼ), used for fractional coordinates.
type Lattice struct {
	vecs     [Dim]r3.Vector
	gvecs    [Dim]r3.Vector
	periodic [Dim]bool
	nper     int
}

// Frac is a point in fractional coordinates: Cartesian = Σ Frac[k]·aₖ.
type Frac [Dim]float64

// Shift is an integer lattice translation, one coefficient per axis.
// Coefficients along non-periodic axes are always zero in values produced by
// this module.
type Shift [Dim]int

// IsZero reports whether s is the identity translation.
func (s Shift) IsZero() bool {
	return s == Shift{}
}

// Neg returns -s.
func (s Shift) Neg() Shift {
	return Shift{-s[0], -s[1], -s[2]}
}

// Add returns s+o.
func (s Shift) Add(o Shift) Shift {
	return Shift{s[0] + o[0], s[1] + o[1], s[2] + o[2]}
}

// Sub returns s-o.
func (s Shift) Sub(o Shift) Shift {
	return Shift{s[0] - o[0], s[1] - o[1], s[2] - o[2]}
}

// Less orders shifts lexicographically.
func (s Shift) Less(o Shift) bool {
	for k := 0; k < Dim; k++ {
		if s[k] != o[k] {
			return s[k] < o[k]
		}
	}
	return false
}
