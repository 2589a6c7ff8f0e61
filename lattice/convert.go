package lattice

import (
	"math"

	"github.com/golang/geo/r3"
)

// Fractional converts a Cartesian point to fractional coordinates, fₖ = gₖ·p.
// Along non-periodic axes the result is the projection on the completion vector.
func (l *Lattice) Fractional(p r3.Vector) Frac {
	return Frac{l.gvecs[0].Dot(p), l.gvecs[1].Dot(p), l.gvecs[2].Dot(p)}
}

// Cartesian converts fractional coordinates back to a Cartesian point.
func (l *Lattice) Cartesian(f Frac) r3.Vector {
	return l.vecs[0].Mul(f[0]).Add(l.vecs[1].Mul(f[1])).Add(l.vecs[2].Mul(f[2]))
}

// Translate returns p + Σ s[k]·aₖ over the periodic axes. Coefficients along
// non-periodic axes are ignored.
func (l *Lattice) Translate(p r3.Vector, s Shift) r3.Vector {
	for k := 0; k < Dim; k++ {
		if s[k] != 0 && l.periodic[k] {
			p = p.Add(l.vecs[k].Mul(float64(s[k])))
		}
	}
	return p
}

// WrapMIC wraps a relative vector d so that each periodic fractional component
// lies in [-½, ½]. It returns the wrapped vector and the translation that was
// added. For skewed cells this is the minimum image in the fractional sense,
// which is the true minimum image only when the lattice is reduced enough.
func (l *Lattice) WrapMIC(d r3.Vector) (r3.Vector, Shift) {
	var s Shift
	for k := 0; k < Dim; k++ {
		if l.periodic[k] {
			s[k] = -int(math.Round(l.gvecs[k].Dot(d)))
		}
	}
	return l.Translate(d, s), s
}

// WrapBox folds a point into the home cell, each periodic fractional component
// in [0, 1). It returns the folded point and the translation that was added.
func (l *Lattice) WrapBox(p r3.Vector) (r3.Vector, Shift) {
	var s Shift
	for k := 0; k < Dim; k++ {
		if l.periodic[k] {
			s[k] = -int(math.Floor(l.gvecs[k].Dot(p)))
		}
	}
	return l.Translate(p, s), s
}
