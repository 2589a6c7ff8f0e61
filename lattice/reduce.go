package lattice

import "math"

// reduceTolerance is the relative shrink a step must achieve to be accepted;
// it stops ties (projection exactly ½) from cycling.
const reduceTolerance = 1e-12

// Reduce returns a lattice spanning the same periodic points whose periodic
// vectors are pairwise reduced: no vector can be shortened by adding an
// integer multiple of another. Non-periodic axes and flags are unchanged.
//
// Implementation:
//   - Sweep over ordered pairs (i, j) of periodic axes.
//   - Replace aᵢ by aᵢ - round(aᵢ·aⱼ/|aⱼ|²)·aⱼ when that makes it strictly shorter.
//   - Stop after a sweep without change (or after maxReduceSweeps).
//
// Every step is unimodular, so the volume and the set of images are preserved.
// Complexity: O(1) per sweep.
func (l *Lattice) Reduce() *Lattice {
	dirs := l.Directions()
	if len(dirs) < 2 {
		return l
	}

	vecs := l.vecs
	for sweep := 0; sweep < maxReduceSweeps; sweep++ {
		changed := false
		for _, i := range dirs {
			for _, j := range dirs {
				if i == j {
					continue
				}
				u := vecs[j]
				mu := math.Round(vecs[i].Dot(u) / u.Norm2())
				if mu == 0 {
					continue
				}
				cand := vecs[i].Sub(u.Mul(mu))
				if cand.Norm2() < vecs[i].Norm2()*(1-reduceTolerance) {
					vecs[i] = cand
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}

	r, err := build(complete(vecs, l.periodic, dirs), l.periodic)
	if err != nil {
		return l
	}
	return r
}
