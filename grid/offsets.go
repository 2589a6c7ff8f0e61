package grid

// Process-wide offset tables, built once at package initialization.
var (
	offsets        = fullShell()
	forwardOffsets = halfShell()
)

// Offsets returns all 27 displacements in {-1,0,1}³, in lexicographic order.
func Offsets() [27]Index { return offsets }

// ForwardOffsets returns the 13 displacements of {-1,0,1}³ that are
// lexicographically greater than (0,0,0). Exactly one of o and -o is in the
// set for every non-zero o, so visiting a sub-cell and its forward neighbors
// covers every unordered pair of adjacent sub-cells once.
func ForwardOffsets() [13]Index { return forwardOffsets }

func fullShell() [27]Index {
	var out [27]Index
	n := 0
	for a := -1; a <= 1; a++ {
		for b := -1; b <= 1; b++ {
			for c := -1; c <= 1; c++ {
				out[n] = Index{a, b, c}
				n++
			}
		}
	}
	return out
}

func halfShell() [13]Index {
	var out [13]Index
	n := 0
	for _, o := range fullShell() {
		if isForward(o) {
			out[n] = o
			n++
		}
	}
	return out
}

// isForward reports whether o is lexicographically greater than the zero offset.
func isForward(o Index) bool {
	for _, c := range o {
		if c != 0 {
			return c > 0
		}
	}
	return false
}
