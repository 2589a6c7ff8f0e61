package grid_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/celllists/grid"
	"github.com/katalvlaran/celllists/lattice"
)

//----------------------------------------------------------------------------//
// Partition
//----------------------------------------------------------------------------//

func unitCube(t *testing.T) *lattice.Lattice {
	t.Helper()
	l, err := lattice.NewCubic(1)
	require.NoError(t, err)
	return l
}

// TestPartition_Errors verifies that Partition rejects invalid cutoffs and inputs.
func TestPartition_Errors(t *testing.T) {
	cube := unitCube(t)
	free := lattice.NewAperiodic()
	cases := []struct {
		name   string
		lat    *lattice.Lattice
		cutoff float64
		points []r3.Vector
		err    error
	}{
		{"NilLattice", nil, 0.1, nil, grid.ErrNilLattice},
		{"ZeroCutoff", cube, 0, nil, grid.ErrDegenerateCutoff},
		{"NegativeCutoff", cube, -0.1, nil, grid.ErrDegenerateCutoff},
		{"NaNCutoff", cube, math.NaN(), nil, grid.ErrDegenerateCutoff},
		{"InfCutoff", free, math.Inf(1), nil, grid.ErrDegenerateCutoff},
		{"HalfSpacing", cube, 0.5, nil, grid.ErrDegenerateCutoff},
		{"AboveHalfSpacing", cube, 0.7, nil, grid.ErrDegenerateCutoff},
		{"NonFinitePoint", free, 1, []r3.Vector{{X: math.NaN()}}, grid.ErrOutOfRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := grid.Partition(tc.lat, tc.cutoff, tc.points)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

// TestPartition_CubicShape checks subdivision counts, including the strict rule
// that a sub-cell exactly as wide as the cutoff is split one fewer time.
func TestPartition_CubicShape(t *testing.T) {
	cube := unitCube(t)
	cases := []struct {
		cutoff float64
		n      int
	}{
		{0.45, 2},
		{0.3, 3},
		{0.25, 3},
		{0.2, 4},
		{0.1, 9},
		{0.07, 14},
	}
	for _, tc := range cases {
		g, err := grid.Partition(cube, tc.cutoff, nil)
		require.NoError(t, err)
		assert.Equal(t, [3]int{tc.n, tc.n, tc.n}, g.Shape(), "cutoff %g", tc.cutoff)
		assert.Equal(t, tc.n*tc.n*tc.n, g.Len())
		assert.Greater(t, g.Width(0), tc.cutoff)
	}
}

// TestPartition_Triclinic uses the plane spacings (1/√2, 1, 2), not the lengths.
func TestPartition_Triclinic(t *testing.T) {
	l, err := lattice.New([3]r3.Vector{{X: 1}, {X: 1, Y: 1}, {Z: 2}}, [3]bool{true, true, true})
	require.NoError(t, err)

	g, err := grid.Partition(l, 0.3, nil)
	require.NoError(t, err)
	assert.Equal(t, [3]int{2, 3, 6}, g.Shape())
	assert.InDelta(t, 1/math.Sqrt2/2, g.Width(0), 1e-12)

	_, err = grid.Partition(l, 0.36, nil)
	assert.ErrorIs(t, err, grid.ErrDegenerateCutoff, "0.72 ≥ 1/√2")
}

// TestPartition_Aperiodic subdivides the point extent plus one cutoff of margin.
func TestPartition_Aperiodic(t *testing.T) {
	points := []r3.Vector{{}, {X: 10, Y: 10, Z: 10}}
	g, err := grid.Partition(lattice.NewAperiodic(), 1, points)
	require.NoError(t, err)

	assert.Equal(t, [3]int{11, 11, 11}, g.Shape())
	lower, extent := g.Bounds()
	assert.Equal(t, [3]float64{-1, -1, -1}, lower)
	assert.Equal(t, [3]float64{12, 12, 12}, extent)

	empty, err := grid.Partition(lattice.NewAperiodic(), 1, nil)
	require.NoError(t, err)
	assert.Equal(t, [3]int{1, 1, 1}, empty.Shape())
}

// TestPartition_Mixed combines a periodic axis with two open ones.
func TestPartition_Mixed(t *testing.T) {
	l, err := lattice.New([3]r3.Vector{{}, {Y: 2}, {}}, [3]bool{false, true, false})
	require.NoError(t, err)
	points := []r3.Vector{{X: -3, Y: 0.5, Z: 1}, {X: 3, Y: 7, Z: 1}}

	g, err := grid.Partition(l, 0.5, points)
	require.NoError(t, err)
	shape := g.Shape()
	assert.Equal(t, 3, shape[1], "2/0.5 = 4 is not strictly wider, so 3")
	lower, extent := g.Bounds()
	assert.Equal(t, 0.0, lower[1])
	assert.Equal(t, 1.0, extent[1])
	for k := 0; k < 3; k++ {
		assert.Greater(t, g.Width(k), 0.5)
	}
}

// TestPartition_WidthsExceedCutoff is a property check over random cells.
func TestPartition_WidthsExceedCutoff(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for rep := 0; rep < 200; rep++ {
		var vecs [3]r3.Vector
		for k := range vecs {
			vecs[k] = r3.Vector{X: rng.Float64()*4 - 2, Y: rng.Float64()*4 - 2, Z: rng.Float64()*4 - 2}
		}
		periodic := [3]bool{rng.Intn(2) == 0, rng.Intn(2) == 0, rng.Intn(2) == 0}
		l, err := lattice.New(vecs, periodic)
		if err != nil {
			continue
		}
		cutoff := 0.49 * rng.Float64() * math.Min(l.MinSpacing(), 3)
		if cutoff == 0 {
			continue
		}
		points := []r3.Vector{{}, {X: 2, Y: -1, Z: 3}}
		g, err := grid.Partition(l, cutoff, points)
		require.NoError(t, err)
		for k := 0; k < 3; k++ {
			assert.Greater(t, g.Width(k), cutoff, "axis %d shape %v", k, g.Shape())
		}
	}
}

// TestWithMaxCells caps the total by halving the largest axis.
func TestWithMaxCells(t *testing.T) {
	g, err := grid.Partition(unitCube(t), 0.1, nil, grid.WithMaxCells(8))
	require.NoError(t, err)
	assert.Equal(t, [3]int{2, 2, 2}, g.Shape())
	assert.Greater(t, g.Width(0), 0.1)

	assert.Panics(t, func() { grid.WithMaxCells(0) })
	assert.Panics(t, func() { grid.WithMaxCells(grid.MaxCellsLimit + 1) })
	assert.Panics(t, func() { grid.WithWidthTolerance(-1) })
	assert.Panics(t, func() { grid.WithWidthTolerance(math.NaN()) })
}

// TestWithWidthTolerance shows the tolerance moving a borderline count.
func TestWithWidthTolerance(t *testing.T) {
	g, err := grid.Partition(unitCube(t), 0.24, nil, grid.WithWidthTolerance(0.05))
	require.NoError(t, err)
	assert.Equal(t, [3]int{3, 3, 3}, g.Shape(), "0.25 is not five percent wider than 0.24")

	g, err = grid.Partition(unitCube(t), 0.24, nil, grid.WithWidthTolerance(0))
	require.NoError(t, err)
	assert.Equal(t, [3]int{4, 4, 4}, g.Shape())
}

//----------------------------------------------------------------------------//
// Indexing
//----------------------------------------------------------------------------//

// TestLinear_RoundTrip checks the row-major encoding and its lexicographic order.
func TestLinear_RoundTrip(t *testing.T) {
	l, err := lattice.NewCuboid(1, 2, 3)
	require.NoError(t, err)
	g, err := grid.Partition(l, 0.3, nil)
	require.NoError(t, err)
	require.Equal(t, [3]int{3, 6, 9}, g.Shape())

	prev := -1
	for a := 0; a < 3; a++ {
		for b := 0; b < 6; b++ {
			for c := 0; c < 9; c++ {
				idx := grid.Index{a, b, c}
				lin := g.Linear(idx)
				assert.Equal(t, prev+1, lin)
				assert.Equal(t, idx, g.Unlinear(lin))
				assert.True(t, g.InBounds(idx))
				prev = lin
			}
		}
	}
	assert.Equal(t, g.Len()-1, prev)
	assert.False(t, g.InBounds(grid.Index{3, 0, 0}))
	assert.False(t, g.InBounds(grid.Index{0, -1, 0}))
}

// TestWrap covers periodic folding with image shifts and open-axis rejection.
func TestWrap(t *testing.T) {
	l, err := lattice.New([3]r3.Vector{{X: 1}, {Y: 1}, {}}, [3]bool{true, true, false})
	require.NoError(t, err)
	g, err := grid.Partition(l, 0.3, []r3.Vector{{Z: 0}, {Z: 1}})
	require.NoError(t, err)
	require.Equal(t, [3]int{3, 3, 5}, g.Shape())

	w, s, ok := g.Wrap(grid.Index{-1, 3, 0})
	assert.True(t, ok)
	assert.Equal(t, grid.Index{2, 0, 0}, w)
	assert.Equal(t, lattice.Shift{-1, 1, 0}, s)

	w, s, ok = g.Wrap(grid.Index{-4, 7, 4})
	assert.True(t, ok)
	assert.Equal(t, grid.Index{2, 1, 4}, w)
	assert.Equal(t, lattice.Shift{-2, 2, 0}, s)

	_, _, ok = g.Wrap(grid.Index{0, 0, -1})
	assert.False(t, ok)
	_, _, ok = g.Wrap(grid.Index{0, 0, 5})
	assert.False(t, ok)
}

// TestOffsets checks the 27- and 13-entry tables.
func TestOffsets(t *testing.T) {
	all := grid.Offsets()
	seen := make(map[grid.Index]bool, 27)
	for _, o := range all {
		seen[o] = true
	}
	assert.Len(t, seen, 27)
	assert.Equal(t, grid.Index{-1, -1, -1}, all[0])
	assert.Equal(t, grid.Index{1, 1, 1}, all[26])

	fwd := grid.ForwardOffsets()
	forward := make(map[grid.Index]bool, 13)
	for _, o := range fwd {
		forward[o] = true
	}
	assert.Len(t, forward, 13)
	assert.False(t, forward[grid.Index{}])
	for _, o := range all {
		if o == (grid.Index{}) {
			continue
		}
		neg := grid.Index{-o[0], -o[1], -o[2]}
		assert.NotEqual(t, forward[o], forward[neg], "exactly one of %v and %v is forward", o, neg)
	}
	assert.Equal(t, grid.Index{0, 0, 1}, fwd[0])
}

//----------------------------------------------------------------------------//
// Locate
//----------------------------------------------------------------------------//

// TestLocate_Periodic folds points outside the home cell and reports the fold.
func TestLocate_Periodic(t *testing.T) {
	g, err := grid.Partition(unitCube(t), 0.2, nil)
	require.NoError(t, err)

	idx, fold, err := g.Locate(r3.Vector{X: 1.05, Y: -0.1, Z: 0.5})
	require.NoError(t, err)
	assert.Equal(t, grid.Index{0, 3, 2}, idx)
	assert.Equal(t, lattice.Shift{1, -1, 0}, fold)

	idx, fold, err = g.Locate(r3.Vector{X: 0.999999, Y: 0, Z: 0.25})
	require.NoError(t, err)
	assert.Equal(t, grid.Index{3, 0, 1}, idx)
	assert.True(t, fold.IsZero())

	_, _, err = g.Locate(r3.Vector{X: math.Inf(-1)})
	assert.ErrorIs(t, err, grid.ErrOutOfRange)
}

// TestLocate_OutOfRange rejects points outside the non-periodic extent.
func TestLocate_OutOfRange(t *testing.T) {
	points := []r3.Vector{{}, {X: 4, Y: 4, Z: 4}}
	g, err := grid.Partition(lattice.NewAperiodic(), 1, points)
	require.NoError(t, err)

	for _, p := range points {
		_, fold, err := g.Locate(p)
		require.NoError(t, err)
		assert.True(t, fold.IsZero())
	}
	_, _, err = g.Locate(r3.Vector{X: 5.5})
	assert.ErrorIs(t, err, grid.ErrOutOfRange)
	_, _, err = g.Locate(r3.Vector{Y: -1.5})
	assert.ErrorIs(t, err, grid.ErrOutOfRange)
}

// TestUnwrapped_Consistency matches Locate plus fold on periodic axes and clamps
// far-away points on open axes.
func TestUnwrapped_Consistency(t *testing.T) {
	l, err := lattice.New([3]r3.Vector{{X: 1, Y: 0.2}, {Y: 1}, {}}, [3]bool{true, true, false})
	require.NoError(t, err)
	g, err := grid.Partition(l, 0.2, []r3.Vector{{}, {Z: 1}})
	require.NoError(t, err)
	shape := g.Shape()

	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 200; i++ {
		p := r3.Vector{X: rng.Float64()*6 - 3, Y: rng.Float64()*6 - 3, Z: rng.Float64()}
		idx, fold, err := g.Locate(p)
		require.NoError(t, err)
		u, err := g.Unwrapped(p)
		require.NoError(t, err)
		for k := 0; k < 2; k++ {
			assert.Equal(t, idx[k]+fold[k]*shape[k], u[k])
		}
		assert.Equal(t, idx[2], u[2])
	}

	u, err := g.Unwrapped(r3.Vector{Z: 1e9})
	require.NoError(t, err)
	assert.Equal(t, shape[2]+1, u[2])
	u, err = g.Unwrapped(r3.Vector{Z: -1e9})
	require.NoError(t, err)
	assert.Equal(t, -2, u[2])
}

// TestReach spans every image a large sphere touches on periodic axes and
// clips to the grid on open ones.
func TestReach(t *testing.T) {
	g, err := grid.Partition(unitCube(t), 0.3, nil)
	require.NoError(t, err)
	require.Equal(t, [3]int{3, 3, 3}, g.Shape())

	lo, hi, ok, err := g.Reach(r3.Vector{}, 1.5)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, grid.Index{-6, -6, -6}, lo, "⌊-1.5·3⌋ less one of margin")
	assert.Equal(t, grid.Index{5, 5, 5}, hi)

	_, _, _, err = g.Reach(r3.Vector{}, math.NaN())
	assert.ErrorIs(t, err, grid.ErrDegenerateCutoff)
	_, _, _, err = g.Reach(r3.Vector{Y: math.Inf(1)}, 1)
	assert.ErrorIs(t, err, grid.ErrOutOfRange)

	open, err := grid.Partition(lattice.NewAperiodic(), 1, []r3.Vector{{}, {X: 10, Y: 10, Z: 10}})
	require.NoError(t, err)
	require.Equal(t, [3]int{11, 11, 11}, open.Shape())

	lo, hi, ok, err = open.Reach(r3.Vector{}, 2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, grid.Index{0, 0, 0}, lo)
	assert.Equal(t, grid.Index{3, 3, 3}, hi)

	_, _, ok, err = open.Reach(r3.Vector{X: 100}, 2)
	require.NoError(t, err)
	assert.False(t, ok)
}
