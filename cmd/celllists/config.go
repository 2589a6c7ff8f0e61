package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/golang/geo/r3"

	"github.com/katalvlaran/celllists/grid"
	"github.com/katalvlaran/celllists/lattice"
)

// errConfig indicates a configuration that cannot describe a system.
var errConfig = errors.New("config: invalid")

// Config holds the system to analyze and the search parameters.
type Config struct {
	Cutoff   float64 // unit: length
	MaxCells int     `toml:"max_cells"` // cap on the number of sub-cells
	Reduce   bool    // reduce the periodic vectors before partitioning

	Lattice LatticeConfig

	// Points in Cartesian coordinates, one [x, y, z] triple per point.
	Points [][3]float64
}

// LatticeConfig describes the cell. Missing rows are zero, missing flags are
// false; only periodic rows are used.
type LatticeConfig struct {
	Vectors  [][3]float64
	Periodic []bool
}

// DefaultConfig returns the default parameters: an empty aperiodic system.
func DefaultConfig() *Config {
	return &Config{
		Cutoff:   1,
		MaxCells: grid.DefaultMaxCells,
	}
}

// ParseConfig parses the TOML config file whose path is provided.
func ParseConfig(path string) (*Config, error) {
	// config file overwrites default parameters
	conf := DefaultConfig()
	md, err := toml.DecodeFile(path, conf)
	if err != nil {
		return nil, err
	}
	if err := checkUndecoded(md); err != nil {
		return nil, err
	}
	return conf, nil
}

// DecodeConfig is ParseConfig for an already opened stream.
func DecodeConfig(r io.Reader) (*Config, error) {
	conf := DefaultConfig()
	md, err := toml.NewDecoder(r).Decode(conf)
	if err != nil {
		return nil, err
	}
	if err := checkUndecoded(md); err != nil {
		return nil, err
	}
	return conf, nil
}

// checkUndecoded rejects keys that match no field, which are typos more often
// than not.
func checkUndecoded(md toml.MetaData) error {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	return fmt.Errorf("unknown keys %s: %w", strings.Join(names, ", "), errConfig)
}

// BuildLattice converts the lattice section, reducing it when requested.
func (c *Config) BuildLattice() (*lattice.Lattice, error) {
	if len(c.Lattice.Vectors) > lattice.Dim || len(c.Lattice.Periodic) > lattice.Dim {
		return nil, fmt.Errorf("lattice: at most %d vectors and flags: %w", lattice.Dim, errConfig)
	}
	var (
		vecs     [lattice.Dim]r3.Vector
		periodic [lattice.Dim]bool
	)
	for k, v := range c.Lattice.Vectors {
		vecs[k] = r3.Vector{X: v[0], Y: v[1], Z: v[2]}
	}
	for k, p := range c.Lattice.Periodic {
		if p && k >= len(c.Lattice.Vectors) {
			return nil, fmt.Errorf("lattice: axis %d periodic without a vector: %w", k, errConfig)
		}
		periodic[k] = p
	}
	lat, err := lattice.New(vecs, periodic)
	if err != nil {
		return nil, err
	}
	if c.Reduce {
		lat = lat.Reduce()
	}
	return lat, nil
}

// BuildPoints converts the point triples.
func (c *Config) BuildPoints() []r3.Vector {
	out := make([]r3.Vector, len(c.Points))
	for i, p := range c.Points {
		out[i] = r3.Vector{X: p[0], Y: p[1], Z: p[2]}
	}
	return out
}

// GridOptions translates the search parameters into partition options.
func (c *Config) GridOptions() ([]grid.Option, error) {
	if c.MaxCells < 1 || c.MaxCells > grid.MaxCellsLimit {
		return nil, fmt.Errorf("max_cells %d outside [1, %d]: %w", c.MaxCells, grid.MaxCellsLimit, errConfig)
	}
	return []grid.Option{grid.WithMaxCells(c.MaxCells)}, nil
}
