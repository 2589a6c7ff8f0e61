// Command celllists lists the neighbor pairs of a point set in a periodic cell.
//
// Usage
//
// The celllists command takes one argument, the path to a TOML config file:
//
//	celllists [-log-level info] [-log-format text] [-verify] config.toml
//
// Every pair within the cutoff is printed on its own line as
//
//	i j shift_a shift_b shift_c distance
//
// where point j, translated by the shift in lattice vectors, lies within the
// cutoff of point i. Logs go to stderr.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/katalvlaran/celllists/celllist"
	"github.com/katalvlaran/celllists/grid"
	"github.com/katalvlaran/celllists/neighbors"
)

const usage = `Usage: celllists [flags] config.toml

The argument is the path to a TOML config file with the keys
cutoff, max_cells, reduce, [lattice] vectors and periodic, and points.

Flags:
`

// errVerify indicates that the cell-list pairs differ from the brute-force pairs.
var errVerify = errors.New("verify: pairs differ from brute force")

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "celllists:", err)
		os.Exit(1)
	}
}

// run is main with explicit arguments and streams.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("celllists", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}
	level := fs.String("log-level", "info", "minimum log level: debug, info, warn, error")
	format := fs.String("log-format", "text", "log format: text or json")
	verify := fs.Bool("verify", false, "compare the pairs with an O(N²) brute-force search")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("%d arguments provided (1 required)", fs.NArg())
	}

	logger, err := NewLogger(stderr, *format, *level)
	if err != nil {
		return err
	}
	conf, err := ParseConfig(fs.Arg(0))
	if err != nil {
		return err
	}

	return analyze(ctx, conf, stdout, logger, *verify)
}

// analyze runs the partition, build and neighbor search described by conf and
// prints the pairs to w.
func analyze(ctx context.Context, conf *Config, w io.Writer, logger *Logger, verify bool) error {
	lat, err := conf.BuildLattice()
	if err != nil {
		return err
	}
	points := conf.BuildPoints()
	opts, err := conf.GridOptions()
	if err != nil {
		return err
	}
	logger.DebugContext(ctx, "system loaded", "lattice", lat, "points", len(points))

	g, err := grid.Partition(lat, conf.Cutoff, points, opts...)
	logger.LogPartition(ctx, g, err)
	if err != nil {
		return err
	}
	cl, err := celllist.Build(points, g)
	logger.LogBuild(ctx, cl, err)
	if err != nil {
		return err
	}
	it, err := neighbors.Neighbors(cl, points, lat, conf.Cutoff)
	if err != nil {
		return err
	}

	out := bufio.NewWriter(w)
	var (
		got   []neighbors.Pair
		count int
	)
	for p := range it.All() {
		count++
		fmt.Fprintf(out, "%d %d %d %d %d %.17g\n", p.I, p.J, p.Shift[0], p.Shift[1], p.Shift[2], p.Distance)
		if verify {
			got = append(got, p)
		}
	}
	if err := out.Flush(); err != nil {
		return err
	}
	logger.LogPairs(ctx, count, conf.Cutoff)

	if !verify {
		return nil
	}
	want, err := neighbors.BruteForce(points, lat, conf.Cutoff)
	if err != nil {
		return err
	}
	missing, extra := diffPairs(want, got)
	logger.LogVerify(ctx, len(want), len(got), missing, extra)
	if missing > 0 || extra > 0 {
		return fmt.Errorf("%d missing, %d extra: %w", missing, extra, errVerify)
	}
	return nil
}

type pairKey struct {
	i, j  int
	shift [3]int
}

// diffPairs counts the canonical pairs of want absent from got and the reverse.
func diffPairs(want, got []neighbors.Pair) (missing, extra int) {
	seen := make(map[pairKey]int, len(want))
	for _, p := range want {
		c := neighbors.Canonical(p)
		seen[pairKey{c.I, c.J, c.Shift}]++
	}
	for _, p := range got {
		c := neighbors.Canonical(p)
		k := pairKey{c.I, c.J, c.Shift}
		if seen[k] == 0 {
			extra++
			continue
		}
		seen[k]--
	}
	for _, n := range seen {
		missing += n
	}
	return missing, extra
}
