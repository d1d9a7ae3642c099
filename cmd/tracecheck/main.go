// Command tracecheck replays a recorded event trace and lists every seam
// crossing and multi-cell jump the interpolator saw.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/automoto/mazerun-mp/logging"
	"github.com/automoto/mazerun-mp/trace"
)

func main() {
	cellSize := flag.Float64("cell", 16, "Cell size in pixels used for the replay")
	quiet := flag.Bool("q", false, "Print only the summary")
	debug := flag.Bool("debug", false, "Log every target change")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: tracecheck [flags] <trace file>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err := logging.Init("", *debug); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logging: %v\n", err)
		os.Exit(1)
	}

	err := run(os.Stdout, flag.Arg(0), *cellSize, *quiet)
	if err != nil {
		logging.Log.Errorw("trace check failed", "file", flag.Arg(0), "err", err)
	}
	logging.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func run(out io.Writer, path string, cellSize float64, quiet bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open trace: %w", err)
	}
	defer f.Close()

	r, err := trace.NewReader(f)
	if err != nil {
		return fmt.Errorf("read trace: %w", err)
	}
	rep, err := trace.Check(r, cellSize, logging.Log.Desugar())
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}

	if !quiet {
		for _, fd := range rep.Findings {
			fmt.Fprintln(out, fd)
		}
	}
	fmt.Fprintf(out, "maze %q %dx%d wrap rows %v\n", rep.Header.Maze, rep.Header.Rows, rep.Header.Cols, rep.Header.WrapRows)
	fmt.Fprintf(out, "%d events, %d entities: %d edge wraps, %d heuristic wraps, %d echo wraps, %d jumps\n",
		rep.Events, rep.Entities,
		rep.Count(trace.FindingEdgeWrap), rep.Count(trace.FindingHeuristicWrap),
		rep.Count(trace.FindingEchoWrap), rep.Count(trace.FindingJump))
	return nil
}
