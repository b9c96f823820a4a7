// Package result formats and validates a run's persisted output
// (§6), and implements the end-of-run coloring integrity check (§7g).
package result

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/GiacomoPauletti/graph-color-number/graph"
)

// Report is everything the persisted-output format needs, gathered
// from the CLI, the config, and the Solution an Engine run produced.
type Report struct {
	ProblemInstanceFileName string
	CmdLine                 string
	SolverVersion           string
	NumVertices             int
	NumEdges                int
	TimeLimitSec            int
	NumWorkerProcesses      int
	NumCoresPerWorker       int
	WallTimeSec             float64
	IsWithinTimeLimit       bool
	NumColors               uint16
	Coloring                []uint16 // indexed by vertex id, 0 unused
}

// Write renders r in the key-per-line format of §6, followed by one
// "<vertex> <color>" line per original vertex.
func Write(w io.Writer, r Report) error {
	bw := bufio.NewWriter(w)

	lines := []struct {
		key string
		val any
	}{
		{"problem_instance_file_name", r.ProblemInstanceFileName},
		{"cmd line", r.CmdLine},
		{"solver version", r.SolverVersion},
		{"number_of_vertices", r.NumVertices},
		{"number_of_edges", r.NumEdges},
		{"time_limit_sec", r.TimeLimitSec},
		{"number_of_worker_processes", r.NumWorkerProcesses},
		{"number_of_cores_per_worker", r.NumCoresPerWorker},
		{"wall_time_sec", r.WallTimeSec},
		{"is_within_time_limit", r.IsWithinTimeLimit},
		{"number_of_colors", r.NumColors},
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(bw, "%s %v\n", l.key, l.val); err != nil {
			return fmt.Errorf("result: write %q: %w", l.key, err)
		}
	}
	for v := 1; v < len(r.Coloring); v++ {
		if _, err := fmt.Fprintf(bw, "%d %d\n", v, r.Coloring[v]); err != nil {
			return fmt.Errorf("result: write coloring line: %w", err)
		}
	}
	return bw.Flush()
}

// Verify checks that coloring is a proper coloring of g: every
// surviving vertex has a non-zero color, and no two adjacent vertices
// share one. It is an integrity check on the heuristic chain (§7g),
// not a correctness gate: a failure is reported, never fatal.
func Verify(g graph.Graph, coloring []uint16) error {
	var bad []string
	for _, v := range g.Vertices() {
		if v >= len(coloring) || coloring[v] == 0 {
			bad = append(bad, fmt.Sprintf("vertex %d uncolored", v))
			continue
		}
		for _, n := range g.Neighbors(v) {
			if n < len(coloring) && coloring[n] == coloring[v] {
				bad = append(bad, fmt.Sprintf("vertices %d and %d share color %d", v, n, coloring[v]))
			}
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("result: invalid coloring: %s", strings.Join(bad, "; "))
	}
	return nil
}
