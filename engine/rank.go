package engine

import (
	"context"
	"math/rand"

	"github.com/GiacomoPauletti/graph-color-number/branch"
	"github.com/GiacomoPauletti/graph-color-number/fabric"
	"github.com/GiacomoPauletti/graph-color-number/graph"
	"go.uber.org/zap"
)

// rank bundles one process's worth of state: its fabric endpoint, its
// local work queue and bound, the heuristic strategies it searches
// with, and its private RNG. One rank struct per goroutine group; §9
// requires this to be instance state, never a package-level global, so
// multiple engines could coexist in one process.
type rank struct {
	id   int
	size int

	fab   fabric.Fabric
	root  graph.Graph
	queue *branch.Queue
	bound *boundState

	clique    graph.CliqueStrategy
	color     graph.ColorStrategy
	branching graph.BranchingStrategy

	// rng is private to this rank's T3 goroutine; never a shared/global
	// source, per §9's explicit requirement.
	rng *rand.Rand

	log     Logger
	metrics Metrics

	// cancel aborts the whole run with a cause; Engine.Solve sets it on
	// every rank before any goroutine starts, so a fatal fabric error
	// detected deep in the work-stealing or gather path can terminate
	// every other rank too, not just unwind its own goroutine.
	cancel context.CancelCauseFunc
}

func newRank(id, size int, fab fabric.Fabric, root graph.Graph, strat Strategies, log Logger, metrics Metrics) *rank {
	if log == nil {
		log = zap.NewNop()
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &rank{
		id:        id,
		size:      size,
		fab:       fab,
		root:      root,
		queue:     branch.NewQueue(),
		bound:     newBoundState(sentinelUB),
		clique:    strat.Clique,
		color:     strat.Color,
		branching: strat.Branching,
		rng:       rand.New(rand.NewSource(int64(id) + 1)),
		log:       log,
		metrics:   metrics,
	}
}

// Strategies bundles the pluggable heuristic capabilities every rank
// searches with; all ranks of one run share the same choice.
type Strategies struct {
	Clique    graph.CliqueStrategy
	Color     graph.ColorStrategy
	Branching graph.BranchingStrategy
}
