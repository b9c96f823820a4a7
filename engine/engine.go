package engine

import (
	"context"
	"errors"
	"time"

	"github.com/GiacomoPauletti/graph-color-number/branch"
	"github.com/GiacomoPauletti/graph-color-number/fabric"
	"github.com/GiacomoPauletti/graph-color-number/graph"
	"golang.org/x/sync/errgroup"
)

// Engine bundles everything one run needs: the P simulated ranks, each
// with its own fabric endpoint, queue, and bound state. §9 requires
// this to be instance state rather than package-level globals, so
// multiple engines can in principle coexist in one process.
type Engine struct {
	ranks []*rank
	cfg   Config
}

// New builds an Engine over `ranks` simulated processes sharing an
// in-memory fabric, all searching root with the given strategies.
// root is never mutated directly; every rank works from its own clone.
func New(root graph.Graph, ranks int, cfg Config, strat Strategies, log Logger, metrics Metrics) *Engine {
	endpoints := fabric.NewLocalFabric(ranks)
	e := &Engine{cfg: cfg}
	for r := 0; r < ranks; r++ {
		e.ranks = append(e.ranks, newRank(r, ranks, endpoints[r], root, strat, log, metrics))
	}
	return e
}

// Solve runs the search to completion: either a rank proves the
// optimum, every rank goes idle simultaneously, or the timeout
// elapses. It initializes every rank's local frontier synchronously
// (§4.8/§4.9), then launches the four goroutines per rank under one
// shared, cancelable context and errgroup.
func (e *Engine) Solve(ctx context.Context) (Solution, error) {
	for _, rk := range e.ranks {
		if e.cfg.Balanced {
			initBalanced(rk)
		} else {
			initUnbalanced(rk)
		}
	}

	runCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	// Every rank shares this one cancel func, so a fatal fabric fault
	// detected deep in a work-steal or gather call (§7(f)) can abort the
	// whole run without threading it through every intermediate call.
	for _, rk := range e.ranks {
		rk.cancel = cancel
	}

	g, gCtx := errgroup.WithContext(runCtx)
	resultCh := make(chan Solution, 1)
	start := time.Now()

	for _, rk := range e.ranks {
		rk := rk
		g.Go(guard(rk, func() error { return runTerminator(gCtx, cancel, rk, e.cfg, start, resultCh) }))
		g.Go(guard(rk, func() error { return runGatherer(gCtx, rk, e.cfg.SolGatherPeriod) }))
		g.Go(guard(rk, func() error { return runEmployer(gCtx, rk) }))
		g.Go(guard(rk, func() error { return runWorker(gCtx, rk, e.cfg) }))
	}

	if err := g.Wait(); err != nil {
		return Solution{}, err
	}
	// A fatal fabric error detected in a RecvBranch call site cancels
	// runCtx with a cause but the detecting goroutine still returns nil
	// (so the other three goroutines in its rank unwind cleanly); surface
	// that cause here rather than losing it (§7(b)).
	if cause := context.Cause(runCtx); cause != nil && !errors.Is(cause, context.Canceled) {
		return Solution{}, cause
	}

	select {
	case sol := <-resultCh:
		return sol, nil
	default:
		// Every goroutine returned without the master ever declaring
		// termination; this only happens if the outer ctx was canceled
		// first. Surface whatever best-known coloring rank 0 holds.
		best := e.ranks[0].bound.CurrentBest()
		coloring := reconstructColoring(best)
		return Solution{
			Coloring:        coloring,
			NumColors:       countColors(coloring),
			WithinTimeLimit: false,
		}, nil
	}
}

// initUnbalanced performs the root-only initialization of §4.8: each
// rank independently computes the same lb0/ub0 over its own clone of
// root and seeds its queue with that single root Branch at depth 1.
func initUnbalanced(rk *rank) {
	g := rk.root.Clone()
	lb := int32(rk.clique.FindClique(g))
	ub := rk.color.Color(g)
	rk.bound.Store(ub)
	b := branch.Branch{Graph: g, LB: lb, UB: ub, Depth: 1}
	rk.bound.UpdateCurrentBest(cloneBranch(b))
	rk.queue.Push(b)
}

// initBalanced performs the binary-search initial partition of §4.9:
// starting from [a,b] = [0, size-1] and a cloned root, at each level
// it picks a branching pair and either descends the MERGE or ADD-EDGE
// child depending on which half of [a,b] this rank falls in, until
// a == b. The resulting Branch is this rank's sole initial seed.
func initBalanced(rk *rank) {
	g := rk.root.Clone()
	a, b := 0, rk.size-1
	depth := int32(1)

	for a != b {
		u, v := rk.branching.Choose(g)
		if u == graph.NoVertex {
			break
		}
		mid := a + (b+1-a)/2
		if rk.id >= mid {
			g.MergeVertices(u, v)
			a = mid
		} else {
			g.AddEdge(u, v)
			b = mid - 1
		}
		depth++
	}

	lb := int32(rk.clique.FindClique(g))
	ub := rk.color.Color(g)
	rk.bound.Store(ub)
	seed := branch.Branch{Graph: g, LB: lb, UB: ub, Depth: depth}
	rk.bound.UpdateCurrentBest(cloneBranch(seed))
	rk.queue.Push(seed)
}
