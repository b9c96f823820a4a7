package engine

import (
	"context"

	"github.com/GiacomoPauletti/graph-color-number/branch"
	"github.com/GiacomoPauletti/graph-color-number/fabric"
	"github.com/GiacomoPauletti/graph-color-number/graph"
)

// runWorker is T3 (§4.8, §4.9): pops branches, bounds, prunes,
// branches, and pushes children, until the shared context is
// canceled or this rank proves the answer itself.
func runWorker(ctx context.Context, rk *rank, cfg Config) error {
	firstIteration := true

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		b, ok := rk.queue.Pop()
		if !ok {
			stolen, ok := requestWork(ctx, rk)
			if !ok {
				return nil
			}
			b = stolen
		}

		rk.metrics.BranchExplored(rk.id)

		if cfg.ExpectedChi != 0 && b.UB == cfg.ExpectedChi {
			rk.bound.Store(b.UB)
			rk.bound.UpdateCurrentBest(b)
			announceSolution(ctx, rk, b)
			return nil
		}

		if b.LB == int32(b.UB) {
			// On the first branch this rank pops, a tight bound is taken
			// as the proven optimum and announced at once; best-UB already
			// holds this same ub from the initial frontier setup.
			if firstIteration {
				rk.bound.Store(b.UB)
				rk.bound.UpdateCurrentBest(b)
				announceSolution(ctx, rk, b)
				return nil
			}
			firstIteration = false
			if rk.bound.Improve(b.UB) {
				rk.bound.UpdateCurrentBest(cloneBranch(b))
			}
			rk.metrics.BranchPruned(rk.id)
			continue
		}
		firstIteration = false

		if b.LB >= int32(rk.bound.Load()) {
			rk.metrics.BranchPruned(rk.id)
			continue
		}

		u, v := rk.branching.Choose(b.Graph)
		if u == graph.NoVertex {
			candidate := uint16(b.Graph.NumVertices())
			if rk.bound.Improve(candidate) {
				b.UB = candidate
				rk.bound.UpdateCurrentBest(cloneBranch(b))
			}
			continue
		}

		emitAdd := !cfg.Balanced && b.Depth < int32(rk.id+1)
		emitMerge := !cfg.Balanced && b.Depth == int32(rk.id+1)
		if cfg.Balanced || b.Depth > int32(rk.id+1) {
			emitAdd, emitMerge = true, true
		}

		if emitAdd {
			rk.pushChild(b.Graph, u, v, false, b.Depth+1)
		}
		if emitMerge {
			rk.pushChild(b.Graph, u, v, true, b.Depth+1)
		}
	}
}

// pushChild clones parent, applies the add-edge or merge operation,
// recomputes bounds, updates best-UB/current-best if this child
// improves it, and pushes the child onto the local queue.
func (rk *rank) pushChild(parent graph.Graph, u, v int, merge bool, depth int32) {
	child := parent.Clone()
	if merge {
		child.MergeVertices(u, v)
	} else {
		child.AddEdge(u, v)
	}

	lb := int32(rk.clique.FindClique(child))
	ub := rk.color.Color(child)

	if rk.bound.Improve(ub) {
		snapshot := branch.Branch{Graph: child.Clone(), LB: lb, UB: ub, Depth: depth}
		rk.bound.UpdateCurrentBest(snapshot)
	}

	rk.queue.Push(branch.Branch{Graph: child, LB: lb, UB: ub, Depth: depth})
}

// cloneBranch returns a Branch holding an independent clone of b's
// graph, for use as a current-best snapshot while b itself continues
// to be owned by the worker loop (or is about to be discarded).
func cloneBranch(b branch.Branch) branch.Branch {
	return branch.Branch{Graph: b.Graph.Clone(), LB: b.LB, UB: b.UB, Depth: b.Depth}
}

// announceSolution sends the proof directly to rank 0: the ub scalar
// first, then the witnessing Branch, per the SolutionFound tag's
// envelope shape (§4.2).
func announceSolution(ctx context.Context, rk *rank, b branch.Branch) {
	_ = rk.fab.SendScalar(ctx, int32(b.UB), 0, fabric.SolutionFound)
	_ = rk.fab.SendBranch(ctx, b, 0, fabric.SolutionFound)
}
