package engine

import (
	"context"
	"errors"
	"time"

	"github.com/GiacomoPauletti/graph-color-number/fabric"
	"go.uber.org/zap"
)

// Solution is the final answer a run produces: the coloring of the
// original graph, the number of distinct colors it uses, and whether
// the run completed before its timeout.
type Solution struct {
	Coloring        []uint16
	NumColors       uint16
	WithinTimeLimit bool
}

// masterPollInterval is the master's loop cadence (§4.7: "sleep ~10ms
// and loop").
const masterPollInterval = 10 * time.Millisecond

// runTerminator is T0 (§4.7). Rank 0 is the authoritative master
// deciding termination; every other rank only participates in the two
// broadcasts and, under timeout, reports its current-best snapshot.
func runTerminator(ctx context.Context, cancel context.CancelCauseFunc, rk *rank, cfg Config, start time.Time, resultCh chan<- Solution) error {
	if rk.id == 0 {
		return runMasterTerminator(ctx, cancel, rk, cfg, start, resultCh)
	}
	return runParticipantTerminator(ctx, rk)
}

func runMasterTerminator(ctx context.Context, cancel context.CancelCauseFunc, rk *rank, cfg Config, start time.Time, resultCh chan<- Solution) error {
	idle := make([]bool, rk.size)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		solutionFound := false
		timeoutSignal := time.Since(start) >= cfg.Timeout

		if from, ub, ok := rk.fab.TryRecvScalar(fabric.SolutionFound); ok {
			b, err := rk.fab.RecvBranch(ctx, from, fabric.SolutionFound, rk.root)
			switch {
			case err == nil:
				// The wire format carries no vertex colors, so the replayed
				// graph is recolored before it becomes the reported witness.
				rk.color.Color(b.Graph)
				rk.bound.Improve(ub16(ub))
				rk.bound.UpdateCurrentBest(b)
				solutionFound = true
			case errors.Is(err, fabric.ErrCanceled):
				// benign: run is already winding down.
			default:
				rk.log.Error("fatal fabric error receiving solution branch",
					zap.Int("source", from), zap.Error(err))
				cancel(&FabricError{Err: err})
				return nil
			}
		}

		for {
			from, v, ok := rk.fab.TryRecvScalar(fabric.Idle)
			if !ok {
				break
			}
			idle[from] = v == 1
		}
		if allIdle(idle) {
			solutionFound = true
		}

		sf := int32(0)
		if solutionFound {
			sf = 1
		}
		if err := rk.fab.Broadcast(ctx, 0, fabric.BroadcastSolutionFound, &sf); err != nil {
			return nil
		}
		ts := int32(0)
		if timeoutSignal {
			ts = 1
		}
		if err := rk.fab.Broadcast(ctx, 0, fabric.BroadcastTimeoutSignal, &ts); err != nil {
			return nil
		}

		if timeoutSignal {
			for src := 0; src < rk.size; src++ {
				if src == 0 {
					continue
				}
				b, err := rk.fab.RecvBranch(ctx, src, fabric.TimeoutSolution, rk.root)
				if err != nil {
					if errors.Is(err, fabric.ErrCanceled) {
						continue
					}
					rk.log.Error("fatal fabric error receiving timeout branch",
						zap.Int("source", src), zap.Error(err))
					cancel(&FabricError{Err: err})
					return nil
				}
				if b.UB <= rk.bound.Load() && b.UB <= rk.bound.CurrentBest().UB {
					rk.color.Color(b.Graph)
					rk.bound.UpdateCurrentBest(b)
				}
			}
		}

		if solutionFound || timeoutSignal {
			best := rk.bound.CurrentBest()
			coloring := reconstructColoring(best)
			sol := Solution{
				Coloring:        coloring,
				NumColors:       countColors(coloring),
				WithinTimeLimit: !timeoutSignal,
			}
			rk.log.Info("terminating",
				zap.Bool("solution_found", solutionFound),
				zap.Bool("timeout", timeoutSignal),
				zap.Uint16("num_colors", sol.NumColors),
			)
			cancel(nil)
			resultCh <- sol
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(masterPollInterval):
		}
	}
}

func runParticipantTerminator(ctx context.Context, rk *rank) error {
	for {
		var sf int32
		if err := rk.fab.Broadcast(ctx, 0, fabric.BroadcastSolutionFound, &sf); err != nil {
			return nil
		}
		var ts int32
		if err := rk.fab.Broadcast(ctx, 0, fabric.BroadcastTimeoutSignal, &ts); err != nil {
			return nil
		}

		if ts == 1 {
			snapshot := rk.bound.CurrentBest()
			_ = rk.fab.SendBranch(ctx, snapshot, 0, fabric.TimeoutSolution)
		}

		if sf == 1 || ts == 1 {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		default:
		}
	}
}

func allIdle(idle []bool) bool {
	for _, v := range idle {
		if !v {
			return false
		}
	}
	return true
}

func ub16(v int32) uint16 {
	if v < 0 {
		return 0
	}
	if v > 0xFFFF {
		return 0xFFFF
	}
	return uint16(v)
}
