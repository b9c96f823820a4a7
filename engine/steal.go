package engine

import (
	"context"
	"errors"
	"time"

	"github.com/GiacomoPauletti/graph-color-number/branch"
	"github.com/GiacomoPauletti/graph-color-number/fabric"
	"go.uber.org/zap"
)

// stealRetryInterval is the pause between failed steal attempts.
const stealRetryInterval = 2 * time.Millisecond

// requestWork runs the work-request protocol of §4.6: announce idle to
// rank 0, repeatedly try a random peer until work arrives or the
// context is canceled, then announce non-idle again. Returns
// (Branch{}, false) if termination interrupted the search before any
// work was found.
func requestWork(ctx context.Context, rk *rank) (branch.Branch, bool) {
	if err := rk.fab.SendScalar(ctx, 1, 0, fabric.Idle); err != nil {
		return branch.Branch{}, false
	}

	for {
		select {
		case <-ctx.Done():
			return branch.Branch{}, false
		default:
		}

		target := randomPeer(rk)
		if target == -1 {
			// Only one rank exists; nothing to steal from.
			select {
			case <-ctx.Done():
				return branch.Branch{}, false
			case <-time.After(stealRetryInterval):
			}
			continue
		}

		rk.metrics.StealAttempt(rk.id)
		if err := rk.fab.SendScalar(ctx, 0, target, fabric.WorkRequest); err != nil {
			return branch.Branch{}, false
		}

		_, resp, ok := rk.fab.RecvScalar(ctx, fabric.WorkResponse)
		if !ok {
			return branch.Branch{}, false
		}
		if resp == 1 {
			b, err := rk.fab.RecvBranch(ctx, target, fabric.WorkStealing, rk.root)
			if err != nil {
				if !errors.Is(err, fabric.ErrCanceled) {
					rk.log.Error("fatal fabric error receiving stolen branch",
						zap.Int("rank", rk.id), zap.Int("source", target), zap.Error(err))
					if rk.cancel != nil {
						rk.cancel(&FabricError{Err: err})
					}
				}
				return branch.Branch{}, false
			}
			rk.metrics.StealSuccess(rk.id)
			if err := rk.fab.SendScalar(ctx, 0, 0, fabric.Idle); err != nil {
				return branch.Branch{}, false
			}
			return b, true
		}

		select {
		case <-ctx.Done():
			return branch.Branch{}, false
		case <-time.After(stealRetryInterval):
		}
	}
}

// randomPeer picks a uniformly random rank other than rk.id, using
// rk's private RNG (never a shared/global source). Returns -1 if no
// other rank exists.
func randomPeer(rk *rank) int {
	if rk.size <= 1 {
		return -1
	}
	target := rk.rng.Intn(rk.size - 1)
	if target >= rk.id {
		target++
	}
	return target
}
