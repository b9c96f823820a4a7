package engine

import (
	"context"
	"time"

	"github.com/GiacomoPauletti/graph-color-number/fabric"
)

// employerPollInterval mirrors the original's usleep-driven poll loop
// between probes.
const employerPollInterval = 2 * time.Millisecond

// runEmployer is T2: services incoming work-steal requests from the
// local queue, never draining it below one branch (§4.5).
func runEmployer(ctx context.Context, rk *rank) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		from, _, ok := rk.fab.TryRecvScalar(fabric.WorkRequest)
		if !ok {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(employerPollInterval):
			}
			continue
		}

		if rk.queue.Len() >= 2 {
			b, popped := rk.queue.Pop()
			if !popped {
				_ = rk.fab.SendScalar(ctx, 0, from, fabric.WorkResponse)
				continue
			}
			if err := rk.fab.SendScalar(ctx, 1, from, fabric.WorkResponse); err != nil {
				return nil
			}
			if err := rk.fab.SendBranch(ctx, b, from, fabric.WorkStealing); err != nil {
				return nil
			}
		} else {
			if err := rk.fab.SendScalar(ctx, 0, from, fabric.WorkResponse); err != nil {
				return nil
			}
		}
	}
}
