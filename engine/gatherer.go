package engine

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// runGatherer is T1: every period, all-gather the local best-UB across
// every rank and install the global minimum, never clobbering a
// concurrent improvement from T3 (§4.4).
func runGatherer(ctx context.Context, rk *rank, period time.Duration) error {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			local := rk.bound.Load()
			gathered, err := rk.fab.AllGather(ctx, local)
			if err != nil {
				// Collective abandoned by termination; nothing to do.
				return nil
			}
			min := local
			for _, v := range gathered {
				if v < min {
					min = v
				}
			}
			if rk.bound.Improve(min) {
				rk.metrics.SetBestUB(rk.id, min)
				rk.log.Debug("gatherer installed improved bound", zap.Int("rank", rk.id), zap.Uint16("best_ub", min))
			}
		}
	}
}
