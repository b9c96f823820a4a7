package engine

import (
	"fmt"

	"go.uber.org/zap"
)

// FabricError marks a fatal transport fault — a corrupted wire payload
// or a recovered goroutine panic — that aborted the run through the
// shared CancelCauseFunc rather than a well-formed termination. The
// CLI layer checks for it with errors.As and aborts the process
// instead of reporting a result, per §7(b)/§7(f).
type FabricError struct {
	Err error
}

func (e *FabricError) Error() string { return fmt.Sprintf("fabric error: %v", e.Err) }
func (e *FabricError) Unwrap() error { return e.Err }

// guard wraps one of the four per-rank goroutines so a panic inside it
// is recovered at the errgroup boundary, logged, and turned into a
// context cancellation instead of taking the whole process down with
// it (§7(b)).
func guard(rk *rank, fn func() error) func() error {
	return func() (err error) {
		defer func() {
			if p := recover(); p != nil {
				ferr := &FabricError{Err: fmt.Errorf("rank %d: panic: %v", rk.id, p)}
				rk.log.Error("recovered goroutine panic",
					zap.Int("rank", rk.id),
					zap.Any("panic", p),
				)
				if rk.cancel != nil {
					rk.cancel(ferr)
				}
				err = ferr
			}
		}()
		return fn()
	}
}
