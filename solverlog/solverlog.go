// Package solverlog is the process-wide structured logger every rank
// and goroutine role logs through, grounded on the teacher's log
// package: a zap core wraps the actual write-locking, replacing the
// original engine's hand-rolled log-mutex (Log_par) since zap's core
// already serializes concurrent writes.
package solverlog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process-wide logger. When enabled is false it
// returns a no-op logger (the §6 `--logging` flag gate), so call sites
// never need their own enabled/disabled branches.
func New(enabled bool) *zap.Logger {
	if !enabled {
		return zap.NewNop()
	}
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), zap.NewAtomicLevelAt(zapcore.InfoLevel))
	return zap.New(core)
}

// ForRank returns a child logger carrying this rank's identity on
// every subsequent entry, the way the teacher names/annotates
// per-component loggers.
func ForRank(base *zap.Logger, rank int) *zap.Logger {
	return base.With(zap.Int("rank", rank))
}
