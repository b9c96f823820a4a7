package engine

import "go.uber.org/zap"

// Logger is the slice of *zap.Logger methods the engine depends on,
// grounded on the teacher's hare3.RemoteHare pattern of holding a
// plain *zap.Logger field rather than a bespoke wrapper. A *zap.Logger
// satisfies this directly; zap.NewNop() is used when none is supplied.
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
}

// Metrics is the observability capability the engine reports search
// progress through; the metrics package's default implementation backs
// it with prometheus counters and gauges. nopMetrics is used when
// metrics collection is disabled.
type Metrics interface {
	BranchExplored(rank int)
	BranchPruned(rank int)
	StealAttempt(rank int)
	StealSuccess(rank int)
	SetBestUB(rank int, ub uint16)
}

type nopMetrics struct{}

func (nopMetrics) BranchExplored(int)    {}
func (nopMetrics) BranchPruned(int)      {}
func (nopMetrics) StealAttempt(int)      {}
func (nopMetrics) StealSuccess(int)      {}
func (nopMetrics) SetBestUB(int, uint16) {}
