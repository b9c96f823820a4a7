// Package fabric abstracts the message-passing substrate the engine
// coordinates over: point-to-point scalar and Branch exchange, a
// non-blocking probe-and-consume for incoming requests, and the two
// collectives (broadcast, all-gather) the termination and gathering
// protocols rely on. Endpoint (built by NewLocalFabric over a shared,
// unexported hub) is an in-process implementation that emulates
// the asynchronous, cancelable semantics a real multi-host transport
// would provide, so the engine's coordination logic is exercised
// exactly as specified without requiring a network-backed MPI-style
// deployment. A real implementation (gRPC, raw TCP) can satisfy the
// same interface without the engine package changing at all.
package fabric

import (
	"context"
	"errors"

	"github.com/GiacomoPauletti/graph-color-number/branch"
	"github.com/GiacomoPauletti/graph-color-number/graph"
)

// ErrCanceled is returned by RecvBranch when ctx is done before a
// Branch arrives on the given tag. It marks a benign, expected absence
// of data — termination, cancellation, a steal miss — and is always
// distinct from a non-nil error returned for any other reason, which
// marks a fatal wire-format fault in a payload that did arrive.
var ErrCanceled = errors.New("fabric: receive canceled")

// Tag identifies the logical channel a message travels on, mirroring
// the fixed tag set of the original MPI-based engine.
type Tag int

const (
	WorkRequest Tag = iota
	WorkResponse
	WorkStealing
	Idle
	SolutionFound
	TimeoutSolution
	// BroadcastSolutionFound and BroadcastTimeoutSignal are the tags the
	// two per-iteration T0 broadcasts of §4.7 travel on; kept distinct
	// from the point-to-point tags above so the two collectives never
	// share a channel with unrelated traffic.
	BroadcastSolutionFound
	BroadcastTimeoutSignal
)

// Fabric is the capability interface the engine depends on for all
// cross-rank communication.
type Fabric interface {
	Rank() int
	Size() int

	// SendScalar sends a single fixed-width value to dest on tag.
	SendScalar(ctx context.Context, v int32, dest int, tag Tag) error
	// TryRecvScalar performs a non-blocking check for a pending scalar
	// on tag addressed to this rank; ok is false if none is queued.
	TryRecvScalar(tag Tag) (from int, v int32, ok bool)
	// RecvScalar blocks for a scalar on tag, canceling on ctx.Done().
	RecvScalar(ctx context.Context, tag Tag) (from int, v int32, ok bool)

	// SendBranch serializes and sends b to dest on tag.
	SendBranch(ctx context.Context, b branch.Branch, dest int, tag Tag) error
	// RecvBranch blocks for a Branch on tag, materializing it by
	// replaying its wire history against root. source names the expected
	// sender; the in-process Endpoint does not filter on it and returns
	// the next Branch queued for this rank on tag. It returns
	// ErrCanceled if ctx.Done() fires before anything arrives — the
	// benign case callers treat as "no branch available" and retry or
	// move on. Any other non-nil error means a payload did arrive but
	// failed to deserialize: a fatal wire-format mismatch, never to be
	// confused with the cancellation case, since the caller must abort
	// the run rather than treat it as a retry condition.
	RecvBranch(ctx context.Context, source int, tag Tag, root graph.Graph) (branch.Branch, error)

	// Broadcast propagates value from root to every rank, including
	// root itself; every rank must call it the same number of times, in
	// the same order, with the same tag, for the collective to line up.
	Broadcast(ctx context.Context, root int, tag Tag, value *int32) error

	// AllGather exchanges local among every rank and returns the full
	// vector indexed by rank; every rank must call it symmetrically.
	AllGather(ctx context.Context, local uint16) ([]uint16, error)
}
