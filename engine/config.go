// Package engine implements the distributed branch-and-bound search:
// the T0 terminator, T1 gatherer, T2 employer, and T3 worker goroutines
// that cooperate per rank, the unbalanced and balanced initial-frontier
// variants, and the final coloring reconstruction.
package engine

import "time"

// Config holds the parameters a Solve call is parameterized by. It is
// identical across every rank of a run — in particular SolGatherPeriod
// must match everywhere, since the gather is a collective.
type Config struct {
	// Timeout bounds wall-clock search time.
	Timeout time.Duration
	// SolGatherPeriod is the cadence of the T1 all-gather collective.
	SolGatherPeriod time.Duration
	// Balanced selects the balanced initial-partition variant (§4.9)
	// over the unbalanced depth-rank-gated variant (§4.8).
	Balanced bool
	// ExpectedChi is the early-termination target; 0 disables it (no
	// real instance has chi=0, since a graph has at least one vertex
	// class needing one color once any vertex exists).
	ExpectedChi uint16
}

// sentinelUB is the initial "no bound yet" value for best-UB, mirroring
// the original's USHRT_MAX initialization.
const sentinelUB uint16 = ^uint16(0)
