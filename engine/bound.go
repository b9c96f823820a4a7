package engine

import (
	"sync"
	"sync/atomic"

	"github.com/GiacomoPauletti/graph-color-number/branch"
)

// boundState is the per-rank shared state §4.3 describes: an atomic
// best-known upper bound plus a mutex-guarded snapshot of the branch
// that witnesses it.
type boundState struct {
	bestUB      atomic.Uint32 // holds a uint16-range value
	mu          sync.Mutex
	currentBest branch.Branch
}

func newBoundState(initial uint16) *boundState {
	b := &boundState{}
	b.bestUB.Store(uint32(initial))
	return b
}

// Load returns the current best-UB.
func (b *boundState) Load() uint16 {
	return uint16(b.bestUB.Load())
}

// Store installs v unconditionally; used for initialization and for
// the few spec paths (root-proven optimum, expected-chi hit) that are
// specified to store rather than compare-and-swap.
func (b *boundState) Store(v uint16) {
	b.bestUB.Store(uint32(v))
}

// Improve atomically lowers best-UB to v if v is strictly smaller than
// the current value, preserving the "never rises" invariant under
// concurrent writers. Reports whether it actually improved the bound.
func (b *boundState) Improve(v uint16) bool {
	for {
		cur := uint32(b.Load())
		if uint32(v) >= cur {
			return false
		}
		if b.bestUB.CompareAndSwap(cur, uint32(v)) {
			return true
		}
	}
}

// UpdateCurrentBest replaces the witnessing snapshot. The caller is
// expected to pass a clone it alone owns; Go's garbage collector
// reclaims whatever snapshot this replaces.
func (b *boundState) UpdateCurrentBest(snapshot branch.Branch) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.currentBest = snapshot
}

// CurrentBest returns a copy of the witnessing snapshot.
func (b *boundState) CurrentBest() branch.Branch {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.currentBest
}
