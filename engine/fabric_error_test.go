package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/GiacomoPauletti/graph-color-number/branch"
	"github.com/GiacomoPauletti/graph-color-number/fabric"
	"github.com/GiacomoPauletti/graph-color-number/graph"
	"github.com/stretchr/testify/require"
)

// corruptBranchFabric is a minimal fabric.Fabric whose RecvBranch
// always reports a wire-format fault, exercising the §7(f) path
// without needing a real deserialize failure against the in-process
// hub.
type corruptBranchFabric struct {
	size int
}

func (f corruptBranchFabric) Rank() int { return 0 }
func (f corruptBranchFabric) Size() int { return f.size }

func (f corruptBranchFabric) SendScalar(context.Context, int32, int, fabric.Tag) error { return nil }
func (f corruptBranchFabric) TryRecvScalar(fabric.Tag) (int, int32, bool)              { return 0, 0, false }
func (f corruptBranchFabric) RecvScalar(context.Context, fabric.Tag) (int, int32, bool) {
	return 0, 1, true
}

func (f corruptBranchFabric) SendBranch(context.Context, branch.Branch, int, fabric.Tag) error {
	return nil
}
func (f corruptBranchFabric) RecvBranch(context.Context, int, fabric.Tag, graph.Graph) (branch.Branch, error) {
	return branch.Branch{}, errors.New("corrupt wire payload")
}

func (f corruptBranchFabric) Broadcast(context.Context, int, fabric.Tag, *int32) error { return nil }
func (f corruptBranchFabric) AllGather(context.Context, uint16) ([]uint16, error)      { return nil, nil }

// TestRequestWorkAbortsOnFatalFabricError confirms that a non-ErrCanceled
// RecvBranch error during work-stealing (§7(f)) triggers the rank's
// cancel func with a *FabricError, rather than being silently treated
// the same as a benign steal miss.
func TestRequestWorkAbortsOnFatalFabricError(t *testing.T) {
	r := require.New(t)
	rk := newRank(1, 2, corruptBranchFabric{size: 2}, graph.NewRoot(4), Strategies{}, nil, nil)

	var cause error
	rk.cancel = func(err error) { cause = err }

	b, ok := requestWork(context.Background(), rk)
	r.False(ok)
	r.Equal(branch.Branch{}, b)

	var ferr *FabricError
	r.ErrorAs(cause, &ferr)
}

// TestGuardRecoversPanicAndCancels confirms the errgroup-boundary
// recover() helper (§7(b)) turns a goroutine panic into a logged
// *FabricError and a cancellation, instead of crashing the process.
func TestGuardRecoversPanicAndCancels(t *testing.T) {
	r := require.New(t)
	rk := newRank(0, 1, corruptBranchFabric{size: 1}, graph.NewRoot(4), Strategies{}, nil, nil)

	var cause error
	rk.cancel = func(err error) { cause = err }

	wrapped := guard(rk, func() error { panic("invariant violated") })
	err := wrapped()

	r.Error(err)
	var ferr *FabricError
	r.ErrorAs(err, &ferr)
	r.ErrorAs(cause, &ferr)
}
