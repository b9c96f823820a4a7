package fabric

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/GiacomoPauletti/graph-color-number/branch"
	"github.com/GiacomoPauletti/graph-color-number/graph"
	"github.com/stretchr/testify/require"
)

func TestScalarSendRecv(t *testing.T) {
	r := require.New(t)
	eps := NewLocalFabric(2)
	ctx := context.Background()

	r.NoError(eps[0].SendScalar(ctx, 42, 1, WorkRequest))
	from, v, ok := eps[1].RecvScalar(ctx, WorkRequest)
	r.True(ok)
	r.Equal(0, from)
	r.Equal(int32(42), v)
}

func TestTryRecvScalarNonBlocking(t *testing.T) {
	r := require.New(t)
	eps := NewLocalFabric(2)
	_, _, ok := eps[1].TryRecvScalar(Idle)
	r.False(ok)

	r.NoError(eps[0].SendScalar(context.Background(), 1, 1, Idle))
	time.Sleep(5 * time.Millisecond)
	_, v, ok := eps[1].TryRecvScalar(Idle)
	r.True(ok)
	r.Equal(int32(1), v)
}

func TestBranchSendRecv(t *testing.T) {
	r := require.New(t)
	eps := NewLocalFabric(2)
	ctx := context.Background()

	root := graph.NewRoot(4)
	g := root.Clone()
	g.AddEdge(1, 2)
	b := branch.Branch{Graph: g, LB: 1, UB: 3, Depth: 2}

	r.NoError(eps[0].SendBranch(ctx, b, 1, WorkStealing))
	got, err := eps[1].RecvBranch(ctx, 0, WorkStealing, root.Clone())
	r.NoError(err)
	r.Equal(b.UB, got.UB)
	r.True(got.Graph.HasEdge(1, 2))
}

func TestRecvBranchCancelsOnContext(t *testing.T) {
	r := require.New(t)
	eps := NewLocalFabric(2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := eps[1].RecvBranch(ctx, 0, WorkStealing, graph.NewRoot(4))
	r.ErrorIs(err, ErrCanceled)
}

func TestRecvBranchReturnsFatalErrorOnCorruptPayload(t *testing.T) {
	r := require.New(t)
	eps := NewLocalFabric(2)
	ctx := context.Background()

	eps[0].hub.branchChan(1, WorkStealing) <- branchMsg{from: 0, buf: []byte{0xFF}}

	_, err := eps[1].RecvBranch(ctx, 0, WorkStealing, graph.NewRoot(4))
	r.Error(err)
	r.NotErrorIs(err, ErrCanceled)
}

func TestRecvScalarCancelsOnContext(t *testing.T) {
	r := require.New(t)
	eps := NewLocalFabric(2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, ok := eps[1].RecvScalar(ctx, Idle)
	r.False(ok)
}

func TestBroadcastFansOutToEveryNonRoot(t *testing.T) {
	r := require.New(t)
	eps := NewLocalFabric(3)
	ctx := context.Background()
	var wg sync.WaitGroup

	for rank := 1; rank < 3; rank++ {
		rank := rank
		wg.Add(1)
		go func() {
			defer wg.Done()
			var v int32
			r.NoError(eps[rank].Broadcast(ctx, 0, BroadcastSolutionFound, &v))
			r.Equal(int32(1), v)
		}()
	}

	val := int32(1)
	r.NoError(eps[0].Broadcast(ctx, 0, BroadcastSolutionFound, &val))
	wg.Wait()
}

func TestAllGatherReturnsEveryRanksValue(t *testing.T) {
	r := require.New(t)
	eps := NewLocalFabric(3)
	ctx := context.Background()
	results := make([][]uint16, 3)
	var wg sync.WaitGroup

	for rank := 0; rank < 3; rank++ {
		rank := rank
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := eps[rank].AllGather(ctx, uint16(rank*10))
			r.NoError(err)
			results[rank] = got
		}()
	}
	wg.Wait()

	want := []uint16{0, 10, 20}
	for rank := 0; rank < 3; rank++ {
		r.Equal(want, results[rank])
	}
}
