package fabric

import (
	"context"
	"fmt"
	"sync"

	"github.com/GiacomoPauletti/graph-color-number/branch"
	"github.com/GiacomoPauletti/graph-color-number/graph"
)

type scalarMsg struct {
	from int
	v    int32
}

type branchMsg struct {
	from int
	buf  []byte
}

// hub is the shared, process-wide switchboard every rank's endpoint
// talks through. It owns one mailbox per (rank, tag) for point-to-point
// traffic plus the shared state backing the two collectives.
type hub struct {
	size int

	mu           sync.Mutex
	scalarInbox  []map[Tag]chan scalarMsg
	branchInbox  []map[Tag]chan branchMsg
	broadcastCh  map[Tag]chan int32
	allGatherRnd *allGatherRound
}

const mailboxCapacity = 4096

func newHub(size int) *hub {
	h := &hub{
		size:        size,
		scalarInbox: make([]map[Tag]chan scalarMsg, size),
		branchInbox: make([]map[Tag]chan branchMsg, size),
		broadcastCh: make(map[Tag]chan int32),
	}
	for r := 0; r < size; r++ {
		h.scalarInbox[r] = make(map[Tag]chan scalarMsg)
		h.branchInbox[r] = make(map[Tag]chan branchMsg)
	}
	return h
}

func (h *hub) scalarChan(rank int, tag Tag) chan scalarMsg {
	h.mu.Lock()
	defer h.mu.Unlock()
	ch, ok := h.scalarInbox[rank][tag]
	if !ok {
		ch = make(chan scalarMsg, mailboxCapacity)
		h.scalarInbox[rank][tag] = ch
	}
	return ch
}

func (h *hub) branchChan(rank int, tag Tag) chan branchMsg {
	h.mu.Lock()
	defer h.mu.Unlock()
	ch, ok := h.branchInbox[rank][tag]
	if !ok {
		ch = make(chan branchMsg, mailboxCapacity)
		h.branchInbox[rank][tag] = ch
	}
	return ch
}

func (h *hub) broadcastChan(tag Tag) chan int32 {
	h.mu.Lock()
	defer h.mu.Unlock()
	ch, ok := h.broadcastCh[tag]
	if !ok {
		ch = make(chan int32, mailboxCapacity)
		h.broadcastCh[tag] = ch
	}
	return ch
}

// allGatherRound is one in-flight AllGather rendezvous: every rank
// deposits its value, and whichever rank observes the last arrival
// closes done, waking everyone still waiting.
type allGatherRound struct {
	mu     sync.Mutex
	values []uint16
	filled int
	done   chan struct{}
}

// Endpoint is one rank's handle onto a hub.
type Endpoint struct {
	hub  *hub
	rank int
}

// NewLocalFabric wires up `size` in-process endpoints sharing one hub,
// one per rank, ready for point-to-point and collective traffic.
func NewLocalFabric(size int) []*Endpoint {
	h := newHub(size)
	endpoints := make([]*Endpoint, size)
	for r := 0; r < size; r++ {
		endpoints[r] = &Endpoint{hub: h, rank: r}
	}
	return endpoints
}

func (e *Endpoint) Rank() int { return e.rank }
func (e *Endpoint) Size() int { return e.hub.size }

func (e *Endpoint) SendScalar(ctx context.Context, v int32, dest int, tag Tag) error {
	ch := e.hub.scalarChan(dest, tag)
	select {
	case ch <- scalarMsg{from: e.rank, v: v}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Endpoint) TryRecvScalar(tag Tag) (from int, v int32, ok bool) {
	ch := e.hub.scalarChan(e.rank, tag)
	select {
	case m := <-ch:
		return m.from, m.v, true
	default:
		return 0, 0, false
	}
}

func (e *Endpoint) RecvScalar(ctx context.Context, tag Tag) (from int, v int32, ok bool) {
	ch := e.hub.scalarChan(e.rank, tag)
	select {
	case m := <-ch:
		return m.from, m.v, true
	case <-ctx.Done():
		return 0, 0, false
	}
}

func (e *Endpoint) SendBranch(ctx context.Context, b branch.Branch, dest int, tag Tag) error {
	buf := b.Serialize()
	ch := e.hub.branchChan(dest, tag)
	select {
	case ch <- branchMsg{from: e.rank, buf: buf}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Endpoint) RecvBranch(ctx context.Context, source int, tag Tag, root graph.Graph) (branch.Branch, error) {
	ch := e.hub.branchChan(e.rank, tag)
	select {
	case m := <-ch:
		b, err := branch.Deserialize(m.buf, root)
		if err != nil {
			return branch.Branch{}, fmt.Errorf("fabric: corrupt branch payload from rank %d on tag %d: %w", m.from, tag, err)
		}
		return b, nil
	case <-ctx.Done():
		return branch.Branch{}, ErrCanceled
	}
}

func (e *Endpoint) Broadcast(ctx context.Context, root int, tag Tag, value *int32) error {
	ch := e.hub.broadcastChan(tag)
	if e.rank == root {
		for r := 0; r < e.hub.size; r++ {
			if r == root {
				continue
			}
			select {
			case ch <- *value:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	}
	select {
	case v := <-ch:
		*value = v
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Endpoint) AllGather(ctx context.Context, local uint16) ([]uint16, error) {
	h := e.hub

	h.mu.Lock()
	round := h.allGatherRnd
	if round == nil {
		round = &allGatherRound{values: make([]uint16, h.size), done: make(chan struct{})}
		h.allGatherRnd = round
	}
	h.mu.Unlock()

	round.mu.Lock()
	round.values[e.rank] = local
	round.filled++
	allIn := round.filled == h.size
	snapshot := make([]uint16, h.size)
	copy(snapshot, round.values)
	doneCh := round.done
	round.mu.Unlock()

	if allIn {
		h.mu.Lock()
		if h.allGatherRnd == round {
			h.allGatherRnd = nil
		}
		h.mu.Unlock()
		close(doneCh)
		return snapshot, nil
	}

	select {
	case <-doneCh:
		round.mu.Lock()
		copy(snapshot, round.values)
		round.mu.Unlock()
		return snapshot, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
