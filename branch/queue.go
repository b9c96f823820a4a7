package branch

import (
	"container/heap"
	"sync"
)

// Queue is a priority queue of Branches keyed by depth — deepest first
// — approximating depth-first exploration so the frontier stays small
// while pruning aggressively against the current best upper bound. All
// operations are serialized by a single mutex; Push/Pop move Branch
// values in and out without copying the underlying graph.
type Queue struct {
	mu sync.Mutex
	h  depthHeap
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	q := &Queue{}
	heap.Init(&q.h)
	return q
}

// Push inserts b.
func (q *Queue) Push(b Branch) {
	q.mu.Lock()
	defer q.mu.Unlock()
	heap.Push(&q.h, b)
}

// Pop removes and returns the deepest branch, or (Branch{}, false) if
// the queue is empty.
func (q *Queue) Pop() (Branch, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.h) == 0 {
		return Branch{}, false
	}
	b := heap.Pop(&q.h).(Branch)
	return b, true
}

// Len reports the current size.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.h)
}

// Empty reports whether the queue currently holds no branches.
func (q *Queue) Empty() bool {
	return q.Len() == 0
}

// depthHeap is a container/heap.Interface over Branch values, ordered
// so the largest Depth sorts first (a max-heap on depth).
type depthHeap []Branch

func (h depthHeap) Len() int            { return len(h) }
func (h depthHeap) Less(i, j int) bool  { return h[i].Depth > h[j].Depth }
func (h depthHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *depthHeap) Push(x interface{}) { *h = append(*h, x.(Branch)) }
func (h *depthHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
