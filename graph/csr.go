package graph

import "sync"

// CSRGraph is the default Graph implementation: an adjacency matrix
// over the original vertex ids (a dense analogue of the original
// engine's Edges = vector<vector<bool>> representation) plus a
// merge-class table tracking which original vertices a surviving
// vertex now speaks for.
//
// Adjacency is stored densely rather than as true compressed-sparse-row
// arrays because branches mutate their graph in place (add-edge,
// merge-vertices) far more often than they scan it; a dense symmetric
// matrix keeps both operations O(n) with no reallocation, at the cost
// of O(n^2) memory, which is acceptable at the DIMACS instance sizes
// this engine targets.
type CSRGraph struct {
	mu         sync.RWMutex
	n          int
	active     []bool
	adj        [][]bool
	mergeClass [][]int
	colors     []uint16
	hist       GraphHistory
}

// NewRoot builds the initial graph over vertices 1..n with no edges.
func NewRoot(n int) *CSRGraph {
	g := &CSRGraph{
		n:          n,
		active:     make([]bool, n+1),
		adj:        make([][]bool, n+1),
		mergeClass: make([][]int, n+1),
		colors:     make([]uint16, n+1),
	}
	for v := 1; v <= n; v++ {
		g.active[v] = true
		g.adj[v] = make([]bool, n+1)
		g.mergeClass[v] = []int{v}
	}
	return g
}

// AddEdge forces u and v apart. Safe to call whether or not they are
// already adjacent.
func (g *CSRGraph) AddEdge(u, v int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.addEdgeLocked(u, v)
	g.hist.Ops = append(g.hist.Ops, HistoryOp{Kind: OpAddEdge, U: int32(u), V: int32(v)})
}

func (g *CSRGraph) addEdgeLocked(u, v int) {
	if u == v {
		return
	}
	g.adj[u][v] = true
	g.adj[v][u] = true
}

// MergeVertices contracts v into u: every neighbor of v becomes a
// neighbor of u, u's merge-class absorbs v's, and v stops surviving.
func (g *CSRGraph) MergeVertices(u, v int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for w := 1; w <= g.n; w++ {
		if w == u || w == v || !g.active[w] {
			continue
		}
		if g.adj[v][w] {
			g.addEdgeLocked(u, w)
		}
	}
	g.mergeClass[u] = append(g.mergeClass[u], g.mergeClass[v]...)
	g.mergeClass[v] = nil
	g.active[v] = false
	for w := 1; w <= g.n; w++ {
		g.adj[v][w] = false
		g.adj[w][v] = false
	}

	g.hist.Ops = append(g.hist.Ops, HistoryOp{Kind: OpMerge, U: int32(u), V: int32(v)})
}

// Clone returns a deep, independently mutable copy.
func (g *CSRGraph) Clone() Graph {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := &CSRGraph{
		n:          g.n,
		active:     append([]bool(nil), g.active...),
		adj:        make([][]bool, g.n+1),
		mergeClass: make([][]int, g.n+1),
		colors:     append([]uint16(nil), g.colors...),
		hist:       *g.hist.clone(),
	}
	for v := 1; v <= g.n; v++ {
		out.adj[v] = append([]bool(nil), g.adj[v]...)
		if g.mergeClass[v] != nil {
			out.mergeClass[v] = append([]int(nil), g.mergeClass[v]...)
		}
	}
	return out
}

// NumVertices reports the number of surviving vertices.
func (g *CSRGraph) NumVertices() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	count := 0
	for v := 1; v <= g.n; v++ {
		if g.active[v] {
			count++
		}
	}
	return count
}

// Vertices returns surviving vertex ids in ascending order.
func (g *CSRGraph) Vertices() []int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]int, 0, g.n)
	for v := 1; v <= g.n; v++ {
		if g.active[v] {
			out = append(out, v)
		}
	}
	return out
}

// HasEdge reports whether u and v are adjacent.
func (g *CSRGraph) HasEdge(u, v int) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if u < 1 || u > g.n || v < 1 || v > g.n {
		return false
	}
	return g.adj[u][v]
}

// Neighbors returns the surviving neighbors of v in ascending order.
func (g *CSRGraph) Neighbors(v int) []int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if v < 1 || v > g.n {
		return nil
	}
	out := make([]int, 0)
	for w := 1; w <= g.n; w++ {
		if g.active[w] && g.adj[v][w] {
			out = append(out, w)
		}
	}
	return out
}

// Color returns the color assigned to v, or 0 if unset.
func (g *CSRGraph) Color(v int) uint16 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if v < 1 || v > g.n {
		return 0
	}
	return g.colors[v]
}

// SetColor assigns c to v.
func (g *CSRGraph) SetColor(v int, c uint16) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if v < 1 || v > g.n {
		return
	}
	g.colors[v] = c
}

// GetMergedVertices returns the original vertex ids now represented by
// the surviving vertex u.
func (g *CSRGraph) GetMergedVertices(u int) []int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if u < 1 || u > g.n {
		return nil
	}
	return append([]int(nil), g.mergeClass[u]...)
}

// GetFullColoring returns a slice indexed by original vertex id holding
// the color of whichever surviving vertex each original vertex belongs
// to.
func (g *CSRGraph) GetFullColoring() []uint16 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]uint16, g.n+1)
	for v := 1; v <= g.n; v++ {
		if !g.active[v] {
			continue
		}
		for _, orig := range g.mergeClass[v] {
			out[orig] = g.colors[v]
		}
	}
	return out
}

// SetFullColoring overwrites per-vertex colors wholesale.
func (g *CSRGraph) SetFullColoring(coloring []uint16) {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := g.n + 1
	if len(coloring) < n {
		n = len(coloring)
	}
	for v := 0; v < n; v++ {
		g.colors[v] = coloring[v]
	}
}

// History returns the replay log that reconstructs this graph from the
// root graph it descends from.
func (g *CSRGraph) History() *GraphHistory {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.hist.clone()
}
