// Package graph provides the adjacency-matrix graph representation consumed by
// the branch-and-bound engine, along with the heuristic strategies
// (clique lower bound, coloring upper bound, branching pair selection)
// that the engine treats as pluggable capabilities.
package graph

// NoVertex is returned by a BranchingStrategy when no non-adjacent pair
// remains to branch on.
const NoVertex = -1

// Graph is the capability interface the engine depends on. CSRGraph is
// the concrete implementation shipped by this package, but the engine
// never type-asserts back to it.
type Graph interface {
	// Clone returns a deep, independently mutable copy.
	Clone() Graph
	// NumVertices reports how many original vertices still survive
	// (have not been absorbed into another vertex's merge-class).
	NumVertices() int
	// Vertices returns the surviving vertex ids in ascending order.
	Vertices() []int
	// HasEdge reports whether u and v are adjacent.
	HasEdge(u, v int) bool
	// Neighbors returns the surviving neighbors of v in ascending order.
	Neighbors(v int) []int
	// AddEdge forces u and v to receive different colors.
	AddEdge(u, v int)
	// MergeVertices contracts v into u: v stops surviving, and u's
	// merge-class absorbs v's merge-class.
	MergeVertices(u, v int)
	// Color returns the color currently assigned to v, or 0 if unset.
	Color(v int) uint16
	// SetColor assigns c to v.
	SetColor(v int, c uint16)
	// GetMergedVertices returns the original vertex ids now represented
	// by the surviving vertex u, including u itself.
	GetMergedVertices(u int) []int
	// GetFullColoring returns a slice indexed by original vertex id
	// (0 unused) holding the color of whichever surviving vertex each
	// original vertex currently belongs to.
	GetFullColoring() []uint16
	// SetFullColoring overwrites per-vertex colors wholesale, indexed by
	// original vertex id.
	SetFullColoring(coloring []uint16)
	// History returns the replay log that reconstructs this graph from
	// the original root graph it was cloned from.
	History() *GraphHistory
}

// CliqueStrategy computes a lower bound on chi(G) via a max-clique
// heuristic.
type CliqueStrategy interface {
	FindClique(g Graph) int
}

// ColorStrategy computes an upper bound on chi(G) via a heuristic
// proper coloring, setting colors on g and reporting the count used.
type ColorStrategy interface {
	Color(g Graph) uint16
}

// BranchingStrategy selects the next non-adjacent pair to branch the
// search tree on.
type BranchingStrategy interface {
	Choose(g Graph) (u, v int)
}
