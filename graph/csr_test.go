package graph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRootHasNoEdges(t *testing.T) {
	r := require.New(t)
	g := NewRoot(5)
	r.Equal(5, g.NumVertices())
	r.Equal([]int{1, 2, 3, 4, 5}, g.Vertices())
	for u := 1; u <= 5; u++ {
		for v := 1; v <= 5; v++ {
			if u != v {
				r.False(g.HasEdge(u, v))
			}
		}
	}
}

func TestAddEdgeIsSymmetric(t *testing.T) {
	r := require.New(t)
	g := NewRoot(3)
	g.AddEdge(1, 2)
	r.True(g.HasEdge(1, 2))
	r.True(g.HasEdge(2, 1))
	r.False(g.HasEdge(1, 3))
}

func TestMergeVerticesAbsorbsNeighborsAndClass(t *testing.T) {
	r := require.New(t)
	g := NewRoot(4)
	g.AddEdge(2, 3) // 2's neighbor
	g.AddEdge(1, 4) // unrelated
	g.MergeVertices(1, 2)

	r.Equal(3, g.NumVertices())
	r.ElementsMatch([]int{1, 3, 4}, g.Vertices())
	r.True(g.HasEdge(1, 3), "merged vertex should inherit absorbed vertex's edges")
	r.True(g.HasEdge(1, 4))
	r.ElementsMatch([]int{1, 2}, g.GetMergedVertices(1))
}

func TestCloneIsIndependent(t *testing.T) {
	r := require.New(t)
	g := NewRoot(3)
	g.AddEdge(1, 2)
	clone := g.Clone()
	clone.AddEdge(1, 3)

	r.False(g.HasEdge(1, 3), "mutating the clone must not affect the original")
	r.True(clone.HasEdge(1, 2))
	r.True(clone.HasEdge(1, 3))
}

func TestGetFullColoringPaintsMergeClass(t *testing.T) {
	r := require.New(t)
	g := NewRoot(3)
	g.MergeVertices(1, 2)
	g.SetColor(1, 7)

	coloring := g.GetFullColoring()
	r.Equal(uint16(7), coloring[1])
	r.Equal(uint16(7), coloring[2])
	r.Equal(uint16(0), coloring[3])
}

func TestHistoryReplayReproducesGraph(t *testing.T) {
	r := require.New(t)
	root := NewRoot(4)
	g := root.Clone()
	g.AddEdge(1, 2)
	g.MergeVertices(3, 4)

	replayed := Replay(root.Clone(), g.History())
	r.Equal(g.NumVertices(), replayed.NumVertices())
	r.True(replayed.HasEdge(1, 2))
	r.ElementsMatch(g.GetMergedVertices(3), replayed.GetMergedVertices(3))
}
