package branch

import (
	"testing"

	"github.com/GiacomoPauletti/graph-color-number/graph"
	"github.com/stretchr/testify/require"
)

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	r := require.New(t)

	root := graph.NewRoot(5)
	g := root.Clone()
	g.AddEdge(1, 2)
	g.MergeVertices(3, 4)

	b := Branch{Graph: g, LB: 2, UB: 4, Depth: 3}
	buf := b.Serialize()

	got, err := Deserialize(buf, root.Clone())
	r.NoError(err)
	r.Equal(b.LB, got.LB)
	r.Equal(b.UB, got.UB)
	r.Equal(b.Depth, got.Depth)
	r.True(got.Graph.HasEdge(1, 2))
	r.ElementsMatch(g.GetMergedVertices(3), got.Graph.GetMergedVertices(3))
}

func TestDeserializeRejectsShortBuffer(t *testing.T) {
	r := require.New(t)
	_, err := Deserialize([]byte{1, 2, 3}, graph.NewRoot(1))
	r.Error(err)
}

func TestEmptyBranch(t *testing.T) {
	r := require.New(t)
	r.True(Branch{}.Empty())
	r.False(Branch{Graph: graph.NewRoot(1)}.Empty())
}
