package result

import (
	"bytes"
	"strings"
	"testing"

	"github.com/GiacomoPauletti/graph-color-number/graph"
	"github.com/stretchr/testify/require"
)

func TestWriteFormatsKeysAndColoring(t *testing.T) {
	r := require.New(t)
	var buf bytes.Buffer
	err := Write(&buf, Report{
		ProblemInstanceFileName: "myciel3.col",
		NumVertices:             2,
		NumColors:               2,
		IsWithinTimeLimit:       true,
		Coloring:                []uint16{0, 1, 2},
	})
	r.NoError(err)

	out := buf.String()
	r.True(strings.Contains(out, "problem_instance_file_name myciel3.col"))
	r.True(strings.Contains(out, "number_of_colors 2"))
	r.True(strings.Contains(out, "is_within_time_limit true"))
	r.True(strings.Contains(out, "1 1"))
	r.True(strings.Contains(out, "2 2"))
}

func TestVerifyDetectsProperColoring(t *testing.T) {
	r := require.New(t)
	g := graph.NewRoot(3)
	g.AddEdge(1, 2)
	r.NoError(Verify(g, []uint16{0, 1, 2, 1}))
}

func TestVerifyRejectsAdjacentSameColor(t *testing.T) {
	r := require.New(t)
	g := graph.NewRoot(3)
	g.AddEdge(1, 2)
	r.Error(Verify(g, []uint16{0, 1, 1, 1}))
}

func TestVerifyRejectsUncoloredVertex(t *testing.T) {
	r := require.New(t)
	g := graph.NewRoot(2)
	r.Error(Verify(g, []uint16{0, 1, 0}))
}
