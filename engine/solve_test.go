package engine

import (
	"context"
	"testing"
	"time"

	"github.com/GiacomoPauletti/graph-color-number/graph"
	"github.com/stretchr/testify/require"
)

func defaultStrategies() Strategies {
	return Strategies{
		Clique:    graph.GreedyClique{},
		Color:     graph.GreedyColor{},
		Branching: graph.MaxDegreeNonAdjacent{},
	}
}

// buildMyciel3 constructs the Mycielski graph over C5: 11 vertices,
// triangle-free, chi=4. Vertices 1-5 are the cycle, 6-10 their
// shadows, 11 the apex connected to every shadow.
func buildMyciel3() graph.Graph {
	g := graph.NewRoot(11)
	cycle := [5]int{1, 2, 3, 4, 5}
	for i := 0; i < 5; i++ {
		g.AddEdge(cycle[i], cycle[(i+1)%5])
	}
	for i := 0; i < 5; i++ {
		v := cycle[i]
		shadow := v + 5
		prev := cycle[(i+4)%5]
		next := cycle[(i+1)%5]
		g.AddEdge(shadow, prev)
		g.AddEdge(shadow, next)
	}
	apex := 11
	for i := 0; i < 5; i++ {
		g.AddEdge(apex, cycle[i]+5)
	}
	return g
}

func buildComplete(n int) graph.Graph {
	g := graph.NewRoot(n)
	for u := 1; u <= n; u++ {
		for v := u + 1; v <= n; v++ {
			g.AddEdge(u, v)
		}
	}
	return g
}

func buildCycle(n int) graph.Graph {
	g := graph.NewRoot(n)
	for v := 1; v <= n; v++ {
		next := v + 1
		if next > n {
			next = 1
		}
		g.AddEdge(v, next)
	}
	return g
}

// Scenario 1 (§8.1): myciel3, balanced, single rank, chi=4.
func TestSolveMyciel3Balanced(t *testing.T) {
	r := require.New(t)
	root := buildMyciel3()
	cfg := Config{Timeout: 60 * time.Second, SolGatherPeriod: 10 * time.Second, Balanced: true}
	eng := New(root, 1, cfg, defaultStrategies(), nil, nil)

	sol, err := eng.Solve(context.Background())
	r.NoError(err)
	r.True(sol.WithinTimeLimit)
	r.Equal(uint16(4), sol.NumColors)
}

// Scenario 2 (§8.2), run on myciel3 instead of queen5_5: a 4-rank run of
// the unbalanced depth-rank-gated variant must still converge to the
// graph's true chromatic number.
func TestSolveUnbalancedFourRanks(t *testing.T) {
	r := require.New(t)
	root := buildMyciel3()
	cfg := Config{Timeout: 60 * time.Second, SolGatherPeriod: 10 * time.Second, Balanced: false}
	eng := New(root, 4, cfg, defaultStrategies(), nil, nil)

	sol, err := eng.Solve(context.Background())
	r.NoError(err)
	r.Equal(uint16(4), sol.NumColors)
}

// Scenario 3 (§8.3): K5 with P=2, terminates via ub==expected_chi at
// the root without any branching.
func TestSolveK5ExpectedChiAtRoot(t *testing.T) {
	r := require.New(t)
	root := buildComplete(5)
	cfg := Config{Timeout: 60 * time.Second, SolGatherPeriod: 10 * time.Second, Balanced: true, ExpectedChi: 5}
	eng := New(root, 2, cfg, defaultStrategies(), nil, nil)

	sol, err := eng.Solve(context.Background())
	r.NoError(err)
	r.Equal(uint16(5), sol.NumColors)
}

// Scenario 4 (§8.4): an empty graph needs exactly one color.
func TestSolveEmptyGraph(t *testing.T) {
	r := require.New(t)
	root := graph.NewRoot(10)
	cfg := Config{Timeout: 60 * time.Second, SolGatherPeriod: 10 * time.Second, Balanced: true}
	eng := New(root, 1, cfg, defaultStrategies(), nil, nil)

	sol, err := eng.Solve(context.Background())
	r.NoError(err)
	r.Equal(uint16(1), sol.NumColors)
}

// Scenario 5 (§8.5): an even cycle is bipartite; lb==ub already holds
// at the root, exercising the first-iteration optimum path.
func TestSolveBipartiteCycle(t *testing.T) {
	r := require.New(t)
	root := buildCycle(6)
	cfg := Config{Timeout: 60 * time.Second, SolGatherPeriod: 10 * time.Second, Balanced: true}
	eng := New(root, 1, cfg, defaultStrategies(), nil, nil)

	sol, err := eng.Solve(context.Background())
	r.NoError(err)
	r.Equal(uint16(2), sol.NumColors)
}

// Scenario 6 (§8.6): an effectively-zero timeout forces termination
// before the search can complete; the run must still report a usable,
// valid coloring and mark itself as not within the time limit.
func TestSolveTimeoutReportsBestKnown(t *testing.T) {
	r := require.New(t)
	root := buildMyciel3()
	cfg := Config{Timeout: time.Nanosecond, SolGatherPeriod: 10 * time.Second, Balanced: true}
	eng := New(root, 1, cfg, defaultStrategies(), nil, nil)

	sol, err := eng.Solve(context.Background())
	r.NoError(err)
	r.False(sol.WithinTimeLimit)
	r.Greater(sol.NumColors, uint16(0))
	r.LessOrEqual(int(sol.NumColors), root.NumVertices())
}

// best-UB must never be observed rising once search has produced a
// tighter bound.
func TestBoundStateNeverRises(t *testing.T) {
	r := require.New(t)
	b := newBoundState(100)
	r.True(b.Improve(50))
	r.False(b.Improve(75), "a higher value must never overwrite a tighter bound")
	r.Equal(uint16(50), b.Load())
}
