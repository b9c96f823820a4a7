package engine

import (
	"github.com/GiacomoPauletti/graph-color-number/branch"
)

// reconstructColoring implements the full-coloring reconstruction of
// §4.7: every surviving vertex's color is painted onto every original
// vertex in its merge-class, via the graph's own bookkeeping. The
// result is indexed by original vertex id (0 unused) and uses at most
// b.UB colors.
func reconstructColoring(b branch.Branch) []uint16 {
	return b.Graph.GetFullColoring()
}

// countColors reports the number of distinct non-zero colors present.
func countColors(coloring []uint16) uint16 {
	seen := make(map[uint16]struct{})
	for _, c := range coloring {
		if c != 0 {
			seen[c] = struct{}{}
		}
	}
	return uint16(len(seen))
}
