// Package branch defines the search-tree node exchanged between
// goroutines and ranks, its wire format, and the depth-biased priority
// queue the worker loop pops from.
package branch

import (
	"encoding/binary"
	"fmt"

	"github.com/GiacomoPauletti/graph-color-number/graph"
)

// Branch is one node of the Zykov search tree. Graph is exclusively
// owned by whoever currently holds the Branch value: the queue, the
// wire (as a serialized buffer), or a single worker goroutine — never
// more than one of those at a time.
type Branch struct {
	Graph graph.Graph
	LB    int32
	UB    uint16
	Depth int32
}

// Empty reports whether b is the sentinel zero Branch returned when a
// receive is abandoned due to termination.
func (b Branch) Empty() bool {
	return b.Graph == nil
}

// Serialize writes the fixed-width prefix (lb, ub, depth) followed by
// the graph's history, in the stable wire format: int32 lb | uint16 ub
// | int32 depth | history bytes.
func (b Branch) Serialize() []byte {
	hist := b.Graph.History().Serialize()
	buf := make([]byte, 4+2+4+len(hist))
	binary.BigEndian.PutUint32(buf[0:4], uint32(b.LB))
	binary.BigEndian.PutUint16(buf[4:6], b.UB)
	binary.BigEndian.PutUint32(buf[6:10], uint32(b.Depth))
	copy(buf[10:], hist)
	return buf
}

// Deserialize restores a Branch from a buffer produced by Serialize,
// materializing its graph by replaying the encoded history against
// root. root must be the same graph (by vertex identity) the original
// branch descended from.
func Deserialize(buf []byte, root graph.Graph) (Branch, error) {
	if len(buf) < 10 {
		return Branch{}, fmt.Errorf("branch: buffer too short: %d bytes", len(buf))
	}
	lb := int32(binary.BigEndian.Uint32(buf[0:4]))
	ub := binary.BigEndian.Uint16(buf[4:6])
	depth := int32(binary.BigEndian.Uint32(buf[6:10]))

	hist, err := graph.DeserializeGraphHistory(buf[10:])
	if err != nil {
		return Branch{}, fmt.Errorf("branch: %w", err)
	}

	return Branch{
		Graph: graph.Replay(root, hist),
		LB:    lb,
		UB:    ub,
		Depth: depth,
	}, nil
}
