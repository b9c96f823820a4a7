package graph

import (
	"encoding/binary"
	"fmt"
)

// OpKind identifies a single graph-history operation.
type OpKind byte

const (
	// OpAddEdge forces u and v apart.
	OpAddEdge OpKind = 0
	// OpMerge contracts v into u.
	OpMerge OpKind = 1
)

// HistoryOp is one step of a graph history: either an add-edge or a
// merge-vertices operation, addressed by original vertex id.
type HistoryOp struct {
	Kind OpKind
	U    int32
	V    int32
}

// GraphHistory is the minimal sequence of add-edge/merge operations
// that, replayed against the original root graph, reconstructs a given
// branch's graph. It is what actually crosses the wire for a Branch,
// since replaying a short op log is far cheaper than serializing a
// full adjacency structure.
type GraphHistory struct {
	Ops []HistoryOp
}

const historyOpSize = 1 + 4 + 4 // kind byte, u int32, v int32

// Serialize encodes the history as a flat byte buffer: a uint32 op
// count followed by that many fixed-width records.
func (h *GraphHistory) Serialize() []byte {
	buf := make([]byte, 4+len(h.Ops)*historyOpSize)
	binary.BigEndian.PutUint32(buf[0:4], uint32(len(h.Ops)))
	off := 4
	for _, op := range h.Ops {
		buf[off] = byte(op.Kind)
		binary.BigEndian.PutUint32(buf[off+1:off+5], uint32(op.U))
		binary.BigEndian.PutUint32(buf[off+5:off+9], uint32(op.V))
		off += historyOpSize
	}
	return buf
}

// DeserializeGraphHistory decodes a buffer produced by Serialize.
func DeserializeGraphHistory(buf []byte) (*GraphHistory, error) {
	if len(buf) < 4 {
		return nil, fmt.Errorf("graph history: buffer too short: %d bytes", len(buf))
	}
	count := binary.BigEndian.Uint32(buf[0:4])
	want := 4 + int(count)*historyOpSize
	if len(buf) != want {
		return nil, fmt.Errorf("graph history: expected %d bytes for %d ops, got %d", want, count, len(buf))
	}
	ops := make([]HistoryOp, count)
	off := 4
	for i := range ops {
		kind := OpKind(buf[off])
		if kind != OpAddEdge && kind != OpMerge {
			return nil, fmt.Errorf("graph history: unknown op kind %d at index %d", kind, i)
		}
		u := int32(binary.BigEndian.Uint32(buf[off+1 : off+5]))
		v := int32(binary.BigEndian.Uint32(buf[off+5 : off+9]))
		ops[i] = HistoryOp{Kind: kind, U: u, V: v}
		off += historyOpSize
	}
	return &GraphHistory{Ops: ops}, nil
}

func (h *GraphHistory) clone() *GraphHistory {
	ops := make([]HistoryOp, len(h.Ops))
	copy(ops, h.Ops)
	return &GraphHistory{Ops: ops}
}

// Replay rebuilds a Graph by cloning root and applying hist's operations
// in order. root must be the same graph (by vertex identity) the
// history was recorded against.
func Replay(root Graph, hist *GraphHistory) Graph {
	g := root.Clone()
	for _, op := range hist.Ops {
		switch op.Kind {
		case OpAddEdge:
			g.AddEdge(int(op.U), int(op.V))
		case OpMerge:
			g.MergeVertices(int(op.U), int(op.V))
		}
	}
	return g
}
