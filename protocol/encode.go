package protocol

import (
	"encoding/binary"
	"math"

	"github.com/blomgraph/engine/graph"
)

// EncodeOptions controls which optional sections Encode writes.
type EncodeOptions struct {
	WithLabels    bool
	WithCommunity bool
}

// Encode serializes g back into a BLOM payload, the symmetric inverse
// of Decode. It exists primarily so tests can exercise the round-trip
// property from spec.md §8; it is grounded on the teacher's
// scene/encoding.go encode/decode pair, which is also kept symmetric
// for exactly that reason.
func Encode(g *graph.Graph, opts EncodeOptions) []byte {
	nodeCount := g.NodeCount()
	edgeCount := g.EdgeCount()

	var flags uint16
	if opts.WithLabels {
		flags |= FlagHasLabels
	}
	if opts.WithCommunity {
		flags |= FlagHasCommunity
	}

	buf := make([]byte, 0, HeaderSize+estimateBodySize(g, opts))

	buf = appendU32(buf, Magic)
	buf = appendU16(buf, Version1)
	buf = appendU32(buf, uint32(nodeCount))
	buf = appendU32(buf, uint32(edgeCount))
	buf = appendU16(buf, flags)

	if opts.WithLabels {
		labelBlob := make([]byte, 0, nodeCount*8)
		offsets := make([]uint32, nodeCount)
		for i := 0; i < nodeCount; i++ {
			offsets[i] = uint32(len(labelBlob))
			labelBlob = append(labelBlob, g.Node(i).Label...)
		}
		buf = appendU32(buf, uint32(len(labelBlob)))
		for _, off := range offsets {
			buf = appendU32(buf, off)
		}
		buf = append(buf, labelBlob...)
	}

	for i := 0; i < nodeCount; i++ {
		buf = appendU32(buf, g.Node(i).ID)
	}
	for i := 0; i < nodeCount; i++ {
		buf = appendF32(buf, g.Node(i).Importance)
	}
	for i := 0; i < nodeCount; i++ {
		buf = appendU16(buf, g.Node(i).Degree)
	}
	if opts.WithCommunity {
		for i := 0; i < nodeCount; i++ {
			buf = appendU16(buf, g.Node(i).Community)
		}
	}

	for j := 0; j < edgeCount; j++ {
		e := g.Edge(j)
		buf = appendU32(buf, g.Node(int(e.Source)).ID)
	}
	for j := 0; j < edgeCount; j++ {
		e := g.Edge(j)
		buf = appendU32(buf, g.Node(int(e.Target)).ID)
	}

	return buf
}

func estimateBodySize(g *graph.Graph, opts EncodeOptions) int {
	n, e := g.NodeCount(), g.EdgeCount()
	size := n*4 + n*4 + n*2 + e*4 + e*4
	if opts.WithCommunity {
		size += n * 2
	}
	if opts.WithLabels {
		size += 4 + n*4
		for i := 0; i < n; i++ {
			size += len(g.Node(i).Label)
		}
	}
	return size
}

func appendU32(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

func appendU16(buf []byte, v uint16) []byte {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	return append(buf, tmp[:]...)
}

func appendF32(buf []byte, v float32) []byte {
	return appendU32(buf, math.Float32bits(v))
}
