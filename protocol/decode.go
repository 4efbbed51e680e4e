package protocol

import (
	"encoding/binary"
	"math"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/blomgraph/engine/graph"
)

// Decode validates and parses a BLOM payload in a single forward pass,
// returning a fully owned Graph. b is borrowed: nothing in the returned
// graph aliases it (each label is copied into its own NFC-normalized
// string, one allocation per label), so the caller may reuse or discard
// b immediately after Decode returns.
func Decode(b []byte) (*graph.Graph, error) {
	r := reader{buf: b}

	hdr, err := readHeader(&r)
	if err != nil {
		return nil, err
	}

	nodeCount := int(hdr.NodeCount)
	edgeCount := int(hdr.EdgeCount)

	var labelStarts, labelEnds []uint32
	var labelData []byte
	if hdr.HasLabels() {
		labelStarts, labelEnds, labelData, err = readLabels(&r, nodeCount)
		if err != nil {
			return nil, err
		}
	}

	ids, err := r.readU32Slice(nodeCount)
	if err != nil {
		return nil, ErrTruncatedBody
	}
	importances, err := r.readF32Slice(nodeCount)
	if err != nil {
		return nil, ErrTruncatedBody
	}
	degrees, err := r.readU16Slice(nodeCount)
	if err != nil {
		return nil, ErrTruncatedBody
	}

	var communities []uint16
	if hdr.HasCommunity() {
		communities, err = r.readU16Slice(nodeCount)
		if err != nil {
			return nil, ErrTruncatedBody
		}
	}

	sources, err := r.readU32Slice(edgeCount)
	if err != nil {
		return nil, ErrTruncatedBody
	}
	targets, err := r.readU32Slice(edgeCount)
	if err != nil {
		return nil, ErrTruncatedBody
	}

	if !r.exhausted() {
		return nil, ErrTrailingBytes
	}

	index := make(map[uint32]int32, nodeCount)
	for i, id := range ids {
		if _, dup := index[id]; dup {
			return nil, duplicateID(id)
		}
		index[id] = int32(i)
	}

	nodes := make([]graph.Node, nodeCount)
	for i := range nodes {
		n := &nodes[i]
		n.ID = ids[i]
		if !validImportance(importances[i]) {
			return nil, invalidImportance(i)
		}
		n.Importance = importances[i]
		n.Degree = degrees[i]
		if communities != nil {
			n.Community = communities[i]
		}
		if labelData != nil {
			s, e := labelStarts[i], labelEnds[i]
			label := labelData[s:e]
			if !utf8.Valid(label) {
				return nil, invalidLabel(i)
			}
			// Canonicalize to NFC so two payloads spelling the same
			// label with different combining-character sequences
			// shape to the same glyph run.
			n.Label = norm.NFC.String(string(label))
		}
	}

	edges := make([]graph.Edge, edgeCount)
	for j := range edges {
		srcIdx, ok := index[sources[j]]
		if !ok {
			return nil, danglingEdge(j)
		}
		dstIdx, ok := index[targets[j]]
		if !ok {
			return nil, danglingEdge(j)
		}
		edges[j] = graph.Edge{Source: srcIdx, Target: dstIdx}
	}

	return graph.New(nodes, edges, index), nil
}

func readHeader(r *reader) (Header, error) {
	if len(r.buf) < HeaderSize {
		return Header{}, ErrTruncatedHeader
	}
	var h Header
	h.Magic = binary.LittleEndian.Uint32(r.buf[0:4])
	if h.Magic != Magic {
		return Header{}, ErrBadMagic
	}
	h.Version = binary.LittleEndian.Uint16(r.buf[4:6])
	if h.Version != Version1 {
		return Header{}, unsupportedVersion(h.Version)
	}
	h.NodeCount = binary.LittleEndian.Uint32(r.buf[6:10])
	h.EdgeCount = binary.LittleEndian.Uint32(r.buf[10:14])
	h.Flags = binary.LittleEndian.Uint16(r.buf[14:16])
	r.pos = HeaderSize
	return h, nil
}

// readLabels reads the total_len, offsets, and data sections and
// returns per-node [start,end) byte ranges into labelData, validating
// that offsets are non-decreasing and within total_len.
func readLabels(r *reader, nodeCount int) (starts, ends []uint32, data []byte, err error) {
	totalLen, err := r.readU32()
	if err != nil {
		return nil, nil, nil, ErrTruncatedBody
	}
	offsets, err := r.readU32Slice(nodeCount)
	if err != nil {
		return nil, nil, nil, ErrTruncatedBody
	}
	data, err = r.readBytes(int(totalLen))
	if err != nil {
		return nil, nil, nil, ErrTruncatedBody
	}
	// Copy the label blob out of the input slice. Decode reads each
	// label from this copy into a separate string; the graph keeps no
	// reference to the blob itself.
	owned := make([]byte, len(data))
	copy(owned, data)

	starts = offsets
	ends = make([]uint32, nodeCount)
	for i := 0; i < nodeCount; i++ {
		if offsets[i] > totalLen {
			return nil, nil, nil, badOffsets(i)
		}
		if i > 0 && offsets[i] < offsets[i-1] {
			return nil, nil, nil, badOffsets(i)
		}
		if i+1 < nodeCount {
			ends[i] = offsets[i+1]
		} else {
			ends[i] = totalLen
		}
	}
	return starts, ends, owned, nil
}

// reader is a bounds-checked forward cursor over the input, mirroring
// the single-pass discipline of the teacher's scene decoder
// (scene/decoder.go): every read advances pos and never re-scans.
type reader struct {
	buf []byte
	pos int
}

func (r *reader) exhausted() bool { return r.pos == len(r.buf) }

func (r *reader) readBytes(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.buf) {
		return nil, errShortRead
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *reader) readU32() (uint32, error) {
	b, err := r.readBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// readU32Slice allocates exactly one []uint32 of length n and fills it
// from n*4 raw bytes, satisfying the "one allocation per output array"
// discipline of spec.md §4.1.
func (r *reader) readU32Slice(n int) ([]uint32, error) {
	b, err := r.readBytes(n * 4)
	if err != nil {
		return nil, err
	}
	out := make([]uint32, n)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return out, nil
}

func (r *reader) readU16Slice(n int) ([]uint16, error) {
	b, err := r.readBytes(n * 2)
	if err != nil {
		return nil, err
	}
	out := make([]uint16, n)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(b[i*2:])
	}
	return out, nil
}

func (r *reader) readF32Slice(n int) ([]float32, error) {
	b, err := r.readBytes(n * 4)
	if err != nil {
		return nil, err
	}
	out := make([]float32, n)
	for i := range out {
		bits := binary.LittleEndian.Uint32(b[i*4:])
		out[i] = math.Float32frombits(bits)
	}
	return out, nil
}

var errShortRead = &DecodeError{Kind: "TruncatedBody"}

func validImportance(v float32) bool {
	return !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0) && v >= 0
}
