// Binary encoding for the file-batch blobs stored per file bucket.
//
// Edges are the dominant, most numerous blob per file and have a simple
// fixed shape (three strings), so they get a compact length-prefixed
// binary format instead of JSON. Nodes and unresolved references are
// encoded with gob, which gives most of JSON's flexibility at a smaller
// size without a bespoke format.
package bbolt

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"

	"github.com/corey/codegraph/internal/graph"
)

// encodeEdges encodes edges to a compact binary format (little-endian):
//
//	edgeCount: uint32
//	per edge:
//	  sourceLen: uint16, source: [sourceLen]byte
//	  targetLen: uint16, target: [targetLen]byte
//	  kindLen:   uint16, kind:   [kindLen]byte
func encodeEdges(edges []graph.Edge) []byte {
	totalSize := 4
	for _, e := range edges {
		totalSize += 6 + len(e.SourceID) + len(e.TargetID) + len(e.Kind)
	}

	buf := make([]byte, totalSize)
	offset := 0
	binary.LittleEndian.PutUint32(buf[offset:], uint32(len(edges)))
	offset += 4

	for _, e := range edges {
		offset = putLengthPrefixed(buf, offset, e.SourceID)
		offset = putLengthPrefixed(buf, offset, e.TargetID)
		offset = putLengthPrefixed(buf, offset, string(e.Kind))
	}
	return buf
}

func putLengthPrefixed(buf []byte, offset int, s string) int {
	binary.LittleEndian.PutUint16(buf[offset:], uint16(len(s)))
	offset += 2
	copy(buf[offset:], s)
	return offset + len(s)
}

// decodeEdges decodes the format encodeEdges produces. Every read is
// bounds-checked to avoid panics on corrupt data.
func decodeEdges(data []byte) ([]graph.Edge, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("edge blob too short: %d bytes", len(data))
	}
	offset := 0
	count := binary.LittleEndian.Uint32(data[offset:])
	offset += 4
	// Each edge needs at least its three 2-byte length prefixes.
	if uint64(count)*6 > uint64(len(data)-offset) {
		return nil, fmt.Errorf("edge count %d exceeds blob size %d", count, len(data))
	}

	edges := make([]graph.Edge, count)
	for i := uint32(0); i < count; i++ {
		source, next, err := readLengthPrefixed(data, offset, "source", i)
		if err != nil {
			return nil, err
		}
		offset = next

		target, next, err := readLengthPrefixed(data, offset, "target", i)
		if err != nil {
			return nil, err
		}
		offset = next

		kind, next, err := readLengthPrefixed(data, offset, "kind", i)
		if err != nil {
			return nil, err
		}
		offset = next

		edges[i] = graph.Edge{SourceID: source, TargetID: target, Kind: graph.EdgeKind(kind)}
	}
	return edges, nil
}

func readLengthPrefixed(data []byte, offset int, field string, index uint32) (string, int, error) {
	if offset+2 > len(data) {
		return "", 0, fmt.Errorf("truncated at edge %d %s length (offset %d)", index, field, offset)
	}
	length := int(binary.LittleEndian.Uint16(data[offset:]))
	offset += 2
	if offset+length > len(data) {
		return "", 0, fmt.Errorf("truncated at edge %d %s (offset %d, need %d)", index, field, offset, length)
	}
	return string(data[offset : offset+length]), offset + length, nil
}

// encodeGob encodes a value using gob.
func encodeGob(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeGob decodes gob-encoded data into target. Target must be a pointer.
func decodeGob(data []byte, target interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(target)
}
