// Package cache implements the Serializer and Cache (spec §4.M): the
// exact `.jdc` binary format (§6) plus a content-addressed on-disk cache
// with age+LRU cleanup.
//
// Framing follows funxy's own internal/vm/bundle.go (magic + version byte
// + structured payload) and internal/ext/cache.go (content-addressed key,
// directory layout) -- generalized to the dispatch table payload the
// spec's wire format names field-by-field.
package cache

import (
	"encoding/binary"
	"hash/crc32"
	"math"

	"github.com/janus-lang/janus/internal/config"
)

// OptApplied mirrors the header's opt_applied enum byte.
type OptApplied uint8

const (
	OptNone OptApplied = iota
	OptTreeOnly
	OptCompressedOnly
	OptTreeAndCompressed
)

// Entry is one dispatch-table row as persisted on disk (§6 Entry).
type Entry struct {
	TypePattern   uint64
	Specificity   uint32
	CallFrequency uint32
	FunctionID    uint32
	FnName        string
	ModName       string
}

// TreeNode is one breadth-first decision-tree node as persisted on disk.
// Children are indices into the node array; 0xFFFFFFFF marks "no child".
type TreeNode struct {
	ParamIndex uint32
	TypeID     uint32
	Child      uint32
	Leaf       uint32 // index into Entries, or 0xFFFFFFFF if not a leaf
}

const NoChild = 0xFFFFFFFF

// DecisionTree is the optional persisted tree (§6 DecisionTree).
type DecisionTree struct {
	RootIndex uint32
	Nodes     []TreeNode
}

// Table is the full decoded contents of one .jdc file.
type Table struct {
	FormatVersion  uint32
	TableHash      uint64
	CreationTs     uint64
	SigName        string
	TypeSignature  []uint32
	Entries        []Entry
	Tree           *DecisionTree
	CompressedBlob []byte
	OptApplied     OptApplied
	Compression    float32
	MemorySaved    uint64
}

// Encode writes t into the exact .jdc layout from §6: fixed header (with
// both CRC fields zeroed while it is itself checksummed), then the body,
// then the two checksums filled in.
func Encode(t Table) []byte {
	body := encodeBody(t)

	header := make([]byte, headerLen)
	binary.LittleEndian.PutUint32(header[0:], config.CacheMagic)
	binary.LittleEndian.PutUint32(header[4:], t.FormatVersion)
	binary.LittleEndian.PutUint64(header[8:], t.TableHash)
	binary.LittleEndian.PutUint64(header[16:], t.CreationTs)
	binary.LittleEndian.PutUint32(header[24:], uint32(len(t.SigName)))
	binary.LittleEndian.PutUint32(header[28:], uint32(len(t.TypeSignature)))
	binary.LittleEndian.PutUint32(header[32:], uint32(len(t.Entries)))
	header[36] = byte(t.OptApplied)
	binary.LittleEndian.PutUint32(header[37:], math.Float32bits(t.Compression))
	binary.LittleEndian.PutUint64(header[41:], t.MemorySaved)
	// metadata_crc32 at [49:53], data_crc32 at [53:57], both zeroed for now.

	metadataCRC := crc32.ChecksumIEEE(header[:49])
	binary.LittleEndian.PutUint32(header[49:], metadataCRC)
	dataCRC := crc32.ChecksumIEEE(body)
	binary.LittleEndian.PutUint32(header[53:], dataCRC)

	out := make([]byte, 0, len(header)+len(body))
	out = append(out, header...)
	out = append(out, body...)
	return out
}

const headerLen = 57

func encodeBody(t Table) []byte {
	var buf []byte
	buf = append(buf, []byte(t.SigName)...)

	typeSig := make([]byte, len(t.TypeSignature)*4)
	for i, id := range t.TypeSignature {
		binary.LittleEndian.PutUint32(typeSig[i*4:], id)
	}
	buf = append(buf, typeSig...)

	for _, e := range t.Entries {
		buf = append(buf, encodeEntry(e)...)
	}

	if t.Tree != nil {
		buf = append(buf, encodeTree(*t.Tree)...)
	}
	if t.CompressedBlob != nil {
		buf = append(buf, t.CompressedBlob...)
	}
	return buf
}

func encodeEntry(e Entry) []byte {
	fixed := make([]byte, 24)
	binary.LittleEndian.PutUint64(fixed[0:], e.TypePattern)
	binary.LittleEndian.PutUint32(fixed[8:], e.Specificity)
	binary.LittleEndian.PutUint32(fixed[12:], e.CallFrequency)
	binary.LittleEndian.PutUint32(fixed[16:], uint32(len(e.FnName)))
	binary.LittleEndian.PutUint32(fixed[20:], uint32(len(e.ModName)))

	out := make([]byte, 0, 28+len(e.FnName)+len(e.ModName))
	out = append(out, fixed...)
	fnID := make([]byte, 4)
	binary.LittleEndian.PutUint32(fnID, e.FunctionID)
	out = append(out, fnID...)
	out = append(out, []byte(e.FnName)...)
	out = append(out, []byte(e.ModName)...)
	return out
}

func encodeTree(tree DecisionTree) []byte {
	head := make([]byte, 8)
	binary.LittleEndian.PutUint32(head[0:], uint32(len(tree.Nodes)))
	binary.LittleEndian.PutUint32(head[4:], tree.RootIndex)

	out := make([]byte, 0, len(head)+len(tree.Nodes)*16)
	out = append(out, head...)
	for _, n := range tree.Nodes {
		row := make([]byte, 16)
		binary.LittleEndian.PutUint32(row[0:], n.ParamIndex)
		binary.LittleEndian.PutUint32(row[4:], n.TypeID)
		binary.LittleEndian.PutUint32(row[8:], n.Child)
		binary.LittleEndian.PutUint32(row[12:], n.Leaf)
		out = append(out, row...)
	}
	return out
}
