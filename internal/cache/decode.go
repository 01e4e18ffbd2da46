package cache

import (
	"encoding/binary"
	"errors"
	"hash/crc32"
	"math"

	"github.com/janus-lang/janus/internal/config"
)

// ErrFormatMismatch means the file's format_version doesn't match what
// this build understands -- §6 treats this as a miss, not an error.
var ErrFormatMismatch = errors.New("cache: format_version mismatch")

// ErrCorrupt means a CRC check failed -- §6 requires evicting the file.
var ErrCorrupt = errors.New("cache: checksum mismatch")

// ErrTruncated means the buffer was too short to hold a valid header or
// body; treated the same as ErrCorrupt by callers (evict).
var ErrTruncated = errors.New("cache: truncated file")

// Decode parses raw .jdc bytes back into a Table. Returns ErrFormatMismatch
// for an unknown format_version (miss, keep the file) or ErrCorrupt /
// ErrTruncated for a bad checksum or short read (miss, evict the file).
func Decode(data []byte) (Table, error) {
	if len(data) < headerLen {
		return Table{}, ErrTruncated
	}
	header := data[:headerLen]

	magic := binary.LittleEndian.Uint32(header[0:])
	if magic != config.CacheMagic {
		return Table{}, ErrCorrupt
	}

	formatVersion := binary.LittleEndian.Uint32(header[4:])
	if formatVersion != config.CacheFormatVersion {
		return Table{}, ErrFormatMismatch
	}

	metadataCRC := binary.LittleEndian.Uint32(header[49:])
	gotMetadataCRC := crc32.ChecksumIEEE(header[:49])
	if gotMetadataCRC != metadataCRC {
		return Table{}, ErrCorrupt
	}

	body := data[headerLen:]
	dataCRC := binary.LittleEndian.Uint32(header[53:])
	if crc32.ChecksumIEEE(body) != dataCRC {
		return Table{}, ErrCorrupt
	}

	t := Table{
		FormatVersion: formatVersion,
		TableHash:     binary.LittleEndian.Uint64(header[8:]),
		CreationTs:    binary.LittleEndian.Uint64(header[16:]),
		OptApplied:    OptApplied(header[36]),
		Compression:   math.Float32frombits(binary.LittleEndian.Uint32(header[37:])),
		MemorySaved:   binary.LittleEndian.Uint64(header[41:]),
	}
	sigNameLen := binary.LittleEndian.Uint32(header[24:])
	typeSigLen := binary.LittleEndian.Uint32(header[28:])
	entryCount := binary.LittleEndian.Uint32(header[32:])

	off := 0
	if off+int(sigNameLen) > len(body) {
		return Table{}, ErrTruncated
	}
	t.SigName = string(body[off : off+int(sigNameLen)])
	off += int(sigNameLen)

	t.TypeSignature = make([]uint32, typeSigLen)
	for i := range t.TypeSignature {
		if off+4 > len(body) {
			return Table{}, ErrTruncated
		}
		t.TypeSignature[i] = binary.LittleEndian.Uint32(body[off:])
		off += 4
	}

	t.Entries = make([]Entry, entryCount)
	for i := range t.Entries {
		e, n, err := decodeEntry(body[off:])
		if err != nil {
			return Table{}, err
		}
		t.Entries[i] = e
		off += n
	}

	if off < len(body) {
		tree, n, err := decodeTree(body[off:])
		if err == nil {
			t.Tree = &tree
			off += n
		}
	}
	if off < len(body) {
		t.CompressedBlob = append([]byte(nil), body[off:]...)
	}

	return t, nil
}

func decodeEntry(b []byte) (Entry, int, error) {
	if len(b) < 28 {
		return Entry{}, 0, ErrTruncated
	}
	e := Entry{
		TypePattern:   binary.LittleEndian.Uint64(b[0:]),
		Specificity:   binary.LittleEndian.Uint32(b[8:]),
		CallFrequency: binary.LittleEndian.Uint32(b[12:]),
	}
	fnNameLen := binary.LittleEndian.Uint32(b[16:])
	modNameLen := binary.LittleEndian.Uint32(b[20:])
	e.FunctionID = binary.LittleEndian.Uint32(b[24:])

	off := 28
	if off+int(fnNameLen)+int(modNameLen) > len(b) {
		return Entry{}, 0, ErrTruncated
	}
	e.FnName = string(b[off : off+int(fnNameLen)])
	off += int(fnNameLen)
	e.ModName = string(b[off : off+int(modNameLen)])
	off += int(modNameLen)
	return e, off, nil
}

func decodeTree(b []byte) (DecisionTree, int, error) {
	if len(b) < 8 {
		return DecisionTree{}, 0, ErrTruncated
	}
	nodeCount := binary.LittleEndian.Uint32(b[0:])
	root := binary.LittleEndian.Uint32(b[4:])
	off := 8

	if off+int(nodeCount)*16 > len(b) {
		return DecisionTree{}, 0, ErrTruncated
	}
	nodes := make([]TreeNode, nodeCount)
	for i := range nodes {
		row := b[off:]
		nodes[i] = TreeNode{
			ParamIndex: binary.LittleEndian.Uint32(row[0:]),
			TypeID:     binary.LittleEndian.Uint32(row[4:]),
			Child:      binary.LittleEndian.Uint32(row[8:]),
			Leaf:       binary.LittleEndian.Uint32(row[12:]),
		}
		off += 16
	}
	return DecisionTree{RootIndex: root, Nodes: nodes}, off, nil
}
