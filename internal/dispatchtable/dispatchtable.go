// Package dispatchtable implements the Optimized Dispatch Table and
// Optimizer (spec §4.L): a flat sorted entries array, an optional greedy
// -entropy decision tree, and an optional compression pass, all indexed
// by type_pattern hash.
//
// The flat, index-addressed layout follows funxy's own vm.Chunk /
// opcodes.go discipline: constants and instructions live in arrays
// addressed by small integer indices rather than pointer chains, so the
// table stays cache-friendly and trivially serializable (internal/cache
// persists it directly).
package dispatchtable

import (
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/janus-lang/janus/internal/registry"
	"github.com/janus-lang/janus/internal/signature"
)

// Entry is one flat, sorted row of the dispatch table.
type Entry struct {
	TypePattern    uint64
	ParamTypes     []registry.TypeId
	Module         string
	Priority       int
	Rank           int
	CallFrequency  uint32
	Implementation signature.Implementation
}

// TypePatternHash hashes a parameter-type-id tuple into the table_hash
// key used to address Entry rows and decision-tree branches.
func TypePatternHash(params []registry.TypeId) uint64 {
	h := xxhash.New()
	buf := make([]byte, 4)
	for _, p := range params {
		buf[0] = byte(p)
		buf[1] = byte(p >> 8)
		buf[2] = byte(p >> 16)
		buf[3] = byte(p >> 24)
		h.Write(buf)
	}
	return h.Sum64()
}

// Node is one decision-tree branch or leaf. A leaf has Param == -1 and a
// non-empty Leaves slice containing the implementations tied at that
// point (ambiguity survives as a multi-entry leaf rather than being
// silently resolved by the tree).
type Node struct {
	Param    int // parameter index this node branches on, -1 for a leaf
	Branches map[registry.TypeId]*Node
	Leaves   []Entry
}

// Table is one signature's optimized dispatch structure.
type Table struct {
	SignatureName string
	Entries       []Entry
	Tree          *Node // nil unless the optimizer built one
	Compressed    []byte // nil unless the optimizer compressed it
}

// Build sorts entries by (specificity desc, call frequency desc) -- the
// Optimized Dispatch Table's own ordering (§4.L), distinct from
// Module(K)'s MergeDispatchTables order (module priority asc, specificity
// desc), which applies only when folding several modules' exports into
// one cross-module view before this table is ever built.
func Build(name string, entries []Entry) *Table {
	sorted := append([]Entry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Rank != sorted[j].Rank {
			return sorted[i].Rank > sorted[j].Rank
		}
		return sorted[i].CallFrequency > sorted[j].CallFrequency
	})
	return &Table{SignatureName: name, Entries: sorted}
}

// Lookup performs a linear scan over the flat entries for the first row
// whose ParamTypes exactly match argTypes. This is the uncompressed,
// un-treed baseline every optimization must stay within 1.2x of.
func (t *Table) Lookup(argTypes []registry.TypeId) (Entry, bool) {
	for _, e := range t.Entries {
		if sameTypes(e.ParamTypes, argTypes) {
			return e, true
		}
	}
	return Entry{}, false
}

func sameTypes(a, b []registry.TypeId) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
