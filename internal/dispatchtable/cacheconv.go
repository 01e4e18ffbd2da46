package dispatchtable

import (
	"github.com/janus-lang/janus/internal/cache"
	"github.com/janus-lang/janus/internal/config"
	"github.com/janus-lang/janus/internal/signature"
)

// ToCacheTable projects an in-memory optimized Table into the on-disk
// format internal/cache persists (§6). tableHash and creationTs are
// supplied by the caller rather than derived here, since the cache key
// and content-address hashing scheme belong to internal/cache, not to
// the table builder. Each entry's type pattern hash, rank, call
// frequency, function id/name and module are carried over; its
// ParamTypes are not (see FromCacheTable). A built decision tree only
// carries over when every node has at most one branch and every leaf
// holds exactly one implementation (see flattenTree); any other tree is
// left out rather than persisted lossily.
func (t *Table) ToCacheTable(tableHash, creationTs uint64) cache.Table {
	entries := make([]cache.Entry, len(t.Entries))
	for i, e := range t.Entries {
		entries[i] = cache.Entry{
			TypePattern:   e.TypePattern,
			Specificity:   uint32(e.Rank),
			CallFrequency: e.CallFrequency,
			FunctionID:    e.Implementation.Function.Id,
			FnName:        e.Implementation.Function.Name,
			ModName:       e.Module,
		}
	}

	out := cache.Table{
		FormatVersion: config.CacheFormatVersion,
		TableHash:     tableHash,
		CreationTs:    creationTs,
		SigName:       t.SignatureName,
		Entries:       entries,
	}

	switch {
	case t.Tree != nil && t.Compressed != nil:
		out.OptApplied = cache.OptTreeAndCompressed
	case t.Tree != nil:
		out.OptApplied = cache.OptTreeOnly
	case t.Compressed != nil:
		out.OptApplied = cache.OptCompressedOnly
	default:
		out.OptApplied = cache.OptNone
	}
	out.CompressedBlob = t.Compressed

	patternIndex := make(map[uint64]uint32, len(t.Entries))
	for i, e := range t.Entries {
		patternIndex[e.TypePattern] = uint32(i)
	}
	if tree, ok := flattenTree(t.Tree, patternIndex); ok {
		out.Tree = &tree
	}

	return out
}

// flattenTree breadth-first-numbers a decision tree into the on-disk
// node array. The §6 TreeNode row holds exactly one (type_id, child)
// pair, with no sibling-grouping field, so it can only represent a node
// that branches into a single child; it returns ok=false for any node
// with more than one branch (root included -- real tables branch
// heavily near the root) or any leaf with more than one tied
// implementation. Those trees fall back to flat-entries-only
// persistence rather than silently dropping sibling branches.
func flattenTree(root *Node, patternIndex map[uint64]uint32) (cache.DecisionTree, bool) {
	if root == nil {
		return cache.DecisionTree{}, false
	}

	indexOf := make(map[*Node]uint32)
	var order []*Node
	queue := []*Node{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if _, seen := indexOf[n]; seen {
			continue
		}
		if len(n.Branches) > 1 {
			return cache.DecisionTree{}, false
		}
		indexOf[n] = uint32(len(order))
		order = append(order, n)
		for _, child := range n.Branches {
			queue = append(queue, child)
		}
	}

	nodes := make([]cache.TreeNode, len(order))
	for i, n := range order {
		row := cache.TreeNode{ParamIndex: uint32(n.Param), Child: cache.NoChild, Leaf: cache.NoChild}
		if n.Param < 0 {
			if len(n.Leaves) != 1 {
				return cache.DecisionTree{}, false
			}
			leafIdx, ok := patternIndex[n.Leaves[0].TypePattern]
			if !ok {
				return cache.DecisionTree{}, false
			}
			row.Leaf = leafIdx
		} else {
			for typeID, child := range n.Branches {
				row.TypeID = uint32(typeID)
				row.Child = indexOf[child]
			}
		}
		nodes[i] = row
	}

	return cache.DecisionTree{RootIndex: 0, Nodes: nodes}, true
}

// FromCacheTable reconstructs a flat, lookup-ready Table from a decoded
// on-disk cache.Table. ParamTypes round-trips from a cache.Entry's
// TypePattern hash alone is impossible (the hash is one-way), so callers
// that need Lookup by argTypes rather than by TypePattern must rebuild
// ParamTypes out-of-band; this only restores what the wire format
// actually carries (§6).
func FromCacheTable(ct cache.Table) *Table {
	entries := make([]Entry, len(ct.Entries))
	for i, e := range ct.Entries {
		entries[i] = Entry{
			TypePattern:   e.TypePattern,
			Module:        e.ModName,
			Rank:          int(e.Specificity),
			CallFrequency: e.CallFrequency,
			Implementation: signature.Implementation{
				Function: signature.FunctionId{Name: e.FnName, Module: e.ModName, Id: e.FunctionID},
			},
		}
	}
	return &Table{SignatureName: ct.SigName, Entries: entries}
}

// LookupByPattern finds the entry whose TypePattern hash matches pattern
// -- the lookup path available once a table has round-tripped through
// the cache, where only the hash (not the original ParamTypes) survives.
func (t *Table) LookupByPattern(pattern uint64) (Entry, bool) {
	for _, e := range t.Entries {
		if e.TypePattern == pattern {
			return e, true
		}
	}
	return Entry{}, false
}
