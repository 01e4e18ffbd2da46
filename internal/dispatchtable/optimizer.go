package dispatchtable

import (
	"math"

	"github.com/janus-lang/janus/internal/config"
	"github.com/janus-lang/janus/internal/registry"
)

// Config mirrors the janus.yaml-overridable optimizer thresholds (§4.L).
type Config struct {
	MinEntriesForDecisionTree    int
	MinEntriesForCompression     int
	MinConfidenceForAutomaticOpt float64
	HotPathFrequencyThreshold    int
}

// DefaultConfig returns the built-in optimizer thresholds.
func DefaultConfig() Config {
	return Config{
		MinEntriesForDecisionTree:    config.DefaultMinEntriesForDecisionTree,
		MinEntriesForCompression:     config.DefaultMinEntriesForCompression,
		MinConfidenceForAutomaticOpt: config.DefaultMinConfidenceForAutomaticOpt,
		HotPathFrequencyThreshold:    config.DefaultHotPathFrequencyThreshold,
	}
}

// Stats records what the optimizer actually did to one table.
type Stats struct {
	OptimizationApplied    bool
	TreeBuilt              bool
	Compressed             bool
	MemorySaved            int64
	PerformanceImprovement float64
}

// Optimizer applies the decision-tree and compression passes to a Table
// once both confidence and call frequency reach Config's thresholds;
// each pass then runs only if the table's size reaches its own threshold.
type Optimizer struct {
	cfg Config
}

// New creates an Optimizer with the given thresholds.
func New(cfg Config) *Optimizer {
	return &Optimizer{cfg: cfg}
}

// Optimize conditionally builds a decision tree and/or compresses t,
// given how often its signature has actually been called (callFrequency)
// and the resolver's confidence that static analysis captured every
// call-site shape (confidence, in [0,1]).
func (o *Optimizer) Optimize(t *Table, callFrequency int, confidence float64) Stats {
	var stats Stats
	if confidence < o.cfg.MinConfidenceForAutomaticOpt {
		return stats
	}
	if callFrequency < o.cfg.HotPathFrequencyThreshold {
		return stats
	}

	if len(t.Entries) >= o.cfg.MinEntriesForDecisionTree {
		t.Tree = buildDecisionTree(t.Entries)
		stats.TreeBuilt = true
		stats.OptimizationApplied = true
	}

	if len(t.Entries) >= o.cfg.MinEntriesForCompression {
		before := estimateSize(t.Entries)
		t.Compressed = compress(t.Entries)
		after := int64(len(t.Compressed))
		stats.Compressed = true
		stats.OptimizationApplied = true
		stats.MemorySaved = before - after
	}

	if stats.TreeBuilt {
		// A balanced binary split over N entries visits O(log N) nodes
		// instead of the flat table's O(N) linear scan.
		n := float64(len(t.Entries))
		if n > 1 {
			stats.PerformanceImprovement = 1 - (math.Log2(n) / n)
		}
	}
	return stats
}

// buildDecisionTree greedily picks, at each level, the parameter
// position whose split yields the greatest entropy reduction over the
// remaining entries (§4.L). Ties keep all tied implementations in one
// leaf rather than resolving them arbitrarily.
func buildDecisionTree(entries []Entry) *Node {
	if len(entries) <= 1 {
		return &Node{Param: -1, Leaves: entries}
	}

	arity := len(entries[0].ParamTypes)
	bestParam := -1
	bestGain := -1.0
	baseEntropy := entropy(entries)

	for p := 0; p < arity; p++ {
		groups := groupByParam(entries, p)
		if len(groups) <= 1 {
			continue // this position never discriminates anything
		}
		remainder := 0.0
		for _, g := range groups {
			remainder += (float64(len(g)) / float64(len(entries))) * entropy(g)
		}
		gain := baseEntropy - remainder
		if gain > bestGain {
			bestGain = gain
			bestParam = p
		}
	}

	if bestParam == -1 {
		return &Node{Param: -1, Leaves: entries}
	}

	node := &Node{Param: bestParam, Branches: make(map[registry.TypeId]*Node)}
	for typeId, group := range groupByParam(entries, bestParam) {
		node.Branches[typeId] = buildDecisionTree(group)
	}
	return node
}

func groupByParam(entries []Entry, param int) map[registry.TypeId][]Entry {
	groups := make(map[registry.TypeId][]Entry)
	for _, e := range entries {
		groups[e.ParamTypes[param]] = append(groups[e.ParamTypes[param]], e)
	}
	return groups
}

// entropy computes the Shannon entropy of entries' module identity
// distribution -- a proxy for how "mixed" (ambiguous) a leaf still is.
func entropy(entries []Entry) float64 {
	counts := make(map[string]int)
	for _, e := range entries {
		counts[e.Module]++
	}
	total := float64(len(entries))
	h := 0.0
	for _, c := range counts {
		p := float64(c) / total
		h -= p * math.Log2(p)
	}
	return h
}

// Lookup walks the decision tree for argTypes, returning the leaf's
// entries (more than one means the call site is genuinely ambiguous at
// this specificity).
func (n *Node) Lookup(argTypes []registry.TypeId) []Entry {
	cur := n
	for cur.Param >= 0 {
		next, ok := cur.Branches[argTypes[cur.Param]]
		if !ok {
			return nil
		}
		cur = next
	}
	return cur.Leaves
}

func estimateSize(entries []Entry) int64 {
	size := int64(0)
	for _, e := range entries {
		size += int64(8 + len(e.ParamTypes)*4 + len(e.Module))
	}
	return size
}

// compress packs entries into a compact blob: each entry's 8-byte
// little-endian type pattern hash, in entry order, with no count prefix.
// Deliberately simple (§4.L only requires the lookup-time property hold,
// not a particular encoding) -- internal/cache owns the real on-disk
// format.
func compress(entries []Entry) []byte {
	out := make([]byte, 0, len(entries)*9)
	for _, e := range entries {
		h := TypePatternHash(e.ParamTypes)
		out = append(out,
			byte(h), byte(h>>8), byte(h>>16), byte(h>>24),
			byte(h>>32), byte(h>>40), byte(h>>48), byte(h>>56),
		)
	}
	return out
}
