package cache_test

import (
	"strconv"
	"testing"

	"github.com/janus-lang/janus/internal/cache"
	"github.com/janus-lang/janus/internal/dispatchtable"
	"github.com/janus-lang/janus/internal/registry"
	"github.com/janus-lang/janus/internal/signature"
)

// TestBuildOptimizeSerializeClearDeserializeRelookup wires the real
// table builder, optimizer, and on-disk cache together end to end (§8
// scenario 7): build a 500-entry table, optimize it, persist it,
// discard the in-memory cache, reopen from disk, and confirm 50 of the
// original patterns still resolve to their original implementation.
// Lives in the external cache_test package since dispatchtable imports
// cache for ToCacheTable/FromCacheTable -- an internal cache-package
// test importing dispatchtable would cycle back on the package under
// test.
func TestBuildOptimizeSerializeClearDeserializeRelookup(t *testing.T) {
	const n = 500
	types := registry.New()
	sig := signature.New(types)

	entries := make([]dispatchtable.Entry, n)
	for i := 0; i < n; i++ {
		typeID, err := types.RegisterType(
			"Scenario7Type"+strconv.Itoa(i), registry.KindPrimitive, nil)
		if err != nil {
			t.Fatalf("unexpected type registration error: %v", err)
		}
		params := []registry.TypeId{typeID}
		impl := sig.Analyze(
			signature.FunctionId{Name: "handle", Module: "demo", Id: uint32(i)},
			params, registry.Invalid, signature.Pure,
			signature.SourceLocation{File: "demo.janus", Line: i}, nil, nil,
		)
		entries[i] = dispatchtable.Entry{
			TypePattern:    dispatchtable.TypePatternHash(params),
			ParamTypes:     params,
			Module:         "demo",
			Rank:           impl.SpecificityRank,
			CallFrequency:  uint32(i),
			Implementation: impl,
		}
	}

	table := dispatchtable.Build("handle", entries)
	cfg := dispatchtable.DefaultConfig()
	cfg.HotPathFrequencyThreshold = 1
	opt := dispatchtable.New(cfg)
	stats := opt.Optimize(table, n, 1.0)
	if !stats.OptimizationApplied {
		t.Fatalf("expected optimization to apply to a 500-entry hot table, got %+v", stats)
	}

	dir := t.TempDir()
	c, err := cache.New(dir)
	if err != nil {
		t.Fatalf("unexpected cache error: %v", err)
	}

	key := cache.NewKey("handle", "(Scenario7)", []byte("deps-v1"))
	ct := table.ToCacheTable(0xc0ffee, 1)
	if _, err := c.Serialize(key, ct); err != nil {
		t.Fatalf("unexpected serialize error: %v", err)
	}

	// Simulate an empty process restart: a fresh Cache reading the same
	// directory rather than the one that just wrote it.
	reopened, err := cache.New(dir)
	if err != nil {
		t.Fatalf("unexpected reopen error: %v", err)
	}

	decoded, ok := reopened.Deserialize(key)
	if !ok {
		t.Fatal("expected a cache hit after reopening from disk")
	}

	restored := dispatchtable.FromCacheTable(decoded)
	for i := 0; i < 50; i++ {
		want := entries[i]
		got, ok := restored.LookupByPattern(want.TypePattern)
		if !ok {
			t.Fatalf("pattern %d: expected a hit after the round trip", i)
		}
		if got.Implementation.Function.Id != want.Implementation.Function.Id {
			t.Fatalf("pattern %d: expected implementation id %d, got %d", i, want.Implementation.Function.Id, got.Implementation.Function.Id)
		}
		if got.CallFrequency != want.CallFrequency {
			t.Fatalf("pattern %d: expected call frequency %d, got %d", i, want.CallFrequency, got.CallFrequency)
		}
	}
}
