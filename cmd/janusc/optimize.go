package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/janus-lang/janus/internal/conversion"
	"github.com/janus-lang/janus/internal/dispatchtable"
	"github.com/janus-lang/janus/internal/registry"
	"github.com/janus-lang/janus/internal/resolver"
	"github.com/janus-lang/janus/internal/scope"
	"github.com/janus-lang/janus/internal/signature"
)

func tryOptimizeCommand() bool {
	if len(os.Args) < 2 || os.Args[1] != "optimize" {
		return false
	}
	handleOptimize()
	return true
}

// demoDeclarations registers n single-parameter overloads of "handle" in
// both a type registry and a scope, so a real Resolver can be run against
// them instead of optimize building dispatchtable.Entry rows by hand.
func demoDeclarations(types *registry.Registry, sig *signature.Analyzer, n int) (*scope.Scope, []signature.Implementation) {
	root := scope.New(nil)
	impls := make([]signature.Implementation, n)
	for i := 0; i < n; i++ {
		typeID, err := types.RegisterType(fmt.Sprintf("Demo%d", i), registry.KindPrimitive, nil)
		if err != nil {
			panic(err)
		}
		impl := sig.Analyze(
			signature.FunctionId{Name: "handle", Module: "demo", Id: uint32(i)},
			[]registry.TypeId{typeID}, registry.Invalid, signature.Pure,
			signature.SourceLocation{File: "demo.janus", Line: i},
			nil, nil,
		)
		impls[i] = impl
		root.Declare(scope.Declaration{Name: "handle", Implementation: impl, Visibility: scope.Public})
	}
	return root, impls
}

func handleOptimize() {
	n := 64
	if len(os.Args) > 2 {
		parsed, err := strconv.Atoi(os.Args[2])
		if err != nil {
			fmt.Fprintf(os.Stderr, "janusc: invalid entry count %q\n", os.Args[2])
			os.Exit(2)
		}
		n = parsed
	}

	cfg := dispatchtable.DefaultConfig()

	types := registry.New()
	sig := signature.New(types)
	sc, impls := demoDeclarations(types, sig, n)

	r := resolver.New(types, conversion.NewWithBuiltins())

	// Drive impls[0] past the hot-path threshold through real Resolve
	// calls so its call frequency -- and the table's overall frequency
	// floor passed to Optimize -- comes from the Resolver's own counters
	// rather than a hardcoded stand-in.
	for i := 0; i < cfg.HotPathFrequencyThreshold+1; i++ {
		r.Resolve(sc, "handle", impls[0].ParamTypeIds, signature.Pure)
	}

	entries := make([]dispatchtable.Entry, n)
	maxFrequency := uint32(0)
	for i, impl := range impls {
		freq := r.CallFrequency(impl.Function)
		if freq > maxFrequency {
			maxFrequency = freq
		}
		entries[i] = dispatchtable.Entry{
			TypePattern:    dispatchtable.TypePatternHash(impl.ParamTypeIds),
			ParamTypes:     impl.ParamTypeIds,
			Module:         impl.Function.Module,
			Priority:       0,
			Rank:           impl.SpecificityRank,
			CallFrequency:  freq,
			Implementation: impl,
		}
	}

	table := dispatchtable.Build("handle", entries)
	opt := dispatchtable.New(cfg)
	stats := opt.Optimize(table, int(maxFrequency), 1.0)

	fmt.Printf("entries=%d tree_built=%v compressed=%v memory_saved=%d\n",
		len(table.Entries), stats.TreeBuilt, stats.Compressed, stats.MemorySaved)
}
