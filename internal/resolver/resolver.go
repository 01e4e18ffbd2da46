// Package resolver implements the Semantic Resolver (spec §4.I): the
// pipeline that strings the Candidate Collector, Compatibility Analyzer,
// and Disambiguation Engine together into one call-site resolution.
//
// Shaped after funxy's own multi-stage pipeline idiom (the dropped
// internal/pipeline package's stage-chaining pattern, adapted here to a
// fixed three-stage chain rather than an open-ended stage list, since
// the Resolver's ordering is fixed by the spec rather than configurable).
package resolver

import (
	"sync"
	"time"

	"github.com/janus-lang/janus/internal/collector"
	"github.com/janus-lang/janus/internal/compatibility"
	"github.com/janus-lang/janus/internal/conversion"
	"github.com/janus-lang/janus/internal/disambiguation"
	"github.com/janus-lang/janus/internal/registry"
	"github.com/janus-lang/janus/internal/scope"
	"github.com/janus-lang/janus/internal/signature"
)

// Metadata records how one resolution was reached, for diagnostics and
// profiling.
type Metadata struct {
	ElapsedNanos     int64
	CandidatesViable int
	CandidatesScored int
}

// Result bundles the Disambiguation outcome with the collection and
// scoring detail needed to build a diagnostic if resolution failed.
type Result struct {
	Outcome       disambiguation.Outcome
	Collected     collector.CandidateSet
	Compatibility compatibility.Result
	Metadata      Metadata
}

// Resolver runs the F -> G -> H pipeline against a fixed type registry
// and conversion catalog. Resolution is side-effect-free (§4.I) except
// for the call-frequency counters it maintains for the Optimizer.
type Resolver struct {
	conversions   *conversion.Registry
	disambiguator *disambiguation.Engine

	mu        sync.Mutex
	frequency map[signature.FunctionId]uint32
}

// New creates a Semantic Resolver.
func New(types *registry.Registry, conversions *conversion.Registry) *Resolver {
	return &Resolver{
		conversions:   conversions,
		disambiguator: disambiguation.New(types),
		frequency:     make(map[signature.FunctionId]uint32),
	}
}

// Resolve collects, scores, and disambiguates one call site: name applied
// to argTypes, visible from sc, restricted to allowedEffects. Every
// resolution that lands on a single implementation bumps that
// implementation's call-frequency counter (§4.I), which the Optimizer
// later uses to decide which tables are worth building a decision tree
// for and how to order entries within them.
func (r *Resolver) Resolve(sc *scope.Scope, name string, argTypes []registry.TypeId, allowedEffects signature.Effect) Result {
	start := time.Now()

	collected := collector.Collect(sc, name, len(argTypes))
	compat := compatibility.New(r.conversions).Analyze(collected.Viable, argTypes, allowedEffects)
	outcome := r.disambiguator.Disambiguate(compat.Compatible, argTypes)

	if outcome.Kind == disambiguation.Unique {
		r.bumpFrequency(outcome.Implementation.Function)
	}

	return Result{
		Outcome:       outcome,
		Collected:     collected,
		Compatibility: compat,
		Metadata: Metadata{
			ElapsedNanos:     time.Since(start).Nanoseconds(),
			CandidatesViable: len(collected.Viable),
			CandidatesScored: len(compat.Compatible),
		},
	}
}

func (r *Resolver) bumpFrequency(fn signature.FunctionId) {
	r.mu.Lock()
	r.frequency[fn]++
	r.mu.Unlock()
}

// CallFrequency returns how many times fn has been the unique outcome of
// a Resolve call so far.
func (r *Resolver) CallFrequency(fn signature.FunctionId) uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frequency[fn]
}
