// Package specificity implements the Specificity Analyzer (spec §4.D):
// the partial order ("more specific than") used to pick one
// implementation among several applicable candidates.
package specificity

import (
	"github.com/janus-lang/janus/internal/registry"
	"github.com/janus-lang/janus/internal/signature"
)

// OutcomeKind is the closed result of a specificity resolution.
type OutcomeKind int

const (
	Unique OutcomeKind = iota
	Ambiguous
	NoMatch
)

// Outcome is the sum-typed result of Resolve.
type Outcome struct {
	Kind            OutcomeKind
	Implementation  signature.Implementation   // valid when Kind == Unique
	Implementations []signature.Implementation // valid when Kind == Ambiguous
}

// Analyzer ranks Implementations against a call site's argument types.
type Analyzer struct {
	types *registry.Registry
}

// New creates a Specificity Analyzer backed by the given type registry.
func New(types *registry.Registry) *Analyzer {
	return &Analyzer{types: types}
}

// Resolve applies the four-step algorithm of §4.D to a list of candidate
// implementations and an argument-type tuple.
func (a *Analyzer) Resolve(impls []signature.Implementation, argTypes []registry.TypeId) Outcome {
	applicable := a.filterApplicable(impls, argTypes)
	if len(applicable) == 0 {
		return Outcome{Kind: NoMatch}
	}

	maximal := a.maximalElements(applicable)
	if len(maximal) == 1 {
		return Outcome{Kind: Unique, Implementation: maximal[0]}
	}

	topRank := tieBreakByRank(maximal)
	if len(topRank) == 1 {
		return Outcome{Kind: Unique, Implementation: topRank[0]}
	}
	return Outcome{Kind: Ambiguous, Implementations: topRank}
}

// filterApplicable keeps implementations whose arity matches and whose
// parameters are supertypes of (or equal to) the argument types.
func (a *Analyzer) filterApplicable(impls []signature.Implementation, argTypes []registry.TypeId) []signature.Implementation {
	var out []signature.Implementation
	for _, impl := range impls {
		if impl.Arity() != len(argTypes) {
			continue
		}
		ok := true
		for i, argType := range argTypes {
			if !a.types.IsSubtype(argType, impl.ParamTypeIds[i]) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, impl)
		}
	}
	return out
}

// dominates reports whether x is at least as specific as y in every
// parameter position, and strictly more specific in at least one.
func (a *Analyzer) dominates(x, y signature.Implementation) bool {
	strict := false
	for i := range x.ParamTypeIds {
		if !a.types.IsSubtype(x.ParamTypeIds[i], y.ParamTypeIds[i]) {
			return false
		}
		if x.ParamTypeIds[i] != y.ParamTypeIds[i] {
			strict = true
		}
	}
	return strict
}

// maximalElements returns the implementations not dominated by any other
// implementation in the set — the top elements of the dominance preorder.
func (a *Analyzer) maximalElements(impls []signature.Implementation) []signature.Implementation {
	var out []signature.Implementation
	for i, candidate := range impls {
		dominated := false
		for j, other := range impls {
			if i == j {
				continue
			}
			if a.dominates(other, candidate) {
				dominated = true
				break
			}
		}
		if !dominated {
			out = append(out, candidate)
		}
	}
	return out
}

// tieBreakByRank narrows a set of incomparable maxima to those sharing
// the highest declared SpecificityRank (§4.D rule 3).
func tieBreakByRank(maximal []signature.Implementation) []signature.Implementation {
	best := maximal[0].SpecificityRank
	for _, impl := range maximal[1:] {
		if impl.SpecificityRank > best {
			best = impl.SpecificityRank
		}
	}
	var out []signature.Implementation
	for _, impl := range maximal {
		if impl.SpecificityRank == best {
			out = append(out, impl)
		}
	}
	return out
}
