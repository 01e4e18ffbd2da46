// Package disambiguation implements the Disambiguation Engine (spec
// §4.H): it picks a single winner among the Compatibility Analyzer's
// scored candidates, falling back to the Specificity Analyzer on ties.
package disambiguation

import (
	"github.com/janus-lang/janus/internal/compatibility"
	"github.com/janus-lang/janus/internal/registry"
	"github.com/janus-lang/janus/internal/signature"
	"github.com/janus-lang/janus/internal/specificity"
)

// OutcomeKind is the closed result of a disambiguation pass.
type OutcomeKind int

const (
	Unique OutcomeKind = iota
	Ambiguous
	NoMatch
)

// AmbiguityReason explains why Ambiguous was returned.
type AmbiguityReason int

const (
	NoAmbiguity AmbiguityReason = iota
	MultipleExactMatches
	EqualConversionCost
	EqualSpecificity
)

func (r AmbiguityReason) String() string {
	switch r {
	case MultipleExactMatches:
		return "multiple_exact_matches"
	case EqualConversionCost:
		return "equal_conversion_cost"
	case EqualSpecificity:
		return "equal_specificity"
	default:
		return "none"
	}
}

// Outcome is the sum-typed result of Disambiguate.
type Outcome struct {
	Kind            OutcomeKind
	Implementation  signature.Implementation   // valid when Kind == Unique
	Implementations []signature.Implementation // valid when Kind == Ambiguous
	Reason          AmbiguityReason            // valid when Kind == Ambiguous
}

// Engine picks among Compatibility Analyzer output, invoking the
// Specificity Analyzer to break score ties.
type Engine struct {
	specificity *specificity.Analyzer
}

// New creates a Disambiguation Engine backed by the given type registry.
func New(types *registry.Registry) *Engine {
	return &Engine{specificity: specificity.New(types)}
}

// Disambiguate picks a single winner among scored, whose members are
// assumed already effect- and type-compatible (§4.G has filtered
// zero-score entries out before this call, per Open Question 1).
func (e *Engine) Disambiguate(scored []compatibility.Scored, argTypes []registry.TypeId) Outcome {
	if len(scored) == 0 {
		return Outcome{Kind: NoMatch}
	}

	best := scored[0].Score
	for _, s := range scored[1:] {
		if s.Score > best {
			best = s.Score
		}
	}

	var tied []compatibility.Scored
	for _, s := range scored {
		if s.Score == best {
			tied = append(tied, s)
		}
	}

	if len(tied) == 1 {
		return Outcome{Kind: Unique, Implementation: tied[0].Implementation}
	}

	impls := make([]signature.Implementation, len(tied))
	for i, s := range tied {
		impls[i] = s.Implementation
	}

	out := e.specificity.Resolve(impls, argTypes)
	switch out.Kind {
	case specificity.Unique:
		return Outcome{Kind: Unique, Implementation: out.Implementation}
	case specificity.Ambiguous:
		return Outcome{Kind: Ambiguous, Implementations: out.Implementations, Reason: tieReason(tied)}
	default:
		// Every tied candidate already passed the arity/type applicability
		// check in Compatibility; NoMatch here would mean the two analyzers
		// disagree about applicability, which should never happen.
		return Outcome{Kind: Ambiguous, Implementations: impls, Reason: tieReason(tied)}
	}
}

// tieReason classifies an unresolved score tie. Candidates reaching here
// already share a score and failed to separate under dominance, so the
// distinction is only ever about why: identical signatures (equal
// specificity), all exact matches over distinct signatures, or equal
// -cost conversions.
func tieReason(tied []compatibility.Scored) AmbiguityReason {
	if sameParamTypes(tied) {
		return EqualSpecificity
	}
	for _, s := range tied {
		if s.Quality == compatibility.Exact {
			return MultipleExactMatches
		}
	}
	return EqualConversionCost
}

func sameParamTypes(tied []compatibility.Scored) bool {
	first := tied[0].Implementation.ParamTypeIds
	for _, s := range tied[1:] {
		other := s.Implementation.ParamTypeIds
		if len(other) != len(first) {
			return false
		}
		for i := range first {
			if first[i] != other[i] {
				return false
			}
		}
	}
	return true
}
