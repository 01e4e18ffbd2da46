// Package signature implements the Signature Analyzer (spec §4.C): it
// turns an implementation's declared parameter types, return type, and
// effect set into an immutable Implementation record with an initial
// specificity rank.
package signature

import (
	"github.com/janus-lang/janus/internal/ownership"
	"github.com/janus-lang/janus/internal/registry"
)

// FunctionId identifies one concrete implementation body.
type FunctionId struct {
	Name   string
	Module string
	Id     uint32
}

// SourceLocation pins a diagnostic or implementation to a place in the
// (externally supplied) source.
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

// Implementation is a registered, concrete implementation of a signature
// (§3). Once analyzed, ParamTypeIds and Effects never change — callers
// get copies, never pointers into internal state, so this invariant
// holds regardless of what they do with the value.
type Implementation struct {
	Function        FunctionId
	ParamTypeIds    []registry.TypeId
	ReturnTypeId    registry.TypeId
	Effects         Effect
	SpecificityRank int
	Location        SourceLocation
	ParamOwnership  []ownership.ParameterRequirement
	Capabilities    []string
}

// OwnershipRequirements projects impl's ownership contract into the form
// the Ownership Dispatcher validates against (§4.J).
func (impl Implementation) OwnershipRequirements() ownership.ImplementationRequirements {
	return ownership.ImplementationRequirements{
		Params:       impl.ParamOwnership,
		Capabilities: impl.Capabilities,
	}
}

// Arity returns the number of declared parameters.
func (impl Implementation) Arity() int {
	return len(impl.ParamTypeIds)
}

// Analyzer computes Implementation records. It holds the type registry
// needed to grade each parameter's concreteness, and nothing else —
// analysis is a pure function of its inputs (§4.C contract).
type Analyzer struct {
	types *registry.Registry
}

// New creates a Signature Analyzer backed by the given type registry.
func New(types *registry.Registry) *Analyzer {
	return &Analyzer{types: types}
}

// Analyze builds an Implementation record and its initial specificity
// rank. Deterministic and pure: the same inputs always yield the same
// rank. paramOwnership and capabilities declare the ownership contract
// the Ownership Dispatcher later validates candidates against (§4.J);
// either may be nil when the implementation takes no parameters requiring
// one or requires no capabilities.
func (a *Analyzer) Analyze(fn FunctionId, params []registry.TypeId, ret registry.TypeId, effects Effect, loc SourceLocation, paramOwnership []ownership.ParameterRequirement, capabilities []string) Implementation {
	paramsCopy := append([]registry.TypeId(nil), params...)
	return Implementation{
		Function:        fn,
		ParamTypeIds:    paramsCopy,
		ReturnTypeId:    ret,
		Effects:         effects,
		SpecificityRank: a.rank(paramsCopy),
		Location:        loc,
		ParamOwnership:  append([]ownership.ParameterRequirement(nil), paramOwnership...),
		Capabilities:    append([]string(nil), capabilities...),
	}
}

// rank grades how concrete a parameter list is: sealed/unique types bind
// more precisely than open tables, which in turn bind more precisely
// than unions. This is only the *initial* rank — the spec uses it solely
// as a tie-breaker (§4.D rule 3) after dominance comparison, never as
// the primary ordering.
func (a *Analyzer) rank(params []registry.TypeId) int {
	total := 0
	for _, id := range params {
		t, ok := a.types.GetType(id)
		if !ok {
			continue
		}
		switch t.Kind {
		case registry.KindUnique, registry.KindTableSealed:
			total += 3
		case registry.KindPrimitive:
			total += 2
		case registry.KindTableOpen:
			total += 1
		case registry.KindUnion:
			total += 0
		}
	}
	return total
}
