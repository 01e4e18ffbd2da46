// Package compatibility implements the Compatibility Analyzer (spec
// §4.G): per-candidate conversion-path search and scoring, plus the hard
// effect-compatibility filter (Open Question 2).
package compatibility

import (
	"github.com/janus-lang/janus/internal/config"
	"github.com/janus-lang/janus/internal/conversion"
	"github.com/janus-lang/janus/internal/registry"
	"github.com/janus-lang/janus/internal/signature"
)

// MatchQuality classifies how a candidate's parameters relate to the
// call-site argument types.
type MatchQuality int

const (
	Exact MatchQuality = iota
	Convertible
	Incompatible
)

func (q MatchQuality) String() string {
	switch q {
	case Exact:
		return "exact"
	case Convertible:
		return "convertible"
	default:
		return "incompatible"
	}
}

// RejectionReason is the closed set of reasons a candidate never reaches
// Disambiguation.
type RejectionReason int

const (
	IncompatibleTypes RejectionReason = iota
	EffectMismatch
)

func (r RejectionReason) String() string {
	switch r {
	case IncompatibleTypes:
		return "incompatible_types"
	case EffectMismatch:
		return "effect_mismatch"
	default:
		return "unknown"
	}
}

// Scored is a candidate that passed both the effect filter and the
// type-compatibility check, with its quality score attached.
type Scored struct {
	Implementation signature.Implementation
	Quality        MatchQuality
	Path           conversion.Path
	Score          int
}

// Rejected pairs a candidate with why it never became a Scored entry.
type Rejected struct {
	Implementation signature.Implementation
	Reason         RejectionReason
}

// Result is one Analyze call's output. Per Open Question 1, Compatible
// never contains a zero-score (Incompatible) entry -- those are filtered
// into Rejected before Disambiguation ever sees them.
type Result struct {
	Compatible []Scored
	Rejected   []Rejected
}

// Analyzer scores candidates against a call site's argument types and
// permitted effect set.
type Analyzer struct {
	conversions *conversion.Registry
}

// New creates a Compatibility Analyzer backed by the given conversion
// catalog.
func New(conversions *conversion.Registry) *Analyzer {
	return &Analyzer{conversions: conversions}
}

// Analyze scores every candidate. allowedEffects is the caller's
// permitted effect set; a candidate using any effect outside it is hard
// -filtered (§4.G, Open Question 2), never merely down-scored.
func (a *Analyzer) Analyze(candidates []signature.Implementation, argTypes []registry.TypeId, allowedEffects signature.Effect) Result {
	var res Result
	for _, cand := range candidates {
		if !allowedEffects.Contains(cand.Effects) {
			res.Rejected = append(res.Rejected, Rejected{Implementation: cand, Reason: EffectMismatch})
			continue
		}

		quality, path, score := a.score(cand, argTypes)
		if quality == Incompatible {
			res.Rejected = append(res.Rejected, Rejected{Implementation: cand, Reason: IncompatibleTypes})
			continue
		}
		res.Compatible = append(res.Compatible, Scored{Implementation: cand, Quality: quality, Path: path, Score: score})
	}
	return res
}

func (a *Analyzer) score(cand signature.Implementation, argTypes []registry.TypeId) (MatchQuality, conversion.Path, int) {
	if exactMatch(argTypes, cand.ParamTypeIds) {
		return Exact, conversion.Path{}, config.QualityExact
	}

	path, ok := a.conversions.FindPath(argTypes, cand.ParamTypeIds)
	if !ok {
		return Incompatible, conversion.Path{}, config.QualityIncompatible
	}

	score := config.QualityConvertible - path.TotalCost()
	if score < 0 {
		score = config.QualityIncompatible
	}
	return Convertible, path, score
}

func exactMatch(argTypes, paramTypes []registry.TypeId) bool {
	if len(argTypes) != len(paramTypes) {
		return false
	}
	for i := range argTypes {
		if argTypes[i] != paramTypes[i] {
			return false
		}
	}
	return true
}
