// Package diagnostics implements the Diagnostic System (spec §4.N): every
// resolution failure is reported as a multi-hypothesis Diagnostic with a
// renormalized confidence distribution, optional type-flow and semantic
// context, and both JSON and terminal emission.
//
// funxy's own diagnostics package was never retrieved alongside the rest
// of the pack -- only its call sites were (`diagnostics.NewError(code,
// token, args...)`, `ctx.Errors []*diagnostics.DiagnosticError` throughout
// internal/parser). This package reconstructs the shape those call sites
// imply and expands it to the full multi-hypothesis model §4.N describes.
package diagnostics

import (
	"github.com/google/uuid"
)

// Severity is the closed set of diagnostic severities.
type Severity int

const (
	Error Severity = iota
	Warning
	Info
	Hint
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	case Hint:
		return "hint"
	default:
		return "unknown"
	}
}

// Span pins a diagnostic to a source location.
type Span struct {
	File   string
	Line   int
	Column int
}

// Hypothesis is one candidate explanation with a probability. A
// Diagnostic's Hypotheses sum to 1 after RenormalizeHypotheses.
type Hypothesis struct {
	Category    string
	Probability float64
}

// FixSuggestion is one ranked, human-readable fix.
type FixSuggestion struct {
	Description string
	Confidence  float64
}

// SemanticContext carries CID-correlated change information alongside a
// diagnostic, when available.
type SemanticContext struct {
	RelatedCIDs []string
	ScopeChain  []string
}

// Life is the closed diagnostic lifecycle (§4's state machine list):
// building -> finalized -> emitted.
type Life int

const (
	Building Life = iota
	Finalized
	Emitted
)

// Diagnostic is the structured report produced on every resolution
// failure (the spec's NextGenDiagnostic).
type Diagnostic struct {
	ID               uuid.UUID
	Code             Code
	Severity         Severity
	PrimarySpan      Span
	Summary          string
	Explanation      string
	Suggestions      []FixSuggestion
	EducationalNote  string
	Hypotheses       []Hypothesis
	TypeFlowChain    []string
	SemanticContext  *SemanticContext
	CorrelatedErrors []uuid.UUID
	EffectViolations []string
	CascadeRoot      *uuid.UUID

	life Life
}

const SchemaVersion = 1

// New starts building a Diagnostic in the Building life state.
func New(code Code, severity Severity, span Span, summary string) *Diagnostic {
	return &Diagnostic{
		ID:          uuid.New(),
		Code:        code,
		Severity:    severity,
		PrimarySpan: span,
		Summary:     summary,
		life:        Building,
	}
}

// Finalize renormalizes the hypothesis distribution and transitions to
// Finalized. A diagnostic must be Finalized before it can be emitted.
func (d *Diagnostic) Finalize() {
	d.Hypotheses = RenormalizeHypotheses(d.Hypotheses)
	d.life = Finalized
}

// MarkEmitted transitions to Emitted. Panics if not yet Finalized, since
// an un-finalized diagnostic may still have an unnormalized distribution.
func (d *Diagnostic) MarkEmitted() {
	if d.life != Finalized {
		panic("diagnostics: diagnostic emitted before Finalize")
	}
	d.life = Emitted
}

// LifeState reports the diagnostic's current lifecycle state.
func (d *Diagnostic) LifeState() Life {
	return d.life
}

// PrimaryHypothesis returns the highest-probability hypothesis, or the
// zero value if there are none.
func (d *Diagnostic) PrimaryHypothesis() Hypothesis {
	var best Hypothesis
	for _, h := range d.Hypotheses {
		if h.Probability > best.Probability {
			best = h
		}
	}
	return best
}

// AdjustConfidence nudges h's probability by supporting/refuting
// evidence, each weighted ±0.3*strength (§4.N), clamped to [0.01, 0.99].
func AdjustConfidence(h Hypothesis, supporting, refuting int, strength float64) Hypothesis {
	delta := 0.3 * strength * float64(supporting-refuting)
	h.Probability += delta
	if h.Probability < 0.01 {
		h.Probability = 0.01
	}
	if h.Probability > 0.99 {
		h.Probability = 0.99
	}
	return h
}

// RenormalizeHypotheses rescales probabilities to sum to 1. An empty or
// all-zero input is returned unchanged.
func RenormalizeHypotheses(hyps []Hypothesis) []Hypothesis {
	total := 0.0
	for _, h := range hyps {
		total += h.Probability
	}
	if total <= 0 {
		return hyps
	}
	out := make([]Hypothesis, len(hyps))
	for i, h := range hyps {
		h.Probability /= total
		out[i] = h
	}
	return out
}

// SuppressCascadeRoots drops any diagnostic from diags whose ID is named
// as another diagnostic's CascadeRoot in the same batch -- a diagnostic
// with cascade_root set must not double-report its root cause (§4.N).
func SuppressCascadeRoots(diags []*Diagnostic) []*Diagnostic {
	roots := make(map[uuid.UUID]bool)
	for _, d := range diags {
		if d.CascadeRoot != nil {
			roots[*d.CascadeRoot] = true
		}
	}
	out := make([]*Diagnostic, 0, len(diags))
	for _, d := range diags {
		if roots[d.ID] {
			continue
		}
		out = append(out, d)
	}
	return out
}
