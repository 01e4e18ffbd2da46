package diagnostics

import (
	"encoding/json"
)

// jsonLocation mirrors §6's location object.
type jsonLocation struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// jsonHypothesis mirrors §6's primary_hypothesis object.
type jsonHypothesis struct {
	Probability float64 `json:"probability"`
	Category    string  `json:"category"`
}

// jsonDiagnostic is the exact machine-readable shape from §6.
type jsonDiagnostic struct {
	SchemaVersion     int             `json:"schema_version"`
	Code              string          `json:"code"`
	Severity          string          `json:"severity"`
	Location          jsonLocation    `json:"location"`
	Summary           string          `json:"summary"`
	HypothesisCount   int             `json:"hypothesis_count"`
	PrimaryHypothesis *jsonHypothesis `json:"primary_hypothesis,omitempty"`
	IsCascadeEffect   bool            `json:"is_cascade_effect"`
}

// EmitJSON renders d into the §6 JSON schema. Strings are JSON-escaped by
// encoding/json itself (quote, backslash, newline, CR, tab), matching the
// spec's escaping requirement without any manual string surgery.
func (d *Diagnostic) EmitJSON() ([]byte, error) {
	var primary *jsonHypothesis
	if len(d.Hypotheses) > 0 {
		h := d.PrimaryHypothesis()
		primary = &jsonHypothesis{Probability: h.Probability, Category: h.Category}
	}

	doc := jsonDiagnostic{
		SchemaVersion: SchemaVersion,
		Code:          d.Code.String(),
		Severity:      d.Severity.String(),
		Location:      jsonLocation{File: d.PrimarySpan.File, Line: d.PrimarySpan.Line, Column: d.PrimarySpan.Column},
		Summary:       d.Summary,
		HypothesisCount:   len(d.Hypotheses),
		PrimaryHypothesis: primary,
		IsCascadeEffect:   d.CascadeRoot != nil,
	}
	return json.Marshal(doc)
}
