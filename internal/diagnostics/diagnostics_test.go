package diagnostics

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestRenormalizeHypothesesSumsToOne(t *testing.T) {
	hyps := RenormalizeHypotheses([]Hypothesis{{Category: "a", Probability: 0.3}, {Category: "b", Probability: 0.1}})
	total := 0.0
	for _, h := range hyps {
		total += h.Probability
	}
	if diff := total - 1.0; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected probabilities to sum to 1, got %v", total)
	}
}

func TestRenormalizeEmptyIsUnchanged(t *testing.T) {
	if got := RenormalizeHypotheses(nil); got != nil {
		t.Fatalf("expected nil unchanged, got %v", got)
	}
}

func TestAdjustConfidenceClampsToRange(t *testing.T) {
	h := Hypothesis{Category: "x", Probability: 0.9}
	adjusted := AdjustConfidence(h, 10, 0, 1.0)
	if adjusted.Probability != 0.99 {
		t.Fatalf("expected clamp to 0.99, got %v", adjusted.Probability)
	}

	h2 := Hypothesis{Category: "x", Probability: 0.1}
	adjusted2 := AdjustConfidence(h2, 0, 10, 1.0)
	if adjusted2.Probability != 0.01 {
		t.Fatalf("expected clamp to 0.01, got %v", adjusted2.Probability)
	}
}

func TestFinalizeTransitionsLifecycle(t *testing.T) {
	d := New(DispatchNoMatch, Error, Span{File: "a.janus", Line: 1, Column: 1}, "no matching implementation")
	if d.LifeState() != Building {
		t.Fatalf("expected Building at construction, got %v", d.LifeState())
	}
	d.Hypotheses = []Hypothesis{{Category: "no_matches", Probability: 2}}
	d.Finalize()
	if d.LifeState() != Finalized {
		t.Fatalf("expected Finalized, got %v", d.LifeState())
	}
	if d.Hypotheses[0].Probability != 1 {
		t.Fatalf("expected renormalized probability 1, got %v", d.Hypotheses[0].Probability)
	}
}

func TestMarkEmittedPanicsBeforeFinalize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic emitting before Finalize")
		}
	}()
	d := New(DispatchNoMatch, Error, Span{}, "x")
	d.MarkEmitted()
}

func TestSuppressCascadeRootsDropsReferencedRoot(t *testing.T) {
	root := New(DispatchNoMatch, Error, Span{File: "a.janus", Line: 1}, "root cause")
	cascaded := New(TypeMismatch, Error, Span{File: "a.janus", Line: 2}, "downstream effect")
	rootID := root.ID
	cascaded.CascadeRoot = &rootID

	out := SuppressCascadeRoots([]*Diagnostic{root, cascaded})
	if len(out) != 1 || out[0].ID != cascaded.ID {
		t.Fatalf("expected only the cascading diagnostic to survive, got %d entries", len(out))
	}
}

func TestEmitJSONMatchesSchema(t *testing.T) {
	d := New(DispatchAmbiguous, Error, Span{File: "a.janus", Line: 3, Column: 7}, "ambiguous call")
	d.Hypotheses = []Hypothesis{{Category: "equal_specificity", Probability: 1}}
	d.Finalize()

	data, err := d.EmitJSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid JSON emitted: %v", err)
	}
	if decoded["code"] != "S1101" || decoded["schema_version"].(float64) != 1 {
		t.Fatalf("unexpected JSON fields: %v", decoded)
	}
}

func TestEmitTerminalWritesCodeAndLocation(t *testing.T) {
	d := New(DispatchNoMatch, Error, Span{File: "a.janus", Line: 4, Column: 2}, "no matching implementation")
	var buf bytes.Buffer
	d.EmitTerminal(&buf)

	out := buf.String()
	if !bytes.Contains(buf.Bytes(), []byte("S1102")) {
		t.Fatalf("expected code S1102 in terminal output, got %q", out)
	}
	if !bytes.Contains(buf.Bytes(), []byte("a.janus:4:2")) {
		t.Fatalf("expected location in terminal output, got %q", out)
	}
}

func TestSuggestNamesRanksByEditDistance(t *testing.T) {
	got := SuggestNames("draw_circl", []string{"draw_circle", "erase_all", "draw_square"}, 2)
	if len(got) != 2 || got[0] != "draw_circle" {
		t.Fatalf("expected draw_circle as the closest match, got %v", got)
	}
}

func TestCodeStringFormatsFourDigits(t *testing.T) {
	if got := (Code{PhaseSemantic, 7}).String(); got != "S0007" {
		t.Fatalf("expected zero-padded code, got %q", got)
	}
}
