package diagnostics

import (
	"bytes"
	"testing"
)

func TestCollectorCountsBySeverity(t *testing.T) {
	c := NewCollector()
	c.Add(New(DispatchNoMatch, Error, Span{File: "a.janus"}, "no match"))
	c.Add(New(EffectUndeclared, Warning, Span{File: "b.janus"}, "undeclared effect"))

	if c.ErrorCount != 1 || c.WarningCount != 1 {
		t.Fatalf("expected 1 error and 1 warning, got %+v", c)
	}
	if !c.HasErrors() {
		t.Fatal("expected HasErrors to be true once an Error diagnostic is added")
	}
}

func TestCollectorHasErrorsFalseWithOnlyWarnings(t *testing.T) {
	c := NewCollector()
	c.Add(New(EffectUndeclared, Warning, Span{File: "b.janus"}, "undeclared effect"))

	if c.HasErrors() {
		t.Fatal("expected HasErrors to be false with only warnings collected")
	}
}

func TestCollectorAddFinalizesDiagnostic(t *testing.T) {
	c := NewCollector()
	d := New(DispatchAmbiguous, Error, Span{File: "a.janus"}, "ambiguous")
	d.Hypotheses = []Hypothesis{{Category: "x", Probability: 2}, {Category: "y", Probability: 2}}
	c.Add(d)

	if d.LifeState() != Finalized {
		t.Fatalf("expected Add to finalize the diagnostic, got state %v", d.LifeState())
	}
	if got := d.Hypotheses[0].Probability; got != 0.5 {
		t.Fatalf("expected Finalize to renormalize hypotheses, got %v", got)
	}
}

func TestEmitAllMarksEveryDiagnosticEmitted(t *testing.T) {
	c := NewCollector()
	c.Add(New(DispatchNoMatch, Error, Span{File: "a.janus"}, "no match"))
	c.Add(New(DispatchAmbiguous, Error, Span{File: "b.janus"}, "ambiguous"))

	var buf bytes.Buffer
	c.EmitAll(&buf)

	for _, d := range c.Diagnostics {
		if d.LifeState() != Emitted {
			t.Fatalf("expected every diagnostic emitted, got %v for %s", d.LifeState(), d.Summary)
		}
	}
	if buf.Len() == 0 {
		t.Fatal("expected EmitAll to write output")
	}
}
