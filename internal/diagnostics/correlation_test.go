package diagnostics

import "testing"

func TestCorrelationStoreRecordAndLookup(t *testing.T) {
	store, err := OpenCorrelationStore(":memory:")
	if err != nil {
		t.Fatalf("unexpected error opening store: %v", err)
	}
	defer store.Close()

	span := Span{File: "a.janus", Line: 10, Column: 3}
	d := New(DispatchNoMatch, Error, span, "no matching implementation")
	if err := store.Record(d); err != nil {
		t.Fatalf("unexpected error recording: %v", err)
	}

	ids, err := store.CorrelatedAt(span)
	if err != nil {
		t.Fatalf("unexpected error looking up: %v", err)
	}
	if len(ids) != 1 || ids[0] != d.ID.String() {
		t.Fatalf("expected the recorded diagnostic id, got %v", ids)
	}
}

func TestCorrelationStoreNoMatchAtUnknownSpan(t *testing.T) {
	store, err := OpenCorrelationStore(":memory:")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer store.Close()

	ids, err := store.CorrelatedAt(Span{File: "nowhere.janus", Line: 1, Column: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected no correlations, got %v", ids)
	}
}
