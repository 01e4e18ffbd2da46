package utils

import "testing"

func TestQualifiedName(t *testing.T) {
	got := QualifiedName("geometry", "draw")
	want := "geometry::draw"
	if got != want {
		t.Errorf("QualifiedName() = %q, want %q", got, want)
	}
}
