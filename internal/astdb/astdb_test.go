package astdb

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseKindRoundTrip(t *testing.T) {
	for _, k := range []Kind{Func, Var, Const, Struct, Enum} {
		got, ok := ParseKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseKind(%q) = %v, %v; want %v, true", k.String(), got, ok, k)
		}
	}
}

func TestParseKindRejectsUnknown(t *testing.T) {
	if _, ok := ParseKind("trait"); ok {
		t.Error("expected ParseKind to reject an unrecognized keyword")
	}
}

func TestDBAllPreservesInsertionOrder(t *testing.T) {
	db := New()
	db.Add(Decl{Name: "a"})
	db.Add(Decl{Name: "b"})
	db.Add(Decl{Name: "c"})

	got := db.All()
	if len(got) != 3 || got[0].Name != "a" || got[1].Name != "b" || got[2].Name != "c" {
		t.Fatalf("All() = %+v, want insertion order a, b, c", got)
	}
}

func TestLoadJSONParsesDeclarations(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "decls.json")
	content := `[
		{"kind":"func","name":"draw_circle","file":"shapes.janus","line":10,"column":1,"attrs":{"exported":true,"arity":2}},
		{"kind":"struct","name":"Circle","file":"shapes.janus","line":1,"column":1}
	]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	db, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decls := db.All()
	if len(decls) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(decls))
	}
	if decls[0].Kind != Func || decls[0].Name != "draw_circle" {
		t.Errorf("unexpected first declaration: %+v", decls[0])
	}
	if decls[1].Kind != Struct || decls[1].Name != "Circle" {
		t.Errorf("unexpected second declaration: %+v", decls[1])
	}
}

func TestLoadJSONRejectsUnknownKind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "decls.json")
	if err := os.WriteFile(path, []byte(`[{"kind":"trait","name":"Drawable"}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadJSON(path); err == nil {
		t.Fatal("expected an error for an unrecognized kind")
	}
}

func TestLoadJSONMissingFileIsError(t *testing.T) {
	if _, err := LoadJSON(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
