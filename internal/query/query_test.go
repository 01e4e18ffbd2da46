package query

import (
	"testing"

	"github.com/janus-lang/janus/internal/astdb"
)

func testDB() *astdb.DB {
	db := astdb.New()
	db.Add(astdb.Decl{Kind: astdb.Func, Name: "draw_circle", File: "shapes.janus", Line: 10, Attrs: map[string]any{"exported": true, "arity": 2.0}})
	db.Add(astdb.Decl{Kind: astdb.Func, Name: "erase_all", File: "shapes.janus", Line: 20, Attrs: map[string]any{"exported": false, "arity": 0.0}})
	db.Add(astdb.Decl{Kind: astdb.Struct, Name: "Circle", File: "shapes.janus", Line: 1, Attrs: map[string]any{"exported": true}})
	return db
}

func TestKindFilter(t *testing.T) {
	got, err := Run(testDB(), "func")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 func declarations, got %d", len(got))
	}
}

func TestAndOrPrecedence(t *testing.T) {
	got, err := Run(testDB(), "func and exported or struct")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// (func and exported) or struct -> draw_circle, Circle
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d: %+v", len(got), got)
	}
}

func TestNotBindsTighterThanAnd(t *testing.T) {
	got, err := Run(testDB(), "func and not exported")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "erase_all" {
		t.Fatalf("expected erase_all, got %+v", got)
	}
}

func TestParenthesesOverridePrecedence(t *testing.T) {
	got, err := Run(testDB(), "func and (exported or name.contains(\"erase\"))")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d: %+v", len(got), got)
	}
}

func TestNumericComparison(t *testing.T) {
	got, err := Run(testDB(), "arity > 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "draw_circle" {
		t.Fatalf("expected draw_circle, got %+v", got)
	}
}

func TestMethodCallContains(t *testing.T) {
	got, err := Run(testDB(), `name.contains("draw")`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "draw_circle" {
		t.Fatalf("expected draw_circle, got %+v", got)
	}
}

func TestParseErrorOnUnbalancedParens(t *testing.T) {
	if _, err := Parse("(func"); err == nil {
		t.Fatal("expected a parse error for an unbalanced paren")
	}
}

func TestParseErrorOnDanglingOperator(t *testing.T) {
	if _, err := Parse("arity >"); err == nil {
		t.Fatal("expected a parse error for a dangling operator")
	}
}

func TestLexErrorOnUnrecognizedCharacter(t *testing.T) {
	if _, err := Lex("func @ var"); err == nil {
		t.Fatal("expected a lex error for an unrecognized character")
	}
}
