package introspection

import (
	"testing"

	"github.com/jhump/protoreflect/dynamic"

	"github.com/janus-lang/janus/internal/astdb"
)

func testDB() *astdb.DB {
	db := astdb.New()
	db.Add(astdb.Decl{Kind: astdb.Func, Name: "draw_circle", File: "shapes.janus", Line: 10, Column: 1})
	db.Add(astdb.Decl{Kind: astdb.Struct, Name: "Circle", File: "shapes.janus", Line: 1, Column: 1})
	return db
}

func TestLoadSchemaExposesExpectedMessages(t *testing.T) {
	fd, err := loadSchema()
	if err != nil {
		t.Fatalf("unexpected error loading schema: %v", err)
	}
	for _, name := range []string{"QueryRequest", "QueryResult", "Decl"} {
		if _, err := findMessage(fd, name); err != nil {
			t.Errorf("schema missing message %q: %v", name, err)
		}
	}
}

func TestHandleQueryReturnsMatchingDecls(t *testing.T) {
	srv, err := NewServer(testDB())
	if err != nil {
		t.Fatalf("unexpected error constructing server: %v", err)
	}

	req := dynamic.NewMessage(srv.requestMD)
	req.SetField(srv.exprField, "func")

	result := srv.handleQuery(req)

	if errField, _ := result.GetField(srv.errorField).(string); errField != "" {
		t.Fatalf("unexpected error field: %q", errField)
	}
	decls, _ := result.GetField(srv.declsField).([]interface{})
	if len(decls) != 1 {
		t.Fatalf("expected 1 matching decl, got %d", len(decls))
	}
	dm, ok := decls[0].(*dynamic.Message)
	if !ok {
		t.Fatalf("expected a *dynamic.Message entry, got %T", decls[0])
	}
	if got, _ := dm.GetField(srv.nameField).(string); got != "draw_circle" {
		t.Errorf("expected draw_circle, got %q", got)
	}
}

func TestHandleQueryReportsParseErrorInErrorField(t *testing.T) {
	srv, err := NewServer(testDB())
	if err != nil {
		t.Fatalf("unexpected error constructing server: %v", err)
	}

	req := dynamic.NewMessage(srv.requestMD)
	req.SetField(srv.exprField, "arity >")

	result := srv.handleQuery(req)
	errField, _ := result.GetField(srv.errorField).(string)
	if errField == "" {
		t.Fatal("expected a non-empty error field for a malformed expression")
	}
	decls, _ := result.GetField(srv.declsField).([]interface{})
	if len(decls) != 0 {
		t.Fatal("expected no decls alongside a parse error")
	}
}
