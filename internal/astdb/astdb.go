// Package astdb is a minimal in-memory stand-in for the external
// parser's AST database. The lexer/parser themselves are out of scope
// (spec.md §1 Non-goals names them as an external collaborator); this
// package only holds the declaration records the Query Predicate
// Language (internal/query) reads.
package astdb

// Kind is the closed set of declaration kinds the query grammar can
// filter on (§4.O).
type Kind int

const (
	Func Kind = iota
	Var
	Const
	Struct
	Enum
)

func (k Kind) String() string {
	switch k {
	case Func:
		return "func"
	case Var:
		return "var"
	case Const:
		return "const"
	case Struct:
		return "struct"
	case Enum:
		return "enum"
	default:
		return "unknown"
	}
}

// ParseKind maps a query-grammar keyword to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "func":
		return Func, true
	case "var":
		return Var, true
	case "const":
		return Const, true
	case "struct":
		return Struct, true
	case "enum":
		return Enum, true
	default:
		return 0, false
	}
}

// Decl is one declaration record. Attrs holds the arbitrary named fields
// query predicates inspect (arity, exported, effects, ...); numeric
// attributes are stored as float64 so ComparisonExpr can compare them
// uniformly.
type Decl struct {
	Kind   Kind
	Name   string
	File   string
	Line   int
	Column int
	Attrs  map[string]any
}

// DB is the in-memory declaration store.
type DB struct {
	decls []Decl
}

// New creates an empty declaration store.
func New() *DB {
	return &DB{}
}

// Add records one declaration.
func (db *DB) Add(d Decl) {
	db.decls = append(db.decls, d)
}

// All returns every recorded declaration, in insertion order.
func (db *DB) All() []Decl {
	return db.decls
}
