package query

import (
	"strings"

	"github.com/janus-lang/janus/internal/astdb"
)

// Op is the closed set of comparison operators (§4.O).
type Op int

const (
	OpEq Op = iota
	OpNeq
	OpLt
	OpLte
	OpGt
	OpGte
)

func parseOp(s string) Op {
	switch s {
	case "==":
		return OpEq
	case "!=":
		return OpNeq
	case "<":
		return OpLt
	case "<=":
		return OpLte
	case ">":
		return OpGt
	case ">=":
		return OpGte
	default:
		return OpEq
	}
}

// Expr is a pure boolean predicate over one declaration.
type Expr interface {
	Eval(d astdb.Decl) bool
}

// OrExpr is a disjunction; Eval short-circuits left to right.
type OrExpr struct{ Left, Right Expr }

func (e OrExpr) Eval(d astdb.Decl) bool { return e.Left.Eval(d) || e.Right.Eval(d) }

// AndExpr is a conjunction; Eval short-circuits left to right.
type AndExpr struct{ Left, Right Expr }

func (e AndExpr) Eval(d astdb.Decl) bool { return e.Left.Eval(d) && e.Right.Eval(d) }

// NotExpr negates its inner predicate.
type NotExpr struct{ Inner Expr }

func (e NotExpr) Eval(d astdb.Decl) bool { return !e.Inner.Eval(d) }

// KindExpr matches a declaration's Kind, e.g. the bare keyword `func`.
type KindExpr struct{ Kind astdb.Kind }

func (e KindExpr) Eval(d astdb.Decl) bool { return d.Kind == e.Kind }

// FieldExpr is a bare identifier used as a truthy attribute check, e.g.
// `exported` matching any declaration with Attrs["exported"] == true.
type FieldExpr struct{ Name string }

func (e FieldExpr) Eval(d astdb.Decl) bool {
	v, ok := d.Attrs[e.Name]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// MethodCallExpr is `ident.method("str")` -- a named predicate on a
// string-valued attribute, e.g. `name.contains("draw")`.
type MethodCallExpr struct {
	Field  string
	Method string
	Arg    string
}

func (e MethodCallExpr) Eval(d astdb.Decl) bool {
	var s string
	if e.Field == "name" {
		s = d.Name
	} else if v, ok := d.Attrs[e.Field]; ok {
		s, _ = v.(string)
	}

	switch e.Method {
	case "contains":
		return strings.Contains(s, e.Arg)
	case "starts_with":
		return strings.HasPrefix(s, e.Arg)
	case "ends_with":
		return strings.HasSuffix(s, e.Arg)
	case "equals":
		return s == e.Arg
	default:
		return false
	}
}

// ComparisonExpr is `ident op number`, e.g. `arity > 2`.
type ComparisonExpr struct {
	Field string
	Op    Op
	Value float64
}

func (e ComparisonExpr) Eval(d astdb.Decl) bool {
	var n float64
	if e.Field == "line" {
		n = float64(d.Line)
	} else if e.Field == "column" {
		n = float64(d.Column)
	} else if v, ok := d.Attrs[e.Field]; ok {
		n, _ = v.(float64)
	}

	switch e.Op {
	case OpEq:
		return n == e.Value
	case OpNeq:
		return n != e.Value
	case OpLt:
		return n < e.Value
	case OpLte:
		return n <= e.Value
	case OpGt:
		return n > e.Value
	case OpGte:
		return n >= e.Value
	default:
		return false
	}
}
