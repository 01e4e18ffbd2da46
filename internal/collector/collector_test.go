package collector

import (
	"testing"

	"github.com/janus-lang/janus/internal/registry"
	"github.com/janus-lang/janus/internal/scope"
	"github.com/janus-lang/janus/internal/signature"
)

func decl(name string, arity int) scope.Declaration {
	params := make([]registry.TypeId, arity)
	for i := range params {
		params[i] = registry.Int
	}
	return scope.Declaration{
		Name:           name,
		Implementation: signature.Implementation{Function: signature.FunctionId{Name: name}, ParamTypeIds: params},
		Visibility:     scope.Public,
	}
}

func TestCollectViableMatch(t *testing.T) {
	s := scope.New(nil)
	s.Declare(decl("add", 2))

	cs := Collect(s, "add", 2)
	if len(cs.Viable) != 1 {
		t.Fatalf("expected 1 viable candidate, got %d", len(cs.Viable))
	}
	if len(cs.Rejected) != 0 {
		t.Fatalf("expected no rejections, got %d", len(cs.Rejected))
	}
}

func TestCollectArityMismatchIsNeverSilent(t *testing.T) {
	s := scope.New(nil)
	s.Declare(decl("add", 1))

	cs := Collect(s, "add", 2)
	if len(cs.Viable) != 0 {
		t.Fatalf("expected no viable candidates, got %d", len(cs.Viable))
	}
	if len(cs.Rejected) != 1 {
		t.Fatalf("expected 1 rejected candidate, got %d", len(cs.Rejected))
	}
	if cs.Rejected[0].Reason != ArityMismatch {
		t.Errorf("expected ArityMismatch, got %v", cs.Rejected[0].Reason)
	}
}

func TestCollectEmptyWhenNameUnknown(t *testing.T) {
	s := scope.New(nil)
	cs := Collect(s, "missing", 1)
	if len(cs.Viable) != 0 || len(cs.Rejected) != 0 {
		t.Fatalf("expected empty set for unknown name, got %+v", cs)
	}
}

func TestCollectWalksOuterScope(t *testing.T) {
	outer := scope.New(nil)
	outer.Declare(decl("f", 1))

	inner := scope.New(outer)
	cs := Collect(inner, "f", 1)
	if len(cs.Viable) != 1 {
		t.Fatalf("expected outer declaration to be collected, got %d viable", len(cs.Viable))
	}
}

func TestCollectMixedArityPartitionsCorrectly(t *testing.T) {
	s := scope.New(nil)
	s.Declare(decl("f", 1))
	s.Declare(decl("f", 2))
	s.Declare(decl("f", 2))

	cs := Collect(s, "f", 2)
	if len(cs.Viable) != 2 {
		t.Errorf("expected 2 viable candidates, got %d", len(cs.Viable))
	}
	if len(cs.Rejected) != 1 {
		t.Errorf("expected 1 rejected candidate, got %d", len(cs.Rejected))
	}
}
