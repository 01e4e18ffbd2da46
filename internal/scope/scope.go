// Package scope implements the Scope Manager (spec §4.E): lexical scopes
// with parent links, name+arity indexed lookup, and visibility.
//
// Shaped directly after funxy's symbols.SymbolTable: a map keyed by name
// plus an outer *SymbolTable walked on miss
// (internal/symbols/symbol_table_dispatch.go's GetTraitMethodDispatch,
// symbol_table_implementations.go's FindMatchingImplementation /
// IsImplementationExists all recurse to s.outer on local miss) —
// generalized here from trait instances to arbitrary named, arity-keyed
// declarations.
package scope

import "github.com/janus-lang/janus/internal/signature"

// Visibility controls whether a declaration is visible from outside its
// declaring scope/module.
type Visibility int

const (
	Public Visibility = iota
	Protected
	Internal
)

// Declaration binds one Implementation to a name within a scope, along
// with its visibility.
type Declaration struct {
	Name           string
	Implementation signature.Implementation
	Visibility     Visibility
}

// ShadowWarning is emitted when a declaration shadows a visible outer
// declaration of the same name and arity. Shadowing is legal; it is only
// ever a warning, never an error (§4.E).
type ShadowWarning struct {
	Name        string
	InnerArity  int
	OuterModule string
}

// Scope is one lexical level. Lookup walks the whole Parent chain, like
// SymbolTable.outer; Declare checks only the direct Parent for shadowing.
type Scope struct {
	Parent *Scope
	decls  map[string][]Declaration
}

// New creates a scope whose Parent is parent (nil for a root scope).
func New(parent *Scope) *Scope {
	return &Scope{Parent: parent, decls: make(map[string][]Declaration)}
}

// Declare adds a declaration to this scope. If the direct parent scope
// already declares the same name at the same arity with a visibility
// other than Internal, a ShadowWarning is returned; otherwise nil.
// Shadowing itself never fails.
func (s *Scope) Declare(d Declaration) *ShadowWarning {
	s.decls[d.Name] = append(s.decls[d.Name], d)

	if s.Parent != nil {
		for _, outer := range s.Parent.lookupLocal(d.Name) {
			if outer.Implementation.Arity() == d.Implementation.Arity() && outer.Visibility != Internal {
				return &ShadowWarning{
					Name:        d.Name,
					InnerArity:  d.Implementation.Arity(),
					OuterModule: outer.Implementation.Function.Module,
				}
			}
		}
	}
	return nil
}

func (s *Scope) lookupLocal(name string) []Declaration {
	return s.decls[name]
}

// Lookup returns every declaration visible from this scope matching name
// and expectedArity, from this scope and then every enclosing Parent
// (outer matches are included even when this scope has local ones).
// expectedArity < 0 disables the arity filter.
func (s *Scope) Lookup(name string, expectedArity int) []Declaration {
	var out []Declaration
	for cur := s; cur != nil; cur = cur.Parent {
		for _, d := range cur.decls[name] {
			if expectedArity >= 0 && d.Implementation.Arity() != expectedArity {
				continue
			}
			out = append(out, d)
		}
	}
	return out
}
