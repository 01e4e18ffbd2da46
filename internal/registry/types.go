// Package registry implements the Type Registry (spec §4.A): canonical
// type identities and the subtype lattice they form.
package registry

import "fmt"

// TypeId is an opaque identity for an interned type descriptor. Equality
// is by identity, never by name or structure.
type TypeId int32

// Well-known primitive ids, reserved so callers can refer to them without
// a registry lookup.
const (
	Invalid TypeId = 0
	Int     TypeId = 1
	Float   TypeId = 2
	Bool    TypeId = 3
	String  TypeId = 4
	Bytes   TypeId = 5

	firstUserTypeId TypeId = 100
)

// Kind is the closed set of type shapes the registry understands.
type Kind int

const (
	KindPrimitive Kind = iota
	KindTableOpen
	KindTableSealed
	KindUnique
	KindUnion
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindTableOpen:
		return "table_open"
	case KindTableSealed:
		return "table_sealed"
	case KindUnique:
		return "unique"
	case KindUnion:
		return "union"
	default:
		return "unknown"
	}
}

// Type is a registered type descriptor.
type Type struct {
	ID         TypeId
	Name       string
	Kind       Kind
	Supertypes []TypeId // ordered, as declared
}

// TypeCycleError is returned when registering supertypes would create a
// cycle in the subtype lattice.
type TypeCycleError struct {
	Name string
}

func (e *TypeCycleError) Error() string {
	return fmt.Sprintf("registry: registering %q would create a subtype cycle", e.Name)
}

// DuplicateNameError is returned when a type name is already interned.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("registry: type name %q already registered", e.Name)
}

// UnknownSupertypeError is returned when a declared supertype id was never
// registered.
type UnknownSupertypeError struct {
	Id TypeId
}

func (e *UnknownSupertypeError) Error() string {
	return fmt.Sprintf("registry: unknown supertype id %d", e.Id)
}
