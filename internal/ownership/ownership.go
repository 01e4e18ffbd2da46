// Package ownership implements the Ownership Dispatcher (spec §4.J): a
// move/borrow/capability validation layer wrapped around the Semantic
// Resolver's accepted candidates.
package ownership

import "github.com/janus-lang/janus/internal/registry"

// OwnershipState is the caller-tracked state of one value at a call site.
// moved is absorbing: it is never implicitly reversed, only cleared by an
// explicit re-initialization upstream of this package.
type OwnershipState int

const (
	Owned OwnershipState = iota
	Borrowed
	MutBorrowed
	Moved
)

func (s OwnershipState) String() string {
	switch s {
	case Owned:
		return "owned"
	case Borrowed:
		return "borrowed"
	case MutBorrowed:
		return "mut_borrowed"
	case Moved:
		return "moved"
	default:
		return "unknown"
	}
}

// ParameterOwnership is the closed set of ways an implementation's
// parameter may consume an argument.
type ParameterOwnership int

const (
	TakeOwnership ParameterOwnership = iota
	BorrowImmutable
	BorrowMutable
	CopyValue
)

// ParameterRequirement is one parameter's declared ownership contract, with
// an optional lifetime constraint tag (empty string means unconstrained).
type ParameterRequirement struct {
	Ownership ParameterOwnership
	Lifetime  string
}

// ImplementationRequirements is the ownership-relevant part of a
// candidate's declaration: per-parameter contracts plus the capabilities
// it requires from the caller.
type ImplementationRequirements struct {
	Params       []ParameterRequirement
	Capabilities []string
}

// MoveSemantics describes how values of a type may be passed: whether a
// copy is possible, whether a move is possible, and whether a destructor
// must run on scope exit.
type MoveSemantics struct {
	IsCopyable         bool
	IsMovable          bool
	RequiresDestructor bool
}

// ViolationReason is the closed set of ownership check failures.
type ViolationReason int

const (
	UseAfterMove ViolationReason = iota
	DoubleMove
	BorrowAfterMove
	MutBorrowConflict
	CapabilityMissing
	NotCopyable
)

func (r ViolationReason) String() string {
	switch r {
	case UseAfterMove:
		return "use_after_move"
	case DoubleMove:
		return "double_move"
	case BorrowAfterMove:
		return "borrow_after_move"
	case MutBorrowConflict:
		return "mut_borrow_conflict"
	case CapabilityMissing:
		return "capability_missing"
	case NotCopyable:
		return "not_copyable"
	default:
		return "unknown"
	}
}

// Violation pins a ViolationReason to the parameter (or capability) that
// triggered it. ParamIndex is -1 for a capability violation.
type Violation struct {
	ParamIndex int
	Reason     ViolationReason
	Detail     string
}

// Dispatcher validates candidates against caller-provided ownership state.
// MoveSemantics are memoized per TypeId since they depend only on the
// type's registered Kind.
type Dispatcher struct {
	types *registry.Registry
	memo  map[registry.TypeId]MoveSemantics
}

// New creates an Ownership Dispatcher backed by the given type registry.
func New(types *registry.Registry) *Dispatcher {
	return &Dispatcher{types: types, memo: make(map[registry.TypeId]MoveSemantics)}
}

// MoveSemanticsFor returns (and memoizes) the move semantics for id, derived
// from its registered Kind (§4.J): unique kinds are non-copyable, movable,
// and destructor-required; sealed table types require a destructor.
func (d *Dispatcher) MoveSemanticsFor(id registry.TypeId) MoveSemantics {
	if ms, ok := d.memo[id]; ok {
		return ms
	}

	ms := MoveSemantics{IsCopyable: true, IsMovable: true}
	if t, ok := d.types.GetType(id); ok {
		switch t.Kind {
		case registry.KindUnique:
			ms.IsCopyable = false
			ms.RequiresDestructor = true
		case registry.KindTableSealed:
			ms.RequiresDestructor = true
		}
	}

	d.memo[id] = ms
	return ms
}

// Validate checks every parameter of req against its caller-supplied
// OwnershipState and argument type, then checks that every required
// capability is present. states and argTypes must be parallel to
// req.Params; violations are returned in parameter order, capability
// violations last.
func (d *Dispatcher) Validate(req ImplementationRequirements, states []OwnershipState, argTypes []registry.TypeId, callerCapabilities map[string]bool) []Violation {
	var violations []Violation

	for i, param := range req.Params {
		state := states[i]
		switch param.Ownership {
		case TakeOwnership:
			switch {
			case state == Moved:
				violations = append(violations, Violation{ParamIndex: i, Reason: UseAfterMove})
			case state != Owned:
				violations = append(violations, Violation{ParamIndex: i, Reason: DoubleMove})
			}
		case BorrowImmutable:
			if state != Owned && state != Borrowed {
				violations = append(violations, Violation{ParamIndex: i, Reason: BorrowAfterMove})
			}
		case BorrowMutable:
			if state != Owned {
				violations = append(violations, Violation{ParamIndex: i, Reason: MutBorrowConflict})
			}
		case CopyValue:
			if !d.MoveSemanticsFor(argTypes[i]).IsCopyable {
				violations = append(violations, Violation{ParamIndex: i, Reason: NotCopyable})
			}
		}
	}

	for _, cap := range req.Capabilities {
		if !callerCapabilities[cap] {
			violations = append(violations, Violation{ParamIndex: -1, Reason: CapabilityMissing, Detail: cap})
		}
	}

	return violations
}
