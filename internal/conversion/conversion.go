// Package conversion implements the Conversion Registry (spec §4.B): the
// explicit-conversion catalog and per-argument path search used by the
// Compatibility Analyzer.
package conversion

import (
	"fmt"

	"github.com/janus-lang/janus/internal/registry"
)

// Method is the closed set of ways a conversion can be implemented.
type Method int

const (
	MethodIdentity Method = iota
	MethodBuiltinCast
	MethodTraitMethod
	MethodConstructor
)

// Conversion is one explicit, registered from->to step.
type Conversion struct {
	From    registry.TypeId
	To      registry.TypeId
	Cost    int
	IsLossy bool
	Method  Method
}

// SelfLoopError is returned when registering from == to: identity is
// implicit and never registered explicitly.
type SelfLoopError struct {
	Type registry.TypeId
}

func (e *SelfLoopError) Error() string {
	return fmt.Sprintf("conversion: self-loop conversion for type %d is not allowed, identity is implicit", e.Type)
}

// NegativeCostError is returned when a conversion is registered with a
// negative cost. Register does not compare lossy and lossless costs.
type NegativeCostError struct {
	From, To registry.TypeId
}

func (e *NegativeCostError) Error() string {
	return fmt.Sprintf("conversion: cost must be non-negative for %d->%d", e.From, e.To)
}
