package conversion

import "github.com/janus-lang/janus/internal/registry"

// Path is an ordered, per-argument sequence of conversions. Composition
// across arguments is never chained (§3): each step stands alone.
type Path struct {
	Steps []Conversion
}

// TotalCost sums every step's cost.
func (p Path) TotalCost() int {
	total := 0
	for _, s := range p.Steps {
		total += s.Cost
	}
	return total
}

// IsLossy is true if any step is lossy.
func (p Path) IsLossy() bool {
	for _, s := range p.Steps {
		if s.IsLossy {
			return true
		}
	}
	return false
}

// identityStep is the zero-cost placeholder used whenever an argument's
// type already equals the parameter type.
func identityStep(t registry.TypeId) Conversion {
	return Conversion{From: t, To: t, Cost: 0, IsLossy: false, Method: MethodIdentity}
}
