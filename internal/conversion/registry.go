package conversion

import "github.com/janus-lang/janus/internal/registry"

type pairKey struct {
	from, to registry.TypeId
}

// Registry is the per-instance conversion catalog.
type Registry struct {
	conversions map[pairKey]Conversion
	from        map[registry.TypeId][]registry.TypeId
}

// New creates an empty conversion registry.
func New() *Registry {
	return &Registry{
		conversions: make(map[pairKey]Conversion),
		from:        make(map[registry.TypeId][]registry.TypeId),
	}
}

// NewWithBuiltins creates a registry pre-populated with the minimum
// built-in conversions required by §4.B: lossless integer->float
// widening, lossy float->integer narrowing, and bool<->integer, all with
// positive cost, with every lossy conversion strictly more expensive
// than every lossless one.
func NewWithBuiltins() *Registry {
	r := New()
	must := func(err error) {
		if err != nil {
			panic("conversion: builtin registration failed: " + err.Error())
		}
	}
	must(r.Register(Conversion{From: registry.Int, To: registry.Float, Cost: 5, IsLossy: false, Method: MethodBuiltinCast}))
	must(r.Register(Conversion{From: registry.Bool, To: registry.Int, Cost: 5, IsLossy: false, Method: MethodBuiltinCast}))
	must(r.Register(Conversion{From: registry.Float, To: registry.Int, Cost: 20, IsLossy: true, Method: MethodBuiltinCast}))
	must(r.Register(Conversion{From: registry.Int, To: registry.Bool, Cost: 20, IsLossy: true, Method: MethodBuiltinCast}))
	return r
}

// Register adds an explicit conversion. Fails on a self-loop or a
// negative cost.
func (r *Registry) Register(c Conversion) error {
	if c.From == c.To {
		return &SelfLoopError{Type: c.From}
	}
	if c.Cost < 0 {
		return &NegativeCostError{From: c.From, To: c.To}
	}
	key := pairKey{c.From, c.To}
	r.conversions[key] = c
	r.from[c.From] = append(r.from[c.From], c.To)
	return nil
}

// FindExplicit returns the registered conversion from->to, if any.
// Identity is not returned here: callers wanting "from == to is free"
// behavior should use FindPath, which handles identity itself.
func (r *Registry) FindExplicit(from, to registry.TypeId) (Conversion, bool) {
	c, ok := r.conversions[pairKey{from, to}]
	return c, ok
}

// AvailableFrom returns every type reachable from t via one registered
// explicit conversion (not including t itself).
func (r *Registry) AvailableFrom(t registry.TypeId) []registry.TypeId {
	return append([]registry.TypeId(nil), r.from[t]...)
}

// FindPath searches for a per-argument conversion path from fromTypes to
// toTypes. Each argument position is resolved independently — there is
// no cross-argument chaining (§4.B). If any argument has no path, the
// whole path is absent. fromTypes and toTypes must be the same length
// (call-site arity); a mismatch is treated as no path.
func (r *Registry) FindPath(fromTypes, toTypes []registry.TypeId) (Path, bool) {
	if len(fromTypes) != len(toTypes) {
		return Path{}, false
	}
	steps := make([]Conversion, len(fromTypes))
	for i := range fromTypes {
		from, to := fromTypes[i], toTypes[i]
		if from == to {
			steps[i] = identityStep(from)
			continue
		}
		c, ok := r.FindExplicit(from, to)
		if !ok {
			return Path{}, false
		}
		steps[i] = c
	}
	return Path{Steps: steps}, true
}
