package registry

// Registry owns the canonical type identities for one compilation
// instance. There is no shared global state (§9 Design Notes): every
// compilation unit owns its own Registry.
type Registry struct {
	types  map[TypeId]*Type
	byName map[string]TypeId
	nextID TypeId

	// closure memoizes is_subtype(sub, super) lookups once computed.
	// Keyed by (sub, super) pair; invalidated wholesale on any new
	// registration since a new edge can only ever add reachability,
	// never remove it, so stale "false" entries would be wrong but
	// stale "true" entries remain valid — we clear conservatively.
	closure map[closureKey]bool
}

type closureKey struct {
	sub, super TypeId
}

// New creates a Registry pre-populated with the well-known primitive
// types.
func New() *Registry {
	r := &Registry{
		types:   make(map[TypeId]*Type),
		byName:  make(map[string]TypeId),
		nextID:  firstUserTypeId,
		closure: make(map[closureKey]bool),
	}
	for id, name := range map[TypeId]string{
		Int:    "Int",
		Float:  "Float",
		Bool:   "Bool",
		String: "String",
		Bytes:  "Bytes",
	} {
		r.types[id] = &Type{ID: id, Name: name, Kind: KindPrimitive}
		r.byName[name] = id
	}
	return r
}

// RegisterType interns a new type. Fails with DuplicateNameError if the
// name already exists, UnknownSupertypeError if a declared supertype was
// never registered, or TypeCycleError if the new supertype edges would
// close a cycle.
func (r *Registry) RegisterType(name string, kind Kind, supertypes []TypeId) (TypeId, error) {
	if _, exists := r.byName[name]; exists {
		return Invalid, &DuplicateNameError{Name: name}
	}
	for _, st := range supertypes {
		if _, ok := r.types[st]; !ok {
			return Invalid, &UnknownSupertypeError{Id: st}
		}
	}

	id := r.nextID
	r.nextID++

	t := &Type{ID: id, Name: name, Kind: kind, Supertypes: append([]TypeId(nil), supertypes...)}

	// Supertypes must already be registered, so the new node can only
	// cycle back to itself via a direct self-reference.
	for _, st := range supertypes {
		if st == id {
			return Invalid, &TypeCycleError{Name: name}
		}
	}

	r.types[id] = t
	r.byName[name] = id
	r.closure = make(map[closureKey]bool)
	return id, nil
}

// GetType returns the type descriptor for id.
func (r *Registry) GetType(id TypeId) (*Type, bool) {
	t, ok := r.types[id]
	return t, ok
}

// FindByName looks up a type by its interned name.
func (r *Registry) FindByName(name string) (TypeId, bool) {
	id, ok := r.byName[name]
	return id, ok
}

// IsSubtype reports whether super appears in the reflexive-transitive
// closure of sub's supertypes. Results are memoized per (sub, super)
// pair.
func (r *Registry) IsSubtype(sub, super TypeId) bool {
	if sub == super {
		return true
	}
	key := closureKey{sub, super}
	if v, ok := r.closure[key]; ok {
		return v
	}

	result := r.computeSubtype(sub, super, make(map[TypeId]bool))
	r.closure[key] = result
	return result
}

func (r *Registry) computeSubtype(sub, super TypeId, visiting map[TypeId]bool) bool {
	if sub == super {
		return true
	}
	if visiting[sub] {
		return false // defensive: a cycle should never have been registered
	}
	visiting[sub] = true

	t, ok := r.types[sub]
	if !ok {
		return false
	}
	for _, st := range t.Supertypes {
		if r.computeSubtype(st, super, visiting) {
			return true
		}
	}
	return false
}
