// Package modules implements the Module Dispatcher (spec §4.K):
// cross-module export folding, conflict recording, hot-reload, and the
// merged dispatch table per global name.
//
// Shaped after funxy's internal/modules/loader.go Loader (map-of-modules
// cache, name index, cycle-safe registration) but reworked around
// already-analyzed Implementation records instead of parsed source
// files, since parsing is out of scope here.
package modules

import (
	"sort"

	"github.com/google/uuid"
	"github.com/janus-lang/janus/internal/signature"
	"github.com/janus-lang/janus/internal/utils"
)

// Module is one registered compilation unit.
type Module struct {
	ID       uuid.UUID
	Name     string
	Priority int
	IsLoaded bool
	Exports  map[string]ExportedSignature
	Imports  []ImportedSignature
}

// ExportedSignature is one implementation a module makes visible to
// importers.
type ExportedSignature struct {
	Name           string
	Implementation signature.Implementation
}

// ImportedSignature is one name a module has pulled in from another
// module.
type ImportedSignature struct {
	Name           string
	FromModule     string
	FailOnConflict bool
}

// ConflictType is the closed set of cross-module registration conflicts.
type ConflictType int

const (
	SignatureNameCollision ConflictType = iota
)

// Conflict records one unresolved cross-module collision.
type Conflict struct {
	Name       string
	ModuleA    string
	ModuleB    string
	Type       ConflictType
}

// CrossModuleSignature unions every module's implementations registered
// under one global name. IsAmbiguous is true when two or more
// participating modules export an implementation at the same
// SpecificityRank with no recorded Conflict resolving the tie (§4.K):
// MergeDispatchTables would otherwise pick between them by fold order
// alone.
type CrossModuleSignature struct {
	Name                  string
	ParticipatingModules  []string
	MergedImplementations []MergedEntry
	IsAmbiguous           bool
}

type MergedEntry struct {
	Module         string
	Implementation signature.Implementation
}

// Dispatcher owns the module registry and the merged per-name view over
// it.
type Dispatcher struct {
	modules   map[string]*Module
	crossMod  map[string]*CrossModuleSignature
	conflicts map[string]Conflict
	callCache map[callKey][]signature.Implementation
}

type callKey struct {
	module    string
	name      string
	signature string
}

// New creates an empty Module Dispatcher.
func New() *Dispatcher {
	return &Dispatcher{
		modules:   make(map[string]*Module),
		crossMod:  make(map[string]*CrossModuleSignature),
		conflicts: make(map[string]Conflict),
		callCache: make(map[callKey][]signature.Implementation),
	}
}

// QualifiedCallLookup returns a cached resolution for one qualified call
// site, keyed on the full (module, signature name, type signature)
// triple (Open Question 3), so that distinct argument-type tuples never
// collide.
func (d *Dispatcher) QualifiedCallLookup(module, name, typeSignature string) ([]signature.Implementation, bool) {
	impls, ok := d.callCache[callKey{module: module, name: name, signature: typeSignature}]
	return impls, ok
}

// QualifiedCallStore records a resolution for later QualifiedCallLookup
// calls. Unload/HotReload drop the entries for the owning module's
// exported names.
func (d *Dispatcher) QualifiedCallStore(module, name, typeSignature string, impls []signature.Implementation) {
	d.callCache[callKey{module: module, name: name, signature: typeSignature}] = impls
}

// Register creates a module in the registered (unloaded) state.
func (d *Dispatcher) Register(name string, priority int) *Module {
	m := &Module{ID: uuid.New(), Name: name, Priority: priority, Exports: make(map[string]ExportedSignature)}
	d.modules[name] = m
	return m
}

// Load transitions m.IsLoaded and folds its exports into the affected
// CrossModuleSignatures (§4.K).
func (d *Dispatcher) Load(name string, exports []ExportedSignature) error {
	m, ok := d.modules[name]
	if !ok {
		return &UnknownModuleError{Name: name}
	}
	for _, e := range exports {
		m.Exports[e.Name] = e
	}
	m.IsLoaded = true
	d.fold(m)
	return nil
}

// Unload removes m from every CrossModuleSignature it participated in
// and clears the qualified-call cache for its names.
func (d *Dispatcher) Unload(name string) error {
	m, ok := d.modules[name]
	if !ok {
		return &UnknownModuleError{Name: name}
	}
	for exportName := range m.Exports {
		d.removeFromCrossModule(exportName, name)
		d.invalidateCache(name, exportName)
	}
	m.IsLoaded = false
	return nil
}

// HotReload unloads, replaces exports, then reloads m -- invalidating the
// qualified-call cache for m's names exactly once, at unload (§4.K).
func (d *Dispatcher) HotReload(name string, newExports []ExportedSignature) error {
	if err := d.Unload(name); err != nil {
		return err
	}
	return d.Load(name, newExports)
}

// Import records one cross-module import. If failOnConflict is set and
// the name already has a prior import recorded from a different module,
// a signature_name_collision conflict is recorded instead of the import
// taking effect.
func (d *Dispatcher) Import(intoModule string, imp ImportedSignature) {
	m, ok := d.modules[intoModule]
	if !ok {
		return
	}
	if imp.FailOnConflict {
		for _, existing := range m.Imports {
			if existing.Name == imp.Name && existing.FromModule != imp.FromModule {
				key := utils.QualifiedName(intoModule, imp.Name)
				d.conflicts[key] = Conflict{
					Name:    imp.Name,
					ModuleA: existing.FromModule,
					ModuleB: imp.FromModule,
					Type:    SignatureNameCollision,
				}
				return
			}
		}
	}
	m.Imports = append(m.Imports, imp)
}

// ResolveConflict removes every active conflict under name and clears
// IsAmbiguous on the matching CrossModuleSignature if one was removed.
// strategy is accepted but neither stored nor acted on: no merged entry
// is dropped.
func (d *Dispatcher) ResolveConflict(name string, strategy string) {
	cleared := false
	for key, c := range d.conflicts {
		if c.Name == name {
			_ = strategy
			delete(d.conflicts, key)
			cleared = true
		}
	}
	if cleared {
		if cms, ok := d.crossMod[name]; ok {
			cms.IsAmbiguous = false
		}
	}
}

// ActiveConflicts returns every unresolved conflict.
func (d *Dispatcher) ActiveConflicts() []Conflict {
	out := make([]Conflict, 0, len(d.conflicts))
	for _, c := range d.conflicts {
		out = append(out, c)
	}
	return out
}

// MergeDispatchTables returns the merged table for name, sorted by
// (module priority asc, specificity desc) per §4.K.
func (d *Dispatcher) MergeDispatchTables(name string) []MergedEntry {
	cms, ok := d.crossMod[name]
	if !ok {
		return nil
	}
	out := append([]MergedEntry(nil), cms.MergedImplementations...)
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := d.modules[out[i].Module].Priority, d.modules[out[j].Module].Priority
		if pi != pj {
			return pi < pj
		}
		return out[i].Implementation.SpecificityRank > out[j].Implementation.SpecificityRank
	})
	return out
}

func (d *Dispatcher) fold(m *Module) {
	for exportName, exp := range m.Exports {
		cms, ok := d.crossMod[exportName]
		if !ok {
			cms = &CrossModuleSignature{Name: exportName}
			d.crossMod[exportName] = cms
		}
		cms.ParticipatingModules = appendUnique(cms.ParticipatingModules, m.Name)

		for _, existing := range cms.MergedImplementations {
			if existing.Module == m.Name {
				continue
			}
			if existing.Implementation.SpecificityRank != exp.Implementation.SpecificityRank {
				continue
			}
			cms.IsAmbiguous = true
			key := ambiguityKey(exportName)
			if _, recorded := d.conflicts[key]; !recorded {
				d.conflicts[key] = Conflict{Name: exportName, ModuleA: existing.Module, ModuleB: m.Name, Type: SignatureNameCollision}
			}
			break
		}

		cms.MergedImplementations = append(cms.MergedImplementations, MergedEntry{Module: m.Name, Implementation: exp.Implementation})
	}
}

// ambiguityKey namespaces specificity-tie conflicts away from Import's
// utils.QualifiedName(module, name) keys, since both schemes share the
// same conflicts map but key on different things.
func ambiguityKey(exportName string) string {
	return "ambiguity:" + exportName
}

func (d *Dispatcher) removeFromCrossModule(exportName, moduleName string) {
	cms, ok := d.crossMod[exportName]
	if !ok {
		return
	}
	cms.ParticipatingModules = removeString(cms.ParticipatingModules, moduleName)

	kept := cms.MergedImplementations[:0]
	for _, e := range cms.MergedImplementations {
		if e.Module != moduleName {
			kept = append(kept, e)
		}
	}
	cms.MergedImplementations = kept
	cms.IsAmbiguous = hasSpecificityTie(cms.MergedImplementations)
}

// hasSpecificityTie reports whether two entries from different modules
// share a SpecificityRank, recomputed after a module leaves the merge so
// IsAmbiguous stays accurate once the tie it recorded is gone.
func hasSpecificityTie(entries []MergedEntry) bool {
	for i := range entries {
		for j := i + 1; j < len(entries); j++ {
			if entries[i].Module != entries[j].Module && entries[i].Implementation.SpecificityRank == entries[j].Implementation.SpecificityRank {
				return true
			}
		}
	}
	return false
}

func (d *Dispatcher) invalidateCache(moduleName, signatureName string) {
	for k := range d.callCache {
		if k.module == moduleName && k.name == signatureName {
			delete(d.callCache, k)
		}
	}
}

func appendUnique(s []string, v string) []string {
	for _, x := range s {
		if x == v {
			return s
		}
	}
	return append(s, v)
}

func removeString(s []string, v string) []string {
	out := s[:0]
	for _, x := range s {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}

// UnknownModuleError is returned by operations referencing an
// unregistered module name.
type UnknownModuleError struct {
	Name string
}

func (e *UnknownModuleError) Error() string {
	return "modules: unknown module " + e.Name
}
