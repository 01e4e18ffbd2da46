package main

import (
	"fmt"
	"os"

	"github.com/janus-lang/janus/internal/modules"
	"github.com/janus-lang/janus/internal/registry"
	"github.com/janus-lang/janus/internal/signature"
)

func tryModulesCommand() bool {
	if len(os.Args) < 2 || os.Args[1] != "modules" {
		return false
	}
	handleModules()
	return true
}

// handleModules registers two demo modules that both export "draw" and
// prints the Module Dispatcher's merged view and any recorded conflict,
// since there is no real module loader in front of it yet.
func handleModules() {
	types := registry.New()
	sig := signature.New(types)

	exportDraw := func(module string, fnID uint32, param registry.TypeId) modules.ExportedSignature {
		impl := sig.Analyze(
			signature.FunctionId{Name: "draw", Module: module, Id: fnID},
			[]registry.TypeId{param}, registry.Invalid, signature.Pure,
			signature.SourceLocation{File: module + ".janus", Line: int(fnID)},
			nil, nil,
		)
		return modules.ExportedSignature{Name: "draw", Implementation: impl}
	}

	d := modules.New()
	d.Register("shapes", 0)
	d.Register("text", 1)

	if err := d.Load("shapes", []modules.ExportedSignature{exportDraw("shapes", 1, registry.Int)}); err != nil {
		fmt.Fprintf(os.Stderr, "janusc: %v\n", err)
		os.Exit(2)
	}
	if err := d.Load("text", []modules.ExportedSignature{exportDraw("text", 2, registry.String)}); err != nil {
		fmt.Fprintf(os.Stderr, "janusc: %v\n", err)
		os.Exit(2)
	}

	for _, entry := range d.MergeDispatchTables("draw") {
		fmt.Printf("draw: %s::%s#%d\n", entry.Module, entry.Implementation.Function.Name, entry.Implementation.Function.Id)
	}

	for _, c := range d.ActiveConflicts() {
		fmt.Fprintf(os.Stderr, "conflict: %s between %s and %s\n", c.Name, c.ModuleA, c.ModuleB)
	}
}
