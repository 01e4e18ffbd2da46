package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/janus-lang/janus/internal/conversion"
	"github.com/janus-lang/janus/internal/diagnostics"
	"github.com/janus-lang/janus/internal/disambiguation"
	"github.com/janus-lang/janus/internal/ownership"
	"github.com/janus-lang/janus/internal/registry"
	"github.com/janus-lang/janus/internal/resolver"
	"github.com/janus-lang/janus/internal/scope"
	"github.com/janus-lang/janus/internal/signature"
)

// demoNames lists every overload name demoScope registers, so a
// no-match outcome can offer spelling suggestions the way an editor
// integration would.
var demoNames = []string{"draw", "combine"}

func tryResolveCommand() bool {
	if len(os.Args) < 2 || os.Args[1] != "resolve" {
		return false
	}
	handleResolve()
	return true
}

// demoScope registers a small, fixed set of overloads so `resolve` has
// something to dispatch against without a module loader wired in front
// of it. draw(String) takes ownership of its argument and requires the
// "io.display" capability, so a caller passing an already-moved value or
// lacking the capability has a real violation to hit (§8 scenario 6).
func demoScope(types *registry.Registry) *scope.Scope {
	sig := signature.New(types)
	root := scope.New(nil)

	register := func(name string, params []registry.TypeId, fnID uint32, paramOwnership []ownership.ParameterRequirement, capabilities []string) {
		impl := sig.Analyze(
			signature.FunctionId{Name: name, Module: "demo", Id: fnID},
			params, registry.Invalid, signature.Pure,
			signature.SourceLocation{File: "demo.janus", Line: int(fnID)},
			paramOwnership, capabilities,
		)
		root.Declare(scope.Declaration{Name: name, Implementation: impl, Visibility: scope.Public})
	}

	register("draw", []registry.TypeId{registry.Int}, 1, nil, nil)
	register("draw", []registry.TypeId{registry.String}, 2,
		[]ownership.ParameterRequirement{{Ownership: ownership.TakeOwnership}},
		[]string{"io.display"})
	register("combine", []registry.TypeId{registry.Int, registry.Int}, 3, nil, nil)
	register("combine", []registry.TypeId{registry.String, registry.String}, 4, nil, nil)

	return root
}

// ownershipCode maps an Ownership Dispatcher violation onto the closest
// existing diagnostic code (§7): no new S-codes are minted for ownership,
// the lifetime/borrow/use-after-move codes already reserved for it
// (S6001-S6003) and the capability code already reserved for effects
// (S3003) just need a real call site constructing them.
func ownershipCode(reason ownership.ViolationReason) diagnostics.Code {
	switch reason {
	case ownership.UseAfterMove, ownership.DoubleMove:
		return diagnostics.UseAfterMove
	case ownership.BorrowAfterMove, ownership.MutBorrowConflict:
		return diagnostics.BorrowConflict
	case ownership.CapabilityMissing:
		return diagnostics.EffectCapabilityLeak
	case ownership.NotCopyable:
		return diagnostics.LifetimeExceeded
	default:
		return diagnostics.LifetimeExceeded
	}
}

// parseOwnershipStates parses a comma-separated list of ownership state
// names parallel to argTypes; a missing spec defaults every argument to
// Owned, the common case where the caller holds a fresh value.
func parseOwnershipStates(spec string, n int) []ownership.OwnershipState {
	states := make([]ownership.OwnershipState, n)
	if spec == "" {
		return states
	}
	for i, tok := range strings.Split(spec, ",") {
		if i >= n {
			break
		}
		switch strings.TrimSpace(tok) {
		case "owned":
			states[i] = ownership.Owned
		case "borrowed":
			states[i] = ownership.Borrowed
		case "mut_borrowed":
			states[i] = ownership.MutBorrowed
		case "moved":
			states[i] = ownership.Moved
		}
	}
	return states
}

func handleResolve() {
	if len(os.Args) < 4 {
		fmt.Fprintln(os.Stderr, "usage: janusc resolve <name> <type>[,<type>...] [<ownership>[,<ownership>...]]")
		os.Exit(2)
	}
	name := os.Args[2]

	types := registry.New()
	var argTypes []registry.TypeId
	for _, tname := range strings.Split(os.Args[3], ",") {
		id, ok := types.FindByName(strings.TrimSpace(tname))
		if !ok {
			fmt.Fprintf(os.Stderr, "janusc: unknown type %q\n", tname)
			os.Exit(1)
		}
		argTypes = append(argTypes, id)
	}
	var ownershipSpec string
	if len(os.Args) > 4 {
		ownershipSpec = os.Args[4]
	}

	sc := demoScope(types)
	r := resolver.New(types, conversion.NewWithBuiltins())
	result := r.Resolve(sc, name, argTypes, signature.Pure)

	diags := diagnostics.NewCollector()

	switch result.Outcome.Kind {
	case disambiguation.Unique:
		impl := result.Outcome.Implementation
		fmt.Printf("resolved: %s#%d in %s (%dns, %d viable, %d scored)\n",
			impl.Function.Name, impl.Function.Id, impl.Function.Module,
			result.Metadata.ElapsedNanos, result.Metadata.CandidatesViable, result.Metadata.CandidatesScored)

		owner := ownership.New(types)
		req := impl.OwnershipRequirements()
		states := parseOwnershipStates(ownershipSpec, len(argTypes))
		for _, v := range owner.Validate(req, states, argTypes, nil) {
			span := diagnostics.Span{File: "<cli>"}
			summary := fmt.Sprintf("parameter %d of %s: %s", v.ParamIndex, impl.Function.Name, v.Reason)
			if v.ParamIndex == -1 {
				summary = fmt.Sprintf("%s: missing capability %q", impl.Function.Name, v.Detail)
			}
			d := diagnostics.New(ownershipCode(v.Reason), diagnostics.Error, span, summary)
			diags.Add(d)
		}
	case disambiguation.Ambiguous:
		d := diagnostics.New(diagnostics.DispatchAmbiguous, diagnostics.Error,
			diagnostics.Span{File: "<cli>"},
			fmt.Sprintf("%d candidates tied for %s(%s)", len(result.Outcome.Implementations), name, os.Args[3]))
		d.Hypotheses = []diagnostics.Hypothesis{{Category: result.Outcome.Reason.String(), Probability: 1}}
		diags.Add(d)
	case disambiguation.NoMatch:
		d := diagnostics.New(diagnostics.DispatchNoMatch, diagnostics.Error,
			diagnostics.Span{File: "<cli>"},
			fmt.Sprintf("no matching implementation for %s(%s)", name, os.Args[3]))
		for _, s := range diagnostics.SuggestNames(name, demoNames, 5) {
			d.Suggestions = append(d.Suggestions, diagnostics.FixSuggestion{Description: "did you mean " + s + "?", Confidence: 0.5})
		}
		diags.Add(d)
	}

	if diags.HasErrors() {
		diags.EmitAll(os.Stderr)
		os.Exit(1)
	}
}
