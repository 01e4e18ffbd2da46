package signature

import (
	"testing"

	"github.com/janus-lang/janus/internal/ownership"
	"github.com/janus-lang/janus/internal/registry"
)

func TestAnalyzeIsDeterministic(t *testing.T) {
	types := registry.New()
	a := New(types)
	fn := FunctionId{Name: "add", Module: "math", Id: 1}
	params := []registry.TypeId{registry.Int, registry.Int}

	impl1 := a.Analyze(fn, params, registry.Int, Pure, SourceLocation{}, nil, nil)
	impl2 := a.Analyze(fn, params, registry.Int, Pure, SourceLocation{}, nil, nil)

	if impl1.SpecificityRank != impl2.SpecificityRank {
		t.Errorf("ranks differ across calls: %d vs %d", impl1.SpecificityRank, impl2.SpecificityRank)
	}
}

func TestSealedRanksHigherThanOpen(t *testing.T) {
	types := registry.New()
	a := New(types)
	sealed, _ := types.RegisterType("Sealed", registry.KindTableSealed, nil)
	open, _ := types.RegisterType("Open", registry.KindTableOpen, nil)

	fn := FunctionId{Name: "f", Module: "m"}
	sealedImpl := a.Analyze(fn, []registry.TypeId{sealed}, registry.Int, Pure, SourceLocation{}, nil, nil)
	openImpl := a.Analyze(fn, []registry.TypeId{open}, registry.Int, Pure, SourceLocation{}, nil, nil)

	if sealedImpl.SpecificityRank <= openImpl.SpecificityRank {
		t.Errorf("sealed rank %d should exceed open rank %d", sealedImpl.SpecificityRank, openImpl.SpecificityRank)
	}
}

func TestImplementationIsImmutableCopy(t *testing.T) {
	types := registry.New()
	a := New(types)
	params := []registry.TypeId{registry.Int}
	impl := a.Analyze(FunctionId{Name: "f"}, params, registry.Int, Pure, SourceLocation{}, nil, nil)

	params[0] = registry.Bool
	if impl.ParamTypeIds[0] != registry.Int {
		t.Error("mutating caller's slice should not affect the Implementation")
	}
}

func TestAnalyzeCarriesOwnershipAndCapabilities(t *testing.T) {
	types := registry.New()
	a := New(types)
	reqs := []ownership.ParameterRequirement{{Ownership: ownership.TakeOwnership}}
	impl := a.Analyze(FunctionId{Name: "f"}, []registry.TypeId{registry.Int}, registry.Int, Pure, SourceLocation{}, reqs, []string{"fs.write"})

	if len(impl.ParamOwnership) != 1 || impl.ParamOwnership[0].Ownership != ownership.TakeOwnership {
		t.Fatalf("expected ownership contract to survive Analyze, got %+v", impl.ParamOwnership)
	}
	if len(impl.Capabilities) != 1 || impl.Capabilities[0] != "fs.write" {
		t.Fatalf("expected capabilities to survive Analyze, got %+v", impl.Capabilities)
	}

	got := impl.OwnershipRequirements()
	if len(got.Params) != 1 || len(got.Capabilities) != 1 {
		t.Fatalf("expected OwnershipRequirements to project both fields, got %+v", got)
	}

	reqs[0].Ownership = ownership.BorrowMutable
	if impl.ParamOwnership[0].Ownership != ownership.TakeOwnership {
		t.Error("mutating caller's slice should not affect the Implementation")
	}
}

func TestEffectBitset(t *testing.T) {
	e := Allocates.Union(IO)
	if !e.Contains(Allocates) || !e.Contains(IO) {
		t.Error("Union should contain both effects")
	}
	if e.Contains(Unsafe) {
		t.Error("should not contain Unsafe")
	}
	if !e.IsValid() {
		t.Error("combination of known bits should be valid")
	}
}
