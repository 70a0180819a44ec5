package classes

import (
	"context"
	"errors"
	"testing"
)

func TestNewRunsNearestConstructor(t *testing.T) {
	engine := newTestEngine(t)
	_, cat := buildMenagerie(t, engine)

	myCat := mustNew(t, engine, cat, []Value{NewString("mio"), NewString("tabby")})

	if myCat.ClassOf() != cat {
		t.Fatalf("owning class mismatch: %v", myCat.ClassOf())
	}
	if name, _ := myCat.Get("name"); name.String() != "mio" {
		t.Fatalf("name mismatch: %q", name.String())
	}
	if breed, _ := myCat.Get("breed"); breed.String() != "tabby" {
		t.Fatalf("breed mismatch: %q", breed.String())
	}
}

func TestNewFallsBackToAncestorConstructor(t *testing.T) {
	engine := newTestEngine(t)
	animal, _ := buildMenagerie(t, engine)

	// Dog defines no init; Animal's must run with the same arguments.
	dog, err := engine.DefineClass("Dog", animal)
	if err != nil {
		t.Fatalf("define Dog: %v", err)
	}

	rex := mustNew(t, engine, dog, []Value{NewString("rex")})
	if name, _ := rex.Get("name"); name.String() != "rex" {
		t.Fatalf("ancestor constructor did not run: %q", name.String())
	}
	if rex.ClassOf() != dog {
		t.Fatalf("owning class mismatch: %v", rex.ClassOf())
	}
}

func TestNewWithoutUserConstructorSucceedsUninitialized(t *testing.T) {
	engine := newTestEngine(t)
	bare, _ := engine.DefineClass("Bare", nil)

	inst := mustNew(t, engine, bare, nil)
	if fields := inst.Fields(); len(fields) != 0 {
		t.Fatalf("expected empty field map, got %v", fields)
	}
}

func TestNewBuildsSuperChain(t *testing.T) {
	engine := newTestEngine(t)
	_, cat := buildMenagerie(t, engine)

	myCat := mustNew(t, engine, cat, []Value{NewString("mio"), NewString("tabby")})

	sup, err := myCat.Super()
	if err != nil {
		t.Fatalf("super: %v", err)
	}
	if sup.Kind() != KindSuper || sup.SuperProxy().Level() != 1 {
		t.Fatalf("expected level-1 proxy, got %s", sup.String())
	}

	// Cat -> Animal -> Object: the chain holds one proxy per ancestor,
	// root included.
	rootLevel, err := sup.Super()
	if err != nil {
		t.Fatalf("super super: %v", err)
	}
	if rootLevel.SuperProxy().Level() != 2 {
		t.Fatalf("expected level-2 proxy, got %s", rootLevel.String())
	}
	if _, err := rootLevel.Super(); !IsInvalidSuperUsage(err) {
		t.Fatalf("super past the root: expected invalid-super error, got %v", err)
	}
}

func TestNewPropagatesConstructorFailure(t *testing.T) {
	engine := newTestEngine(t)
	broken, _ := engine.DefineClass("Broken", nil)
	bang := errors.New("bang")
	mustDefine(t, broken, "init", func(exec *Execution, self Value, args []Value) (Value, error) {
		return NewNil(), bang
	})

	_, err := engine.New(context.Background(), broken, nil, CallOptions{})
	if err == nil {
		t.Fatalf("expected constructor failure")
	}
	var re *RuntimeError
	if !errors.As(err, &re) || re.Type != ErrTypeRuntime {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewValidatesClass(t *testing.T) {
	engine := newTestEngine(t)
	other := newTestEngine(t)
	foreign, _ := other.DefineClass("Foreign", nil)

	if _, err := engine.New(context.Background(), nil, nil, CallOptions{}); !IsInvalidArgument(err) {
		t.Fatalf("nil class: expected invalid-argument error, got %v", err)
	}
	if _, err := engine.New(context.Background(), foreign, nil, CallOptions{}); !IsInvalidArgument(err) {
		t.Fatalf("foreign class: expected invalid-argument error, got %v", err)
	}
}

func TestInstancesHaveIndependentFields(t *testing.T) {
	engine := newTestEngine(t)
	_, cat := buildMenagerie(t, engine)

	first := mustNew(t, engine, cat, []Value{NewString("mio"), NewString("tabby")})
	second := mustNew(t, engine, cat, []Value{NewString("nya"), NewString("calico")})

	if err := first.Set("name", NewString("renamed")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if name, _ := second.Get("name"); name.String() != "nya" {
		t.Fatalf("mutating one instance leaked into another: %q", name.String())
	}
}
