package classes

import (
	"context"
	"testing"
)

func newTestEngine(t testing.TB) *Engine {
	t.Helper()
	return MustNewEngine(Config{})
}

// buildMenagerie wires the hierarchy most tests share: Animal under the
// root with a one-argument constructor, Cat under Animal chaining to it.
func buildMenagerie(t testing.TB, engine *Engine) (animal, cat *ClassDef) {
	t.Helper()

	animal, err := engine.DefineClass("Animal", nil)
	if err != nil {
		t.Fatalf("define Animal: %v", err)
	}
	mustDefine(t, animal, "init", func(exec *Execution, self Value, args []Value) (Value, error) {
		name := NewNil()
		if len(args) > 0 {
			name = args[0]
		}
		if err := self.Set("name", name); err != nil {
			return NewNil(), err
		}
		return NewNil(), nil
	})
	mustDefine(t, animal, "name", func(exec *Execution, self Value, args []Value) (Value, error) {
		val, _ := self.Get("name")
		return val, nil
	})
	mustDefine(t, animal, "speak", func(exec *Execution, self Value, args []Value) (Value, error) {
		return NewString("..."), nil
	})

	cat, err = engine.DefineClass("Cat", animal)
	if err != nil {
		t.Fatalf("define Cat: %v", err)
	}
	mustDefine(t, cat, "init", func(exec *Execution, self Value, args []Value) (Value, error) {
		sup, err := self.Super()
		if err != nil {
			return NewNil(), err
		}
		if _, err := exec.Call(sup, "init", args[:1]); err != nil {
			return NewNil(), err
		}
		if err := self.Set("breed", args[1]); err != nil {
			return NewNil(), err
		}
		return NewNil(), nil
	})
	mustDefine(t, cat, "speak", func(exec *Execution, self Value, args []Value) (Value, error) {
		return NewString("meow"), nil
	})

	return animal, cat
}

func mustDefine(t testing.TB, class *ClassDef, name string, fn MethodFunc) {
	t.Helper()
	if err := class.DefineMethod(name, fn); err != nil {
		t.Fatalf("define %s#%s: %v", class.Name, name, err)
	}
}

func mustNew(t testing.TB, engine *Engine, class *ClassDef, args []Value) Value {
	t.Helper()
	inst, err := engine.New(context.Background(), class, args, CallOptions{})
	if err != nil {
		t.Fatalf("new %s: %v", class.Name, err)
	}
	return inst
}

func mustCall(t testing.TB, engine *Engine, receiver Value, name string, args []Value) Value {
	t.Helper()
	val, err := engine.Call(context.Background(), receiver, name, args, CallOptions{})
	if err != nil {
		t.Fatalf("call %s: %v", name, err)
	}
	return val
}

func mustInstanceOf(t testing.TB, val Value, target *ClassDef) bool {
	t.Helper()
	ok, err := InstanceOf(val, target)
	if err != nil {
		t.Fatalf("instanceOf %s: %v", target.Name, err)
	}
	return ok
}
