package main

import (
	"fmt"

	"github.com/paulmoore/classkit/classes"
)

// newMenagerie builds the sample hierarchy the REPL and demo command work
// against: Animal under the root, Cat and Dog under Animal.
func newMenagerie(cfg classes.Config) (*classes.Engine, error) {
	engine, err := classes.NewEngine(cfg)
	if err != nil {
		return nil, err
	}

	animal, err := engine.DefineClass("Animal", nil)
	if err != nil {
		return nil, err
	}
	animal.MustDefineMethod("init", func(exec *classes.Execution, self classes.Value, args []classes.Value) (classes.Value, error) {
		if len(args) < 1 {
			return classes.NewNil(), fmt.Errorf("Animal init expects a name")
		}
		return classes.NewNil(), self.Set("name", args[0])
	})
	animal.MustDefineMethod("name", func(exec *classes.Execution, self classes.Value, args []classes.Value) (classes.Value, error) {
		val, _ := self.Get("name")
		return val, nil
	})
	animal.MustDefineMethod("speak", func(exec *classes.Execution, self classes.Value, args []classes.Value) (classes.Value, error) {
		return classes.NewString("..."), nil
	})
	animal.MustDefineClassMethod("kingdom", func(exec *classes.Execution, self classes.Value, args []classes.Value) (classes.Value, error) {
		return classes.NewString("Animalia"), nil
	})

	cat, err := engine.DefineClass("Cat", animal)
	if err != nil {
		return nil, err
	}
	cat.MustDefineMethod("init", func(exec *classes.Execution, self classes.Value, args []classes.Value) (classes.Value, error) {
		if len(args) < 2 {
			return classes.NewNil(), fmt.Errorf("Cat init expects a name and a breed")
		}
		sup, err := self.Super()
		if err != nil {
			return classes.NewNil(), err
		}
		if _, err := exec.Call(sup, "init", args[:1]); err != nil {
			return classes.NewNil(), err
		}
		return classes.NewNil(), self.Set("breed", args[1])
	})
	cat.MustDefineMethod("speak", func(exec *classes.Execution, self classes.Value, args []classes.Value) (classes.Value, error) {
		return classes.NewString("meow"), nil
	})
	cat.MustDefineMethod("breed", func(exec *classes.Execution, self classes.Value, args []classes.Value) (classes.Value, error) {
		val, _ := self.Get("breed")
		return val, nil
	})

	// Dog defines no constructor: allocation falls back to Animal's.
	dog, err := engine.DefineClass("Dog", animal)
	if err != nil {
		return nil, err
	}
	dog.MustDefineMethod("speak", func(exec *classes.Execution, self classes.Value, args []classes.Value) (classes.Value, error) {
		return classes.NewString("woof"), nil
	})

	return engine, nil
}
