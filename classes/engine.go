package classes

import (
	"context"
	"fmt"
)

// Config controls runtime execution bounds.
type Config struct {
	StepQuota      int
	RecursionLimit int
}

// RootClassName names the sentinel root every class chain terminates at.
const RootClassName = "Object"

// Engine owns a class graph and executes method calls with deterministic
// limits. The root class is built explicitly once here; classes defined
// without a superclass wire to it, never through a hidden default.
type Engine struct {
	config     Config
	root       *ClassDef
	classes    map[string]*ClassDef
	classOrder []string
}

// NewEngine constructs an Engine with sane defaults and the sentinel root
// class. The root carries a no-op constructor so constructor-chain
// resolution always terminates.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.StepQuota < 0 {
		return nil, newError(ErrTypeInvalidArgument, "step quota cannot be negative")
	}
	if cfg.RecursionLimit < 0 {
		return nil, newError(ErrTypeInvalidArgument, "recursion limit cannot be negative")
	}
	if cfg.StepQuota == 0 {
		cfg.StepQuota = 50000
	}
	if cfg.RecursionLimit == 0 {
		cfg.RecursionLimit = 64
	}

	engine := &Engine{
		config:  cfg,
		classes: make(map[string]*ClassDef),
	}
	root := newClassDef(RootClassName, nil, engine)
	root.MustDefineMethod(constructorName, func(exec *Execution, self Value, args []Value) (Value, error) {
		return NewNil(), nil
	})
	engine.root = root
	engine.classes[RootClassName] = root
	engine.classOrder = append(engine.classOrder, RootClassName)
	return engine, nil
}

// MustNewEngine constructs an Engine or panics if the config is invalid.
func MustNewEngine(cfg Config) *Engine {
	engine, err := NewEngine(cfg)
	if err != nil {
		panic(err)
	}
	return engine
}

// Root returns the sentinel root class.
func (e *Engine) Root() *ClassDef {
	return e.root
}

// DefineClass creates a class descriptor with empty method registries.
// A nil superclass wires to the root.
func (e *Engine) DefineClass(name string, super *ClassDef) (*ClassDef, error) {
	if name == "" {
		return nil, newError(ErrTypeInvalidArgument, "class name cannot be empty")
	}
	if _, exists := e.classes[name]; exists {
		return nil, newError(ErrTypeInvalidArgument, "class %s already defined", name)
	}
	if super == nil {
		super = e.root
	} else if super.engine != e {
		return nil, newError(ErrTypeInvalidArgument, "superclass %s belongs to a different engine", super.Name)
	}
	class := newClassDef(name, super, e)
	e.classes[name] = class
	e.classOrder = append(e.classOrder, name)
	return class, nil
}

// MustDefineClass is DefineClass panicking on error.
func (e *Engine) MustDefineClass(name string, super *ClassDef) *ClassDef {
	class, err := e.DefineClass(name, super)
	if err != nil {
		panic(err)
	}
	return class
}

// Class looks a class up by name.
func (e *Engine) Class(name string) (*ClassDef, bool) {
	class, ok := e.classes[name]
	return class, ok
}

// Classes lists every class in definition order, root first.
func (e *Engine) Classes() []*ClassDef {
	out := make([]*ClassDef, 0, len(e.classOrder))
	for _, name := range e.classOrder {
		out = append(out, e.classes[name])
	}
	return out
}

// New allocates and initializes an instance of class as a boundary call.
func (e *Engine) New(ctx context.Context, class *ClassDef, args []Value, opts CallOptions) (Value, error) {
	return e.newExecution(ctx, opts).New(class, args)
}

// Call dispatches an instance method on receiver as a boundary call.
func (e *Engine) Call(ctx context.Context, receiver Value, name string, args []Value, opts CallOptions) (Value, error) {
	return e.newExecution(ctx, opts).Call(receiver, name, args)
}

// CallClass dispatches a class method on class as a boundary call.
func (e *Engine) CallClass(ctx context.Context, class *ClassDef, name string, args []Value, opts CallOptions) (Value, error) {
	return e.newExecution(ctx, opts).CallClass(class, name, args)
}

// ConfigSummary provides a human-readable description of the engine limits.
func (e *Engine) ConfigSummary() string {
	return fmt.Sprintf("steps=%d recursion=%d", e.config.StepQuota, e.config.RecursionLimit)
}
