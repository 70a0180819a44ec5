package classes

type methodKind int

const (
	instanceMethods methodKind = iota
	classMethods
)

// resolve walks the ancestor chain from class looking for name in the
// registry selected by kind. It returns the method, the defining class,
// and how many levels up from class the match sits. Dispatch is a pure
// deterministic walk; there is no metaprogramming hook anywhere.
func resolve(class *ClassDef, name string, kind methodKind) (*Method, *ClassDef, int) {
	level := 0
	for c := class; c != nil; c = c.super {
		table := c.methods
		if kind == classMethods {
			table = c.classMethods
		}
		if m, ok := table[name]; ok {
			return m, c, level
		}
		level++
	}
	return nil, nil, 0
}

// Call dispatches an instance method on receiver (an instance or a super
// proxy). Lookup begins at the receiver's level; the matched method runs
// with self bound at the level that defined it, so nested super access
// keeps descending the chain while field access stays on the one instance.
func (exec *Execution) Call(receiver Value, name string, args []Value) (Value, error) {
	inst := receiverInstance(receiver)
	if inst == nil {
		return NewNil(), exec.errorf(ErrTypeInvalidArgument, "instance call on %s", receiver.Kind())
	}
	start := receiverLevel(receiver)
	m, owner, delta := resolve(inst.classAt(start), name, instanceMethods)
	if m == nil {
		return NewNil(), exec.errorf(ErrTypeMethodNotFound, "undefined method %s for %s", name, inst.class.Name)
	}
	self := inst.receiverAt(start + delta)
	return exec.invoke(owner.Name+"#"+name, m, self, args)
}

// CallClass dispatches a class method along the same ancestor chain,
// searching class-method registries only. Class methods run with no bound
// self.
func (exec *Execution) CallClass(class *ClassDef, name string, args []Value) (Value, error) {
	if class == nil {
		return NewNil(), exec.errorf(ErrTypeInvalidArgument, "class call on nil class")
	}
	if class.engine != exec.engine {
		return NewNil(), exec.errorf(ErrTypeInvalidArgument, "class %s belongs to a different engine", class.Name)
	}
	m, owner, _ := resolve(class, name, classMethods)
	if m == nil {
		return NewNil(), exec.errorf(ErrTypeMethodNotFound, "undefined class method %s for %s", name, class.Name)
	}
	return exec.invoke(owner.Name+"."+name, m, NewNil(), args)
}

func (exec *Execution) invoke(frame string, m *Method, self Value, args []Value) (Value, error) {
	if err := exec.step(); err != nil {
		return NewNil(), exec.wrapError(err)
	}
	if err := exec.pushFrame(frame); err != nil {
		return NewNil(), err
	}
	defer exec.popFrame()

	val, err := m.Fn(exec, self, args)
	if err != nil {
		return NewNil(), exec.wrapError(err)
	}
	return val, nil
}
