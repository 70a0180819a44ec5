package classes

// New allocates a blank instance of class, builds its immutable
// super-delegation chain (one proxy per ancestor level, root included),
// then resolves the constructor chain: the nearest ancestor defining init
// runs with self bound at that level and the given arguments. The root's
// no-op init terminates the chain, so allocation without any user
// constructor still succeeds with an empty field map. A failing
// constructor propagates its error and no instance is returned.
func (exec *Execution) New(class *ClassDef, args []Value) (Value, error) {
	if class == nil {
		return NewNil(), exec.errorf(ErrTypeInvalidArgument, "new on nil class")
	}
	if class.engine != exec.engine {
		return NewNil(), exec.errorf(ErrTypeInvalidArgument, "class %s belongs to a different engine", class.Name)
	}

	inst := &Instance{class: class, fields: make(map[string]Value)}
	depth := 0
	for c := class.super; c != nil; c = c.super {
		depth++
	}
	inst.supers = make([]*SuperProxy, depth)
	for i := range inst.supers {
		inst.supers[i] = &SuperProxy{inst: inst, level: i + 1}
	}

	if m, owner, level := resolve(class, constructorName, instanceMethods); m != nil {
		self := inst.receiverAt(level)
		if _, err := exec.invoke(owner.Name+"#"+constructorName, m, self, args); err != nil {
			return NewNil(), err
		}
	}
	return NewInstance(inst), nil
}
