package classes

// Instance is a runtime object: its own field storage, an owning class
// fixed at allocation, and a pre-built super-delegation chain with one
// proxy per ancestor level up to and including the root.
type Instance struct {
	class  *ClassDef
	fields map[string]Value
	supers []*SuperProxy
}

// SuperProxy is a per-ancestor-level view of one instance. Field access
// delegates to the instance; method lookup through the proxy begins at
// its level. Proxies are immutable once the chain is built.
type SuperProxy struct {
	inst  *Instance
	level int
}

// Level reports the ancestor level this proxy starts lookup at
// (1 = direct superclass).
func (p *SuperProxy) Level() int { return p.level }

func (inst *Instance) classAt(level int) *ClassDef {
	c := inst.class
	for i := 0; i < level && c != nil; i++ {
		c = c.super
	}
	return c
}

// receiverAt yields the self binding for a method resolved at the given
// ancestor level: the instance itself at level 0, the matching proxy above.
func (inst *Instance) receiverAt(level int) Value {
	if level == 0 {
		return NewInstance(inst)
	}
	return newSuperValue(inst.supers[level-1])
}

func receiverInstance(v Value) *Instance {
	switch v.kind {
	case KindInstance:
		return v.data.(*Instance)
	case KindSuper:
		return v.data.(*SuperProxy).inst
	default:
		return nil
	}
}

func receiverLevel(v Value) int {
	if v.kind == KindSuper {
		return v.data.(*SuperProxy).level
	}
	return 0
}

// ClassOf returns the owning class for instance and super receivers, the
// descriptor itself for class values, and nil otherwise. The owning class
// is fixed at allocation regardless of proxy level.
func (v Value) ClassOf() *ClassDef {
	switch v.kind {
	case KindClass:
		return v.data.(*ClassDef)
	case KindInstance:
		return v.data.(*Instance).class
	case KindSuper:
		return v.data.(*SuperProxy).inst.class
	default:
		return nil
	}
}

// Get reads a field from the receiver's underlying instance. Super
// receivers delegate transparently: however deep the delegation, there is
// one field map.
func (v Value) Get(name string) (Value, bool) {
	inst := receiverInstance(v)
	if inst == nil {
		return NewNil(), false
	}
	val, ok := inst.fields[name]
	return val, ok
}

// Set writes a field on the receiver's underlying instance.
func (v Value) Set(name string, val Value) error {
	inst := receiverInstance(v)
	if inst == nil {
		return newError(ErrTypeInvalidArgument, "cannot set field %s on %s", name, v.kind)
	}
	inst.fields[name] = val
	return nil
}

// Fields returns a copy of the instance's field map.
func (v Value) Fields() map[string]Value {
	inst := receiverInstance(v)
	if inst == nil {
		return nil
	}
	out := make(map[string]Value, len(inst.fields))
	for k, val := range inst.fields {
		out[k] = val
	}
	return out
}

// Super yields the delegation proxy one ancestor level above the receiver.
// On an instance that is the level-1 proxy; on a proxy it is the next level
// up. Walking past the root-level proxy is an InvalidSuperUsageError, as is
// asking for super outside an instance receiver.
func (v Value) Super() (Value, error) {
	inst := receiverInstance(v)
	if inst == nil {
		return NewNil(), newError(ErrTypeInvalidSuperUsage, "super is only available on an instance receiver, not %s", v.kind)
	}
	next := receiverLevel(v) + 1
	if next > len(inst.supers) {
		return NewNil(), newError(ErrTypeInvalidSuperUsage, "super used past the root of %s's ancestor chain", inst.class.Name)
	}
	return newSuperValue(inst.supers[next-1]), nil
}
