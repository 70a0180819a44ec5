package classes

// InstanceOf walks superclass links from the receiver's owning class and
// reports whether target appears, matching by identity. The chain is
// exhausted at the root, whose superclass link is absent.
func InstanceOf(val Value, target *ClassDef) (bool, error) {
	if target == nil {
		return false, newError(ErrTypeInvalidArgument, "instanceOf target is not a class")
	}
	inst := receiverInstance(val)
	if inst == nil {
		return false, newError(ErrTypeInvalidArgument, "instanceOf on %s, not an instance", val.Kind())
	}
	for c := inst.class; c != nil; c = c.super {
		if c == target {
			return true, nil
		}
	}
	return false, nil
}
