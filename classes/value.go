package classes

type ValueKind int

const (
	KindNil ValueKind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindHash
	KindClass
	KindInstance
	KindSuper
)

type Value struct {
	kind ValueKind
	data any
}

// MethodFunc is the callable shape for both instance and class methods.
// Instance methods receive self as the receiver the dispatcher resolved
// (the instance itself, or the super proxy at the defining level); class
// methods receive a nil self.
type MethodFunc func(exec *Execution, self Value, args []Value) (Value, error)

type Method struct {
	Name string
	Fn   MethodFunc
}
