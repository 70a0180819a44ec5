package classes

func NewNil() Value            { return Value{kind: KindNil} }
func NewBool(b bool) Value     { return Value{kind: KindBool, data: b} }
func NewInt(i int64) Value     { return Value{kind: KindInt, data: i} }
func NewFloat(f float64) Value { return Value{kind: KindFloat, data: f} }
func NewString(s string) Value { return Value{kind: KindString, data: s} }
func NewArray(a []Value) Value { return Value{kind: KindArray, data: a} }
func NewHash(h map[string]Value) Value {
	return Value{kind: KindHash, data: h}
}

func NewClass(def *ClassDef) Value     { return Value{kind: KindClass, data: def} }
func NewInstance(inst *Instance) Value { return Value{kind: KindInstance, data: inst} }

func newSuperValue(proxy *SuperProxy) Value {
	return Value{kind: KindSuper, data: proxy}
}
