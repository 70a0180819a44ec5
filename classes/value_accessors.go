package classes

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) IsNil() bool { return v.kind == KindNil }

func (v Value) Bool() bool {
	if v.kind == KindBool {
		return v.data.(bool)
	}
	return false
}

func (v Value) Int() int64 {
	switch v.kind {
	case KindInt:
		return v.data.(int64)
	case KindFloat:
		return int64(v.data.(float64))
	default:
		return 0
	}
}

func (v Value) Float() float64 {
	switch v.kind {
	case KindFloat:
		return v.data.(float64)
	case KindInt:
		return float64(v.data.(int64))
	default:
		return 0
	}
}

func (v Value) Array() []Value {
	if v.kind != KindArray {
		return nil
	}
	return v.data.([]Value)
}

func (v Value) Hash() map[string]Value {
	if v.kind != KindHash {
		return nil
	}
	return v.data.(map[string]Value)
}

func (v Value) Class() *ClassDef {
	if v.kind != KindClass {
		return nil
	}
	return v.data.(*ClassDef)
}

func (v Value) Instance() *Instance {
	if v.kind != KindInstance {
		return nil
	}
	return v.data.(*Instance)
}

func (v Value) SuperProxy() *SuperProxy {
	if v.kind != KindSuper {
		return nil
	}
	return v.data.(*SuperProxy)
}
