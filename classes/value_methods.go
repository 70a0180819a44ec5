package classes

import (
	"fmt"
	"strings"
)

func (k ValueKind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindHash:
		return "hash"
	case KindClass:
		return "class"
	case KindInstance:
		return "instance"
	case KindSuper:
		return "super"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.data.(string)
	case KindNil:
		return ""
	case KindBool:
		if v.Bool() {
			return "true"
		}
		return "false"
	case KindInt:
		return fmt.Sprintf("%d", v.data.(int64))
	case KindFloat:
		return fmt.Sprintf("%g", v.data.(float64))
	case KindArray:
		elems := v.data.([]Value)
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = e.String()
		}
		return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
	case KindHash:
		entries := v.data.(map[string]Value)
		if len(entries) == 0 {
			return "{}"
		}
		parts := make([]string, 0, len(entries))
		for k, val := range entries {
			parts = append(parts, fmt.Sprintf("%s: %s", k, val.String()))
		}
		return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
	case KindClass:
		cl := v.data.(*ClassDef)
		return fmt.Sprintf("<Class %s>", cl.Name)
	case KindInstance:
		inst := v.data.(*Instance)
		return fmt.Sprintf("<%s instance>", inst.class.Name)
	case KindSuper:
		proxy := v.data.(*SuperProxy)
		return fmt.Sprintf("<%s instance super level %d>", proxy.inst.class.Name, proxy.level)
	default:
		return fmt.Sprintf("<%v>", v.kind)
	}
}

func (v Value) Truthy() bool {
	switch v.kind {
	case KindNil:
		return false
	case KindBool:
		return v.Bool()
	case KindInt:
		return v.data.(int64) != 0
	case KindFloat:
		return v.data.(float64) != 0
	case KindString:
		return v.data.(string) != ""
	case KindArray:
		return len(v.data.([]Value)) > 0
	case KindHash:
		return len(v.data.(map[string]Value)) > 0
	default:
		return true
	}
}

func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNil:
		return true
	case KindBool:
		return v.Bool() == other.Bool()
	case KindInt:
		return v.data.(int64) == other.data.(int64)
	case KindFloat:
		return v.data.(float64) == other.data.(float64)
	case KindString:
		return v.data.(string) == other.data.(string)
	case KindArray:
		left, right := v.data.([]Value), other.data.([]Value)
		if len(left) != len(right) {
			return false
		}
		for i := range left {
			if !left[i].Equal(right[i]) {
				return false
			}
		}
		return true
	case KindHash:
		left, right := v.data.(map[string]Value), other.data.(map[string]Value)
		if len(left) != len(right) {
			return false
		}
		for k, lv := range left {
			rv, ok := right[k]
			if !ok || !lv.Equal(rv) {
				return false
			}
		}
		return true
	case KindClass:
		return v.data.(*ClassDef) == other.data.(*ClassDef)
	case KindInstance:
		return v.data.(*Instance) == other.data.(*Instance)
	case KindSuper:
		return v.data.(*SuperProxy) == other.data.(*SuperProxy)
	default:
		return v.data == other.data
	}
}
