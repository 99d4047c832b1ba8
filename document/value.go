package document

import (
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Kind identifies the concrete type stored in a Value.
type Kind uint8

const (
	// KindInvalid represents an invalid kind.
	KindInvalid Kind = iota
	// KindNull represents an explicit null.
	KindNull
	// KindNumber represents a numeric scalar.
	KindNumber
	// KindString represents a string scalar.
	KindString
	// KindBool represents a boolean scalar.
	KindBool
	// KindArray represents an array of values.
	KindArray
	// KindObject represents an object with string keys.
	KindObject
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Value is a tagged document token.
type Value struct {
	Kind Kind
	F64  float64
	S    string
	B    bool
	A    []Value
	O    map[string]Value
}

// Null returns a null Value.
func Null() Value { return Value{Kind: KindNull} }

// Number returns a numeric Value.
func Number(v float64) Value { return Value{Kind: KindNumber, F64: v} }

// String returns a string Value.
func String(v string) Value { return Value{Kind: KindString, S: v} }

// Bool returns a boolean Value.
func Bool(v bool) Value { return Value{Kind: KindBool, B: v} }

// Array returns an array Value.
func Array(v ...Value) Value { return Value{Kind: KindArray, A: v} }

// Object returns an object Value.
func Object(v map[string]Value) Value { return Value{Kind: KindObject, O: v} }

// IsNull reports whether v is an explicit null.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// AsNumber returns the number if Kind is KindNumber.
func (v Value) AsNumber() (float64, bool) {
	if v.Kind != KindNumber {
		return 0, false
	}
	return v.F64, true
}

// AsString returns the string if Kind is KindString.
func (v Value) AsString() (string, bool) {
	if v.Kind != KindString {
		return "", false
	}
	return v.S, true
}

// AsBool returns the boolean if Kind is KindBool.
func (v Value) AsBool() (bool, bool) {
	if v.Kind != KindBool {
		return false, false
	}
	return v.B, true
}

// AsArray returns the elements if Kind is KindArray.
func (v Value) AsArray() ([]Value, bool) {
	if v.Kind != KindArray {
		return nil, false
	}
	return v.A, true
}

// AsObject returns the members if Kind is KindObject.
func (v Value) AsObject() (map[string]Value, bool) {
	if v.Kind != KindObject {
		return nil, false
	}
	return v.O, true
}

// String renders v in a compact JSON-like form for error messages and logs.
// Object keys are sorted.
func (v Value) String() string {
	var sb strings.Builder
	v.write(&sb)
	return sb.String()
}

func (v Value) write(sb *strings.Builder) {
	switch v.Kind {
	case KindNull:
		sb.WriteString("null")
	case KindNumber:
		sb.WriteString(strconv.FormatFloat(v.F64, 'g', -1, 64))
	case KindString:
		sb.WriteString(strconv.Quote(v.S))
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.B))
	case KindArray:
		sb.WriteByte('[')
		for i := range v.A {
			if i > 0 {
				sb.WriteByte(',')
			}
			v.A[i].write(sb)
		}
		sb.WriteByte(']')
	case KindObject:
		sb.WriteByte('{')
		for i, k := range slices.Sorted(maps.Keys(v.O)) {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Quote(k))
			sb.WriteByte(':')
			v.O[k].write(sb)
		}
		sb.WriteByte('}')
	default:
		sb.WriteString("<invalid>")
	}
}

// Document is a typed document: top-level field name to value.
type Document map[string]Value
