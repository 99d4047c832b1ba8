package document

import (
	"fmt"

	"github.com/hupe1980/pointfield/codec"
)

// FromAny converts a Go value into a typed Value.
//
// This exists as an adapter layer for decoded JSON and for literals in tests.
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case float64:
		return Number(x), nil
	case float32:
		return Number(float64(x)), nil
	case int:
		return Number(float64(x)), nil
	case int32:
		return Number(float64(x)), nil
	case int64:
		return Number(float64(x)), nil
	case []Value:
		return Array(x...), nil
	case []any:
		arr := make([]Value, len(x))
		for i := range x {
			vv, err := FromAny(x[i])
			if err != nil {
				return Value{}, err
			}
			arr[i] = vv
		}
		return Array(arr...), nil
	case []float64:
		arr := make([]Value, len(x))
		for i := range x {
			arr[i] = Number(x[i])
		}
		return Array(arr...), nil
	case []string:
		arr := make([]Value, len(x))
		for i := range x {
			arr[i] = String(x[i])
		}
		return Array(arr...), nil
	case map[string]Value:
		return Object(x), nil
	case map[string]any:
		obj := make(map[string]Value, len(x))
		for k, item := range x {
			vv, err := FromAny(item)
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			obj[k] = vv
		}
		return Object(obj), nil
	default:
		return Value{}, fmt.Errorf("unsupported document value type %T", v)
	}
}

// DocumentFromAny converts an untyped map[string]any document to a typed Document.
func DocumentFromAny(m map[string]any) (Document, error) {
	d := make(Document, len(m))
	for k, v := range m {
		vv, err := FromAny(v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		d[k] = vv
	}
	return d, nil
}

// Decode parses a JSON object payload into a Document.
// If c is nil, codec.Default is used.
func Decode(data []byte, c codec.Codec) (Document, error) {
	var raw map[string]any
	if err := codec.OrDefault(c).Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return DocumentFromAny(raw)
}
