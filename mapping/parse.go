package mapping

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/hupe1980/pointfield/codec"
)

// TypeName is the mapping type handled by this package.
const TypeName = "point"

// OptionsFromMap reads a field mapping record such as the one decoded from
// {"type": "point", "store": true}.
//
// Booleans accept true/false and the strings "true"/"false". Unknown
// parameters are rejected.
func OptionsFromMap(m map[string]any) (Options, error) {
	var opts Options

	// Sorted for deterministic error reporting.
	for _, key := range slices.Sorted(maps.Keys(m)) {
		raw := m[key]
		var err error
		switch key {
		case "type":
			if s, ok := raw.(string); !ok || s != TypeName {
				return Options{}, &ConfigError{Param: key, Message: fmt.Sprintf("expected %q, got %v", TypeName, raw)}
			}
		case "ignore_malformed":
			opts.IgnoreMalformed, err = boolParam(key, raw)
		case "ignore_z_value":
			opts.IgnoreZValue, err = boolParam(key, raw)
		case "store":
			opts.Store, err = boolParam(key, raw)
		case "doc_values":
			opts.DocValues, err = boolParam(key, raw)
		case "index":
			opts.Index, err = boolParam(key, raw)
		case "null_value":
			switch v := raw.(type) {
			case nil:
			case string:
				opts.NullValue = &v
			default:
				err = &ConfigError{Param: key, Message: fmt.Sprintf("expected string or null, got %T", raw)}
			}
		case "properties":
			err = &ConfigError{Param: key, Message: `nested properties are not a point parameter; expected {"properties": {"<field>": {"type": "point"}}}`}
		default:
			err = &ConfigError{Param: key, Message: "unknown parameter"}
		}
		if err != nil {
			return Options{}, err
		}
	}
	return opts, nil
}

// ParseJSON decodes a mapping and builds the config of every point field.
//
// Accepted forms are {"properties": {"location": {...}}}, the same wrapped in
// one mapping type level ({"_doc": {"properties": {...}}}) and the bare
// {"location": {...}}. If c is nil, codec.Default is used.
func ParseJSON(data []byte, c codec.Codec) (map[string]Config, error) {
	var raw map[string]any
	if err := codec.OrDefault(c).Unmarshal(data, &raw); err != nil {
		return nil, &ConfigError{Param: "mapping", Message: "decode failed", Err: err}
	}
	raw, err := fieldMappings(raw)
	if err != nil {
		return nil, err
	}

	out := make(map[string]Config, len(raw))
	for _, name := range slices.Sorted(maps.Keys(raw)) {
		fieldMap, ok := raw[name].(map[string]any)
		if !ok {
			return nil, &ConfigError{Field: name, Param: "mapping", Message: fmt.Sprintf("expected object, got %T", raw[name])}
		}
		opts, err := OptionsFromMap(fieldMap)
		if err != nil {
			return nil, withField(err, name)
		}
		cfg, err := Build(opts)
		if err != nil {
			return nil, withField(err, name)
		}
		out[name] = cfg
	}
	return out, nil
}

// MarshalJSON encodes cfgs as {"properties": {"<field>": {...}}} with every
// parameter spelled out. ParseJSON of the result yields equal configs.
// If c is nil, codec.Default is used.
func MarshalJSON(cfgs map[string]Config, c codec.Codec) ([]byte, error) {
	props := make(map[string]any, len(cfgs))
	for name, cfg := range cfgs {
		if !cfg.Validated() {
			return nil, &ConfigError{Field: name, Param: "mapping", Message: "configuration was not built"}
		}
		props[name] = cfg.toMap()
	}

	data, err := codec.OrDefault(c).Marshal(map[string]any{"properties": props})
	if err != nil {
		return nil, fmt.Errorf("encode mapping: %w", err)
	}
	return data, nil
}

func (c Config) toMap() map[string]any {
	m := map[string]any{
		"type":             TypeName,
		"ignore_malformed": c.ignoreMalformed,
		"ignore_z_value":   c.ignoreZValue,
		"store":            c.store,
		"doc_values":       c.docValues,
		"index":            c.index,
	}
	if c.hasNullValue {
		m["null_value"] = c.nullValue.String()
	}
	return m
}

// fieldMappings strips the optional type and properties levels of raw.
func fieldMappings(raw map[string]any) (map[string]any, error) {
	if len(raw) == 1 {
		for typeName, v := range raw {
			if inner, ok := v.(map[string]any); ok && typeName != "properties" && isPropertiesOnly(inner) {
				raw = inner
			}
		}
	}
	if !isPropertiesOnly(raw) {
		return raw, nil
	}
	props, ok := raw["properties"].(map[string]any)
	if !ok {
		return nil, &ConfigError{
			Param:   "properties",
			Message: fmt.Sprintf(`expected object, got %T; mapping must look like {"properties": {"<field>": {"type": "point"}}}`, raw["properties"]),
		}
	}
	return props, nil
}

func isPropertiesOnly(m map[string]any) bool {
	_, ok := m["properties"]
	return ok && len(m) == 1
}

func boolParam(key string, raw any) (*bool, error) {
	switch v := raw.(type) {
	case bool:
		return &v, nil
	case string:
		switch v {
		case "true":
			return ptr(true), nil
		case "false":
			return ptr(false), nil
		}
	}
	return nil, &ConfigError{Param: key, Message: fmt.Sprintf("expected boolean, got %v", raw)}
}

func withField(err error, field string) error {
	var ce *ConfigError
	if errors.As(err, &ce) {
		cp := *ce
		cp.Field = field
		return &cp
	}
	return err
}
