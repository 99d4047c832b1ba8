package mapping

import (
	"github.com/hupe1980/pointfield/point"
)

// Options is the raw mapping record of a point field.
// A nil pointer means the parameter was not given and its default applies.
type Options struct {
	IgnoreMalformed *bool   // default false
	IgnoreZValue    *bool   // default true
	NullValue       *string // default none
	Store           *bool   // default false
	DocValues       *bool   // default true
	Index           *bool   // default true
}

// Config is the validated, immutable configuration of a point field.
//
// The zero Config is unvalidated; obtain one from Build or Default.
type Config struct {
	ignoreMalformed bool
	ignoreZValue    bool
	nullValue       point.Point
	hasNullValue    bool
	store           bool
	docValues       bool
	index           bool
	validated       bool
}

// Build validates opts and returns the field configuration.
//
// A null_value that does not parse returns a *ConfigError wrapping
// ErrInvalidConfiguration.
func Build(opts Options) (Config, error) {
	cfg := Config{
		ignoreMalformed: boolOr(opts.IgnoreMalformed, false),
		ignoreZValue:    boolOr(opts.IgnoreZValue, true),
		store:           boolOr(opts.Store, false),
		docValues:       boolOr(opts.DocValues, true),
		index:           boolOr(opts.Index, true),
	}

	if opts.NullValue != nil {
		p, err := point.ParseString(*opts.NullValue, cfg.ignoreZValue)
		if err != nil {
			return Config{}, &ConfigError{
				Param:   "null_value",
				Message: "failed to parse " + *opts.NullValue,
				Err:     err,
			}
		}
		cfg.nullValue = p
		cfg.hasNullValue = true
	}

	cfg.validated = true
	return cfg, nil
}

// Default returns the configuration of a point field mapped without parameters.
func Default() Config {
	cfg, _ := Build(Options{})
	return cfg
}

// IgnoreMalformed reports whether malformed values are dropped instead of
// rejecting the document.
func (c Config) IgnoreMalformed() bool { return c.ignoreMalformed }

// IgnoreZValue reports whether a third coordinate is accepted and discarded.
func (c Config) IgnoreZValue() bool { return c.ignoreZValue }

// NullValue returns the point substituted for explicit nulls, if configured.
func (c Config) NullValue() (point.Point, bool) { return c.nullValue, c.hasNullValue }

// Store reports whether a stored field is written per point.
func (c Config) Store() bool { return c.store }

// DocValues reports whether a doc-value field is written per point.
func (c Config) DocValues() bool { return c.docValues }

// Index reports whether an indexed field is written per point.
func (c Config) Index() bool { return c.index }

// Validated reports whether c was produced by Build.
func (c Config) Validated() bool { return c.validated }

// Options returns the explicit record equivalent to c.
func (c Config) Options() Options {
	opts := Options{
		IgnoreMalformed: ptr(c.ignoreMalformed),
		IgnoreZValue:    ptr(c.ignoreZValue),
		Store:           ptr(c.store),
		DocValues:       ptr(c.docValues),
		Index:           ptr(c.index),
	}
	if c.hasNullValue {
		opts.NullValue = ptr(c.nullValue.String())
	}
	return opts
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

func ptr[T any](v T) *T { return &v }
