package pointfield

import (
	"errors"
	"fmt"

	"github.com/hupe1980/pointfield/document"
	"github.com/hupe1980/pointfield/mapping"
	"github.com/hupe1980/pointfield/parser"
	"github.com/hupe1980/pointfield/point"
)

var (
	// ErrMalformedPoint is returned for structurally invalid point input.
	ErrMalformedPoint = point.ErrMalformedPoint

	// ErrUnsupportedZValue is returned when a z coordinate is present while
	// ignore_z_value is false. errors.Is(err, ErrMalformedPoint) also holds.
	ErrUnsupportedZValue = point.ErrUnsupportedZValue

	// ErrInvalidConfiguration is returned when a field mapping is rejected.
	ErrInvalidConfiguration = mapping.ErrInvalidConfiguration

	// ErrUnknownField is returned when looking up a field that is not mapped.
	ErrUnknownField = errors.New("unknown field")
)

// MappingError rejects a document because one of its point values failed to
// parse while ignore_malformed is false.
//
// The original underlying error can be accessed via errors.Unwrap.
type MappingError struct {
	Field string         // mapped field name
	Index int            // position in a list occurrence, or -1
	Value document.Value // the rejected value
	cause error
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("failed to parse field [%s] of type [point]: %v", e.Field, e.cause)
}

func (e *MappingError) Unwrap() error { return e.cause }

func translateError(field string, err error) error {
	if err == nil {
		return nil
	}

	var ve *parser.ValueError
	if errors.As(err, &ve) {
		return &MappingError{Field: field, Index: ve.Index, Value: ve.Value, cause: err}
	}

	var ce *mapping.ConfigError
	if errors.As(err, &ce) && ce.Field == "" {
		cp := *ce
		cp.Field = field
		return &cp
	}

	if errors.Is(err, point.ErrMalformedPoint) {
		return &MappingError{Field: field, Index: -1, cause: err}
	}

	return err
}
