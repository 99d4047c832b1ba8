package point

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

var (
	// ErrMalformedPoint is returned for structurally invalid input: wrong arity,
	// non-numeric or non-finite components, unknown object keys.
	ErrMalformedPoint = errors.New("malformed point")

	// ErrUnsupportedZValue is returned when a third coordinate is present while
	// z values are not tolerated. It is a malformed-point failure.
	ErrUnsupportedZValue = fmt.Errorf("unsupported z value: %w", ErrMalformedPoint)
)

// Point is an immutable planar (x, y) coordinate pair.
type Point struct {
	X float64
	Y float64
}

// New returns the point (x, y).
func New(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Key returns the sortable binary key of p.
func (p Point) Key() Key {
	return Encode(p)
}

// Equal reports whether p and o encode to the same key.
func (p Point) Equal(o Point) bool {
	return Encode(p) == Encode(o)
}

// Compare orders p and o by their encoded keys (x first, then y).
// It returns -1, 0 or +1.
func (p Point) Compare(o Point) int {
	return Encode(p).Compare(Encode(o))
}

// String returns the canonical "x,y" text form.
func (p Point) String() string {
	return strconv.FormatFloat(p.X, 'g', -1, 64) + "," + strconv.FormatFloat(p.Y, 'g', -1, 64)
}

// Validate checks that both coordinates are finite.
func (p Point) Validate() error {
	if !isFinite(p.X) {
		return &CoordinateError{Axis: "x", Value: p.X, Err: ErrMalformedPoint}
	}
	if !isFinite(p.Y) {
		return &CoordinateError{Axis: "y", Value: p.Y, Err: ErrMalformedPoint}
	}
	return nil
}

// CoordinateError describes an invalid coordinate component.
type CoordinateError struct {
	Axis  string  // "x", "y" or "z"
	Value float64 // the rejected value
	Err   error
}

func (e *CoordinateError) Error() string {
	return fmt.Sprintf("%v: %s coordinate must be finite, got %v", e.Err, e.Axis, e.Value)
}

func (e *CoordinateError) Unwrap() error { return e.Err }

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
