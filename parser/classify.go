package parser

import "github.com/hupe1980/pointfield/document"

// Shape is the structural interpretation of a field occurrence.
type Shape uint8

const (
	// ShapeInvalid is a value that can never denote a point (bool, bare number).
	ShapeInvalid Shape = iota
	// ShapeNull is an explicit null.
	ShapeNull
	// ShapeObject is a single point given as {"x", "y"[, "z"]}.
	ShapeObject
	// ShapeString is a single point given as text.
	ShapeString
	// ShapeNumericPoint is a single point given as [x, y] or [x, y, z].
	ShapeNumericPoint
	// ShapeList is an array of points.
	ShapeList
)

// String returns the string representation of the Shape.
func (s Shape) String() string {
	switch s {
	case ShapeNull:
		return "null"
	case ShapeObject:
		return "object"
	case ShapeString:
		return "string"
	case ShapeNumericPoint:
		return "numeric point"
	case ShapeList:
		return "list"
	default:
		return "invalid"
	}
}

// Classify decides how a top-level occurrence is read.
//
// A non-empty array whose elements are all bare numbers is a single point.
// Any other array, including the empty one, is a list of points. Arity is
// not checked here: [1, 2, 3, 4] is a malformed single point, not a list.
func Classify(v document.Value) Shape {
	switch v.Kind {
	case document.KindNull:
		return ShapeNull
	case document.KindObject:
		return ShapeObject
	case document.KindString:
		return ShapeString
	case document.KindArray:
		if len(v.A) == 0 {
			return ShapeList
		}
		for i := range v.A {
			if v.A[i].Kind != document.KindNumber {
				return ShapeList
			}
		}
		return ShapeNumericPoint
	default:
		return ShapeInvalid
	}
}
