package parser

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/hupe1980/pointfield/document"
	"github.com/hupe1980/pointfield/point"
)

// ParseObject reads a point from {"x": .., "y": ..} with an optional "z".
//
// Components may be numbers or numeric strings. A "z" key requires ignoreZ
// and is validated, then discarded. Any other key is malformed.
func ParseObject(v document.Value, ignoreZ bool) (point.Point, error) {
	obj, ok := v.AsObject()
	if !ok {
		return point.Point{}, fmt.Errorf("%w: expected object, got %s", point.ErrMalformedPoint, v.Kind)
	}

	// Sorted so the reported key is deterministic.
	for _, key := range slices.Sorted(maps.Keys(obj)) {
		switch key {
		case "x", "y":
		case "z":
			if !ignoreZ {
				return point.Point{}, point.ErrUnsupportedZValue
			}
		default:
			return point.Point{}, fmt.Errorf("%w: unknown field %q", point.ErrMalformedPoint, key)
		}
	}

	x, err := component(obj, "x")
	if err != nil {
		return point.Point{}, err
	}
	y, err := component(obj, "y")
	if err != nil {
		return point.Point{}, err
	}
	coords := []float64{x, y}
	if _, ok := obj["z"]; ok {
		z, err := component(obj, "z")
		if err != nil {
			return point.Point{}, err
		}
		coords = append(coords, z)
	}
	return point.ParseNumericPair(coords, ignoreZ)
}

// ParseArray reads a point from an array of bare numbers.
func ParseArray(v document.Value, ignoreZ bool) (point.Point, error) {
	elems, ok := v.AsArray()
	if !ok {
		return point.Point{}, fmt.Errorf("%w: expected array, got %s", point.ErrMalformedPoint, v.Kind)
	}
	coords := make([]float64, len(elems))
	for i := range elems {
		f, ok := elems[i].AsNumber()
		if !ok {
			return point.Point{}, fmt.Errorf("%w: array element %d is %s, expected number", point.ErrMalformedPoint, i, elems[i].Kind)
		}
		coords[i] = f
	}
	return point.ParseNumericPair(coords, ignoreZ)
}

func component(obj map[string]document.Value, key string) (float64, error) {
	v, ok := obj[key]
	if !ok {
		return 0, fmt.Errorf("%w: field [%s] missing", point.ErrMalformedPoint, key)
	}
	switch v.Kind {
	case document.KindNumber:
		return v.F64, nil
	case document.KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.S), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: field [%s] must be numeric, got %q", point.ErrMalformedPoint, key, v.S)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: field [%s] must be numeric, got %s", point.ErrMalformedPoint, key, v.Kind)
	}
}
