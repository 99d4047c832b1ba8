package point

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"
)

// ParseString parses "x,y", or "x,y,z" when ignoreZ is set.
// Strings starting with "POINT" are parsed as WKT.
//
// An accepted z component must be a well-formed number; it is then discarded.
func ParseString(s string, ignoreZ bool) (Point, error) {
	trimmed := strings.TrimSpace(s)
	if hasWKTPrefix(trimmed) {
		return ParseWKT(trimmed, ignoreZ)
	}

	parts := strings.Split(trimmed, ",")
	coords := make([]float64, len(parts))
	for i, part := range parts {
		f, err := parseComponent(part)
		if err != nil {
			return Point{}, fmt.Errorf("%w: %q: %w", ErrMalformedPoint, s, err)
		}
		coords[i] = f
	}

	p, err := ParseNumericPair(coords, ignoreZ)
	if err != nil {
		return Point{}, fmt.Errorf("%q: %w", s, err)
	}
	return p, nil
}

// ParseNumericPair builds a point from [x, y], or [x, y, z] when ignoreZ is set.
func ParseNumericPair(coords []float64, ignoreZ bool) (Point, error) {
	switch len(coords) {
	case 2:
	case 3:
		if !ignoreZ {
			return Point{}, ErrUnsupportedZValue
		}
		if !isFinite(coords[2]) {
			return Point{}, &CoordinateError{Axis: "z", Value: coords[2], Err: ErrMalformedPoint}
		}
	default:
		return Point{}, fmt.Errorf("%w: expected 2 coordinates, got %d", ErrMalformedPoint, len(coords))
	}

	p := Point{X: coords[0], Y: coords[1]}
	if err := p.Validate(); err != nil {
		return Point{}, err
	}
	return p, nil
}

// ParseWKT parses a WKT POINT. POINT Z and POINT ZM require ignoreZ.
func ParseWKT(s string, ignoreZ bool) (Point, error) {
	g, err := wkt.Unmarshal(s)
	if err != nil {
		return Point{}, fmt.Errorf("%w: %q: %w", ErrMalformedPoint, s, err)
	}
	gp, ok := g.(*geom.Point)
	if !ok {
		return Point{}, fmt.Errorf("%w: %q: expected POINT, got %T", ErrMalformedPoint, s, g)
	}
	if gp.Empty() {
		return Point{}, fmt.Errorf("%w: %q: empty point", ErrMalformedPoint, s)
	}

	coords := []float64{gp.X(), gp.Y()}
	if gp.Layout().ZIndex() != -1 {
		coords = append(coords, gp.Z())
	}
	return ParseNumericPair(coords, ignoreZ)
}

func hasWKTPrefix(s string) bool {
	return len(s) >= 5 && strings.EqualFold(s[:5], "POINT")
}

func parseComponent(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty coordinate")
	}
	return strconv.ParseFloat(s, 64)
}
