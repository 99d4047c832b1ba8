package parser

import (
	"fmt"

	"github.com/hupe1980/pointfield/document"
	"github.com/hupe1980/pointfield/mapping"
	"github.com/hupe1980/pointfield/point"
)

// ValueError describes one value of an occurrence that failed to parse.
type ValueError struct {
	Index int            // position in the list, or -1 for a single value
	Value document.Value // the rejected value
	Err   error
}

// Error implements the error interface.
func (e *ValueError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("failed to parse point %s: %v", e.Value, e.Err)
	}
	return fmt.Sprintf("failed to parse point [%d] %s: %v", e.Index, e.Value, e.Err)
}

// Unwrap returns the underlying error.
func (e *ValueError) Unwrap() error { return e.Err }

// Result is the outcome of parsing one occurrence.
type Result struct {
	// Points in input order.
	Points []point.Point
	// Dropped holds a *ValueError per value skipped under ignore_malformed.
	Dropped []error
}

// Parser parses occurrences of one point field.
// It holds no mutable state and is safe for concurrent use.
type Parser struct {
	cfg mapping.Config
}

// New returns a parser for fields configured by cfg.
func New(cfg mapping.Config) *Parser {
	return &Parser{cfg: cfg}
}

// Parse converts one occurrence into points.
//
// Without ignore_malformed the first failing value aborts and no points are
// returned. With it, failing values are reported in Result.Dropped and the
// remaining values are still parsed.
func (p *Parser) Parse(v document.Value) (Result, error) {
	var res Result

	if Classify(v) != ShapeList {
		pt, ok, err := p.parseOne(v)
		if err != nil {
			return p.fail(res, &ValueError{Index: -1, Value: v, Err: err})
		}
		if ok {
			res.Points = append(res.Points, pt)
		}
		return res, nil
	}

	res.Points = make([]point.Point, 0, len(v.A))
	for i := range v.A {
		pt, ok, err := p.parseOne(v.A[i])
		if err != nil {
			var ferr error
			if res, ferr = p.fail(res, &ValueError{Index: i, Value: v.A[i], Err: err}); ferr != nil {
				return Result{}, ferr
			}
			continue
		}
		if ok {
			res.Points = append(res.Points, pt)
		}
	}
	return res, nil
}

// parseOne reads a single point. ok is false for a null without null_value.
func (p *Parser) parseOne(v document.Value) (pt point.Point, ok bool, err error) {
	ignoreZ := p.cfg.IgnoreZValue()

	switch v.Kind {
	case document.KindNull:
		pt, ok = p.cfg.NullValue()
		return pt, ok, nil
	case document.KindObject:
		pt, err = ParseObject(v, ignoreZ)
	case document.KindString:
		pt, err = point.ParseString(v.S, ignoreZ)
	case document.KindArray:
		pt, err = ParseArray(v, ignoreZ)
	default:
		err = fmt.Errorf("%w: unexpected %s", point.ErrMalformedPoint, v.Kind)
	}
	if err != nil {
		return point.Point{}, false, err
	}
	return pt, true, nil
}

func (p *Parser) fail(res Result, err *ValueError) (Result, error) {
	if !p.cfg.IgnoreMalformed() {
		return Result{}, err
	}
	res.Dropped = append(res.Dropped, err)
	return res, nil
}
