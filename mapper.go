package pointfield

import (
	"context"
	"time"

	"github.com/hupe1980/pointfield/document"
	"github.com/hupe1980/pointfield/fields"
	"github.com/hupe1980/pointfield/mapping"
	"github.com/hupe1980/pointfield/parser"
	"github.com/hupe1980/pointfield/point"
	"golang.org/x/time/rate"
)

// FieldMapper maps occurrences of one point field into encoded artifacts.
//
// A FieldMapper is immutable once created and safe for concurrent use.
type FieldMapper struct {
	name    string
	cfg     mapping.Config
	parser  *parser.Parser
	kinds   []fields.Kind
	logger  *Logger
	metrics MetricsCollector
	dropLog *rate.Sometimes
}

// New returns the mapper of the point field name.
//
// cfg must come from mapping.Build (or mapping.Default); a zero Config is
// rejected with ErrInvalidConfiguration.
func New(name string, cfg mapping.Config, optFns ...Option) (*FieldMapper, error) {
	return newFieldMapper(name, cfg, applyOptions(optFns))
}

func newFieldMapper(name string, cfg mapping.Config, o options) (*FieldMapper, error) {
	if name == "" {
		return nil, &mapping.ConfigError{Param: "name", Message: "field name must not be empty"}
	}
	if !cfg.Validated() {
		return nil, &mapping.ConfigError{Field: name, Param: "mapping", Message: "configuration was not built"}
	}

	// Write order per point: indexed, doc values, stored.
	var kinds []fields.Kind
	if cfg.Index() {
		kinds = append(kinds, fields.Indexed)
	}
	if cfg.DocValues() {
		kinds = append(kinds, fields.DocValues)
	}
	if cfg.Store() {
		kinds = append(kinds, fields.Stored)
	}

	return &FieldMapper{
		name:    name,
		cfg:     cfg,
		parser:  parser.New(cfg),
		kinds:   kinds,
		logger:  o.logger.WithField(name),
		metrics: o.metricsCollector,
		dropLog: &rate.Sometimes{First: o.dropLogFirst, Interval: o.dropLogInterval},
	}, nil
}

// Name returns the mapped field name.
func (m *FieldMapper) Name() string { return m.name }

// Config returns the field configuration.
func (m *FieldMapper) Config() mapping.Config { return m.cfg }

// NullValue returns the point substituted for explicit nulls, if configured.
func (m *FieldMapper) NullValue() (point.Point, bool) { return m.cfg.NullValue() }

// IgnoreZValue reports whether a third coordinate is accepted and discarded.
func (m *FieldMapper) IgnoreZValue() bool { return m.cfg.IgnoreZValue() }

// Representations returns the artifact kinds written per point, in write order.
func (m *FieldMapper) Representations() []fields.Kind {
	out := make([]fields.Kind, len(m.kinds))
	copy(out, m.kinds)
	return out
}

// Parse converts one occurrence of the field into points, in input order.
//
// Values dropped under ignore_malformed are logged and counted but do not
// produce an error. Otherwise the first malformed value fails the whole
// occurrence with a *MappingError.
func (m *FieldMapper) Parse(v document.Value) ([]point.Point, error) {
	res, err := m.parse(v)
	if err != nil {
		return nil, err
	}
	return res.Points, nil
}

// Map parses one occurrence and appends its artifacts to fs.
//
// For every point, one artifact per enabled representation is appended, in
// the order the points were produced. Nothing is appended when the
// occurrence fails. If values were dropped, the field is recorded in
// fs.Ignored().
func (m *FieldMapper) Map(v document.Value, fs *fields.Set) error {
	start := time.Now()
	res, err := m.parse(v)
	if err != nil {
		m.metrics.RecordParse(m.name, 0, time.Since(start), err)
		return err
	}

	if len(res.Dropped) > 0 {
		fs.AddIgnored(m.name)
	}
	for _, p := range res.Points {
		k := point.Encode(p)
		for _, kind := range m.kinds {
			fs.Add(fields.Field{Name: m.name, Kind: kind, Value: k})
		}
	}

	m.metrics.RecordParse(m.name, len(res.Points), time.Since(start), nil)
	return nil
}

// Keys parses one occurrence and returns the encoded key of every point.
func (m *FieldMapper) Keys(v document.Value) ([]point.Key, error) {
	pts, err := m.Parse(v)
	if err != nil {
		return nil, err
	}
	keys := make([]point.Key, len(pts))
	for i, p := range pts {
		keys[i] = point.Encode(p)
	}
	return keys, nil
}

func (m *FieldMapper) parse(v document.Value) (parser.Result, error) {
	res, err := m.parser.Parse(v)
	if err != nil {
		err = translateError(m.name, err)
		m.logger.LogRejected(context.Background(), err)
		return parser.Result{}, err
	}

	if n := len(res.Dropped); n > 0 {
		m.metrics.RecordDropped(m.name, n)
		for _, derr := range res.Dropped {
			m.dropLog.Do(func() {
				m.logger.LogDropped(context.Background(), derr)
			})
		}
	}
	return res, nil
}
