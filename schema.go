package pointfield

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/hupe1980/pointfield/document"
	"github.com/hupe1980/pointfield/fields"
	"github.com/hupe1980/pointfield/mapping"
	"golang.org/x/sync/errgroup"
)

// Schema maps the point fields of a document.
//
// A Schema is built once and is immutable afterwards; it is safe to parse
// documents from many goroutines. Building must happen-before parsing.
type Schema struct {
	mappers map[string]*FieldMapper
	names   []string
	opts    options
}

// NewSchema builds a schema from validated field configurations.
func NewSchema(cfgs map[string]mapping.Config, optFns ...Option) (*Schema, error) {
	o := applyOptions(optFns)

	s := &Schema{
		mappers: make(map[string]*FieldMapper, len(cfgs)),
		names:   slices.Sorted(maps.Keys(cfgs)),
		opts:    o,
	}
	for _, name := range s.names {
		m, err := newFieldMapper(name, cfgs[name], o)
		if err != nil {
			o.logger.LogSchema(context.Background(), 0, err)
			return nil, err
		}
		s.mappers[name] = m
	}

	o.logger.LogSchema(context.Background(), len(s.names), nil)
	return s, nil
}

// SchemaFromJSON decodes a mapping such as
//
//	{"properties": {"location": {"type": "point", "null_value": "1,2"}}}
//
// and builds its schema. Configuration errors wrap ErrInvalidConfiguration.
func SchemaFromJSON(data []byte, optFns ...Option) (*Schema, error) {
	o := applyOptions(optFns)
	cfgs, err := mapping.ParseJSON(data, o.codec)
	if err != nil {
		o.logger.LogSchema(context.Background(), 0, err)
		return nil, err
	}
	return NewSchema(cfgs, optFns...)
}

// Fields returns the mapped field names in sorted order.
func (s *Schema) Fields() []string {
	return slices.Clone(s.names)
}

// Mapper returns the mapper of name.
func (s *Schema) Mapper(name string) (*FieldMapper, error) {
	m, ok := s.mappers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	return m, nil
}

// MappingJSON encodes the schema with the configured codec. The result can
// be passed back to SchemaFromJSON.
func (s *Schema) MappingJSON() ([]byte, error) {
	cfgs := make(map[string]mapping.Config, len(s.mappers))
	for name, m := range s.mappers {
		cfgs[name] = m.cfg
	}
	return mapping.MarshalJSON(cfgs, s.opts.codec)
}

// ParseDocument maps every configured field present in doc.
//
// Fields are visited in sorted name order; fields of doc that are not mapped
// are skipped. The first rejected occurrence fails the whole document.
func (s *Schema) ParseDocument(doc document.Document) (*fields.Set, error) {
	fs := fields.NewSet()
	for _, name := range s.names {
		v, ok := doc[name]
		if !ok {
			continue
		}
		if err := s.mappers[name].Map(v, fs); err != nil {
			return nil, err
		}
	}
	return fs, nil
}

// ParseJSON decodes a JSON document with the configured codec and maps it.
func (s *Schema) ParseJSON(data []byte) (*fields.Set, error) {
	doc, err := document.Decode(data, s.opts.codec)
	if err != nil {
		return nil, err
	}
	return s.ParseDocument(doc)
}

// BatchResult is the outcome of one document of a batch.
type BatchResult struct {
	Fields *fields.Set
	Err    error
}

// ParseBatch maps documents concurrently. Results are in input order.
//
// A rejected document only fails its own BatchResult. The returned error is
// non-nil only if ctx is canceled before every document was mapped.
func (s *Schema) ParseBatch(ctx context.Context, docs []document.Document) ([]BatchResult, error) {
	start := time.Now()
	results := make([]BatchResult, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	if s.opts.concurrency > 0 {
		g.SetLimit(s.opts.concurrency)
	}
	for i := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fs, err := s.ParseDocument(docs[i])
			results[i] = BatchResult{Fields: fs, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	failed := 0
	for i := range results {
		if results[i].Err != nil {
			failed++
		}
	}
	s.opts.metricsCollector.RecordBatch(len(docs), failed, time.Since(start))
	s.opts.logger.LogBatch(ctx, len(docs), failed)
	return results, nil
}
