package pointfield

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/hupe1980/pointfield/codec"
	"github.com/hupe1980/pointfield/document"
	"github.com/hupe1980/pointfield/fields"
	"github.com/hupe1980/pointfield/mapping"
	"github.com/hupe1980/pointfield/point"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMapping = `{
	"properties": {
		"location": {"type": "point", "store": true},
		"origin":   {"type": "point", "null_value": "0,0", "doc_values": false},
		"loose":    {"type": "point", "ignore_malformed": true}
	}
}`

func TestSchemaFromJSON(t *testing.T) {
	s, err := SchemaFromJSON([]byte(testMapping))
	require.NoError(t, err)
	assert.Equal(t, []string{"location", "loose", "origin"}, s.Fields())

	m, err := s.Mapper("origin")
	require.NoError(t, err)
	assert.Equal(t, []fields.Kind{fields.Indexed}, m.Representations())

	_, err = s.Mapper("missing")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestSchemaMappingJSON(t *testing.T) {
	for _, c := range []codec.Codec{codec.JSON{}, codec.GoJSON{}} {
		t.Run(c.Name(), func(t *testing.T) {
			s, err := SchemaFromJSON([]byte(testMapping), WithCodec(c))
			require.NoError(t, err)

			data, err := s.MappingJSON()
			require.NoError(t, err)

			again, err := SchemaFromJSON(data, WithCodec(c))
			require.NoError(t, err)
			assert.Equal(t, s.Fields(), again.Fields())
			for _, name := range s.Fields() {
				want, _ := s.Mapper(name)
				got, _ := again.Mapper(name)
				assert.Equal(t, want.Config(), got.Config(), name)
			}
		})
	}
}

func TestSchemaFromTypeWrappedJSON(t *testing.T) {
	s, err := SchemaFromJSON([]byte(`{"type": {"properties": {"point": {"type": "point", "doc_values": false, "store": true}}}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"point"}, s.Fields())

	fs, err := s.ParseJSON([]byte(`{"point": [{"x": 1.2, "y": 1.3}, {"x": 1.4, "y": 1.5}]}`))
	require.NoError(t, err)
	assert.Equal(t, 4, fs.Len())
}

func TestSchemaFromJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"BadNullValue", `{"properties": {"location": {"type": "point", "null_value": "a,b"}}}`},
		{"UnknownParameter", `{"properties": {"location": {"type": "point", "precision": 3}}}`},
		{"BadBool", `{"properties": {"location": {"type": "point", "store": "yes"}}}`},
		{"WrongType", `{"properties": {"location": {"type": "geo_point"}}}`},
		{"NotJSON", `{"properties":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			_, err := SchemaFromJSON([]byte(tt.input), WithLogger(NewLogger(slog.NewTextHandler(&buf, nil))))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
			assert.Contains(t, buf.String(), "schema build failed")
		})
	}
}

func TestNewSchemaRejectsUnbuiltConfig(t *testing.T) {
	_, err := NewSchema(map[string]mapping.Config{"location": {}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	var ce *mapping.ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "location", ce.Field)
}

func TestSchemaParseJSON(t *testing.T) {
	for _, c := range []codec.Codec{codec.JSON{}, codec.GoJSON{}} {
		t.Run(fmt.Sprintf("%T", c), func(t *testing.T) {
			s, err := SchemaFromJSON([]byte(testMapping), WithCodec(c))
			require.NoError(t, err)

			fs, err := s.ParseJSON([]byte(`{
				"location": [{"x": 1, "y": 2}, "3,4"],
				"origin": null,
				"loose": ["5,6", true],
				"title": "not mapped"
			}`))
			require.NoError(t, err)

			assert.Len(t, fs.Fields("location"), 6)
			assert.Len(t, fs.Fields("loose"), 2)
			assert.Equal(t, []string{"loose"}, fs.Ignored())

			origin := fs.Fields("origin")
			require.Len(t, origin, 1)
			assert.Equal(t, fields.Indexed, origin[0].Kind)
			assert.Equal(t, point.New(0, 0), origin[0].Point())

			// Sorted field order.
			assert.Equal(t, "location", fs.All()[0].Name)
		})
	}
}

func TestSchemaParseDocumentRejects(t *testing.T) {
	s, err := SchemaFromJSON([]byte(testMapping))
	require.NoError(t, err)

	_, err = s.ParseDocument(document.Document{
		"location": document.String("1,2"),
		"origin":   document.Bool(true),
	})
	require.Error(t, err)

	var me *MappingError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "origin", me.Field)

	_, err = s.ParseJSON([]byte(`[1, 2]`))
	assert.Error(t, err)
}

func TestSchemaParseBatch(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	s, err := SchemaFromJSON([]byte(testMapping), WithConcurrency(3), WithMetricsCollector(metrics))
	require.NoError(t, err)

	docs := make([]document.Document, 20)
	for i := range docs {
		if i%5 == 4 {
			docs[i] = document.Document{"location": document.String("bad")}
			continue
		}
		docs[i] = document.Document{"location": document.String(fmt.Sprintf("%d,%d", i, -i))}
	}

	results, err := s.ParseBatch(context.Background(), docs)
	require.NoError(t, err)
	require.Len(t, results, len(docs))

	for i, r := range results {
		if i%5 == 4 {
			assert.ErrorIs(t, r.Err, ErrMalformedPoint)
			assert.Nil(t, r.Fields)
			continue
		}
		require.NoError(t, r.Err)
		f, ok := r.Fields.Field("location")
		require.True(t, ok)
		assert.Equal(t, point.New(float64(i), float64(-i)), f.Point())
	}

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.BatchCount)
	assert.Equal(t, int64(20), stats.BatchDocuments)
	assert.Equal(t, int64(4), stats.BatchFailed)
}

func TestSchemaParseBatchCanceled(t *testing.T) {
	s, err := SchemaFromJSON([]byte(testMapping), WithConcurrency(1))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.ParseBatch(ctx, []document.Document{{"location": document.String("1,2")}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSchemaParseBatchEmpty(t *testing.T) {
	s, err := NewSchema(nil)
	require.NoError(t, err)
	assert.Empty(t, s.Fields())

	results, err := s.ParseBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}
