package pointfield

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/hupe1980/pointfield/document"
	"github.com/hupe1980/pointfield/fields"
	"github.com/hupe1980/pointfield/mapping"
	"github.com/hupe1980/pointfield/point"
	"github.com/hupe1980/pointfield/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func newMapper(t *testing.T, name string, opts mapping.Options, optFns ...Option) *FieldMapper {
	t.Helper()
	cfg, err := mapping.Build(opts)
	require.NoError(t, err)
	m, err := New(name, cfg, optFns...)
	require.NoError(t, err)
	return m
}

func mustValue(t *testing.T, v any) document.Value {
	t.Helper()
	dv, err := document.FromAny(v)
	require.NoError(t, err)
	return dv
}

func xy(x, y float64) map[string]any {
	return map[string]any{"x": x, "y": y}
}

func TestMapperValuesStored(t *testing.T) {
	m := newMapper(t, "point", mapping.Options{Store: ptr(true)})

	fs := fields.NewSet()
	require.NoError(t, m.Map(mustValue(t, xy(2000.1, 305.6)), fs))

	f, ok := fs.Field("point")
	require.True(t, ok)
	assert.Equal(t, point.New(2000.1, 305.6), f.Point())
	assert.Len(t, fs.FieldsOfKind("point", fields.Stored), 1)
}

func TestMapperArtifactCounts(t *testing.T) {
	storedNoDocValues := mapping.Options{Store: ptr(true), DocValues: ptr(false)}

	tests := []struct {
		name  string
		opts  mapping.Options
		input any
		want  int
	}{
		{"ArrayOfObjects", storedNoDocValues, []any{xy(1.2, 1.3), xy(1.4, 1.5)}, 4},
		{"ArrayOfStrings", storedNoDocValues, []any{"1.2,1.3", "1.4,1.5"}, 4},
		{"ArrayOfArrays", storedNoDocValues, []any{[]any{1.3, 1.2}, []any{1.5, 1.4}}, 4},
		{"MixedForms", storedNoDocValues, []any{"1.2,1.3", xy(1.4, 1.5), []any{1.6, 1.7}}, 6},
		{"SinglePairAllRepresentations", mapping.Options{Store: ptr(true)}, []any{1.3, 1.2}, 3},
		{"SingleStringDefaults", mapping.Options{}, "1.2,1.3", 2},
		{"EmptyList", mapping.Options{Store: ptr(true)}, []any{}, 0},
		{"NullWithoutNullValue", mapping.Options{}, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMapper(t, "point", tt.opts)
			fs := fields.NewSet()
			require.NoError(t, m.Map(mustValue(t, tt.input), fs))
			assert.Len(t, fs.Fields("point"), tt.want)
		})
	}
}

func TestMapperRepresentationsIndependent(t *testing.T) {
	for _, index := range []bool{false, true} {
		for _, docValues := range []bool{false, true} {
			for _, store := range []bool{false, true} {
				m := newMapper(t, "p", mapping.Options{Index: &index, DocValues: &docValues, Store: &store})

				fs := fields.NewSet()
				require.NoError(t, m.Map(mustValue(t, []any{"1,2", "3,4"}), fs))

				count := func(b bool) int {
					if b {
						return 2
					}
					return 0
				}
				assert.Len(t, fs.FieldsOfKind("p", fields.Indexed), count(index))
				assert.Len(t, fs.FieldsOfKind("p", fields.DocValues), count(docValues))
				assert.Len(t, fs.FieldsOfKind("p", fields.Stored), count(store))
				assert.Len(t, m.Representations(), count(index)/2+count(docValues)/2+count(store)/2)
			}
		}
	}
}

func TestMapperWriteOrder(t *testing.T) {
	m := newMapper(t, "p", mapping.Options{Store: ptr(true)})

	fs := fields.NewSet()
	require.NoError(t, m.Map(mustValue(t, []any{"5,5", "1,1"}), fs))

	got := fs.All()
	require.Len(t, got, 6)
	wantKinds := []fields.Kind{fields.Indexed, fields.DocValues, fields.Stored}
	for i, f := range got {
		assert.Equal(t, wantKinds[i%3], f.Kind)
	}
	// Stable, not sorted.
	assert.Equal(t, point.New(5, 5), got[0].Point())
	assert.Equal(t, point.New(1, 1), got[3].Point())
}

func TestMapperFormEquivalence(t *testing.T) {
	m := newMapper(t, "p", mapping.Options{})

	var keys [][]point.Key
	for _, input := range []any{"1.2,1.3", xy(1.2, 1.3), []any{1.2, 1.3}, []any{[]any{1.2, 1.3}}, "POINT (1.2 1.3)"} {
		k, err := m.Keys(mustValue(t, input))
		require.NoError(t, err)
		keys = append(keys, k)
	}
	for _, k := range keys[1:] {
		assert.Equal(t, keys[0], k)
	}
}

func TestMapperNullValue(t *testing.T) {
	schema, err := SchemaFromJSON([]byte(`{"properties": {"location": {"type": "point", "null_value": "1,2"}}}`))
	require.NoError(t, err)

	m, err := schema.Mapper("location")
	require.NoError(t, err)
	nv, ok := m.NullValue()
	require.True(t, ok)
	assert.Equal(t, point.New(1, 2), nv)

	parse := func(input any) []byte {
		fs, err := schema.ParseDocument(document.Document{"location": mustValue(t, input)})
		require.NoError(t, err)
		_, ok := fs.Field("location")
		require.True(t, ok)
		return fs.BinaryValue("location")
	}

	defaultValue := parse(nil)
	assert.Equal(t, defaultValue, parse("1, 2"))
	assert.NotEqual(t, defaultValue, parse("3, 4"))
}

func TestMapperIgnoreZValue(t *testing.T) {
	for _, tc := range []struct {
		raw  string
		want bool
	}{
		{`"true"`, true},
		{`"false"`, false},
		{`true`, true},
	} {
		schema, err := SchemaFromJSON([]byte(`{"properties": {"location": {"type": "point", "ignore_z_value": ` + tc.raw + `}}}`))
		require.NoError(t, err)
		m, err := schema.Mapper("location")
		require.NoError(t, err)
		assert.Equal(t, tc.want, m.IgnoreZValue())
	}

	tolerant := newMapper(t, "location", mapping.Options{IgnoreZValue: ptr(true)})
	pts, err := tolerant.Parse(mustValue(t, map[string]any{"x": 1.0, "y": 2.0, "z": 5.0}))
	require.NoError(t, err)
	assert.Equal(t, []point.Point{point.New(1, 2)}, pts)

	strict := newMapper(t, "location", mapping.Options{IgnoreZValue: ptr(false)})
	_, err = strict.Parse(mustValue(t, map[string]any{"x": 1.0, "y": 2.0, "z": 5.0}))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedZValue)
}

func TestMapperMalformed(t *testing.T) {
	input := []any{xy(1, 2), map[string]any{"x": "bad"}}

	t.Run("Rejected", func(t *testing.T) {
		m := newMapper(t, "location", mapping.Options{})

		fs := fields.NewSet()
		fs.Add(fields.Field{Name: "other", Kind: fields.Indexed})

		err := m.Map(mustValue(t, input), fs)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedPoint)

		var me *MappingError
		require.ErrorAs(t, err, &me)
		assert.Equal(t, "location", me.Field)
		assert.Equal(t, 1, me.Index)
		assert.Contains(t, me.Error(), "failed to parse field [location] of type [point]")

		// No partial writes.
		assert.Equal(t, 1, fs.Len())
		assert.Empty(t, fs.Ignored())
	})

	t.Run("Ignored", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		metrics := &BasicMetricsCollector{}
		m := newMapper(t, "location", mapping.Options{IgnoreMalformed: ptr(true)},
			WithLogger(logger), WithMetricsCollector(metrics))

		fs := fields.NewSet()
		require.NoError(t, m.Map(mustValue(t, input), fs))

		require.Len(t, fs.FieldsOfKind("location", fields.Indexed), 1)
		assert.Equal(t, point.New(1, 2), fs.FieldsOfKind("location", fields.Indexed)[0].Point())
		assert.Equal(t, []string{"location"}, fs.Ignored())

		assert.Contains(t, buf.String(), "malformed point ignored")
		assert.Contains(t, buf.String(), "field=location")

		stats := metrics.GetStats()
		assert.Equal(t, int64(1), stats.ValuesDropped)
		assert.Equal(t, int64(1), stats.PointsWritten)
		assert.Equal(t, int64(1), stats.ParseCount)
	})

	t.Run("DroppedLogSampling", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(slog.NewTextHandler(&buf, nil))
		m := newMapper(t, "location", mapping.Options{IgnoreMalformed: ptr(true)},
			WithLogger(logger), WithDroppedLogSampling(2, time.Hour))

		for range 5 {
			_, err := m.Parse(mustValue(t, "not a point"))
			require.NoError(t, err)
		}
		assert.Equal(t, 2, strings.Count(buf.String(), "malformed point ignored"))
	})
}

func TestMapperMetricsOnReject(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	m := newMapper(t, "location", mapping.Options{}, WithMetricsCollector(metrics))

	require.Error(t, m.Map(mustValue(t, true), fields.NewSet()))
	require.NoError(t, m.Map(mustValue(t, "1,2"), fields.NewSet()))

	stats := metrics.GetStats()
	assert.Equal(t, int64(2), stats.ParseCount)
	assert.Equal(t, int64(1), stats.ParseErrors)
	assert.Equal(t, int64(1), stats.PointsWritten)
}

func TestNewRejectsInvalidInput(t *testing.T) {
	_, err := New("location", mapping.Config{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = New("", mapping.Default())
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	m, err := New("location", mapping.Default(), nil, WithLogger(nil), WithMetricsCollector(nil))
	require.NoError(t, err)
	assert.Equal(t, "location", m.Name())
	assert.Equal(t, mapping.Default(), m.Config())
}

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError("f", nil))

	err := translateError("f", point.ErrMalformedPoint)
	var me *MappingError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, -1, me.Index)

	err = translateError("f", &mapping.ConfigError{Param: "null_value", Message: "bad"})
	var ce *mapping.ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "f", ce.Field)

	plain := assert.AnError
	assert.Equal(t, plain, translateError("f", plain))
}

func TestMapperRandomOccurrences(t *testing.T) {
	rng := testutil.NewRNG(4711)
	m := newMapper(t, "location", mapping.Options{Store: ptr(true)})

	for range 200 {
		pts := rng.MixedPoints(1 + rng.Intn(4))
		v := rng.Occurrence(pts)

		got, err := m.Parse(v)
		require.NoError(t, err, "input %s", v)
		require.Len(t, got, len(pts))
		for i := range pts {
			assert.True(t, pts[i].Equal(got[i]), "input %s: want %v, got %v", v, pts[i], got[i])
			assert.Equal(t, point.Encode(pts[i]).Point().Key(), point.Encode(got[i]))
		}

		fs := fields.NewSet()
		require.NoError(t, m.Map(v, fs))
		assert.Len(t, fs.Fields("location"), 3*len(pts))
	}
}
