package pointfield

import (
	"log/slog"
	"time"

	"github.com/hupe1980/pointfield/codec"
)

type options struct {
	codec            codec.Codec
	metricsCollector MetricsCollector
	logger           *Logger
	concurrency      int
	dropLogFirst     int
	dropLogInterval  time.Duration
}

// Option configures field mappers and schemas.
type Option func(*options)

// WithCodec configures the codec used to decode JSON documents and mappings.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		o.codec = codec.OrDefault(c)
	}
}

// WithConcurrency bounds the number of documents ParseBatch maps in parallel.
// Values <= 0 mean one worker per document.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &pointfield.BasicMetricsCollector{}
//	m, _ := pointfield.New("location", cfg, pointfield.WithMetricsCollector(metrics))
//	// ... map documents ...
//	stats := metrics.GetStats()
//	fmt.Printf("Points: %d, dropped: %d\n", stats.PointsWritten, stats.ValuesDropped)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := pointfield.NewJSONLogger(slog.LevelInfo)
//	schema, _ := pointfield.NewSchema(cfgs, pointfield.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithDroppedLogSampling limits warnings about values dropped under
// ignore_malformed: the first `first` drops are logged, then at most one per
// interval. A bad producer can otherwise flood the log with one line per
// document.
func WithDroppedLogSampling(first int, interval time.Duration) Option {
	return func(o *options) {
		o.dropLogFirst = first
		o.dropLogInterval = interval
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		codec:            codec.Default,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		dropLogFirst:     10,
		dropLogInterval:  time.Minute,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
