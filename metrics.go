package pointfield

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Implementations must be safe for concurrent use: documents may be parsed
// from many goroutines.
type MetricsCollector interface {
	// RecordParse is called after each field occurrence is mapped.
	// points is the number of points written, err is nil if successful.
	RecordParse(field string, points int, duration time.Duration, err error)

	// RecordDropped is called when values are skipped under ignore_malformed.
	RecordDropped(field string, count int)

	// RecordBatch is called after each batch parse.
	// count is the number of documents, failed the number rejected.
	RecordBatch(count, failed int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordParse(string, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordDropped(string, int)                     {}
func (NoopMetricsCollector) RecordBatch(int, int, time.Duration)           {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ParseCount      atomic.Int64
	ParseErrors     atomic.Int64
	ParseTotalNanos atomic.Int64
	PointsWritten   atomic.Int64
	ValuesDropped   atomic.Int64
	BatchCount      atomic.Int64
	BatchDocuments  atomic.Int64
	BatchFailed     atomic.Int64
	BatchTotalNanos atomic.Int64
}

// RecordParse implements MetricsCollector.
func (b *BasicMetricsCollector) RecordParse(_ string, points int, duration time.Duration, err error) {
	b.ParseCount.Add(1)
	b.ParseTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ParseErrors.Add(1)
		return
	}
	b.PointsWritten.Add(int64(points))
}

// RecordDropped implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDropped(_ string, count int) {
	b.ValuesDropped.Add(int64(count))
}

// RecordBatch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatch(count, failed int, duration time.Duration) {
	b.BatchCount.Add(1)
	b.BatchDocuments.Add(int64(count))
	b.BatchFailed.Add(int64(failed))
	b.BatchTotalNanos.Add(duration.Nanoseconds())
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		ParseCount:     b.ParseCount.Load(),
		ParseErrors:    b.ParseErrors.Load(),
		ParseAvgNanos:  b.getAvgParseNanos(),
		PointsWritten:  b.PointsWritten.Load(),
		ValuesDropped:  b.ValuesDropped.Load(),
		BatchCount:     b.BatchCount.Load(),
		BatchDocuments: b.BatchDocuments.Load(),
		BatchFailed:    b.BatchFailed.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgParseNanos() int64 {
	count := b.ParseCount.Load()
	if count == 0 {
		return 0
	}
	return b.ParseTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	ParseCount     int64
	ParseErrors    int64
	ParseAvgNanos  int64
	PointsWritten  int64
	ValuesDropped  int64
	BatchCount     int64
	BatchDocuments int64
	BatchFailed    int64
}
