// Package observe provides observability primitives for rhymekit:
// OpenTelemetry metrics, tracing spans and structured logging.
//
// Metrics are recorded through the OpenTelemetry Metrics API against whatever
// [metric.MeterProvider] the embedding process registers globally. A
// package-level default [Metrics] instance ([DefaultMetrics]) is provided for
// convenience; tests should use [NewMetrics] with a custom provider to avoid
// cross-test pollution.
package observe

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all rhymekit metrics.
const meterName = "github.com/MrWong99/rhymekit"

// Metrics holds all OpenTelemetry metric instruments for the module.
// All fields are safe for concurrent use.
type Metrics struct {
	// SearchDuration tracks the wall time of one corpus scan. Use with
	// attribute.String("mode", "serial"|"parallel").
	SearchDuration metric.Float64Histogram

	// SearchCandidates counts dictionary pronunciations scored by searches.
	SearchCandidates metric.Int64Counter

	// SearchMatches counts words that met the search threshold.
	SearchMatches metric.Int64Counter

	// TableLoads counts similarity table loads. Use with
	// attribute.String("status", "ok"|"error").
	TableLoads metric.Int64Counter
}

// latencyBuckets defines histogram bucket boundaries (in seconds) for a
// dictionary-sized scan.
var latencyBuckets = []float64{
	0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.SearchDuration, err = m.Float64Histogram("rhymekit.search.duration",
		metric.WithDescription("Latency of a full rhyme search over the dictionary."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.SearchCandidates, err = m.Int64Counter("rhymekit.search.candidates",
		metric.WithDescription("Total candidate pronunciations scored by rhyme searches."),
	); err != nil {
		return nil, err
	}
	if met.SearchMatches, err = m.Int64Counter("rhymekit.search.matches",
		metric.WithDescription("Total words at or above the search threshold."),
	); err != nil {
		return nil, err
	}
	if met.TableLoads, err = m.Int64Counter("rhymekit.table.loads",
		metric.WithDescription("Total similarity table loads by status."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Panics if instrument creation
// fails (should not happen with the global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// RecordSearch records the outcome of one corpus scan.
func (m *Metrics) RecordSearch(ctx context.Context, mode string, candidates, matches int, elapsed time.Duration) {
	attrs := metric.WithAttributes(attribute.String("mode", mode))
	m.SearchDuration.Record(ctx, elapsed.Seconds(), attrs)
	m.SearchCandidates.Add(ctx, int64(candidates), attrs)
	m.SearchMatches.Add(ctx, int64(matches), attrs)
}

// RecordTableLoad records a similarity table load with the given status.
func (m *Metrics) RecordTableLoad(ctx context.Context, status string) {
	m.TableLoads.Add(ctx, 1,
		metric.WithAttributes(attribute.String("status", status)),
	)
}
