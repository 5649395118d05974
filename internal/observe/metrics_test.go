package observe

import (
	"context"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// newTestMetrics returns a Metrics instance backed by a ManualReader for
// programmatic metric inspection.
func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := NewMetrics(mp)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	return m, reader
}

// collect gathers all metric data from the reader.
func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	return rm
}

// findMetric searches for a metric by name across all scope metrics.
func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

// sumFor returns the value of the data point carrying key=value.
func sumFor(t *testing.T, rm metricdata.ResourceMetrics, name, key, value string) int64 {
	t.Helper()
	met := findMetric(rm, name)
	if met == nil {
		t.Fatalf("metric %q not found", name)
	}
	sum, ok := met.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("metric %q is not a sum", name)
	}
	for _, dp := range sum.DataPoints {
		for _, kv := range dp.Attributes.ToSlice() {
			if string(kv.Key) == key && kv.Value.AsString() == value {
				return dp.Value
			}
		}
	}
	t.Fatalf("metric %q: no data point with %s=%s", name, key, value)
	return 0
}

func TestNewMetrics_CreatesWithoutError(t *testing.T) {
	m, _ := newTestMetrics(t)
	if m == nil {
		t.Fatal("NewMetrics returned nil")
	}
}

func TestRecordSearch(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordSearch(ctx, "serial", 100, 7, 20*time.Millisecond)
	m.RecordSearch(ctx, "serial", 50, 3, 10*time.Millisecond)
	m.RecordSearch(ctx, "parallel", 10, 1, time.Millisecond)

	rm := collect(t, reader)

	if got := sumFor(t, rm, "rhymekit.search.candidates", "mode", "serial"); got != 150 {
		t.Errorf("serial candidates = %d, want 150", got)
	}
	if got := sumFor(t, rm, "rhymekit.search.matches", "mode", "serial"); got != 10 {
		t.Errorf("serial matches = %d, want 10", got)
	}
	if got := sumFor(t, rm, "rhymekit.search.matches", "mode", "parallel"); got != 1 {
		t.Errorf("parallel matches = %d, want 1", got)
	}

	met := findMetric(rm, "rhymekit.search.duration")
	if met == nil {
		t.Fatal("duration histogram not found")
	}
	hist, ok := met.Data.(metricdata.Histogram[float64])
	if !ok {
		t.Fatal("duration metric is not a histogram")
	}
	var count uint64
	for _, dp := range hist.DataPoints {
		count += dp.Count
	}
	if count != 3 {
		t.Errorf("histogram sample count = %d, want 3", count)
	}
}

func TestRecordTableLoad(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordTableLoad(ctx, "ok")
	m.RecordTableLoad(ctx, "error")
	m.RecordTableLoad(ctx, "ok")

	rm := collect(t, reader)
	if got := sumFor(t, rm, "rhymekit.table.loads", "status", "ok"); got != 2 {
		t.Errorf("ok loads = %d, want 2", got)
	}
	if got := sumFor(t, rm, "rhymekit.table.loads", "status", "error"); got != 1 {
		t.Errorf("error loads = %d, want 1", got)
	}
}

func TestDefaultMetrics_Singleton(t *testing.T) {
	a := DefaultMetrics()
	b := DefaultMetrics()
	if a == nil || a != b {
		t.Fatalf("DefaultMetrics() returned %p and %p, want the same non-nil pointer", a, b)
	}
}
