package testutil

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Nytra/EnumerableToolkit/observability"
)

// Tracer installs a synchronous in-memory exporter as the global tracer
// provider and restores the previous provider when the test ends.
func Tracer(t testing.TB) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})
	return exporter
}

// MetricReader reads back what a test recorded through NewMetrics.
type MetricReader struct {
	reader *sdkmetric.ManualReader
}

// NewMetrics returns block metrics recorded into a manual reader.
func NewMetrics(t testing.TB) (*observability.Metrics, *MetricReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	metrics, err := observability.NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("create metrics: %v", err)
	}
	return metrics, &MetricReader{reader: reader}
}

// Sums totals every int64 sum by metric name.
func (r *MetricReader) Sums(t testing.TB) map[string]int64 {
	t.Helper()
	sums := map[string]int64{}
	r.each(t, func(name string, dp metricdata.DataPoint[int64]) {
		sums[name] += dp.Value
	})
	return sums
}

// SumsBy totals the int64 sum named metric grouped by the attribute key.
func (r *MetricReader) SumsBy(t testing.TB, metric, key string) map[string]int64 {
	t.Helper()
	sums := map[string]int64{}
	r.each(t, func(name string, dp metricdata.DataPoint[int64]) {
		if name != metric {
			return
		}
		v, _ := dp.Attributes.Value(attribute.Key(key))
		sums[v.Emit()] += dp.Value
	})
	return sums
}

func (r *MetricReader) each(t testing.TB, fn func(string, metricdata.DataPoint[int64])) {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := r.reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect metrics: %v", err)
	}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				fn(m.Name, dp)
			}
		}
	}
}
