package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/Nytra/EnumerableToolkit/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	ServiceName    string        `mapstructure:"-"`
	ServiceVersion string        `mapstructure:"-"`
	Environment    string        `mapstructure:"-"`
	Endpoint       string        `mapstructure:"endpoint"`
	Insecure       bool          `mapstructure:"insecure"`
	Interval       time.Duration `mapstructure:"interval"`
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "0.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider and installs it
// globally. The returned provider must be shut down on exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.WithComponent("observability").Info("meter initialized", logger.Fields(
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metric names.
const (
	MetricBlockRuns     = "block.runs"
	MetricBlockDuration = "block.duration"
	MetricBlockItems    = "block.items"
	MetricBlockErrors   = "block.errors"
	MetricBlockActive   = "block.active"
)

// Metrics holds the instruments recorded for sequence traversals.
type Metrics struct {
	runs     metric.Int64Counter
	duration metric.Float64Histogram
	items    metric.Int64Counter
	errors   metric.Int64Counter
	active   metric.Int64UpDownCounter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	runs, err := meter.Int64Counter(MetricBlockRuns,
		metric.WithDescription("Completed traversals by block and status"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricBlockRuns, err)
	}

	duration, err := meter.Float64Histogram(MetricBlockDuration,
		metric.WithDescription("Traversal duration from first pull to completion"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricBlockDuration, err)
	}

	items, err := meter.Int64Counter(MetricBlockItems,
		metric.WithDescription("Items yielded by a block"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricBlockItems, err)
	}

	errorTotal, err := meter.Int64Counter(MetricBlockErrors,
		metric.WithDescription("Traversal errors by block and error code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricBlockErrors, err)
	}

	active, err := meter.Int64UpDownCounter(MetricBlockActive,
		metric.WithDescription("Traversals currently in progress"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s gauge: %w", MetricBlockActive, err)
	}

	return &Metrics{
		runs:     runs,
		duration: duration,
		items:    items,
		errors:   errorTotal,
		active:   active,
	}, nil
}

// RecordRunStart increments the active traversal count.
func (m *Metrics) RecordRunStart(ctx context.Context, block string) {
	m.active.Add(ctx, 1, metric.WithAttributes(attribute.String("block", block)))
}

// RecordRunEnd decrements the active count and records a finished traversal.
func (m *Metrics) RecordRunEnd(ctx context.Context, block, status string, items int64, duration time.Duration) {
	blockAttr := attribute.String("block", block)
	m.active.Add(ctx, -1, metric.WithAttributes(blockAttr))
	m.runs.Add(ctx, 1, metric.WithAttributes(blockAttr, attribute.String("status", status)))
	m.duration.Record(ctx, duration.Seconds(), metric.WithAttributes(blockAttr))
	m.items.Add(ctx, items, metric.WithAttributes(blockAttr))
}

// RecordError records a traversal error by block and error code.
func (m *Metrics) RecordError(ctx context.Context, block, code string) {
	m.errors.Add(ctx, 1, metric.WithAttributes(
		attribute.String("block", block),
		attribute.String("code", code),
	))
}
