package main

import (
	"bufio"
	"context"
	"errors"
	"io"

	"github.com/Nytra/EnumerableToolkit/builder"
	"github.com/Nytra/EnumerableToolkit/logger"
	"github.com/Nytra/EnumerableToolkit/observability"
	"github.com/Nytra/EnumerableToolkit/rules"
)

// telemetry holds the exporters started for one invocation.
type telemetry struct {
	metrics  *observability.Metrics
	shutdown []func(context.Context) error
}

func setupTelemetry(ctx context.Context, cfg *Config) (*telemetry, error) {
	t := &telemetry{}
	if cfg.Tracing.Enabled {
		tp, err := observability.InitTracer(ctx, &cfg.Tracing.TracerConfig)
		if err != nil {
			return nil, err
		}
		t.shutdown = append(t.shutdown, tp.Shutdown)
	}
	if cfg.Metrics.Enabled {
		mp, err := observability.InitMeter(ctx, &cfg.Metrics.MeterConfig)
		if err != nil {
			_ = t.Shutdown(ctx)
			return nil, err
		}
		t.shutdown = append(t.shutdown, mp.Shutdown)
		m, err := observability.NewMetrics(observability.Meter(serviceName))
		if err != nil {
			_ = t.Shutdown(ctx)
			return nil, err
		}
		t.metrics = m
	}
	return t, nil
}

// Shutdown flushes and stops every exporter.
func (t *telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	for i := len(t.shutdown) - 1; i >= 0; i-- {
		errs = append(errs, t.shutdown[i](ctx))
	}
	return errors.Join(errs...)
}

// run applies the configured rules to the lines of in and writes the
// result to out, one line at a time.
func run(ctx context.Context, cfg *Config, metrics *observability.Metrics, in io.Reader, out io.Writer) error {
	log := logger.WithComponent(serviceName)

	blocks, err := rules.BuildAll(cfg.Rules)
	if err != nil {
		return err
	}

	opts := []builder.Option{builder.WithName(cfg.Name), builder.WithLogger(log)}
	if cfg.Tracing.Enabled {
		opts = append(opts, builder.WithTracing(cfg.Name))
	}
	if metrics != nil {
		opts = append(opts, builder.WithMetrics(metrics))
	}
	b := builder.New[string](opts...).Add(blocks...)

	w := bufio.NewWriter(out)
	err = b.Stream(ctx, readLines(in), func(_ context.Context, line string) error {
		if _, err := w.WriteString(line); err != nil {
			return err
		}
		return w.WriteByte('\n')
	})
	if flushErr := w.Flush(); err == nil {
		err = flushErr
	}
	return err
}
