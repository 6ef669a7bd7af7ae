package builder

import (
	"github.com/Nytra/EnumerableToolkit/logger"
	"github.com/Nytra/EnumerableToolkit/observability"
)

const defaultName = "sequence"

type options struct {
	name        string
	log         *logger.Logger
	tracing     bool
	tracePrefix string
	metrics     *observability.Metrics
}

// Option configures a Builder.
type Option func(*options)

// WithName sets the sequence name used in logs, spans and metrics.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithLogger sets the logger. Every block is wrapped with block.WithLogging.
func WithLogger(log *logger.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithTracing wraps every block with block.WithTracing using prefix.
func WithTracing(prefix string) Option {
	return func(o *options) {
		o.tracing = true
		o.tracePrefix = prefix
	}
}

// WithMetrics records block and run metrics on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}
