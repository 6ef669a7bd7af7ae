package block

import (
	"context"
	stderrors "errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Nytra/EnumerableToolkit/errors"
	"github.com/Nytra/EnumerableToolkit/logger"
	"github.com/Nytra/EnumerableToolkit/observability"
	"github.com/Nytra/EnumerableToolkit/pipeline"
)

// traversalHooks observes one traversal of a block's output. start runs on
// the first pull; end runs once, when the output is exhausted, fails or is
// closed before either.
type traversalHooks interface {
	start(ctx context.Context)
	end(items int64, err error, closed bool)
}

// observedBlock wraps every traversal of the inner block's output with
// hooks created per traversal.
type observedBlock[T any] struct {
	inner    Block[T]
	newHooks func() traversalHooks
}

func (b *observedBlock[T]) Name() string { return b.inner.Name() }

func (b *observedBlock[T]) Apply(current *pipeline.Pipeline[T]) *pipeline.Pipeline[T] {
	return pipeline.Wrap(b.inner.Apply(current), func(_ context.Context, it pipeline.Iterator[T]) pipeline.Iterator[T] {
		return &observedIter[T]{inner: it, hooks: b.newHooks()}
	})
}

type observedIter[T any] struct {
	inner    pipeline.Iterator[T]
	hooks    traversalHooks
	started  bool
	finished bool
	items    int64
}

func (it *observedIter[T]) Next(ctx context.Context) (T, bool, error) {
	if !it.started {
		it.started = true
		it.hooks.start(ctx)
	}
	val, ok, err := it.inner.Next(ctx)
	switch {
	case err != nil:
		it.finish(err, false)
	case !ok:
		it.finish(nil, false)
	default:
		it.items++
	}
	return val, ok, err
}

func (it *observedIter[T]) Close() error {
	err := it.inner.Close()
	it.finish(nil, true)
	return err
}

func (it *observedIter[T]) finish(err error, closed bool) {
	if !it.started || it.finished {
		return
	}
	it.finished = true
	it.hooks.end(it.items, err, closed)
}

// statusOf maps a traversal outcome to a status value.
func statusOf(err error, closed bool) string {
	switch {
	case err == nil && closed:
		return observability.StatusClosed
	case err == nil:
		return observability.StatusOK
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return observability.StatusCanceled
	default:
		return observability.StatusError
	}
}

// errorCode returns the AppError code of err, or "UNKNOWN" for errors raised
// outside the toolkit.
func errorCode(err error) string {
	if code := errors.CodeOf(err); code != "" {
		return string(code)
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return string(errors.ErrCodeCanceled)
	}
	return "UNKNOWN"
}

// --- Logging ---

// WithLogging wraps a Block with traversal logging: block name, item count,
// duration and outcome.
func WithLogging[T any](b Block[T], log *logger.Logger) Block[T] {
	return &observedBlock[T]{inner: b, newHooks: func() traversalHooks {
		return &loggingHooks{name: b.Name(), log: log}
	}}
}

type loggingHooks struct {
	name    string
	log     *logger.Logger
	started time.Time
}

func (h *loggingHooks) start(context.Context) { h.started = time.Now() }

func (h *loggingHooks) end(items int64, err error, closed bool) {
	fields := logger.Fields(
		logger.FieldBlock, h.name,
		logger.FieldItems, items,
		logger.FieldStatus, statusOf(err, closed),
		logger.FieldDuration, time.Since(h.started).Milliseconds(),
	)
	if err != nil {
		fields[logger.FieldError] = err.Error()
		h.log.Error("block failed", fields)
		return
	}
	h.log.Debug("block completed", fields)
}

// --- Tracing ---

// WithTracing wraps a Block with OpenTelemetry spans. Each traversal gets a
// span named "{prefix}.{name}", opened on the first pull.
func WithTracing[T any](b Block[T], prefix string) Block[T] {
	spanName := prefix + "." + b.Name()
	return &observedBlock[T]{inner: b, newHooks: func() traversalHooks {
		return &tracingHooks{name: b.Name(), spanName: spanName}
	}}
}

type tracingHooks struct {
	name     string
	spanName string
	span     trace.Span
}

func (h *tracingHooks) start(ctx context.Context) {
	_, h.span = observability.StartSpan(ctx, h.spanName)
	h.span.SetAttributes(attribute.String(observability.AttrBlockName, h.name))
}

func (h *tracingHooks) end(items int64, err error, closed bool) {
	h.span.SetAttributes(
		attribute.Int64(observability.AttrBlockItems, items),
		attribute.String(observability.AttrStatus, statusOf(err, closed)),
	)
	if err != nil {
		h.span.RecordError(err)
		h.span.SetStatus(codes.Error, err.Error())
	}
	h.span.End()
}

// --- Metrics ---

// WithMetrics wraps a Block with metric recording: traversal count,
// duration, yielded items and errors.
func WithMetrics[T any](b Block[T], metrics *observability.Metrics) Block[T] {
	return &observedBlock[T]{inner: b, newHooks: func() traversalHooks {
		return &metricsHooks{name: b.Name(), metrics: metrics}
	}}
}

type metricsHooks struct {
	name    string
	metrics *observability.Metrics
	ctx     context.Context
	started time.Time
}

func (h *metricsHooks) start(ctx context.Context) {
	h.ctx = context.WithoutCancel(ctx)
	h.started = time.Now()
	h.metrics.RecordRunStart(h.ctx, h.name)
}

func (h *metricsHooks) end(items int64, err error, closed bool) {
	if err != nil {
		h.metrics.RecordError(h.ctx, h.name, errorCode(err))
	}
	h.metrics.RecordRunEnd(h.ctx, h.name, statusOf(err, closed), items, time.Since(h.started))
}
