package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Run holds observability state for one materialisation of a sequence.
type Run struct {
	Name      string
	RunID     string
	StartTime time.Time
	Metrics   *Metrics
}

// NewRun creates a run. If metrics is nil, metric recording is skipped.
func NewRun(name, runID string, metrics *Metrics) *Run {
	return &Run{
		Name:      name,
		RunID:     runID,
		StartTime: time.Now(),
		Metrics:   metrics,
	}
}

type runContextKey struct{}

// WithRun stores a Run in the context.
func WithRun(ctx context.Context, r *Run) context.Context {
	return context.WithValue(ctx, runContextKey{}, r)
}

// RunFromContext retrieves the Run from context, or nil.
func RunFromContext(ctx context.Context) *Run {
	if r, ok := ctx.Value(runContextKey{}).(*Run); ok {
		return r
	}
	return nil
}

// Start opens the run span and records the run start metric. The returned
// context carries both the span and the run.
func (r *Run) Start(ctx context.Context, spanName string) (context.Context, trace.Span) {
	ctx, span := StartSpan(ctx, spanName)
	span.SetAttributes(
		attribute.String(AttrSequenceName, r.Name),
		attribute.String(AttrRunID, r.RunID),
	)
	if r.Metrics != nil {
		r.Metrics.RecordRunStart(ctx, r.Name)
	}
	return WithRun(ctx, r), span
}

// End finishes the span and records the run end metrics.
func (r *Run) End(ctx context.Context, span trace.Span, items int64, status string, err error) {
	duration := r.Duration()

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
	}
	span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrBlockItems, items),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	span.End()

	if r.Metrics != nil {
		r.Metrics.RecordRunEnd(ctx, r.Name, status, items, duration)
	}
}

// Duration returns the elapsed time since the run started.
func (r *Run) Duration() time.Duration {
	return time.Since(r.StartTime)
}
