// Package observability provides OpenTelemetry tracing and metrics for
// sequence traversals.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, &cfg)
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, "sequence.collect")
//	defer span.End()
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, &cfg)
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("splice"))
//	metrics.RecordRunEnd(ctx, "insert_after_every_item", observability.StatusOK, 12, duration)
//
// Runs:
//
//	run := observability.NewRun("lines", runID, metrics)
//	ctx, span := run.Start(ctx, observability.SpanSequenceCollect)
//	defer run.End(ctx, span, n, observability.StatusOK, nil)
package observability
