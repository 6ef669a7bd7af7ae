// Package testutil provides test fixtures for code built on pipelines and
// blocks.
//
// # Sources
//
// Source is a re-iterable pipeline source that records how often it was
// opened, pulled and closed, and can be told to fail at a given index:
//
//	src := testutil.NewSource(1, 2, 3).FailAt(2, errBoom)
//	_, err := pipeline.Collect(ctx, b.Apply(src.Pipeline()))
//	if src.Created != 1 { ... }
//
// SinglePass wraps items in a pipeline that may only be traversed once.
//
// # Telemetry
//
// Tracer installs an in-memory span exporter as the global tracer provider
// for the duration of a test. NewMetrics returns block metrics backed by a
// manual reader so tests can assert on recorded counters:
//
//	metrics, reader := testutil.NewMetrics(t)
//	...
//	runs := reader.SumsBy(t, observability.MetricBlockRuns, "block")
package testutil
