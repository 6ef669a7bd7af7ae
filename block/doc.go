// Package block provides the composable units that derive one lazy sequence
// from another.
//
// A Block receives the sequence produced so far and returns a new sequence.
// Adding blocks carry a secondary sequence that is spliced into the primary
// one; the insertion blocks choose splice points with a Predicate evaluated
// over each primary item and its zero-based index:
//
//	every, err := block.NewInsertAfterEveryItemFunc(func(line string, i int) bool {
//		return (i+1)%10 == 0
//	}, pipeline.FromSlice([]string{"----"}))
//
//	out := every.Apply(pipeline.FromSlice(lines))
//
// Blocks hold no traversal state. Each traversal of the derived pipeline
// restarts the index and, for the first-item block, the match latch.
//
// Decorators add logging, tracing and metrics to any block without changing
// the sequence it produces:
//
//	b = block.WithTracing(block.WithLogging(b, log), "splice")
package block
