// Package pipeline provides lazy, pull-based sequences and the operators
// that derive one sequence from another.
//
// Pipelines are lazy: no work happens until values are pulled via Collect,
// Drain, ForEach or All. Each stage pulls from the previous stage on demand,
// one value at a time, on the consumer's goroutine. A stage never pulls
// ahead, so every Next call is a suspension point that a cancelled context
// can stop.
//
// A Pipeline is a factory of iterators, which makes it re-iterable: each
// traversal starts over. Pipelines wrapping an existing Iterator (From) are
// the exception and report Reiterable() == false.
//
// # Operators
//
//   - Map: transform each value
//   - Filter: keep values matching a predicate
//   - Tap: side-effect without altering the value
//   - Concat: join pipelines sequentially
//   - InsertAfterEvery: splice a sequence after every matching value
//   - InsertAfterFirst: splice a sequence after the first matching value
//
// # Usage
//
//	src := pipeline.FromSlice([]int{1, 2, 3})
//	sep := pipeline.FromSlice([]int{0})
//	odd := func(n, _ int) (bool, error) { return n%2 == 1, nil }
//	out, _ := pipeline.Collect(ctx, pipeline.InsertAfterEvery(src, odd, sep))
//	// out == [1 0 2 3 0]
//
// Range-over-func interop:
//
//	p := pipeline.FromSeq(slices.Values(items))
//	for v, err := range p.All(ctx) {
//	    ...
//	}
package pipeline
