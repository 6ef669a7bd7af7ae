package pipeline

import (
	"context"
	"iter"
)

// Iterator provides pull-based sequential access to a stream of values.
// Each call to Next is a suspension point: nothing is produced until the
// consumer asks for it.
type Iterator[T any] interface {
	// Next returns the next value. Returns (zero, false, nil) when exhausted.
	Next(ctx context.Context) (T, bool, error)
	// Close releases any resources held by the iterator.
	Close() error
}

// Pipeline represents a lazy, pull-based sequence.
// No work happens until values are pulled via Collect, Drain, ForEach or All.
//
// A Pipeline is a factory: every traversal creates a fresh Iterator, so the
// same Pipeline can be traversed any number of times. The exception is a
// Pipeline wrapping an existing Iterator (see From), which is single-pass.
type Pipeline[T any] struct {
	create     func(ctx context.Context) Iterator[T]
	singlePass bool
}

// Runnable is a fully-configured pipeline ready to execute.
type Runnable struct {
	run func(ctx context.Context) error
}

// Run executes the pipeline until completion or context cancellation.
func (r *Runnable) Run(ctx context.Context) error {
	return r.run(ctx)
}

// derive builds a pipeline on top of p that keeps p's single-pass mark.
func derive[I, O any](p *Pipeline[I], create func(ctx context.Context) Iterator[O]) *Pipeline[O] {
	return &Pipeline[O]{create: create, singlePass: p.singlePass}
}

// --- Constructors ---

// From creates a pipeline from an existing Iterator.
// The resulting pipeline is single-pass: every traversal shares the same
// cursor, so once it is exhausted later traversals yield nothing.
func From[T any](iter Iterator[T]) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(_ context.Context) Iterator[T] {
			return iter
		},
		singlePass: true,
	}
}

// FromSlice creates a pipeline from a slice of values.
func FromSlice[T any](items []T) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(_ context.Context) Iterator[T] {
			return &sliceIter[T]{items: items}
		},
	}
}

// FromFunc creates a pipeline from a factory that produces an Iterator.
// The factory must return a fresh Iterator on every call.
func FromFunc[T any](fn func(ctx context.Context) Iterator[T]) *Pipeline[T] {
	return &Pipeline[T]{create: fn}
}

// Empty returns a pipeline that yields nothing.
func Empty[T any]() *Pipeline[T] {
	return FromSlice[T](nil)
}

// Reiterable reports whether each traversal of p starts from the beginning.
func (p *Pipeline[T]) Reiterable() bool {
	return !p.singlePass
}

// --- Terminals ---

// Drain creates a Runnable that pulls all values and sends each to sink.
func Drain[T any](p *Pipeline[T], sink func(context.Context, T) error) *Runnable {
	return &Runnable{
		run: func(ctx context.Context) error {
			iter := p.create(ctx)
			defer iter.Close()
			for {
				val, ok, err := iter.Next(ctx)
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
				if err := sink(ctx, val); err != nil {
					return err
				}
			}
		},
	}
}

// Collect runs the pipeline and returns all values as a slice.
// On error the values produced before the failure are returned with it.
func Collect[T any](ctx context.Context, p *Pipeline[T]) ([]T, error) {
	iter := p.create(ctx)
	defer iter.Close()
	var result []T
	for {
		val, ok, err := iter.Next(ctx)
		if err != nil {
			return result, err
		}
		if !ok {
			return result, nil
		}
		result = append(result, val)
	}
}

// ForEach pulls all values and calls fn for each. Convenience wrapper around Drain.
func ForEach[T any](ctx context.Context, p *Pipeline[T], fn func(context.Context, T) error) error {
	return Drain(p, fn).Run(ctx)
}

// Iter returns the raw Iterator for this pipeline. The caller must Close() it.
func (p *Pipeline[T]) Iter(ctx context.Context) Iterator[T] {
	return p.create(ctx)
}

// All returns a range-over-func view of one traversal.
// A failure is delivered as the final pair with a non-nil error. Breaking
// out of the loop stops production and closes the iterator.
//
//	for v, err := range p.All(ctx) {
//	    if err != nil {
//	        return err
//	    }
//	    use(v)
//	}
func (p *Pipeline[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		it := p.create(ctx)
		defer it.Close()
		for {
			val, ok, err := it.Next(ctx)
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			if !ok {
				return
			}
			if !yield(val, nil) {
				return
			}
		}
	}
}

// --- Internal iterators ---

type sliceIter[T any] struct {
	items []T
	index int
}

func (it *sliceIter[T]) Next(_ context.Context) (T, bool, error) {
	if it.index >= len(it.items) {
		var zero T
		return zero, false, nil
	}
	val := it.items[it.index]
	it.index++
	return val, true, nil
}

func (it *sliceIter[T]) Close() error { return nil }
