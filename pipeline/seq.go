package pipeline

import (
	"context"
	"iter"
)

// FromSeq creates a pipeline from a range-over-func sequence.
// Every traversal calls seq again, so the pipeline is re-iterable as long
// as seq itself is.
func FromSeq[T any](seq iter.Seq[T]) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(_ context.Context) Iterator[T] {
			next, stop := iter.Pull(seq)
			return &seqIter[T]{next: next, stop: stop}
		},
	}
}

// FromSeq2 creates a pipeline from a sequence of (value, error) pairs.
// The first non-nil error terminates the traversal and is returned by Next.
func FromSeq2[T any](seq iter.Seq2[T, error]) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(_ context.Context) Iterator[T] {
			next, stop := iter.Pull2(seq)
			return &seq2Iter[T]{next: next, stop: stop}
		},
	}
}

type seqIter[T any] struct {
	next func() (T, bool)
	stop func()
}

func (it *seqIter[T]) Next(ctx context.Context) (T, bool, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, false, err
	}
	val, ok := it.next()
	return val, ok, nil
}

func (it *seqIter[T]) Close() error {
	it.stop()
	return nil
}

type seq2Iter[T any] struct {
	next func() (T, error, bool)
	stop func()
	err  error
}

func (it *seq2Iter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if it.err != nil {
		return zero, false, it.err
	}
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}
	val, err, ok := it.next()
	if !ok {
		return zero, false, nil
	}
	if err != nil {
		it.err = err
		it.stop()
		return zero, false, err
	}
	return val, true, nil
}

func (it *seq2Iter[T]) Close() error {
	it.stop()
	return nil
}
