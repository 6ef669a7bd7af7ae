package pipeline

import "context"

// InsertAfterEvery yields every value of p and, after each value for which
// pred returns true, every value of additions.
//
// pred receives the value and its zero-based position in p. It runs after
// the value has been handed to the consumer, when the next value is pulled,
// so a consumer that stops early never triggers it for the last value it saw.
// additions is traversed from the start on every match and must therefore be
// re-iterable.
func InsertAfterEvery[T any](p *Pipeline[T], pred func(T, int) (bool, error), additions *Pipeline[T]) *Pipeline[T] {
	return insertAfter(p, pred, additions, false)
}

// InsertAfterFirst is InsertAfterEvery limited to the first match. Once
// additions have been inserted, pred is not evaluated again for the rest of
// the traversal. Without a match the output equals p.
func InsertAfterFirst[T any](p *Pipeline[T], pred func(T, int) (bool, error), additions *Pipeline[T]) *Pipeline[T] {
	return insertAfter(p, pred, additions, true)
}

func insertAfter[T any](p *Pipeline[T], pred func(T, int) (bool, error), additions *Pipeline[T], once bool) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(ctx context.Context) Iterator[T] {
			return &insertIter[T]{
				source:    p.create(ctx),
				ctx:       ctx,
				pred:      pred,
				additions: additions,
				once:      once,
			}
		},
		singlePass: p.singlePass || additions.singlePass,
	}
}

// insertIter interleaves source with additions. All of its state belongs to
// a single traversal.
type insertIter[T any] struct {
	source    Iterator[T]
	ctx       context.Context
	pred      func(T, int) (bool, error)
	additions *Pipeline[T]
	once      bool

	last     T
	hasLast  bool // last was yielded and pred has not seen it yet
	index    int
	matched  bool
	inserted Iterator[T] // non-nil while additions are being drained
	err      error
}

func (it *insertIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	var zero T
	if it.err != nil {
		return zero, false, it.err
	}
	for {
		if err := ctx.Err(); err != nil {
			return zero, false, it.fail(err)
		}

		if it.inserted != nil {
			val, ok, err := it.inserted.Next(ctx)
			if err != nil {
				return zero, false, it.fail(err)
			}
			if ok {
				return val, true, nil
			}
			_ = it.inserted.Close()
			it.inserted = nil
		}

		if it.hasLast {
			it.hasLast = false
			index := it.index
			it.index++
			if !it.once || !it.matched {
				match, err := it.pred(it.last, index)
				if err != nil {
					return zero, false, it.fail(err)
				}
				if match {
					it.matched = true
					it.inserted = it.additions.create(it.ctx)
					continue
				}
			}
		}

		val, ok, err := it.source.Next(ctx)
		if err != nil {
			return zero, false, it.fail(err)
		}
		if !ok {
			return zero, false, nil
		}
		it.last = val
		it.hasLast = true
		return val, true, nil
	}
}

func (it *insertIter[T]) fail(err error) error {
	it.err = err
	return err
}

func (it *insertIter[T]) Close() error {
	if it.inserted != nil {
		_ = it.inserted.Close()
		it.inserted = nil
	}
	return it.source.Close()
}
