package block

import "github.com/Nytra/EnumerableToolkit/errors"

// Predicate decides whether the secondary sequence is inserted after an item.
type Predicate[T any] interface {
	// InsertAfter reports whether to insert after current, which sits at
	// zero-based position index in the primary sequence. A non-nil error
	// ends the derived sequence.
	InsertAfter(current T, index int) (bool, error)
}

// PredicateFunc adapts an infallible function to Predicate.
type PredicateFunc[T any] func(current T, index int) bool

// InsertAfter calls f(current, index).
func (f PredicateFunc[T]) InsertAfter(current T, index int) (bool, error) {
	return f(current, index), nil
}

// FalliblePredicateFunc adapts a function that may fail to Predicate.
type FalliblePredicateFunc[T any] func(current T, index int) (bool, error)

// InsertAfter calls f(current, index).
func (f FalliblePredicateFunc[T]) InsertAfter(current T, index int) (bool, error) {
	return f(current, index)
}

// evaluator turns a Predicate into the function the pipeline operators take,
// reporting failures as PREDICATE_FAILED with the failing index.
func evaluator[T any](pred Predicate[T]) func(T, int) (bool, error) {
	return func(current T, index int) (bool, error) {
		ok, err := pred.InsertAfter(current, index)
		if err != nil {
			return false, errors.PredicateFailed(index, err)
		}
		return ok, nil
	}
}
