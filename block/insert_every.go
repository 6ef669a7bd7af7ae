package block

import (
	"github.com/Nytra/EnumerableToolkit/errors"
	"github.com/Nytra/EnumerableToolkit/pipeline"
)

// NameInsertAfterEveryItem is the name reported by InsertAfterEveryItemBlock.
const NameInsertAfterEveryItem = "insert_after_every_item"

// InsertAfterEveryItemBlock yields every primary item and, after each item
// the predicate selects, the whole secondary sequence from its start.
type InsertAfterEveryItemBlock[T any] struct {
	AddingBlock[T]
	predicate Predicate[T]
}

// NewInsertAfterEveryItemBlock creates the block. seq is traversed once per
// match and must be re-iterable; a pipeline built with pipeline.From is
// rejected with SINGLE_PASS_SEQUENCE.
func NewInsertAfterEveryItemBlock[T any](pred Predicate[T], seq *pipeline.Pipeline[T]) (*InsertAfterEveryItemBlock[T], error) {
	if pred == nil {
		return nil, errors.MissingField("predicate")
	}
	adding, err := NewAddingBlock(seq)
	if err != nil {
		return nil, err
	}
	if !seq.Reiterable() {
		return nil, errors.SinglePass("sequence")
	}
	return &InsertAfterEveryItemBlock[T]{AddingBlock: adding, predicate: pred}, nil
}

// NewInsertAfterEveryItemFunc is NewInsertAfterEveryItemBlock with a function
// predicate.
func NewInsertAfterEveryItemFunc[T any](fn func(current T, index int) bool, seq *pipeline.Pipeline[T]) (*InsertAfterEveryItemBlock[T], error) {
	if fn == nil {
		return nil, errors.MissingField("predicate")
	}
	return NewInsertAfterEveryItemBlock[T](PredicateFunc[T](fn), seq)
}

func (b *InsertAfterEveryItemBlock[T]) Name() string { return NameInsertAfterEveryItem }

// Predicate returns the block's predicate.
func (b *InsertAfterEveryItemBlock[T]) Predicate() Predicate[T] { return b.predicate }

func (b *InsertAfterEveryItemBlock[T]) Apply(current *pipeline.Pipeline[T]) *pipeline.Pipeline[T] {
	return pipeline.InsertAfterEvery(current, evaluator(b.predicate), b.Sequence())
}
