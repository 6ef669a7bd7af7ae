package block

import (
	"github.com/Nytra/EnumerableToolkit/errors"
	"github.com/Nytra/EnumerableToolkit/pipeline"
)

// NameInsertAfterFirstItem is the name reported by InsertAfterFirstItemBlock.
const NameInsertAfterFirstItem = "insert_after_first_item"

// InsertAfterFirstItemBlock yields every primary item and inserts the
// secondary sequence once, after the first item the predicate selects. The
// predicate is not consulted again after that match.
type InsertAfterFirstItemBlock[T any] struct {
	AddingBlock[T]
	predicate Predicate[T]
}

// NewInsertAfterFirstItemBlock creates the block. seq is traversed at most
// once per traversal of the output, so single-pass sequences are accepted.
func NewInsertAfterFirstItemBlock[T any](pred Predicate[T], seq *pipeline.Pipeline[T]) (*InsertAfterFirstItemBlock[T], error) {
	if pred == nil {
		return nil, errors.MissingField("predicate")
	}
	adding, err := NewAddingBlock(seq)
	if err != nil {
		return nil, err
	}
	return &InsertAfterFirstItemBlock[T]{AddingBlock: adding, predicate: pred}, nil
}

// NewInsertAfterFirstItemFunc is NewInsertAfterFirstItemBlock with a function
// predicate.
func NewInsertAfterFirstItemFunc[T any](fn func(current T, index int) bool, seq *pipeline.Pipeline[T]) (*InsertAfterFirstItemBlock[T], error) {
	if fn == nil {
		return nil, errors.MissingField("predicate")
	}
	return NewInsertAfterFirstItemBlock[T](PredicateFunc[T](fn), seq)
}

func (b *InsertAfterFirstItemBlock[T]) Name() string { return NameInsertAfterFirstItem }

// Predicate returns the block's predicate.
func (b *InsertAfterFirstItemBlock[T]) Predicate() Predicate[T] { return b.predicate }

func (b *InsertAfterFirstItemBlock[T]) Apply(current *pipeline.Pipeline[T]) *pipeline.Pipeline[T] {
	return pipeline.InsertAfterFirst(current, evaluator(b.predicate), b.Sequence())
}
