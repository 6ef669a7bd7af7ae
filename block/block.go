package block

import (
	"github.com/Nytra/EnumerableToolkit/errors"
	"github.com/Nytra/EnumerableToolkit/pipeline"
)

// Block derives a new sequence from the current one.
type Block[T any] interface {
	// Name identifies the block in logs, spans and metrics.
	Name() string
	// Apply returns the sequence derived from current. It must not start
	// traversing current.
	Apply(current *pipeline.Pipeline[T]) *pipeline.Pipeline[T]
}

// AddingBlock holds the secondary sequence that a block adds to the primary.
type AddingBlock[T any] struct {
	sequence *pipeline.Pipeline[T]
}

// NewAddingBlock creates an AddingBlock around seq.
func NewAddingBlock[T any](seq *pipeline.Pipeline[T]) (AddingBlock[T], error) {
	if seq == nil {
		return AddingBlock[T]{}, errors.MissingField("sequence")
	}
	return AddingBlock[T]{sequence: seq}, nil
}

// Sequence returns the sequence to add.
func (b AddingBlock[T]) Sequence() *pipeline.Pipeline[T] {
	return b.sequence
}

// Named returns b reporting name instead of its own name.
func Named[T any](b Block[T], name string) Block[T] {
	return &namedBlock[T]{Block: b, name: name}
}

type namedBlock[T any] struct {
	Block[T]
	name string
}

func (b *namedBlock[T]) Name() string { return b.name }
