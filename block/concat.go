package block

import "github.com/Nytra/EnumerableToolkit/pipeline"

const (
	NameAppend  = "append"
	NamePrepend = "prepend"
)

// AppendBlock yields the primary sequence followed by the secondary one.
type AppendBlock[T any] struct {
	AddingBlock[T]
}

// NewAppendBlock creates an AppendBlock adding seq.
func NewAppendBlock[T any](seq *pipeline.Pipeline[T]) (*AppendBlock[T], error) {
	adding, err := NewAddingBlock(seq)
	if err != nil {
		return nil, err
	}
	return &AppendBlock[T]{AddingBlock: adding}, nil
}

func (b *AppendBlock[T]) Name() string { return NameAppend }

func (b *AppendBlock[T]) Apply(current *pipeline.Pipeline[T]) *pipeline.Pipeline[T] {
	return pipeline.Concat(current, b.Sequence())
}

// PrependBlock yields the secondary sequence followed by the primary one.
type PrependBlock[T any] struct {
	AddingBlock[T]
}

// NewPrependBlock creates a PrependBlock adding seq.
func NewPrependBlock[T any](seq *pipeline.Pipeline[T]) (*PrependBlock[T], error) {
	adding, err := NewAddingBlock(seq)
	if err != nil {
		return nil, err
	}
	return &PrependBlock[T]{AddingBlock: adding}, nil
}

func (b *PrependBlock[T]) Name() string { return NamePrepend }

func (b *PrependBlock[T]) Apply(current *pipeline.Pipeline[T]) *pipeline.Pipeline[T] {
	return pipeline.Concat(b.Sequence(), current)
}
