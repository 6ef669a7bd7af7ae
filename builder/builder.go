package builder

import (
	"context"
	stderrors "errors"

	"github.com/google/uuid"

	"github.com/Nytra/EnumerableToolkit/block"
	"github.com/Nytra/EnumerableToolkit/errors"
	"github.com/Nytra/EnumerableToolkit/logger"
	"github.com/Nytra/EnumerableToolkit/observability"
	"github.com/Nytra/EnumerableToolkit/pipeline"
)

// Builder holds an ordered list of blocks.
type Builder[T any] struct {
	opts   options
	blocks []block.Block[T]
	err    error
}

// New creates an empty Builder.
func New[T any](opts ...Option) *Builder[T] {
	o := options{name: defaultName}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.WithComponent("builder")
	}
	return &Builder[T]{opts: o}
}

// Name returns the sequence name.
func (b *Builder[T]) Name() string { return b.opts.name }

// Add appends blocks. A nil block is recorded as a construction error.
func (b *Builder[T]) Add(blocks ...block.Block[T]) *Builder[T] {
	for _, blk := range blocks {
		if blk == nil {
			b.record(errors.MissingField("block"))
			continue
		}
		b.blocks = append(b.blocks, blk)
	}
	return b
}

// InsertAfterEvery adds an InsertAfterEveryItemBlock.
func (b *Builder[T]) InsertAfterEvery(fn func(current T, index int) bool, seq *pipeline.Pipeline[T]) *Builder[T] {
	blk, err := block.NewInsertAfterEveryItemFunc(fn, seq)
	return b.addOrRecord(blk, err)
}

// InsertAfterFirst adds an InsertAfterFirstItemBlock.
func (b *Builder[T]) InsertAfterFirst(fn func(current T, index int) bool, seq *pipeline.Pipeline[T]) *Builder[T] {
	blk, err := block.NewInsertAfterFirstItemFunc(fn, seq)
	return b.addOrRecord(blk, err)
}

// Append adds an AppendBlock.
func (b *Builder[T]) Append(seq *pipeline.Pipeline[T]) *Builder[T] {
	blk, err := block.NewAppendBlock(seq)
	return b.addOrRecord(blk, err)
}

// Prepend adds a PrependBlock.
func (b *Builder[T]) Prepend(seq *pipeline.Pipeline[T]) *Builder[T] {
	blk, err := block.NewPrependBlock(seq)
	return b.addOrRecord(blk, err)
}

func (b *Builder[T]) addOrRecord(blk block.Block[T], err error) *Builder[T] {
	if err != nil {
		b.record(err)
		return b
	}
	b.blocks = append(b.blocks, blk)
	return b
}

func (b *Builder[T]) record(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Blocks returns a copy of the blocks in application order.
func (b *Builder[T]) Blocks() []block.Block[T] {
	return append([]block.Block[T](nil), b.blocks...)
}

// Err returns the first construction error, if any.
func (b *Builder[T]) Err() error { return b.err }

// Build applies the blocks to base in order and returns the derived
// sequence. Nothing is traversed. If a construction error was recorded it
// is returned and no block is applied.
func (b *Builder[T]) Build(base *pipeline.Pipeline[T]) (*pipeline.Pipeline[T], error) {
	return b.build(base, uuid.NewString())
}

func (b *Builder[T]) build(base *pipeline.Pipeline[T], runID string) (*pipeline.Pipeline[T], error) {
	log := b.runLogger(runID)
	if b.err != nil {
		log.Error("sequence build failed", logger.ErrorFields("build", b.err))
		return nil, b.err
	}
	if base == nil {
		return nil, errors.MissingField("base")
	}

	current := base
	names := make([]string, 0, len(b.blocks))
	for _, blk := range b.blocks {
		current = b.decorate(blk, log).Apply(current)
		names = append(names, blk.Name())
	}

	log.Debug("sequence built", logger.Fields(
		logger.FieldBlocks, names,
		"reiterable", current.Reiterable(),
	))
	return current, nil
}

func (b *Builder[T]) decorate(blk block.Block[T], log *logger.Logger) block.Block[T] {
	blk = block.WithLogging(blk, log)
	if b.opts.tracing {
		blk = block.WithTracing(blk, b.opts.tracePrefix)
	}
	if b.opts.metrics != nil {
		blk = block.WithMetrics(blk, b.opts.metrics)
	}
	return blk
}

func (b *Builder[T]) runLogger(runID string) *logger.Logger {
	return b.opts.log.WithFields(logger.Fields(
		"sequence", b.opts.name,
		logger.FieldRunID, runID,
	))
}

// Collect builds the sequence over base and materialises it. A context
// cancellation is reported as CANCELED; other failures are returned as
// produced, together with the values yielded before them.
func (b *Builder[T]) Collect(ctx context.Context, base *pipeline.Pipeline[T]) ([]T, error) {
	var items []T
	err := b.Stream(ctx, base, func(_ context.Context, v T) error {
		items = append(items, v)
		return nil
	})
	return items, err
}

// Stream builds the sequence over base and hands each value to sink as soon
// as it is produced. A sink error stops the traversal and is returned as is.
func (b *Builder[T]) Stream(ctx context.Context, base *pipeline.Pipeline[T], sink func(context.Context, T) error) error {
	runID := uuid.NewString()
	out, err := b.build(base, runID)
	if err != nil {
		return err
	}

	run := observability.NewRun(b.opts.name, runID, b.opts.metrics)
	ctx, span := run.Start(ctx, observability.SpanSequenceCollect)

	var count int64
	err = pipeline.ForEach(ctx, out, func(ctx context.Context, v T) error {
		count++
		return sink(ctx, v)
	})
	status := observability.StatusOK
	if err != nil {
		status = observability.StatusError
		if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
			status = observability.StatusCanceled
			err = errors.Canceled(err)
		}
	}
	run.End(ctx, span, count, status, err)

	log := b.runLogger(runID)
	fields := logger.DurationFields("stream", run.Duration())
	fields[logger.FieldItems] = count
	fields[logger.FieldStatus] = status
	if err != nil {
		log.Error("sequence failed", logger.MergeWithError(fields, err))
		return err
	}
	log.Info("sequence completed", fields)
	return nil
}
