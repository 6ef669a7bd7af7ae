package testutil

import (
	"context"
	"testing"

	"github.com/Nytra/EnumerableToolkit/pipeline"
)

// Source is a re-iterable pipeline source that counts its traversals.
// It is not safe for concurrent traversals.
type Source[T any] struct {
	items  []T
	failAt int
	err    error

	// Created counts iterators opened over the source.
	Created int
	// Pulled counts items handed out across all iterators.
	Pulled int
	// Closed counts iterator Close calls.
	Closed int
}

// NewSource returns a Source over items.
func NewSource[T any](items ...T) *Source[T] {
	return &Source[T]{items: items, failAt: -1}
}

// FailAt makes every traversal return err when pulling the item at index.
func (s *Source[T]) FailAt(index int, err error) *Source[T] {
	s.failAt = index
	s.err = err
	return s
}

// Pipeline returns a re-iterable pipeline over the source.
func (s *Source[T]) Pipeline() *pipeline.Pipeline[T] {
	return pipeline.FromFunc(func(context.Context) pipeline.Iterator[T] {
		s.Created++
		return &sourceIter[T]{src: s}
	})
}

type sourceIter[T any] struct {
	src *Source[T]
	pos int
}

func (it *sourceIter[T]) Next(context.Context) (T, bool, error) {
	var zero T
	if it.pos == it.src.failAt {
		return zero, false, it.src.err
	}
	if it.pos >= len(it.src.items) {
		return zero, false, nil
	}
	v := it.src.items[it.pos]
	it.pos++
	it.src.Pulled++
	return v, true, nil
}

func (it *sourceIter[T]) Close() error {
	it.src.Closed++
	return nil
}

// SinglePass returns a pipeline over items that can be traversed once.
func SinglePass[T any](items ...T) *pipeline.Pipeline[T] {
	return pipeline.From[T](&onceIter[T]{items: items})
}

type onceIter[T any] struct{ items []T }

func (it *onceIter[T]) Next(context.Context) (T, bool, error) {
	var zero T
	if len(it.items) == 0 {
		return zero, false, nil
	}
	v := it.items[0]
	it.items = it.items[1:]
	return v, true, nil
}

func (it *onceIter[T]) Close() error { return nil }

// Collect drains p and fails the test on error.
func Collect[T any](t testing.TB, p *pipeline.Pipeline[T]) []T {
	t.Helper()
	got, err := pipeline.Collect(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return got
}

// Equal reports whether a and b hold the same items in the same order.
func Equal[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
