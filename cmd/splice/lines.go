package main

import (
	"bufio"
	"context"
	"io"

	"github.com/Nytra/EnumerableToolkit/pipeline"
)

// readLines returns a single-pass sequence over the lines of r.
func readLines(r io.Reader) *pipeline.Pipeline[string] {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return pipeline.From[string](&lineIter{scanner: scanner})
}

type lineIter struct {
	scanner *bufio.Scanner
}

func (it *lineIter) Next(ctx context.Context) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	if !it.scanner.Scan() {
		return "", false, it.scanner.Err()
	}
	return it.scanner.Text(), true, nil
}

func (it *lineIter) Close() error { return nil }
