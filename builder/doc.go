// Package builder assembles an ordered list of blocks into one derived
// sequence.
//
//	out, err := builder.New[string](builder.WithName("report")).
//		InsertAfterFirst(isHeader, pipeline.FromSlice([]string{"===="})).
//		InsertAfterEvery(endsSection, pipeline.FromSlice([]string{""})).
//		Build(pipeline.FromSlice(lines))
//
// Blocks apply in the order they were added; each consumes the sequence
// produced by the previous one. Construction errors from the convenience
// methods are kept and returned by Build, so a chain can be written without
// checking each step.
package builder
