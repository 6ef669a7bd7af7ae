// Package errors provides the structured error type used across the toolkit.
//
// Every error carries a machine-readable ErrorCode, a human-readable message,
// optional details and an optional cause reachable through errors.Is and
// errors.As. Construction mistakes (nil predicates, single-pass sequences
// where re-iteration is required) are reported when a block is created;
// traversal failures are reported by the consumer of the derived sequence.
package errors
