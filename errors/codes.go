package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Construction errors, reported before any sequence is traversed.
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required argument or field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeSinglePass indicates a sequence that must be traversed more
	// than once can only be traversed once.
	ErrCodeSinglePass ErrorCode = "SINGLE_PASS_SEQUENCE"
)

// Traversal errors, surfaced by the consumer of a sequence.
const (
	// ErrCodePredicateFailed indicates an insertion predicate returned an error.
	ErrCodePredicateFailed ErrorCode = "PREDICATE_FAILED"
	// ErrCodeCanceled indicates production stopped because the context ended.
	ErrCodeCanceled ErrorCode = "CANCELED"
)

var traversalCodes = map[ErrorCode]bool{
	ErrCodePredicateFailed: true,
	ErrCodeCanceled:        true,
}

// IsTraversalCode returns true if the code is raised while a sequence is
// being consumed rather than while it is being assembled.
func IsTraversalCode(code ErrorCode) bool {
	return traversalCodes[code]
}
