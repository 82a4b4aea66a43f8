package errors

// Code represents an error code
type Code string

// Error codes
const (
	CodeOK              Code = "OK"
	CodeCanceled        Code = "CANCELED"
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeAlreadyExists   Code = "ALREADY_EXISTS"
	CodeInternal        Code = "INTERNAL"
	CodeUnimplemented   Code = "UNIMPLEMENTED"

	// Conversion pipeline codes
	CodeEmptySource        Code = "EMPTY_SOURCE"
	CodeParseFailure       Code = "PARSE_FAILURE"
	CodeUnsupportedDialect Code = "UNSUPPORTED_DIALECT"
	CodeWriteConflict      Code = "WRITE_CONFLICT"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// Scope describes how far an error propagates through a batch run.
type Scope int

// Failure scopes, narrowest to widest
const (
	// ScopeRecord aborts a single block; the rest of the document continues.
	ScopeRecord Scope = iota
	// ScopeDocument aborts one source document; other documents in a batch continue.
	ScopeDocument
	// ScopeRun aborts the whole invocation.
	ScopeRun
)

// FailureScope returns how far an error with this code should propagate.
// Per-block parse failures and skipped output files are counted and reported;
// document-level failures (nothing extracted, unknown format) stop that
// document only; anything else is treated as fatal to the run.
func (c Code) FailureScope() Scope {
	switch c {
	case CodeParseFailure, CodeWriteConflict, CodeAlreadyExists:
		return ScopeRecord
	case CodeEmptySource, CodeUnsupportedDialect, CodeNotFound, CodeInvalidArgument:
		return ScopeDocument
	default:
		return ScopeRun
	}
}
