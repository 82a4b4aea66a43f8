package errors

import (
	"errors"
)

// As is a wrapper around errors.As that works with our Error type
func As(err error, target **Error) bool {
	return errors.As(err, target)
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// GetCode extracts the error code from an error
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}

	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Code
	}

	return CodeInternal
}

// GetMeta extracts metadata from an error
func GetMeta(err error) map[string]interface{} {
	if err == nil {
		return nil
	}

	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Meta
	}

	return nil
}

// GetMessage extracts the user-friendly message from an error
func GetMessage(err error) string {
	if err == nil {
		return ""
	}

	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Message
	}

	return err.Error()
}

// Type checking helpers

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return GetCode(err) == CodeNotFound
}

// IsInvalidArgument checks if an error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return GetCode(err) == CodeInvalidArgument
}

// IsEmptySource checks if an error is an empty source error
func IsEmptySource(err error) bool {
	return GetCode(err) == CodeEmptySource
}

// IsParseFailure checks if an error is a per-block parse failure
func IsParseFailure(err error) bool {
	return GetCode(err) == CodeParseFailure
}

// IsUnsupportedDialect checks if an error is an unsupported dialect error
func IsUnsupportedDialect(err error) bool {
	return GetCode(err) == CodeUnsupportedDialect
}

// IsWriteConflict checks if an error is a write conflict error
func IsWriteConflict(err error) bool {
	return GetCode(err) == CodeWriteConflict
}

// IsFatal reports whether an error should abort the whole invocation
// rather than a single record or document.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	return GetCode(err).FailureScope() == ScopeRun
}
