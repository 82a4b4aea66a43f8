// Package errors provides structured error handling for the converter pipeline.
//
// This package provides:
//   - Structured errors with codes, messages, and metadata
//   - The conversion failure taxonomy (EmptySource, ParseFailure,
//     UnsupportedDialect, WriteConflict) with per-code propagation scopes
//   - Error context preservation through wrapping
//   - Validation error helpers for component configs
//   - Type-safe error checking
//
// # Basic Usage
//
// Creating errors:
//
//	err := errors.EmptySource("no adversary blocks detected")
//	err := errors.ParseFailuref("block %d has no name line", i)
//
// Adding metadata:
//
//	err := errors.EmptySource("no adversary blocks detected").
//	    WithMeta("source", path)
//
// Wrapping errors:
//
//	data, err := os.ReadFile(path)
//	if err != nil {
//	    return nil, errors.Wrap(err, "failed to read source")
//	}
//
// # Error Checking
//
//	if errors.IsParseFailure(err) {
//	    // count and skip this block
//	}
//	if errors.IsFatal(err) {
//	    // abort the whole run
//	}
//
// # Propagation
//
// Each code carries a failure scope (see Code.FailureScope): per-block
// failures never abort a document, per-document failures never abort a
// batch, and only true I/O or internal failures are fatal to a run.
//
// # Validation Errors
//
// Using the validation builder in component configs:
//
//	vb := errors.NewValidationBuilder()
//	if c.Extractor == nil {
//	    vb.RequiredField("Extractor")
//	}
//	return vb.Build()
package errors
