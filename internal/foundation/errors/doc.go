// Package errors provides the classified error primitives used across plenar.
//
// A ClassifiedError carries a category, a severity and a retry strategy in
// addition to the message and cause. Packages wrap low-level failures with
// fmt.Errorf internally and classify them at boundaries (CLI commands, HTTP
// handlers, the protocol source) where the classification drives exit codes,
// status codes and retries.
//
// Example usage:
//
//	err := errors.SourceError("protocol download failed").
//		WithCause(cause).
//		WithContext("protocol_id", id).
//		Build()
package errors
