// Package errs holds the typed errors shared by every layer of the hawker service.
//
// Each error type pairs a sentinel (ErrObjectNotFound, ErrValueIsInvalid, ...) with a
// struct carrying the offending parameter. The struct's Unwrap returns the sentinel, so
// callers classify failures with errors.Is and still get a descriptive message.
package errs
