// Package errs provides the typed errors shared by the checkout domain.
//
// Every error type follows the same shape:
//   - a sentinel (ErrValueIsRequired, ErrValueIsInvalid, ...) usable with errors.Is
//   - a struct carrying the offending parameter and an optional cause
//   - constructors with and without a cause
//   - Error() for formatting and Unwrap() returning the sentinel plus the cause
//
// Domain constructors aggregate several of these with errors.Join, and the HTTP
// adapter maps the sentinels onto status codes.
package errs
