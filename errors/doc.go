// Package errors provides the application error type used at the outer
// surfaces (CLI output, the in-memory REST backend): a machine-readable
// code, an HTTP status and an RFC 7807 style JSON body.
package errors
