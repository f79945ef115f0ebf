package chem

import (
	"errors"
	"fmt"
)

// LoadError reports a corpus file that could not be read or decoded.
// Loading is all-or-nothing, so a LoadError means no snapshot was built.
type LoadError struct {
	// Path is the offending file.
	Path string
	Err  error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// NotFoundError reports an identifier that resolved to no record.
// It is non-fatal: the caller chose an identifier, not a broken corpus.
type NotFoundError struct {
	// Identifier is the atomic number, symbol, name, or reaction ID
	// as given by the caller.
	Identifier string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no record matches %q", e.Identifier)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// InvalidQueryError reports a query the engine refuses to run: an unknown
// field, an operator that does not apply to the field's type, or a value
// that cannot be parsed.
type InvalidQueryError struct {
	// Part is the offending fragment of the query (field name, operator,
	// or raw value).
	Part   string
	Reason string
}

// Error implements the error interface.
func (e *InvalidQueryError) Error() string {
	if e.Part == "" {
		return fmt.Sprintf("invalid query: %s", e.Reason)
	}
	return fmt.Sprintf("invalid query: %s: %s", e.Part, e.Reason)
}

// IsInvalidQuery reports whether err is (or wraps) an InvalidQueryError.
func IsInvalidQuery(err error) bool {
	var iq *InvalidQueryError
	return errors.As(err, &iq)
}
