// Package errors provides structured error types for rxnpath.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library and the CLI
//   - Machine-readable error codes for choosing a fallback
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Pathway reconstruction fails with one of three kinds:
//   - AMBIGUOUS_PATHWAY: more than one valid reconstruction exists (fatal)
//   - BAD_PATHWAY: the drawn scheme cannot be read as a pathway (recoverable;
//     callers usually fall back to flat rendering)
//   - CYCLE_DETECTED: the reconstructed graph is not a DAG (fatal)
//
// # Usage
//
//	err := errors.New(errors.ErrCodeBadPathway, "multi-tail arrow %d: tail %d is not connected", i, j)
//	if errors.Is(err, errors.ErrCodeBadPathway) {
//	    // render the scheme flat
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInChI, origErr, "identify reactant %d of reaction %d", slot, idx)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Pathway reconstruction errors
	ErrCodeAmbiguousPathway Code = "AMBIGUOUS_PATHWAY"
	ErrCodeBadPathway       Code = "BAD_PATHWAY"
	ErrCodeCycleDetected    Code = "CYCLE_DETECTED"

	// External collaborator errors
	ErrCodeInChI Code = "INCHI_FAILED"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// coder is implemented by error types that carry a code without being an *Error.
type coder interface {
	Code() Code
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error or a typed error
// exposing Code() with a matching code. The outermost coded error wins.
func Is(err error, code Code) bool {
	return code != "" && GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if no coded error is found in the chain.
func GetCode(err error) Code {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// AmbiguousError reports that a set of reactions admits more than one pathway.
// Count is the number of distinct pathways (product of the branch factors) and
// Reactions lists the indices of the reactions with more than one continuation.
type AmbiguousError struct {
	Count     int
	Reactions []int
}

// Error implements the error interface.
func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("%s: %d possible pathways (ambiguous reactions %v)", ErrCodeAmbiguousPathway, e.Count, e.Reactions)
}

// Code returns the error code for this error type.
func (e *AmbiguousError) Code() Code {
	return ErrCodeAmbiguousPathway
}
