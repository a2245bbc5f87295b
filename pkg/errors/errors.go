// Package errors provides structured error types for wiresketch.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI and API
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The geometry and encoding codes mirror the failure classes of the
// reconstruction core:
//   - GEOMETRY: non-positive zoom factor, non-square image, point off the grid
//   - CAPABILITY: transform requested on a set that cannot perform it, or a
//     second rotation of the same sample
//   - ENCODING_CONFLICT: two detections land in the same grid cell
//   - MISSING_FILE: a paired image/label file is absent
//
// Geometry and capability errors are programmer errors and abort the
// operation. ENCODING_CONFLICT is expected during dataset generation: the
// caller discards the sample and tries another source image.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeGeometry, "image is %dx%d, want square", w, h)
//	if errors.Is(err, errors.ErrCodeGeometry) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeMissingFile, origErr, "open %s", path)
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

	// Reconstruction core errors
	ErrCodeGeometry         Code = "GEOMETRY"
	ErrCodeCapability       Code = "CAPABILITY"
	ErrCodeEncodingConflict Code = "ENCODING_CONFLICT"

	// Resource not found errors
	ErrCodeNotFound    Code = "NOT_FOUND"
	ErrCodeMissingFile Code = "MISSING_FILE"

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

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
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

// ConflictError describes an encoding collision: a second detection whose
// center falls in a grid cell that already holds one.
type ConflictError struct {
	CellX, CellY int
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("grid cell (%d,%d) already holds a detection", e.CellX, e.CellY)
}

// Code returns the error code for this error type.
func (e *ConflictError) Code() Code {
	return ErrCodeEncodingConflict
}

// Conflict wraps a ConflictError for the given cell in an *Error so that
// Is(err, ErrCodeEncodingConflict) holds and the cell stays recoverable
// with errors.As.
func Conflict(cellX, cellY int) *Error {
	c := &ConflictError{CellX: cellX, CellY: cellY}
	return &Error{Code: ErrCodeEncodingConflict, Message: "encode aborted", Cause: c}
}
