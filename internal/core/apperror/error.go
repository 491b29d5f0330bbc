// Package apperror provides structured error handling for the billing engine.
// All business errors must use AppError for consistent API responses.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	// Infrastructure errors (5xx)
	CodeInternal    = "INTERNAL_ERROR"
	CodePersistence = "PERSISTENCE_FAILURE"

	// Validation errors (400)
	CodeValidation           = "VALIDATION_ERROR"
	CodeMalformedRow         = "MALFORMED_ROW"
	CodeInvalidFeePercentage = "INVALID_FEE_PERCENTAGE"

	// Caller bugs (500) - an out-of-range line item index is a UI/caller
	// programming error, not a user-facing condition
	CodeIndexOutOfRange = "INDEX_OUT_OF_RANGE"

	// Authorization errors (401)
	CodeUnauthorized = "UNAUTHORIZED"

	// Not found (404)
	CodeNotFound = "NOT_FOUND"

	// Conflict (409)
	CodeConflict = "CONFLICT"
)

// AppError is the standard error type for the application.
// It implements the error interface and provides structured details for API responses.
type AppError struct {
	// Code is a machine-readable error identifier
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Details contains additional context (field names, row indexes, etc.)
	Details map[string]any `json:"details,omitempty"`

	// HTTPStatus is the suggested HTTP status code
	HTTPStatus int `json:"-"`

	// Err is the underlying error (not exposed in JSON)
	Err error `json:"-"`
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a key-value pair to error details
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// --- Factory functions for common errors ---

// NewValidation creates a validation error (400)
func NewValidation(message string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewIndexOutOfRange creates a line-item index error. Returned when a caller
// references a position outside the current item sequence; treated as a
// programming error on the caller side.
func NewIndexOutOfRange(index, length int) *AppError {
	return &AppError{
		Code:       CodeIndexOutOfRange,
		Message:    "line item index out of range",
		HTTPStatus: http.StatusInternalServerError,
		Details:    map[string]any{"index": index, "length": length},
	}
}

// NewMalformedRow creates a bulk-import parse error carrying the offending
// data row index (1-based, header excluded).
func NewMalformedRow(row int, column string, err error) *AppError {
	return &AppError{
		Code:       CodeMalformedRow,
		Message:    "import row cannot be parsed",
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"row": row, "column": column},
		Err:        err,
	}
}

// NewInvalidFeePercentage creates an error for a fee percentage outside the
// accepted set.
func NewInvalidFeePercentage(got int, accepted []int) *AppError {
	return &AppError{
		Code:       CodeInvalidFeePercentage,
		Message:    "fee percentage is not an accepted value",
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"got": got, "accepted": accepted},
	}
}

// NewPersistence creates a retryable storage error (502).
// In-memory state is not rolled back; the user may retry the same action.
func NewPersistence(op string, err error) *AppError {
	return &AppError{
		Code:       CodePersistence,
		Message:    "storage operation failed, please retry",
		HTTPStatus: http.StatusBadGateway,
		Details:    map[string]any{"operation": op},
		Err:        err,
	}
}

// NewNotFound creates a not found error (404)
func NewNotFound(entity string, id any) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", entity),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"entity": entity, "id": id},
	}
}

// NewConflict creates a conflict error (409)
func NewConflict(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

// NewInternal creates an internal server error (hides details from client)
func NewInternal(err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewUnauthorized creates an authentication error (401)
func NewUnauthorized(message string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// --- Helper functions ---

// IsAppError checks if error is AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError extracts AppError from error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetHTTPStatus returns appropriate HTTP status for any error
func GetHTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// IsNotFound checks if error is CodeNotFound
func IsNotFound(err error) bool {
	return HasCode(err, CodeNotFound)
}

// IsValidation checks if error is CodeValidation
func IsValidation(err error) bool {
	return HasCode(err, CodeValidation)
}

// IsPersistence checks if error is CodePersistence
func IsPersistence(err error) bool {
	return HasCode(err, CodePersistence)
}

// HasCode checks if error carries the given code.
func HasCode(err error, code string) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == code
	}
	return false
}
