// Package errors provides custom error types for the homebudget API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, optional field details and
// optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		Details:    sentinel.Details,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		Details:    sentinel.Details,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// WithDetails creates a new AppError carrying machine-readable details,
// typically a map of field name to messages.
func WithDetails(sentinel *AppError, message string, details any) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		Details:    details,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// FieldError is a convenience for a single-field validation failure.
func FieldError(field, message string) *AppError {
	return WithDetails(ErrValidation, message, map[string][]string{field: {message}})
}

// Authentication errors.
var (
	ErrUnauthorized    = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrEmailNotAllowed = &AppError{Code: "UNAUTHORIZED", Message: "This account is not allowed to sign in", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrValidation     = &AppError{Code: "VALIDATION_ERROR", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrConflict       = &AppError{Code: "CONFLICT", Message: "Resource already exists", StatusCode: http.StatusConflict}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Transaction type errors.
var (
	ErrTransactionTypeNotFound = &AppError{Code: "NOT_FOUND", Message: "Transaction type not found", StatusCode: http.StatusNotFound}
	ErrUnknownTransactionType  = &AppError{Code: "VALIDATION_ERROR", Message: "Transaction type does not exist", StatusCode: http.StatusBadRequest, Details: map[string][]string{"type_id": {"Transaction type does not exist"}}}
)

// Transaction errors.
var (
	ErrTransactionNotFound = &AppError{Code: "NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrDuplicateImport     = &AppError{Code: "CONFLICT", Message: "Transaction with this import hash already exists", StatusCode: http.StatusConflict}
	ErrAIFieldsLocked      = &AppError{Code: "VALIDATION_ERROR", Message: "ai_status and ai_confidence can only be set when is_manual_override is true", StatusCode: http.StatusBadRequest, Details: map[string][]string{"is_manual_override": {"must be true to modify AI fields"}}}
	ErrEmptyPatch          = &AppError{Code: "VALIDATION_ERROR", Message: "At least one field must be provided", StatusCode: http.StatusBadRequest}
)

// Budget errors.
var (
	ErrBudgetNotFound = &AppError{Code: "NOT_FOUND", Message: "Budget not found", StatusCode: http.StatusNotFound}
)
