// Package apperrors maps domain errors to HTTP responses.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/agrifarm-platform/finance-service/internal/domain"
)

// Standard error codes
const (
	CodeValidationError   = "VALIDATION_ERROR"
	CodeNotFound          = "RESOURCE_NOT_FOUND"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeConflict          = "CONFLICT"
	CodeInternalError     = "INTERNAL_ERROR"
)

// AppError represents an application error with HTTP status and error code
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

var notFoundSentinels = []error{
	domain.ErrPartyNotFound,
	domain.ErrMaterialNotFound,
	domain.ErrFeedNotFound,
	domain.ErrEggStockNotFound,
	domain.ErrPackagingNotFound,
	domain.ErrFormulaNotFound,
	domain.ErrBatchNotFound,
	domain.ErrEntryNotFound,
}

// FromDomain classifies a domain error into an AppError with the right HTTP
// status. Unknown errors become opaque 500s so internals never leak.
func FromDomain(err error) *AppError {
	var app *AppError
	if errors.As(err, &app) {
		return app
	}

	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidExchangeRate):
		return &AppError{Code: CodeValidationError, Message: err.Error(), HTTPStatus: http.StatusBadRequest, Err: err}
	case errors.Is(err, domain.ErrInsufficientStock):
		return &AppError{Code: CodeInsufficientStock, Message: err.Error(), HTTPStatus: http.StatusConflict, Err: err}
	case errors.Is(err, domain.ErrPartyHasHistory):
		return &AppError{Code: CodeConflict, Message: err.Error(), HTTPStatus: http.StatusConflict, Err: err}
	}

	for _, sentinel := range notFoundSentinels {
		if errors.Is(err, sentinel) {
			return &AppError{Code: CodeNotFound, Message: err.Error(), HTTPStatus: http.StatusNotFound, Err: err}
		}
	}

	return &AppError{Code: CodeInternalError, Message: "internal error", HTTPStatus: http.StatusInternalServerError, Err: err}
}
