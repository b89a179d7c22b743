package errors

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Common error types that can be used across the application.
// Not found is deliberately ambiguous: a row that exists in another
// tenant reads the same as a row that does not exist at all.
var (
	ErrNotFound               = new(ErrCodeNotFound, "resource not found")
	ErrAlreadyExists          = new(ErrCodeAlreadyExists, "resource already exists")
	ErrVersionConflict        = new(ErrCodeVersionConflict, "version conflict")
	ErrValidation             = new(ErrCodeValidation, "validation error")
	ErrInvalidOperation       = new(ErrCodeInvalidOperation, "invalid operation")
	ErrPermissionDenied       = new(ErrCodePermissionDenied, "permission denied")
	ErrNotAuthenticated       = new(ErrCodeNotAuthenticated, "not authenticated")
	ErrProfileNotFound        = new(ErrCodeProfileNotFound, "profile not found")
	ErrAccountDisabled        = new(ErrCodeAccountDisabled, "account disabled")
	ErrInvoiceClosed          = new(ErrCodeInvoiceClosed, "invoice closed")
	ErrReconciliationConflict = new(ErrCodeReconciliationConflict, "reconciliation conflict")
	ErrRateLimited            = new(ErrCodeRateLimited, "rate limit exceeded")
	ErrHTTPClient             = new(ErrCodeHTTPClient, "http client error")
	ErrDatabase               = new(ErrCodeDatabase, "database error")
	ErrSystem                 = new(ErrCodeSystemError, "system error")
	// maps errors to http status codes
	statusCodeMap = map[error]int{
		ErrHTTPClient:             http.StatusInternalServerError,
		ErrDatabase:               http.StatusInternalServerError,
		ErrNotFound:               http.StatusNotFound,
		ErrAlreadyExists:          http.StatusConflict,
		ErrVersionConflict:        http.StatusConflict,
		ErrValidation:             http.StatusBadRequest,
		ErrInvalidOperation:       http.StatusBadRequest,
		ErrPermissionDenied:       http.StatusForbidden,
		ErrNotAuthenticated:       http.StatusUnauthorized,
		ErrProfileNotFound:        http.StatusUnauthorized,
		ErrAccountDisabled:        http.StatusForbidden,
		ErrInvoiceClosed:          http.StatusConflict,
		ErrReconciliationConflict: http.StatusConflict,
		ErrRateLimited:            http.StatusTooManyRequests,
		ErrSystem:                 http.StatusInternalServerError,
	}
)

const (
	ErrCodeHTTPClient             = "http_client_error"
	ErrCodeSystemError            = "system_error"
	ErrCodeNotFound               = "not_found"
	ErrCodeAlreadyExists          = "already_exists"
	ErrCodeVersionConflict        = "version_conflict"
	ErrCodeValidation             = "validation_error"
	ErrCodeInvalidOperation       = "invalid_operation"
	ErrCodePermissionDenied       = "permission_denied"
	ErrCodeNotAuthenticated       = "not_authenticated"
	ErrCodeProfileNotFound        = "profile_not_found"
	ErrCodeAccountDisabled        = "account_disabled"
	ErrCodeInvoiceClosed          = "invoice_closed"
	ErrCodeReconciliationConflict = "reconciliation_conflict"
	ErrCodeRateLimited            = "rate_limited"
	ErrCodeDatabase               = "database_error"
)

// InternalError represents a domain error
type InternalError struct {
	Code    string // Machine-readable error code
	Message string // Human-readable error message
	Op      string // Logical operation name
	Err     error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.DisplayError()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) DisplayError() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is implements error matching for wrapped errors
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

// New creates a new InternalError with the given code and message
func New(code string, message string) *InternalError {
	return new(code, message)
}

// new creates a new InternalError
func new(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsVersionConflict checks if an error is a version conflict error
func IsVersionConflict(err error) bool {
	return errors.Is(err, ErrVersionConflict)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsInvalidOperation checks if an error is an invalid operation error
func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}

// IsPermissionDenied checks if an error is a permission denied error
func IsPermissionDenied(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}

// IsNotAuthenticated checks if an error is an authentication error
func IsNotAuthenticated(err error) bool {
	return errors.Is(err, ErrNotAuthenticated)
}

// IsProfileNotFound checks if an error is a missing profile error
func IsProfileNotFound(err error) bool {
	return errors.Is(err, ErrProfileNotFound)
}

// IsAccountDisabled checks if an error is an account disabled error
func IsAccountDisabled(err error) bool {
	return errors.Is(err, ErrAccountDisabled)
}

// IsInvoiceClosed checks if an error is an invoice closed error
func IsInvoiceClosed(err error) bool {
	return errors.Is(err, ErrInvoiceClosed)
}

// IsReconciliationConflict checks if an error is a reconciliation conflict
func IsReconciliationConflict(err error) bool {
	return errors.Is(err, ErrReconciliationConflict)
}

// IsRateLimited checks if an error is a rate limit error
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

func HTTPStatusFromErr(err error) int {
	for e, status := range statusCodeMap {
		if errors.Is(err, e) {
			return status
		}
	}
	return http.StatusInternalServerError
}
