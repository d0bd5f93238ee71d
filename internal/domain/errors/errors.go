// Package errors defines the application error taxonomy. Each error value
// carries the HTTP status and business code the delivery layer renders,
// so handlers and usecases stay free of status-code logic.
package errors

import (
	"net/http"

	"velo/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// ErrMissingAuthCode is returned when a callback arrives without an
	// authorization code.
	ErrMissingAuthCode = NewBaseError(
		http.StatusBadRequest,
		"MISSING_AUTH_CODE",
		"Missing authorization code",
		"",
	)

	// ErrIdentityExchange is returned when the identity provider rejects
	// the authorization-code exchange. The code is single-use; the flow
	// must restart rather than retry.
	ErrIdentityExchange = NewBaseError(
		http.StatusUnauthorized,
		"IDENTITY_EXCHANGE_FAILED",
		"Authentication failed",
		"",
	)

	// ErrSessionInvalid covers a missing, malformed, badly signed or
	// expired session credential.
	ErrSessionInvalid = NewBaseError(
		http.StatusUnauthorized,
		"SESSION_INVALID",
		"Not logged in",
		"",
	)

	// ErrNoLinkedAccount is returned when the user is authenticated but
	// has never authorized the fitness provider. Distinct from a session
	// failure so the page can render a "connect" prompt instead of login.
	ErrNoLinkedAccount = NewBaseError(
		http.StatusNotFound,
		"NO_LINKED_ACCOUNT",
		"No linked provider account",
		"",
	)

	// ErrTokenRefresh is returned when the provider rejects a
	// refresh-token exchange. The stored record is left untouched.
	ErrTokenRefresh = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_REFRESH_FAILED",
		"Provider token refresh failed",
		"",
	)

	// ErrProviderExchange is returned when the provider rejects the
	// initial authorization-code exchange during connect.
	ErrProviderExchange = NewBaseError(
		http.StatusUnauthorized,
		"PROVIDER_EXCHANGE_FAILED",
		"Provider authorization failed",
		"",
	)

	// ErrProviderUpstream covers transport failures and non-success
	// responses from the provider's resource API.
	ErrProviderUpstream = NewBaseError(
		http.StatusBadGateway,
		"PROVIDER_UPSTREAM",
		"Provider request failed",
		"",
	)

	// ErrStoreFailure is a generic persistence failure.
	ErrStoreFailure = NewBaseError(
		http.StatusInternalServerError,
		"STORE_FAILURE",
		"Storage operation failed",
		"",
	)
)
