// Package apierrors defines the error taxonomy surfaced to API clients.
// Every failure a handler can report is one of these kinds; anything else
// is collapsed to an internal error before it leaves the process.
package apierrors

import (
	"context"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

// APIError is a client-visible error with an HTTP status and stable code.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Message
}

func NewErrMissingToken() *APIError {
	return &APIError{
		Status:  http.StatusUnauthorized,
		Code:    "missing_token",
		Message: "you are not authorized to access this page",
	}
}

func NewErrInvalidToken() *APIError {
	return &APIError{
		Status:  http.StatusUnauthorized,
		Code:    "invalid_token",
		Message: "invalid authorization token",
	}
}

func NewErrExpiredToken() *APIError {
	return &APIError{
		Status:  http.StatusUnauthorized,
		Code:    "expired_token",
		Message: "authorization token has expired, please log in again",
	}
}

func NewErrUnknownSubject() *APIError {
	return &APIError{
		Status:  http.StatusUnauthorized,
		Code:    "unknown_subject",
		Message: "the user belonging to this token no longer exists",
	}
}

func NewErrStalePassword() *APIError {
	return &APIError{
		Status:  http.StatusUnauthorized,
		Code:    "stale_password",
		Message: "user changed password recently, please log in again",
	}
}

func NewErrForbidden() *APIError {
	return &APIError{
		Status:  http.StatusForbidden,
		Code:    "forbidden",
		Message: "you do not have permission to perform this action",
	}
}

// NewErrIncorrectCredentials covers both unknown email and wrong password;
// login never reveals which one failed.
func NewErrIncorrectCredentials() *APIError {
	return &APIError{
		Status:  http.StatusUnauthorized,
		Code:    "incorrect_credentials",
		Message: "incorrect email or password",
	}
}

func NewErrUnknownEmail() *APIError {
	return &APIError{
		Status:  http.StatusNotFound,
		Code:    "unknown_email",
		Message: "there is no user with that email address",
	}
}

// NewErrExpiredOrInvalidResetToken deliberately does not distinguish a
// wrong secret from an expired or already-consumed one.
func NewErrExpiredOrInvalidResetToken() *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    "expired_or_invalid_reset_token",
		Message: "reset token is invalid or has expired",
	}
}

func NewErrDeliveryFailed() *APIError {
	return &APIError{
		Status:  http.StatusInternalServerError,
		Code:    "delivery_failed",
		Message: "there was an error sending the email, try again later",
	}
}

func NewErrStoreUnavailable() *APIError {
	return &APIError{
		Status:  http.StatusServiceUnavailable,
		Code:    "store_unavailable",
		Message: "storage temporarily unavailable",
	}
}

func NewErrInvalidRequest(message string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    "invalid_request",
		Message: message,
	}
}

func NewErrNotFound(message string) *APIError {
	return &APIError{
		Status:  http.StatusNotFound,
		Code:    "not_found",
		Message: message,
	}
}

func NewErrEmailTaken() *APIError {
	return &APIError{
		Status:  http.StatusConflict,
		Code:    "email_taken",
		Message: "a user with that email already exists",
	}
}

func NewErrUpstreamFailed(message string) *APIError {
	return &APIError{
		Status:  http.StatusBadGateway,
		Code:    "upstream_failed",
		Message: message,
	}
}

func NewErrInternal() *APIError {
	return &APIError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "internal server error",
	}
}

// FromError returns err's APIError kind. Store timeouts and failed
// database connections surface as StoreUnavailable; anything else
// unclassified collapses to Internal.
func FromError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var connErr *pgconn.ConnectError
	if errors.Is(err, context.DeadlineExceeded) || errors.As(err, &connErr) {
		return NewErrStoreUnavailable()
	}

	return NewErrInternal()
}
