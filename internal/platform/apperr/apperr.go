// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the error type that crosses the HTTP boundary.

Services return [*AppError] for every failure a client should see; anything
else is treated as internal and logged.

Architecture:

  - AppError: Machine-readable code plus a client-safe message.
  - Details: Per-field failures for validation and parameter errors.
  - Mapping: Every constructor fixes its HTTP status code.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the canonical error type of the Agora API.
//
// # Security
//
// Cause is for server-side logging only and is never sent to clients.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND", "CONFLICT").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"error"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field failures.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level failure.
type FieldError struct {
	// Field is the JSON field or query parameter name.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Error Codes

const (
	CodeNotFound         = "NOT_FOUND"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeForbidden        = "FORBIDDEN"
	CodeConflict         = "CONFLICT"
	CodeValidation       = "VALIDATION_ERROR"
	CodeInvalidParameter = "INVALID_PARAMETER"
	CodeRateLimited      = "RATE_LIMITED"
	CodeInternal         = "INTERNAL_ERROR"
)

func newError(status int, code, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Saved search") // "Saved search not found"
func NotFound(resource string) *AppError {
	return newError(http.StatusNotFound, CodeNotFound, resource+" not found")
}

// Unauthorized creates a 401 [AppError].
func Unauthorized(msg string) *AppError {
	return newError(http.StatusUnauthorized, CodeUnauthorized, msg)
}

// Forbidden creates a 403 [AppError].
func Forbidden(msg string) *AppError {
	return newError(http.StatusForbidden, CodeForbidden, msg)
}

// Conflict creates a 409 [AppError] for duplicates.
func Conflict(msg string) *AppError {
	return newError(http.StatusConflict, CodeConflict, msg)
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	appError := newError(http.StatusBadRequest, CodeValidation, msg)
	appError.Details = details
	return appError
}

// InvalidParameter creates a 400 [AppError] naming the query parameter that
// could not be decoded.
func InvalidParameter(key string, cause error) *AppError {
	appError := newError(http.StatusBadRequest, CodeInvalidParameter, fmt.Sprintf("Query parameter %q is malformed", key))
	appError.Cause = cause
	appError.Details = []FieldError{{Field: key, Message: "must be valid JSON"}}
	return appError
}

// RateLimited creates a 429 [AppError].
func RateLimited(retryAfterSeconds int) *AppError {
	return newError(http.StatusTooManyRequests, CodeRateLimited,
		fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds))
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
func Internal(cause error) *AppError {
	appError := newError(http.StatusInternalServerError, CodeInternal, "An unexpected error occurred")
	appError.Cause = cause
	return appError
}

// # Helpers

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// HasCode reports whether err carries an [*AppError] with the given code.
func HasCode(err error, code string) bool {
	appError := As(err)
	return appError != nil && appError.Code == code
}
