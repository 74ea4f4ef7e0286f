// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the error type every catalogue endpoint reports.

An [AppError] pairs an HTTP status with a stable machine-readable code and a
message that is safe to show to visitors. Services return them; the respond
package renders them. Storage errors are converted by the dberr package.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is an error with a client-facing representation.
//
// Cause is logged server-side and never serialised, so SQL text and upstream
// IIIF responses stay out of API bodies.
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"error"`
	HTTPStatus int          `json:"-"`
	Cause      error        `json:"-"`
	Details    []FieldError `json:"details,omitempty"`
}

// FieldError is one rejected field of a request body.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Cause }

func newError(status int, code, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// # Client Errors (4xx)

// NotFound reports a missing catalogue record, e.g. NotFound("Panel") reads
// "Panel not found".
func NotFound(resource string) *AppError {
	return newError(http.StatusNotFound, "NOT_FOUND", resource+" not found")
}

func Unauthorized(msg string) *AppError {
	return newError(http.StatusUnauthorized, "UNAUTHORIZED", msg)
}

func Forbidden(msg string) *AppError {
	return newError(http.StatusForbidden, "FORBIDDEN", msg)
}

// ValidationError is a 400 carrying optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	err := newError(http.StatusBadRequest, "VALIDATION_ERROR", msg)
	err.Details = details
	return err
}

// Unprocessable is a 422 for a well-formed request the record cannot satisfy,
// such as refreshing the dimensions of an image without an IIIF file.
func Unprocessable(msg string) *AppError {
	return newError(http.StatusUnprocessableEntity, "UNPROCESSABLE", msg)
}

func RateLimited(retryAfterSeconds int) *AppError {
	return newError(http.StatusTooManyRequests, "RATE_LIMITED",
		fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds))
}

// # Server Errors (5xx)

// Internal hides cause behind a generic message.
func Internal(cause error) *AppError {
	err := newError(http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
	err.Cause = cause
	return err
}

// BadGateway reports a failed call to an upstream service such as the IIIF server.
func BadGateway(msg string, cause error) *AppError {
	err := newError(http.StatusBadGateway, "BAD_GATEWAY", msg)
	err.Cause = cause
	return err
}

// ServiceUnavailable reports a dependency that timed out or is down.
func ServiceUnavailable(msg string) *AppError {
	return newError(http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", msg)
}

// # Helpers

// As extracts the [*AppError] from err's chain, or returns nil.
func As(err error) *AppError {
	var appError *AppError
	if errors.As(err, &appError) {
		return appError
	}
	return nil
}
