// Conveyor - Logistics Demo ERP Gateway
// Copyright 2026 Conveyor Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/conveyor-labs/conveyor

// Package apierr defines the closed set of typed failures used across the
// gateway. Every failure carries a machine-readable kind, a fixed HTTP
// status code, a client-visible message, optional user-facing details, and
// an optional wrapped cause that is logged server-side but never serialized
// to clients.
//
// The taxonomy is deliberately small: callers of the upstream ERP translate
// transport and status-code outcomes into one of these kinds at the point
// of detection, and the HTTP boundary serializes them uniformly. Any error
// that is not an *apierr.Error when it reaches the boundary is wrapped into
// a generic SERVER_ERROR so internal details never leak.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is a machine-readable error code, stable across releases.
type Kind string

// The closed set of failure kinds and their fixed HTTP status codes.
const (
	KindValidation     Kind = "VALIDATION_ERROR"      // 400: malformed client or upstream request
	KindToken          Kind = "TOKEN_ERROR"           // 400: session token malformed, tampered, or expired
	KindAuthentication Kind = "AUTHENTICATION_ERROR"  // 401: caller or upstream session not authenticated
	KindAuthorization  Kind = "AUTHORIZATION_ERROR"   // 401: caller lacks permission
	KindNotFound       Kind = "NOT_FOUND"             // 404: referenced resource does not exist
	KindUnprocessable  Kind = "UNPROCESSABLE_ENTITY"  // 422: well-formed but semantically invalid
	KindDependency     Kind = "DEPENDENCY_ERROR"      // 500: upstream unreachable
	KindServer         Kind = "SERVER_ERROR"          // 500: any uncaught failure
)

// Error is a typed gateway failure.
//
// Message is safe to show to clients. UserDetails optionally refines the
// message for end users and defaults to Message when empty. The wrapped
// cause (if any) is internal diagnostic context: it is logged at the HTTP
// boundary and never included in the response body.
type Error struct {
	Kind        Kind
	Status      int
	Message     string
	UserDetails string
	cause       error
}

// Error implements the error interface, including the internal cause so
// server logs carry full diagnostics.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the internal cause to errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.cause
}

// UserMessage returns the user-facing details, falling back to Message.
func (e *Error) UserMessage() string {
	if e.UserDetails != "" {
		return e.UserDetails
	}
	return e.Message
}

// WithUserDetails sets the user-facing message and returns the error.
func (e *Error) WithUserDetails(details string) *Error {
	e.UserDetails = details
	return e
}

// WithCause attaches an internal cause and returns the error.
func (e *Error) WithCause(cause error) *Error {
	e.cause = cause
	return e
}

// New creates a typed error. Prefer the kind-specific constructors below.
func New(kind Kind, status int, message string) *Error {
	return &Error{Kind: kind, Status: status, Message: message}
}

// Validation indicates malformed client input or a malformed upstream
// request.
func Validation(message string) *Error {
	return New(KindValidation, http.StatusBadRequest, message)
}

// Token indicates the session token failed to decode because it is
// malformed, tampered with, or expired. Callers need not distinguish the
// underlying cause: the remedial action is always re-authentication.
func Token(message string) *Error {
	return New(KindToken, http.StatusBadRequest, message)
}

// Authentication indicates the caller or its embedded upstream session is
// not authenticated.
func Authentication(message string) *Error {
	return New(KindAuthentication, http.StatusUnauthorized, message)
}

// Authorization indicates the caller lacks permission for the action.
func Authorization(message string) *Error {
	return New(KindAuthorization, http.StatusUnauthorized, message)
}

// NotFound indicates the referenced resource does not exist. An empty
// message defaults to a generic phrase.
func NotFound(message string) *Error {
	if message == "" {
		message = "Resource does not exist."
	}
	return New(KindNotFound, http.StatusNotFound, message)
}

// Unprocessable indicates input that is well-formed but semantically
// invalid, such as a shipment naming a nonexistent retailer.
func Unprocessable(message string) *Error {
	return New(KindUnprocessable, http.StatusUnprocessableEntity, message)
}

// Dependency indicates the upstream system could not be reached at all.
func Dependency(message string) *Error {
	return New(KindDependency, http.StatusInternalServerError, message)
}

// Server wraps any otherwise-unclassified failure.
func Server(message string) *Error {
	return New(KindServer, http.StatusInternalServerError, message)
}

// From normalizes any error into an *Error. Typed errors pass through
// unchanged; everything else is wrapped into a generic SERVER_ERROR so no
// internal message reaches a client.
func From(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return Server("Server Error").WithCause(err)
}

// IsKind reports whether err is a typed error of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}
