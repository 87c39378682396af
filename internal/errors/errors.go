// internal/errors/errors.go
package errors

import (
	"context"
	"errors"
	"net/http"

	"gorm.io/gorm"
)

// Kind is the stable error code surfaced to API clients.
type Kind string

const (
	KindInvalidInput   Kind = "INVALID_INPUT"
	KindUnauthorized   Kind = "UNAUTHORIZED"
	KindForbidden      Kind = "FORBIDDEN"
	KindNotFound       Kind = "NOT_FOUND"
	KindUserNotFound   Kind = "USER_NOT_FOUND"
	KindSelfBlock      Kind = "SELF_BLOCK"
	KindBlockedPair    Kind = "BLOCKED_PAIR"
	KindAlreadyBlocked Kind = "ALREADY_BLOCKED"
	KindAlreadyExists  Kind = "ALREADY_EXISTS"
	KindPersistence    Kind = "PERSISTENCE_ERROR"
)

// AppError carries a stable kind and a user-facing message. Internal
// detail (the wrapped cause) is for logs only, never for responses.
type AppError struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.cause }

// Status maps the error kind onto an HTTP status code.
func (e *AppError) Status() int {
	switch e.Kind {
	case KindInvalidInput, KindSelfBlock:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden, KindBlockedPair:
		return http.StatusForbidden
	case KindNotFound, KindUserNotFound:
		return http.StatusNotFound
	case KindAlreadyBlocked, KindAlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func newError(kind Kind, msg string) *AppError {
	return &AppError{Kind: kind, Message: msg}
}

// InvalidInput flags missing or malformed request fields.
func InvalidInput(msg string) *AppError { return newError(KindInvalidInput, msg) }

// Unauthorized flags missing or bad credentials.
func Unauthorized(msg string) *AppError { return newError(KindUnauthorized, msg) }

// Forbidden flags an authenticated caller acting outside their rights.
func Forbidden(msg string) *AppError { return newError(KindForbidden, msg) }

// NotFound flags a missing resource other than a user.
func NotFound(msg string) *AppError { return newError(KindNotFound, msg) }

// UserNotFound flags a missing (or location-less) user.
func UserNotFound(msg string) *AppError { return newError(KindUserNotFound, msg) }

// SelfBlock flags a user trying to block themselves.
func SelfBlock(msg string) *AppError { return newError(KindSelfBlock, msg) }

// BlockedPair flags an interaction between users with a block in
// either direction.
func BlockedPair(msg string) *AppError { return newError(KindBlockedPair, msg) }

// AlreadyBlocked flags a duplicate directed block.
func AlreadyBlocked(msg string) *AppError { return newError(KindAlreadyBlocked, msg) }

// AlreadyExists flags a uniqueness conflict (e.g. duplicate email).
func AlreadyExists(msg string) *AppError { return newError(KindAlreadyExists, msg) }

// Persistence wraps a store failure. The cause stays internal; clients
// get the generic message.
func Persistence(err error) *AppError {
	return &AppError{Kind: KindPersistence, Message: "storage failure", cause: err}
}

// Map converts repo/infra errors into AppErrors for the handler layer.
// Keeps services clean by centralizing the translation.
func Map(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound("record not found")

	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		// request-level timeouts count as a store failure for callers
		return Persistence(err)

	default:
		return Persistence(err)
	}
}
