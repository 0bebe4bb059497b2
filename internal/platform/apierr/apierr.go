package apierr

import (
	"errors"
	"fmt"
	"net/http"

	pkgerrors "github.com/yungbote/jobtrack-backend/internal/pkg/errors"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func BadRequest(code, msg string) *Error {
	return New(http.StatusBadRequest, code, fmt.Errorf("%s: %w", msg, pkgerrors.ErrInvalidArgument))
}

func NotFound(code, msg string) *Error {
	return New(http.StatusNotFound, code, fmt.Errorf("%s: %w", msg, pkgerrors.ErrNotFound))
}

func Unauthorized(code, msg string) *Error {
	return New(http.StatusUnauthorized, code, fmt.Errorf("%s: %w", msg, pkgerrors.ErrUnauthorized))
}

func Conflict(code, msg string) *Error {
	return New(http.StatusConflict, code, fmt.Errorf("%s: %w", msg, pkgerrors.ErrConflict))
}

// From extracts an *Error from err's chain. Errors that carry one of the shared
// sentinels get the matching status; everything else is an internal error.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	switch {
	case errors.Is(err, pkgerrors.ErrNotFound):
		return New(http.StatusNotFound, "not_found", err)
	case errors.Is(err, pkgerrors.ErrInvalidArgument):
		return New(http.StatusBadRequest, "invalid_argument", err)
	case errors.Is(err, pkgerrors.ErrUnauthorized):
		return New(http.StatusUnauthorized, "unauthorized", err)
	case errors.Is(err, pkgerrors.ErrConflict):
		return New(http.StatusConflict, "conflict", err)
	case errors.Is(err, pkgerrors.ErrRateLimited):
		return New(http.StatusTooManyRequests, "rate_limited", err)
	default:
		return New(http.StatusInternalServerError, "internal_error", err)
	}
}
