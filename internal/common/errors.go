package common

import (
	"errors"
	"net/http"
)

// Sentinel errors for the failure taxonomy. Services wrap these with
// fmt.Errorf("%w: ...") so handlers can classify with errors.Is while the
// message keeps the specifics.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidMove  = errors.New("invalid move")
	ErrUpstream     = errors.New("upstream failure")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
)

// ErrorCode returns the stable machine-readable code for an error.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrConflict):
		return "CONFLICT"
	case errors.Is(err, ErrInvalidMove):
		return "INVALID_MOVE"
	case errors.Is(err, ErrValidation):
		return "VALIDATION_ERROR"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrUpstream):
		return "UPSTREAM_FAILURE"
	default:
		return "SERVER_ERROR"
	}
}

// HTTPStatus maps an error to its HTTP-equivalent status.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidMove), errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
