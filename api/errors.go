package api

import (
	"net/http"

	"github.com/bitfsorg/armarket-go/fault"
)

var (
	// ErrMissingCaller is returned when a mutation arrives without an
	// X-Caller header.
	ErrMissingCaller = fault.New(fault.Authorization, "api: X-Caller header is required")

	// ErrBadRequest wraps an undecodable body, path or query parameter.
	ErrBadRequest = fault.New(fault.Validation, "api: malformed request")

	// ErrEventsDisabled is returned by the event feed when the server was
	// built without a recorder.
	ErrEventsDisabled = fault.New(fault.NotFound, "api: event feed is not enabled")

	// ErrEditionNotStarted is returned for an artwork/object pair with no
	// minted chunk.
	ErrEditionNotStarted = fault.New(fault.NotFound, "api: edition has not been started")

	// ErrMissingFilter is returned by the token listing without an owner
	// or creator filter.
	ErrMissingFilter = fault.New(fault.Validation, "api: owner or creator query parameter is required")
)

// statusOf maps a rejection kind to its HTTP status.
func statusOf(kind fault.Kind) int {
	switch kind {
	case fault.KindAuthorization:
		return http.StatusForbidden
	case fault.KindValidation:
		return http.StatusBadRequest
	case fault.KindReplay:
		return http.StatusConflict
	case fault.KindExpiry:
		return http.StatusGone
	case fault.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
