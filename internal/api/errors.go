package api

import (
	"errors"
	"net/http"

	"sqlgate/internal/domain"
)

// genericSystemMessage replaces SystemError detail in responses so transport
// and auth specifics never leak to clients; the original detail is logged
// server-side only.
const genericSystemMessage = "internal error"

// httpStatusFromError maps domain errors to HTTP status codes. Anything not
// raised through the typed paths is treated conservatively as a 500.
func httpStatusFromError(err error) int {
	var validation *domain.ValidationError
	var user *domain.UserError
	var system *domain.SystemError
	var notFound *domain.NotFoundError
	var conflict *domain.ConflictError

	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &user):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &system):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// clientMessage returns the message a response may carry. UserError and
// ValidationError messages pass through verbatim; everything else is
// replaced with a generic message.
func clientMessage(err error) string {
	var validation *domain.ValidationError
	var user *domain.UserError
	var notFound *domain.NotFoundError
	var conflict *domain.ConflictError

	switch {
	case errors.As(err, &validation), errors.As(err, &user),
		errors.As(err, &notFound), errors.As(err, &conflict):
		return err.Error()
	default:
		return genericSystemMessage
	}
}
