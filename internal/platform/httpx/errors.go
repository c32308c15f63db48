// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rangerclubhouse/clubhouse/internal/restapi"
	"github.com/rangerclubhouse/clubhouse/internal/shared"
)

// RespondError maps domain errors to HTTP responses. Validation failures are
// written as field errors; everything else uses the request error envelope.
func RespondError(w http.ResponseWriter, err error) {
	if verrs, ok := restapi.AsValidationErrors(err); ok {
		RespondValidation(w, verrs)
		return
	}
	switch {
	case errors.Is(err, restapi.ErrMissingResource):
		Errors(w, http.StatusUnprocessableEntity, restapi.MissingResourceMessage)
	case errors.Is(err, shared.ErrInvalidArgument):
		Errors(w, http.StatusUnprocessableEntity, invalidArgumentMessage(err))
	case errors.Is(err, shared.ErrNotFound):
		Errors(w, http.StatusNotFound, "Record not found")
	case errors.Is(err, shared.ErrDuplicate):
		Errors(w, http.StatusConflict, "Duplicate record")
	case errors.Is(err, shared.ErrUnauthenticated), errors.Is(err, shared.ErrInvalidCredentials):
		Errors(w, http.StatusUnauthorized, "Not authenticated")
	case errors.Is(err, shared.ErrForbidden):
		Errors(w, http.StatusForbidden, "Not authorized")
	default:
		Errors(w, http.StatusInternalServerError, "Internal server error")
	}
}

// invalidArgumentMessage drops the sentinel prefix so the client sees only
// what was wrong with its request.
func invalidArgumentMessage(err error) string {
	return strings.TrimPrefix(err.Error(), shared.ErrInvalidArgument.Error()+": ")
}

// RespondValidation writes a 422 carrying the submitter's field errors.
func RespondValidation(w http.ResponseWriter, v restapi.Validated) {
	JSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": restapi.ToRestError(v)})
}

// Errors writes the request error envelope.
func Errors(w http.ResponseWriter, status int, messages ...string) {
	JSON(w, status, restapi.RequestErrors(messages...))
}
