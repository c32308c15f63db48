package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rangerclubhouse/clubhouse/internal/restapi"
	"github.com/rangerclubhouse/clubhouse/internal/shared"
)

func TestRespondErrorStatuses(t *testing.T) {
	tests := []struct {
		err    error
		status int
		body   string
	}{
		{err: restapi.ErrMissingResource, status: http.StatusUnprocessableEntity, body: `{"errors":[{"title":"missing resource identifier field"}]}`},
		{err: fmt.Errorf("vehicle: %w", restapi.ErrMissingResource), status: http.StatusUnprocessableEntity, body: `{"errors":[{"title":"missing resource identifier field"}]}`},
		{err: fmt.Errorf("%w: resource must be an object", shared.ErrInvalidArgument), status: http.StatusUnprocessableEntity, body: `{"errors":[{"title":"resource must be an object"}]}`},
		{err: fmt.Errorf("person: %w", shared.ErrNotFound), status: http.StatusNotFound, body: `{"errors":[{"title":"Record not found"}]}`},
		{err: shared.ErrDuplicate, status: http.StatusConflict},
		{err: shared.ErrUnauthenticated, status: http.StatusUnauthorized},
		{err: shared.ErrForbidden, status: http.StatusForbidden},
		{err: errors.New("boom"), status: http.StatusInternalServerError, body: `{"errors":[{"title":"Internal server error"}]}`},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		RespondError(rec, tt.err)
		assert.Equal(t, tt.status, rec.Code, tt.err.Error())
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		if tt.body != "" {
			assert.JSONEq(t, tt.body, rec.Body.String())
		}
	}
}

func TestRespondErrorValidation(t *testing.T) {
	verrs := restapi.ValidationErrors{}
	verrs.Add("email", "The email must be a valid email address.")

	rec := httptest.NewRecorder()
	RespondError(rec, fmt.Errorf("person: %w", verrs))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"errors":[{"message":"The email must be a valid email address.","field":"email"}]}`, rec.Body.String())
}
