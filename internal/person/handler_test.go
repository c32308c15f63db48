package person

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rangerclubhouse/clubhouse/internal/filters"
	"github.com/rangerclubhouse/clubhouse/internal/shared"
)

func newRouter(requester filters.Requester) http.Handler {
	svc, _ := newService()
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if requester != nil {
				req = req.WithContext(shared.ContextWithRequester(req.Context(), requester))
			}
			next.ServeHTTP(w, req)
		})
	})
	r.Route("/people", NewHandler(nil, svc).MountRoutes)
	return r
}

func TestHandlerShow(t *testing.T) {
	res := httptest.NewRecorder()
	newRouter(nil).ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/people/7", nil))
	require.Equal(t, http.StatusOK, res.Code)
	assert.True(t, strings.HasPrefix(res.Body.String(), `{"person":{"id":7,"first_name":"Jane"`))

	res = httptest.NewRecorder()
	newRouter(nil).ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/people/99", nil))
	assert.Equal(t, http.StatusNotFound, res.Code)

	res = httptest.NewRecorder()
	newRouter(nil).ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/people/abc", nil))
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestHandlerUpdate(t *testing.T) {
	body := `{"person":{"first_name":"Janet","mentors_notes":"sneaky"}}`

	res := httptest.NewRecorder()
	newRouter(nil).ServeHTTP(res, httptest.NewRequest(http.MethodPatch, "/people/7", strings.NewReader(body)))
	assert.Equal(t, http.StatusUnauthorized, res.Code)

	res = httptest.NewRecorder()
	newRouter(as(7, filters.RoleLogin)).ServeHTTP(res, httptest.NewRequest(http.MethodPatch, "/people/7", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, res.Code)
	var out map[string]map[string]any
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &out))
	assert.Equal(t, "Janet", out["person"]["first_name"])
	assert.NotContains(t, out["person"], "mentors_notes")

	res = httptest.NewRecorder()
	newRouter(as(7)).ServeHTTP(res, httptest.NewRequest(http.MethodPatch, "/people/7", strings.NewReader(`{"person":{"email":"bad"}}`)))
	assert.Equal(t, http.StatusUnprocessableEntity, res.Code)
	assert.Contains(t, res.Body.String(), `"field":"email"`)

	res = httptest.NewRecorder()
	newRouter(as(7)).ServeHTTP(res, httptest.NewRequest(http.MethodPatch, "/people/7", strings.NewReader(`{"person":"oops"}`)))
	assert.Equal(t, http.StatusUnprocessableEntity, res.Code)
}
