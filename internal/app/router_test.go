package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rangerclubhouse/clubhouse/internal/auth"
	"github.com/rangerclubhouse/clubhouse/internal/filters"
	"github.com/rangerclubhouse/clubhouse/internal/observability"
	"github.com/rangerclubhouse/clubhouse/internal/person"
	"github.com/rangerclubhouse/clubhouse/internal/restapi"
	"github.com/rangerclubhouse/clubhouse/internal/shared"
)

type stubPeople struct{}

func (stubPeople) Get(ctx context.Context, id int64) (*person.Person, error) {
	if id != 7 {
		return nil, shared.ErrNotFound
	}
	return &person.Person{ID: 7, FirstName: "Jane", LastName: "Doe", Callsign: "Hubcap", Status: "active", Email: "hubcap@example.com"}, nil
}

func (stubPeople) Teams(ctx context.Context, id int64) ([]string, error) {
	return []string{"Green Dot"}, nil
}

func (stubPeople) Update(ctx context.Context, p *person.Person, fields []string) error {
	return nil
}

type stubAccounts struct{}

func (stubAccounts) FindByEmail(ctx context.Context, email string) (*auth.Account, error) {
	return nil, shared.ErrNotFound
}

type stubRoles struct{}

func (stubRoles) Roles(ctx context.Context, personID int64) (filters.RoleSet, error) {
	return filters.NewRoleSet(filters.RoleLogin), nil
}

type fixture struct {
	handler http.Handler
	tokens  *auth.TokenIssuer
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &Config{AppEnv: "test", AppRequestTimeout: 5 * time.Second, RateLimitPerMinute: 1000}
	metrics := observability.NewMetrics()
	codec := restapi.NewCodec(filters.DefaultRegistry(), restapi.WithObserver(observability.NewFilterObserver(metrics, nil)))
	tokens := auth.NewTokenIssuer("router-secret", time.Hour)
	authService := auth.NewService(stubAccounts{}, stubRoles{}, tokens, auth.NewRevocations(client), nil)

	handler := NewRouter(RouterParams{
		Config:        cfg,
		AuthService:   authService,
		AuthHandler:   auth.NewHandler(nil, authService),
		PersonHandler: person.NewHandler(nil, person.NewService(stubPeople{}, stubRoles{}, codec, nil)),
		Metrics:       metrics,
	})
	return fixture{handler: handler, tokens: tokens}
}

func (f fixture) get(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res := httptest.NewRecorder()
	f.handler.ServeHTTP(res, req)
	return res
}

func TestRouterHealthzAndSecureHeaders(t *testing.T) {
	f := newFixture(t)
	res := f.get("/healthz", "")
	require.Equal(t, http.StatusOK, res.Code)
	assert.JSONEq(t, `{"status":"ok"}`, res.Body.String())
	assert.Equal(t, "DENY", res.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", res.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, res.Header().Get("X-Ratelimit-Limit"))
}

func TestRouterFiltersPersonByCaller(t *testing.T) {
	f := newFixture(t)

	res := f.get("/people/7", "")
	require.Equal(t, http.StatusOK, res.Code)
	var anon map[string]map[string]any
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &anon))
	assert.Equal(t, "Hubcap", anon["person"]["callsign"])
	assert.NotContains(t, anon["person"], "email")

	token, _, err := f.tokens.Issue(7)
	require.NoError(t, err)
	res = f.get("/people/7", token)
	require.Equal(t, http.StatusOK, res.Code)
	var owner map[string]map[string]any
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &owner))
	assert.Equal(t, "hubcap@example.com", owner["person"]["email"])
	assert.Equal(t, []any{"login"}, owner["person"]["roles"])
}

func TestRouterRejectsBadToken(t *testing.T) {
	f := newFixture(t)
	res := f.get("/people/7", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, res.Code)

	other := auth.NewTokenIssuer("someone-else", time.Hour)
	token, _, err := other.Issue(7)
	require.NoError(t, err)
	res = f.get("/people/7", token)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestRouterExposesMetrics(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, http.StatusOK, f.get("/people/7", "").Code)
	require.Equal(t, http.StatusNotFound, f.get("/people/8", "").Code)

	res := f.get("/metrics", "")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "clubhouse_http_requests_total")
	assert.Contains(t, res.Body.String(), "clubhouse_http_request_duration_seconds")
}
