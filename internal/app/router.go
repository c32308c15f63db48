package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rangerclubhouse/clubhouse/internal/auth"
	"github.com/rangerclubhouse/clubhouse/internal/observability"
	"github.com/rangerclubhouse/clubhouse/internal/person"
	"github.com/rangerclubhouse/clubhouse/internal/personevent"
	"github.com/rangerclubhouse/clubhouse/internal/roles"
	"github.com/rangerclubhouse/clubhouse/internal/timesheet"
	"github.com/rangerclubhouse/clubhouse/internal/vehicle"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger             *slog.Logger
	Config             *Config
	AuthService        *auth.Service
	AuthHandler        *auth.Handler
	PersonHandler      *person.Handler
	RolesHandler       *roles.Handler
	PersonEventHandler *personevent.Handler
	VehicleHandler     *vehicle.Handler
	TimesheetHandler   *timesheet.Handler
	Metrics            *observability.Metrics
}

// NewRouter constructs the chi.Router with Clubhouse defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	mw := MiddlewareConfig{Logger: params.Logger, Config: params.Config, Metrics: params.Metrics}
	if params.AuthService != nil {
		mw.Auth = auth.Middleware(params.AuthService, params.Logger)
	}
	for _, m := range MiddlewareStack(mw) {
		r.Use(m)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	if params.AuthHandler != nil {
		r.Route("/auth", params.AuthHandler.MountRoutes)
	}
	r.Route("/people", func(r chi.Router) {
		if params.PersonHandler != nil {
			params.PersonHandler.MountRoutes(r)
		}
		if params.RolesHandler != nil {
			params.RolesHandler.MountRoutes(r)
		}
	})
	if params.PersonEventHandler != nil {
		r.Route("/person-event", params.PersonEventHandler.MountRoutes)
	}
	if params.VehicleHandler != nil {
		r.Route("/vehicles", params.VehicleHandler.MountRoutes)
	}
	if params.TimesheetHandler != nil {
		r.Route("/timesheets", params.TimesheetHandler.MountRoutes)
	}
	return r
}
