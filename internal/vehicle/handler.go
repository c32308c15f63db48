package vehicle

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rangerclubhouse/clubhouse/internal/filters"
	"github.com/rangerclubhouse/clubhouse/internal/platform/httpx"
	"github.com/rangerclubhouse/clubhouse/internal/shared"
)

// Handler manages vehicle endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers routes below /vehicles.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{vehicleID}", h.show)
	r.Patch("/{vehicleID}", h.update)
}

func vehicleID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "vehicleID"), 10, 64)
	return id, err == nil && id > 0
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var filter Filter
	if raw := r.URL.Query().Get("person_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			httpx.Errors(w, http.StatusBadRequest, "invalid person_id")
			return
		}
		filter.PersonID = id
	}
	if raw := r.URL.Query().Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			httpx.Errors(w, http.StatusBadRequest, "invalid year")
			return
		}
		filter.Year = year
	}
	docs, err := h.service.List(r.Context(), shared.RequesterFromContext(r.Context()), filter)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Resource(w, http.StatusOK, filters.EntityVehicle, docs)
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	id, ok := vehicleID(r)
	if !ok {
		httpx.Errors(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}
	doc, err := h.service.Get(r.Context(), shared.RequesterFromContext(r.Context()), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Resource(w, http.StatusOK, filters.EntityVehicle, doc)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	raw, err := httpx.ReadBody(w, r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	doc, err := h.service.Create(r.Context(), shared.RequesterFromContext(r.Context()), raw)
	if err != nil {
		h.logger.Debug("create vehicle", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.Resource(w, http.StatusCreated, filters.EntityVehicle, doc)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := vehicleID(r)
	if !ok {
		httpx.Errors(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}
	raw, err := httpx.ReadBody(w, r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	doc, err := h.service.Update(r.Context(), shared.RequesterFromContext(r.Context()), id, raw)
	if err != nil {
		h.logger.Debug("update vehicle", slog.Int64("vehicle_id", id), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.Resource(w, http.StatusOK, filters.EntityVehicle, doc)
}
