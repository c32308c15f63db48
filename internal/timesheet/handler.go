package timesheet

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rangerclubhouse/clubhouse/internal/filters"
	"github.com/rangerclubhouse/clubhouse/internal/platform/httpx"
	"github.com/rangerclubhouse/clubhouse/internal/shared"
)

// Handler manages timesheet endpoints.
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

// MountRoutes registers routes below /timesheets.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/{timesheetID}", h.show)
	r.Patch("/{timesheetID}", h.update)
}

func timesheetID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "timesheetID"), 10, 64)
	return id, err == nil && id > 0
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	id, ok := timesheetID(r)
	if !ok {
		httpx.Errors(w, http.StatusBadRequest, "invalid timesheet id")
		return
	}
	doc, err := h.service.Get(r.Context(), shared.RequesterFromContext(r.Context()), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Resource(w, http.StatusOK, filters.EntityTimesheet, doc)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := timesheetID(r)
	if !ok {
		httpx.Errors(w, http.StatusBadRequest, "invalid timesheet id")
		return
	}
	raw, err := httpx.ReadBody(w, r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	doc, err := h.service.Update(r.Context(), shared.RequesterFromContext(r.Context()), id, raw)
	if err != nil {
		h.logger.Debug("update timesheet", slog.Int64("timesheet_id", id), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.Resource(w, http.StatusOK, filters.EntityTimesheet, doc)
}
