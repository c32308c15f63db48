package personevent

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rangerclubhouse/clubhouse/internal/filters"
	"github.com/rangerclubhouse/clubhouse/internal/platform/httpx"
	"github.com/rangerclubhouse/clubhouse/internal/shared"
)

// Handler manages person event endpoints.
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

// MountRoutes registers routes below /person-event.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/{personID}/{year}", h.show)
	r.Patch("/{personID}/{year}", h.update)
}

func keys(r *http.Request) (int64, int, bool) {
	personID, err := strconv.ParseInt(chi.URLParam(r, "personID"), 10, 64)
	if err != nil || personID <= 0 {
		return 0, 0, false
	}
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		return 0, 0, false
	}
	return personID, year, true
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	personID, year, ok := keys(r)
	if !ok {
		httpx.Errors(w, http.StatusBadRequest, "invalid person id or year")
		return
	}
	doc, err := h.service.Get(r.Context(), shared.RequesterFromContext(r.Context()), personID, year)
	if err != nil {
		h.logger.Error("show person event", slog.Int64("person_id", personID), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.Resource(w, http.StatusOK, filters.EntityPersonEvent, doc)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	personID, year, ok := keys(r)
	if !ok {
		httpx.Errors(w, http.StatusBadRequest, "invalid person id or year")
		return
	}
	raw, err := httpx.ReadBody(w, r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	doc, err := h.service.Update(r.Context(), shared.RequesterFromContext(r.Context()), personID, year, raw)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Resource(w, http.StatusOK, filters.EntityPersonEvent, doc)
}
