package person

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rangerclubhouse/clubhouse/internal/filters"
	"github.com/rangerclubhouse/clubhouse/internal/platform/httpx"
	"github.com/rangerclubhouse/clubhouse/internal/shared"
)

// Handler manages person endpoints.
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

// MountRoutes registers person routes below /people.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/{personID}", h.show)
	r.Patch("/{personID}", h.update)
}

func personID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "personID"), 10, 64)
	return id, err == nil && id > 0
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	id, ok := personID(r)
	if !ok {
		httpx.Errors(w, http.StatusBadRequest, "invalid person id")
		return
	}
	doc, err := h.service.Get(r.Context(), shared.RequesterFromContext(r.Context()), id)
	if err != nil {
		h.fail(w, "show person", id, err)
		return
	}
	httpx.Resource(w, http.StatusOK, filters.EntityPerson, doc)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := personID(r)
	if !ok {
		httpx.Errors(w, http.StatusBadRequest, "invalid person id")
		return
	}
	raw, err := httpx.ReadBody(w, r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	doc, err := h.service.Update(r.Context(), shared.RequesterFromContext(r.Context()), id, raw)
	if err != nil {
		h.fail(w, "update person", id, err)
		return
	}
	httpx.Resource(w, http.StatusOK, filters.EntityPerson, doc)
}

func (h *Handler) fail(w http.ResponseWriter, op string, id int64, err error) {
	h.logger.Debug(op, slog.Int64("person_id", id), slog.Any("error", err))
	httpx.RespondError(w, err)
}
