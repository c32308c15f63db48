package roles

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rangerclubhouse/clubhouse/internal/filters"
	"github.com/rangerclubhouse/clubhouse/internal/platform/httpx"
	"github.com/rangerclubhouse/clubhouse/internal/shared"
)

// Handler manages role grant endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers role routes below /people.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/{personID}/roles", h.listRoles)
	r.Put("/{personID}/roles", h.replaceRoles)
}

type replaceRolesRequest struct {
	Roles []string `json:"roles"`
}

func (h *Handler) listRoles(w http.ResponseWriter, r *http.Request) {
	personID, err := strconv.ParseInt(chi.URLParam(r, "personID"), 10, 64)
	if err != nil {
		httpx.Errors(w, http.StatusBadRequest, "invalid person id")
		return
	}
	if _, err := shared.RequireRequester(r.Context()); err != nil {
		httpx.RespondError(w, err)
		return
	}
	set, err := h.service.Roles(r.Context(), personID)
	if err != nil {
		h.logger.Error("list roles", slog.Int64("person_id", personID), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"roles": toViews(set)})
}

func (h *Handler) replaceRoles(w http.ResponseWriter, r *http.Request) {
	personID, err := strconv.ParseInt(chi.URLParam(r, "personID"), 10, 64)
	if err != nil {
		httpx.Errors(w, http.StatusBadRequest, "invalid person id")
		return
	}
	var req replaceRolesRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	roles := make([]filters.Role, 0, len(req.Roles))
	for _, raw := range req.Roles {
		role, err := filters.ParseRole(raw)
		if err != nil {
			httpx.Errors(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		roles = append(roles, role)
	}
	set, err := h.service.Replace(r.Context(), shared.RequesterFromContext(r.Context()), personID, roles)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"roles": toViews(set)})
}
