package projectcosthandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"crewhub/internal/domain/auth"
	"crewhub/internal/domain/projectcost"
	"crewhub/internal/transport/http/api"
	"crewhub/internal/transport/http/middleware"
)

type Handler struct {
	Store *projectcost.Store
}

func NewHandler(store *projectcost.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/project-costs", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleTotals)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Post("/", h.handleAdd)
		r.Get("/{projectKey}", h.handleProjectEntries)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Put("/{projectKey}", h.handleAppendForProject)
	})
}

type addRequest struct {
	ProjectKey  string  `json:"projectKey"`
	Cost        float64 `json:"cost"`
	Description string  `json:"description"`
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	var payload addRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.ProjectKey == "" {
		api.Fail(w, http.StatusBadRequest, "validation_error", "projectKey is required", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.Cost < 0 {
		api.Fail(w, http.StatusBadRequest, "validation_error", "cost must be a non-negative number", middleware.GetRequestID(r.Context()))
		return
	}

	entry, err := h.Store.Add(r.Context(), payload.ProjectKey, payload.Cost, payload.Description)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "create_failed", "failed to record project cost", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, entry, middleware.GetRequestID(r.Context()))
}

// handleAppendForProject is the "update" of an append-only ledger: it
// records a new entry for the project rather than mutating history.
func (h *Handler) handleAppendForProject(w http.ResponseWriter, r *http.Request) {
	var payload addRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.Cost < 0 {
		api.Fail(w, http.StatusBadRequest, "validation_error", "cost must be a non-negative number", middleware.GetRequestID(r.Context()))
		return
	}
	entry, err := h.Store.Add(r.Context(), chi.URLParam(r, "projectKey"), payload.Cost, payload.Description)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "create_failed", "failed to record project cost", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, entry, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleTotals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.Store.Totals(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to load project costs", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, totals, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleProjectEntries(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "projectKey")
	entries, err := h.Store.ListByProject(r.Context(), key)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to load project costs", middleware.GetRequestID(r.Context()))
		return
	}
	var total float64
	for _, entry := range entries {
		total += entry.Cost
	}
	api.Success(w, map[string]any{
		"projectKey": key,
		"totalCost":  total,
		"entries":    entries,
	}, middleware.GetRequestID(r.Context()))
}
