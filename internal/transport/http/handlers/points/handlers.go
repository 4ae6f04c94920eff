package pointshandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"crewhub/internal/domain/auth"
	"crewhub/internal/domain/employee"
	"crewhub/internal/domain/points"
	"crewhub/internal/platform/jobs"
	"crewhub/internal/transport/http/api"
	"crewhub/internal/transport/http/middleware"
)

type Handler struct {
	Points *points.Service
	Jobs   *jobs.Service
}

func NewHandler(pts *points.Service, jobService *jobs.Service) *Handler {
	return &Handler{Points: pts, Jobs: jobService}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/points", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/leaderboard", h.handleLeaderboard)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Post("/add", h.handleAdd)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Post("/reset-monthly", h.handleResetMonthly)
	})
}

type addRequest struct {
	EmployeeID string `json:"employeeId"`
	Points     int    `json:"points"`
	Reason     string `json:"reason"`
	Category   string `json:"category"`
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	var payload addRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.EmployeeID == "" {
		api.Fail(w, http.StatusBadRequest, "validation_error", "employeeId is required", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.Reason == "" {
		api.Fail(w, http.StatusBadRequest, "validation_error", "reason is required", middleware.GetRequestID(r.Context()))
		return
	}

	emp, err := h.Points.Award(r.Context(), payload.EmployeeID, payload.Points, payload.Reason, payload.Category)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "award_failed", "failed to award points", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	board, err := h.Points.Leaderboard(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leaderboard_failed", "failed to load leaderboard", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, board, middleware.GetRequestID(r.Context()))
}

// handleResetMonthly triggers the rollover synchronously so the caller
// sees the per-employee outcome, recorded as a job run like scheduled
// executions.
func (h *Handler) handleResetMonthly(w http.ResponseWriter, r *http.Request) {
	result, err := h.Jobs.RunRolloverNow(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "rollover_failed", "monthly rollover failed", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}
