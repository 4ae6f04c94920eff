package reportshandler

import (
	"encoding/csv"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"crewhub/internal/domain/auth"
	"crewhub/internal/domain/reports"
	"crewhub/internal/transport/http/api"
	"crewhub/internal/transport/http/middleware"
)

type Handler struct {
	Reports *reports.Service
}

func NewHandler(service *reports.Service) *Handler {
	return &Handler{Reports: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Get("/cost-summary.pdf", h.handleCostSummaryPDF)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Get("/leaderboard.csv", h.handleLeaderboardCSV)
	})
}

func (h *Handler) handleCostSummaryPDF(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=cost-summary.pdf")
	if err := h.Reports.CostSummaryPDF(r.Context(), w); err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to generate report", middleware.GetRequestID(r.Context()))
		return
	}
}

func (h *Handler) handleLeaderboardCSV(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Reports.LeaderboardRows(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to generate report", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=leaderboard.csv")
	writer := csv.NewWriter(w)
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			log.Printf("leaderboard export row write failed: %v", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Printf("leaderboard export flush failed: %v", err)
	}
}
