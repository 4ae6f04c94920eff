package jirahandler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"crewhub/internal/domain/auth"
	"crewhub/internal/platform/jira"
	"crewhub/internal/transport/http/api"
	"crewhub/internal/transport/http/middleware"
)

// Handler proxies read-only Jira endpoints. Upstream status codes and
// bodies pass through so clients see Jira's own error messages.
type Handler struct {
	Client *jira.Client
}

func NewHandler(client *jira.Client) *Handler {
	return &Handler{Client: client}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/jira", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Use(h.requireEnabled)
		r.Get("/projects", h.handleProjects)
		r.Get("/projects/detailed", h.handleProjectsDetailed)
		r.Get("/projects/{projectKey}", h.handleProject)
		r.Get("/projects/{projectKey}/issues", h.handleProjectIssues)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Get("/users/search", h.handleSearchUsers)
	})
}

func (h *Handler) requireEnabled(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Client == nil || !h.Client.Enabled() {
			api.Fail(w, http.StatusServiceUnavailable, "jira_disabled", "jira integration is not configured", middleware.GetRequestID(r.Context()))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) handleProjects(w http.ResponseWriter, r *http.Request) {
	h.relay(w, r)(h.Client.Projects(r.Context()))
}

func (h *Handler) handleProjectsDetailed(w http.ResponseWriter, r *http.Request) {
	h.relay(w, r)(h.Client.ProjectsDetailed(r.Context()))
}

func (h *Handler) handleProject(w http.ResponseWriter, r *http.Request) {
	h.relay(w, r)(h.Client.Project(r.Context(), chi.URLParam(r, "projectKey")))
}

func (h *Handler) handleProjectIssues(w http.ResponseWriter, r *http.Request) {
	maxResults, _ := strconv.Atoi(r.URL.Query().Get("maxResults"))
	startAt, _ := strconv.Atoi(r.URL.Query().Get("startAt"))
	h.relay(w, r)(h.Client.ProjectIssues(r.Context(), chi.URLParam(r, "projectKey"), maxResults, startAt))
}

func (h *Handler) handleSearchUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		api.Fail(w, http.StatusBadRequest, "validation_error", "query is required", middleware.GetRequestID(r.Context()))
		return
	}
	h.relay(w, r)(h.Client.SearchUsersRaw(r.Context(), query))
}

func (h *Handler) relay(w http.ResponseWriter, r *http.Request) func(jira.Response, error) {
	return func(resp jira.Response, err error) {
		if err != nil {
			api.Fail(w, http.StatusBadGateway, "jira_error", "jira request failed", middleware.GetRequestID(r.Context()))
			return
		}
		api.Relay(w, resp.Status, resp.Body)
	}
}
