package employeeshandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"crewhub/internal/domain/auth"
	"crewhub/internal/domain/employee"
	"crewhub/internal/platform/jira"
	"crewhub/internal/transport/http/api"
	"crewhub/internal/transport/http/middleware"
)

type Handler struct {
	Employees *employee.Service
	Jira      *jira.Client
}

func NewHandler(employees *employee.Service, jiraClient *jira.Client) *Handler {
	return &Handler{Employees: employees, Jira: jiraClient}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleList)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Post("/", h.handleCreate)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Post("/from-jira", h.handleCreateFromJira)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Post("/from-jira/bulk", h.handleBulkImport)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Get("/cost-summary", h.handleCostSummary)
		r.Route("/{employeeID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.With(middleware.RequireRole(auth.RoleAdmin)).Put("/", h.handleUpdate)
			r.With(middleware.RequireRole(auth.RoleAdmin)).Put("/resources", h.handleUpdateResources)
			r.With(middleware.RequireRole(auth.RoleAdmin)).Post("/sync-jira", h.handleSyncJira)
			r.With(middleware.RequireRole(auth.RoleAdmin)).Delete("/", h.handleDelete)
		})
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Employees.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, employees, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var input employee.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	emp, err := h.Employees.Create(r.Context(), input)
	if err != nil {
		writeEmployeeError(w, r, err, "failed to create employee")
		return
	}
	api.Created(w, emp, middleware.GetRequestID(r.Context()))
}

type fromJiraRequest struct {
	Query string `json:"query"`
	employee.CreateInput
}

// handleCreateFromJira looks the person up in Jira first so the new
// employee record carries their Jira account ID.
func (h *Handler) handleCreateFromJira(w http.ResponseWriter, r *http.Request) {
	if h.Jira == nil || !h.Jira.Enabled() {
		api.Fail(w, http.StatusServiceUnavailable, "jira_disabled", "jira integration is not configured", middleware.GetRequestID(r.Context()))
		return
	}
	var payload fromJiraRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	query := payload.Query
	if query == "" {
		query = payload.Email
	}
	users, err := h.Jira.SearchUsers(r.Context(), query)
	if err != nil {
		api.Fail(w, http.StatusBadGateway, "jira_error", "jira user search failed", middleware.GetRequestID(r.Context()))
		return
	}
	if len(users) == 0 {
		api.Fail(w, http.StatusNotFound, "jira_user_not_found", "no matching jira user", middleware.GetRequestID(r.Context()))
		return
	}

	input := payload.CreateInput
	input.AccountID = users[0].AccountID
	if input.Name == "" {
		input.Name = users[0].DisplayName
	}
	if input.Email == "" {
		input.Email = users[0].EmailAddress
	}
	emp, err := h.Employees.Create(r.Context(), input)
	if err != nil {
		writeEmployeeError(w, r, err, "failed to create employee")
		return
	}
	api.Created(w, emp, middleware.GetRequestID(r.Context()))
}

type bulkImportRequest struct {
	Users []employee.CreateInput `json:"users"`
}

// handleBulkImport creates many employees in one call, reporting which
// records failed instead of aborting the batch.
func (h *Handler) handleBulkImport(w http.ResponseWriter, r *http.Request) {
	var payload bulkImportRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if len(payload.Users) == 0 {
		api.Fail(w, http.StatusBadRequest, "validation_error", "users array is required", middleware.GetRequestID(r.Context()))
		return
	}

	created, errs := h.Employees.BulkImport(r.Context(), payload.Users)
	api.Created(w, map[string]any{
		"imported":  len(created),
		"employees": created,
		"errors":    errs,
	}, middleware.GetRequestID(r.Context()))
}

// handleSyncJira backfills the employee's Jira account id (matching by
// email when none is stored) and refreshes name/email from their Jira
// profile.
func (h *Handler) handleSyncJira(w http.ResponseWriter, r *http.Request) {
	if h.Jira == nil || !h.Jira.Enabled() {
		api.Fail(w, http.StatusServiceUnavailable, "jira_disabled", "jira integration is not configured", middleware.GetRequestID(r.Context()))
		return
	}

	id := chi.URLParam(r, "employeeID")
	emp, err := h.Employees.Get(r.Context(), id)
	if err != nil {
		writeEmployeeError(w, r, err, "failed to load employee")
		return
	}

	accountID := emp.AccountID
	if accountID == "" && emp.Email != "" {
		users, err := h.Jira.SearchUsers(r.Context(), emp.Email)
		if err != nil {
			api.Fail(w, http.StatusBadGateway, "jira_error", "jira user search failed", middleware.GetRequestID(r.Context()))
			return
		}
		for _, user := range users {
			if strings.EqualFold(user.EmailAddress, emp.Email) {
				accountID = user.AccountID
				break
			}
		}
	}
	if accountID == "" {
		api.Fail(w, http.StatusBadRequest, "jira_user_not_found", "employee has no jira account id and no jira user matches their email", middleware.GetRequestID(r.Context()))
		return
	}

	jiraUser, err := h.Jira.User(r.Context(), accountID)
	if err != nil {
		api.Fail(w, http.StatusBadGateway, "jira_error", "jira user lookup failed", middleware.GetRequestID(r.Context()))
		return
	}

	synced, err := h.Employees.ApplyJiraSync(r.Context(), id, jiraUser.DisplayName, jiraUser.EmailAddress, jiraUser.AccountID)
	if err != nil {
		writeEmployeeError(w, r, err, "failed to sync employee")
		return
	}
	api.Success(w, synced, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Employees.Get(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		writeEmployeeError(w, r, err, "failed to load employee")
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var input employee.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	emp, err := h.Employees.Update(r.Context(), chi.URLParam(r, "employeeID"), input)
	if err != nil {
		writeEmployeeError(w, r, err, "failed to update employee")
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateResources(w http.ResponseWriter, r *http.Request) {
	var patch employee.ResourcePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	emp, err := h.Employees.ApplyResourceUpdate(r.Context(), chi.URLParam(r, "employeeID"), patch)
	if err != nil {
		writeEmployeeError(w, r, err, "failed to update resources")
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Employees.Delete(r.Context(), chi.URLParam(r, "employeeID")); err != nil {
		writeEmployeeError(w, r, err, "failed to delete employee")
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCostSummary(w http.ResponseWriter, r *http.Request) {
	employees, summary, err := h.Employees.CostSummary(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "summary_failed", "failed to compute cost summary", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{
		"summary":   summary,
		"employees": employees,
	}, middleware.GetRequestID(r.Context()))
}

func writeEmployeeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	reqID := middleware.GetRequestID(r.Context())
	var validationErr *employee.ValidationError
	switch {
	case errors.Is(err, employee.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
	case errors.Is(err, employee.ErrEmailExists):
		api.Fail(w, http.StatusConflict, "email_exists", "email is already in use", reqID)
	case errors.Is(err, employee.ErrAccountIDExists):
		api.Fail(w, http.StatusConflict, "account_id_exists", "jira account is already linked", reqID)
	case errors.As(err, &validationErr):
		api.Fail(w, http.StatusBadRequest, "validation_error", validationErr.Error(), reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, "internal_error", fallback, reqID)
	}
}
