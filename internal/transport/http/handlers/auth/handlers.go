package authhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"crewhub/internal/domain/auth"
	"crewhub/internal/domain/employee"
	"crewhub/internal/platform/requestctx"
	"crewhub/internal/transport/http/api"
	"crewhub/internal/transport/http/middleware"
)

const tokenTTL = 24 * time.Hour

type Handler struct {
	Employees       *employee.Service
	Secret          string
	DefaultPassword string
}

func NewHandler(employees *employee.Service, secret, defaultPassword string) *Handler {
	return &Handler{Employees: employees, Secret: secret, DefaultPassword: defaultPassword}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token                  string            `json:"token"`
	Employee               employee.Employee `json:"employee"`
	RequiresPasswordChange bool              `json:"requiresPasswordChange"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
		return
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	emp, err := h.Employees.GetByEmail(r.Context(), email)
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", requestctx.GetRequestID(r.Context()))
		return
	}
	if err := auth.CheckPassword(emp.PasswordHash, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", requestctx.GetRequestID(r.Context()))
		return
	}

	token, err := auth.GenerateToken(h.Secret, auth.Claims{UserID: emp.ID, Email: emp.Email, Role: emp.Role}, tokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", requestctx.GetRequestID(r.Context()))
		return
	}

	api.Success(w, loginResponse{
		Token:                  token,
		Employee:               emp,
		RequiresPasswordChange: h.DefaultPassword != "" && payload.Password == h.DefaultPassword,
	}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}

	var payload changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
		return
	}
	if len(payload.NewPassword) < 6 {
		api.Fail(w, http.StatusBadRequest, "weak_password", "new password must be at least 6 characters", requestctx.GetRequestID(r.Context()))
		return
	}
	if h.DefaultPassword != "" && payload.NewPassword == h.DefaultPassword {
		api.Fail(w, http.StatusBadRequest, "weak_password", "new password must differ from the default password", requestctx.GetRequestID(r.Context()))
		return
	}

	emp, err := h.Employees.Get(r.Context(), user.UserID)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestctx.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "lookup_failed", "failed to load employee", requestctx.GetRequestID(r.Context()))
		return
	}
	if err := auth.CheckPassword(emp.PasswordHash, payload.CurrentPassword); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "current password is incorrect", requestctx.GetRequestID(r.Context()))
		return
	}

	if err := h.Employees.ChangePassword(r.Context(), user.UserID, payload.NewPassword); err != nil {
		api.Fail(w, http.StatusInternalServerError, "update_failed", "failed to change password", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"changed": true}, requestctx.GetRequestID(r.Context()))
}

// HandleMe returns the authenticated employee's own record.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}
	emp, err := h.Employees.Get(r.Context(), user.UserID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, emp, requestctx.GetRequestID(r.Context()))
}
