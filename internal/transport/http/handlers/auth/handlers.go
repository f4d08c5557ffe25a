package authhandler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"idms/internal/domain/auth"
	"idms/internal/transport/http/api"
	"idms/internal/transport/http/middleware"
	"idms/internal/transport/http/shared"
)

type Handler struct {
	Service *auth.Service
}

func NewHandler(service *auth.Service) *Handler {
	return &Handler{Service: service}
}

// employeeLoginRequest accepts the employee id in its own field as well
// as in email.
type employeeLoginRequest struct {
	Email      string `json:"email" validate:"max=255"`
	EmployeeID string `json:"employeeId" validate:"max=64"`
	Password   string `json:"password" validate:"required,max=128"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload auth.Credentials
	if !shared.DecodeJSON(w, r, reqID, &payload) {
		return
	}
	if !shared.Validate(w, reqID, payload) {
		return
	}
	result, err := h.Service.Login(r.Context(), payload)
	if err != nil {
		failLogin(w, reqID, err)
		return
	}
	api.Success(w, result)
}

func (h *Handler) HandleEmployeeLogin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload employeeLoginRequest
	if !shared.DecodeJSON(w, r, reqID, &payload) {
		return
	}
	identifier := strings.TrimSpace(payload.EmployeeID)
	if identifier == "" {
		identifier = strings.TrimSpace(payload.Email)
	}
	v := shared.NewValidator()
	v.Struct(payload)
	v.Required("email", identifier, "email or employeeId is required")
	if v.Reject(w, reqID) {
		return
	}
	result, err := h.Service.EmployeeLogin(r.Context(), auth.Credentials{Email: identifier, Password: payload.Password})
	if err != nil {
		failLogin(w, reqID, err)
		return
	}
	api.Success(w, result)
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload auth.Registration
	if !shared.DecodeJSON(w, r, reqID, &payload) {
		return
	}
	if !shared.Validate(w, reqID, payload) {
		return
	}
	user, err := h.Service.Register(r.Context(), payload)
	switch {
	case errors.Is(err, auth.ErrDuplicate):
		api.Fail(w, http.StatusConflict, "duplicate", "a user with that email or employee id already exists", reqID)
		return
	case errors.Is(err, auth.ErrInvalidInput):
		shared.FailInvalid(w, reqID, err)
		return
	case err != nil:
		slog.Error("register failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "register_failed", "failed to register user", reqID)
		return
	}
	if caller, ok := middleware.GetUser(r.Context()); ok {
		slog.Info("user registered", "userId", user.ID, "roles", user.Roles, "by", caller.Email)
	}
	api.Created(w, user.Profile())
}

func failLogin(w http.ResponseWriter, reqID string, err error) {
	if errors.Is(err, auth.ErrInvalidCredentials) {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", reqID)
		return
	}
	slog.Error("login failed", "err", err)
	api.Fail(w, http.StatusInternalServerError, "login_failed", "login failed", reqID)
}
