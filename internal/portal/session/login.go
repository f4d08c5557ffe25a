package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"idms/internal/portal/resource"
)

const (
	MsgInvalidCredentials = "Invalid email or password. Please check your credentials."
	MsgServiceMissing     = "Login service not found. Please contact support."
	MsgServerError        = "Server error. Please try again later."
	MsgNetworkError       = "Network error. Please check your internet connection and try again."
)

// LoginError carries the message the login form shows.
type LoginError struct {
	Message string
	Err     error
}

func (e *LoginError) Error() string { return e.Message }
func (e *LoginError) Unwrap() error { return e.Err }

func loginMessage(err error) string {
	var netErr *resource.NetworkError
	if errors.As(err, &netErr) {
		return MsgNetworkError
	}
	switch status := resource.StatusCode(err); {
	case status == http.StatusUnauthorized:
		return MsgInvalidCredentials
	case status == http.StatusNotFound:
		return MsgServiceMissing
	case status >= 500:
		return MsgServerError
	}
	return resource.Message(err)
}

type stateMapper struct{}

func (stateMapper) Decode(raw json.RawMessage) (State, error) {
	var s State
	if err := json.Unmarshal(raw, &s); err != nil {
		return State{}, err
	}
	if s.Token == "" {
		return State{}, fmt.Errorf("login response has no token")
	}
	return s, nil
}

func (stateMapper) Encode(s State) ([]byte, error) { return json.Marshal(s) }

// Authenticator signs users in and out of a Service.
type Authenticator struct {
	session *Service
	client  *resource.Client[State]
}

// NewAuthenticator talks to the login endpoints under cfg.BaseURL. Login
// requests never carry a bearer token.
func NewAuthenticator(cfg resource.Config, session *Service) *Authenticator {
	cfg.Tokens = nil
	return &Authenticator{session: session, client: resource.New[State](cfg, "/api", stateMapper{})}
}

// Login signs in with email and password.
func (a *Authenticator) Login(ctx context.Context, email, password string) (State, error) {
	body := map[string]string{"email": strings.TrimSpace(email), "password": password}
	return a.login(ctx, "auth/login", body, false)
}

// EmployeeLogin signs in with an employee id or email.
func (a *Authenticator) EmployeeLogin(ctx context.Context, identifier, password string) (State, error) {
	identifier = strings.TrimSpace(identifier)
	body := map[string]string{"password": password}
	if strings.Contains(identifier, "@") {
		body["email"] = identifier
	} else {
		body["employeeId"] = identifier
	}
	return a.login(ctx, "employees/login", body, true)
}

func (a *Authenticator) login(ctx context.Context, subpath string, body map[string]string, employee bool) (State, error) {
	state, err := a.client.Call(ctx, http.MethodPost, subpath, body)
	if err != nil {
		slog.Warn("login failed", "endpoint", subpath, "status", resource.StatusCode(err), "err", err)
		return State{}, &LoginError{Message: loginMessage(err), Err: err}
	}
	state.EmployeeLogin = employee
	if err := a.session.Set(state); err != nil {
		return State{}, err
	}
	return a.session.Current(), nil
}

// Logout clears the session. The backend keeps no session state.
func (a *Authenticator) Logout() error {
	return a.session.Clear()
}
