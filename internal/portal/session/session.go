// Package session holds the signed-in user for the portal and persists it
// between runs.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"idms/internal/domain/auth"
)

// State is what a login returns and what later requests need.
type State struct {
	Token         string   `json:"token"`
	Email         string   `json:"email"`
	Roles         []string `json:"roles"`
	EmployeeID    string   `json:"employeeId,omitempty"`
	EmployeeName  string   `json:"employeeName,omitempty"`
	Department    string   `json:"department,omitempty"`
	Position      string   `json:"position,omitempty"`
	EmployeeLogin bool     `json:"employeeLogin,omitempty"`
}

func (s State) LoggedIn() bool { return s.Token != "" }

func (s State) HasRole(role string) bool {
	return slices.Contains(s.Roles, role)
}

// HomeRoute is the landing page for s. Roles are checked in a fixed
// order, so an ADMIN who is also HR lands on /admin.
func HomeRoute(s State) string {
	if s.EmployeeLogin && s.EmployeeID != "" {
		return "/employee"
	}
	switch {
	case s.HasRole(auth.RoleAdmin):
		return "/admin"
	case s.HasRole(auth.RoleStore):
		return "/store"
	case s.HasRole(auth.RoleFinance):
		return "/finance-manager/dashboard"
	case s.HasRole(auth.RoleHR):
		return "/hr"
	case s.HasRole(auth.RoleDataManager):
		return "/data-manager"
	}
	return "/dashboard"
}

// Service is the injected session. It satisfies resource.TokenSource.
type Service struct {
	mu    sync.RWMutex
	path  string
	state State
}

// Open loads the session file at path. A missing file is a signed-out
// session.
func Open(path string) (*Service, error) {
	s := &Service{path: path}
	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("read session: %w", err)
	}
	if err := json.Unmarshal(raw, &s.state); err != nil {
		return nil, fmt.Errorf("parse session %s: %w", path, err)
	}
	s.state.Roles = auth.NormalizeRoles(s.state.Roles)
	return s, nil
}

// InMemory returns a session that is never written to disk.
func InMemory() *Service {
	return &Service{}
}

func (s *Service) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

func (s *Service) Current() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.state
	out.Roles = slices.Clone(s.state.Roles)
	return out
}

// Set replaces the session and writes it to the file with owner-only
// permissions.
func (s *Service) Set(state State) error {
	state.Roles = auth.NormalizeRoles(state.Roles)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.path != "" {
		if err := write(s.path, state); err != nil {
			return err
		}
	}
	s.state = state
	return nil
}

// Clear signs out and removes the file.
func (s *Service) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{}
	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

func write(path string, state State) error {
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}
