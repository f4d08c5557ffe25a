package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

type Service struct {
	Store    StoreAPI
	Secret   string
	TokenTTL time.Duration
}

func NewService(store StoreAPI, secret string, ttl time.Duration) *Service {
	return &Service{Store: store, Secret: secret, TokenTTL: ttl}
}

// Login authenticates a portal user by email.
func (s *Service) Login(ctx context.Context, c Credentials) (LoginResult, error) {
	user, err := s.Store.FindByEmail(ctx, c.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}
	return s.issue(ctx, user, c.Password)
}

// EmployeeLogin accepts an employee id or an email and only admits users
// linked to an employee record.
func (s *Service) EmployeeLogin(ctx context.Context, c Credentials) (LoginResult, error) {
	identifier := strings.TrimSpace(c.Email)
	user, err := s.Store.FindByEmail(ctx, identifier)
	if errors.Is(err, ErrNotFound) {
		user, err = s.Store.FindByEmployeeID(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}
	if user.EmployeeID == "" {
		return LoginResult{}, ErrInvalidCredentials
	}
	return s.issue(ctx, user, c.Password)
}

func (s *Service) issue(ctx context.Context, user User, password string) (LoginResult, error) {
	if user.Status != UserStatusActive {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err := CheckPassword(user.PasswordHash, password); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}
	token, err := GenerateToken(s.Secret, Claims{
		UserID:     user.ID,
		Email:      user.Email,
		Roles:      user.Roles,
		EmployeeID: user.EmployeeID,
	}, s.TokenTTL)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue token: %w", err)
	}
	if err := s.Store.UpdateLastLogin(ctx, user.ID); err != nil {
		slog.Warn("update last_login failed", "userId", user.ID, "err", err)
	}
	return LoginResult{
		Token:        token,
		Email:        user.Email,
		Roles:        user.Roles,
		EmployeeID:   user.EmployeeID,
		EmployeeName: user.FullName,
		Department:   user.Department,
		Position:     user.Position,
		Status:       user.Status,
		Message:      "Login successful",
	}, nil
}

// Register creates an active user. Users with an employee id always carry
// the EMPLOYEE role.
func (s *Service) Register(ctx context.Context, r Registration) (User, error) {
	roles := NormalizeRoles(append([]string{r.Role}, r.Roles...))
	employeeID := strings.TrimSpace(r.EmployeeID)
	if employeeID != "" && !HasRole(roles, RoleEmployee) {
		roles = append(roles, RoleEmployee)
	}
	if len(roles) == 0 {
		return User{}, fmt.Errorf("%w: at least one known role is required", ErrInvalidInput)
	}
	hash, err := HashPassword(r.Password)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}
	return s.Store.Create(ctx, User{
		Email:        strings.ToLower(strings.TrimSpace(r.Email)),
		Username:     strings.TrimSpace(r.Username),
		FullName:     strings.TrimSpace(r.FullName),
		PasswordHash: hash,
		Roles:        roles,
		EmployeeID:   employeeID,
		Department:   strings.TrimSpace(r.Department),
		Position:     strings.TrimSpace(r.Position),
		Status:       UserStatusActive,
	})
}

// EnsureUser registers r unless a user with that email already exists.
func (s *Service) EnsureUser(ctx context.Context, r Registration) (User, bool, error) {
	existing, err := s.Store.FindByEmail(ctx, r.Email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return User{}, false, err
	}
	created, err := s.Register(ctx, r)
	if err != nil {
		return User{}, false, err
	}
	return created, true, nil
}

func (s *Service) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	_, created, err := s.EnsureUser(ctx, Registration{Email: email, Password: password, Role: RoleAdmin})
	return created, err
}
