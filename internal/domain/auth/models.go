package auth

import "time"

const (
	UserStatusActive   = "ACTIVE"
	UserStatusInactive = "INACTIVE"
)

type User struct {
	ID           int64
	Email        string
	Username     string
	FullName     string
	PasswordHash string
	Roles        []string
	EmployeeID   string
	Department   string
	Position     string
	Status       string
	LastLogin    *time.Time
	CreatedAt    time.Time
}

// LoginResult is the login response body.
type LoginResult struct {
	Token        string   `json:"token"`
	Email        string   `json:"email"`
	Roles        []string `json:"roles"`
	EmployeeID   string   `json:"employeeId,omitempty"`
	EmployeeName string   `json:"employeeName,omitempty"`
	Department   string   `json:"department,omitempty"`
	Position     string   `json:"position,omitempty"`
	Status       string   `json:"status,omitempty"`
	Message      string   `json:"message"`
}

type Credentials struct {
	Email    string `json:"email" validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=128"`
}

// Registration creates a portal user. Role is accepted alongside Roles
// because the admin form sends a single role.
type Registration struct {
	Username   string   `json:"username" validate:"max=128"`
	FullName   string   `json:"fullName" validate:"max=255"`
	Email      string   `json:"email" validate:"required,email,max=255"`
	Password   string   `json:"password" validate:"required,min=8,max=128"`
	Role       string   `json:"role" validate:"max=32"`
	Roles      []string `json:"roles"`
	EmployeeID string   `json:"employeeId" validate:"max=64"`
	Department string   `json:"department" validate:"max=128"`
	Position   string   `json:"position" validate:"max=128"`
}

// Profile is the public view of a user.
type Profile struct {
	ID         int64    `json:"id"`
	Email      string   `json:"email"`
	Username   string   `json:"username,omitempty"`
	FullName   string   `json:"fullName,omitempty"`
	Roles      []string `json:"roles"`
	EmployeeID string   `json:"employeeId,omitempty"`
	Status     string   `json:"status"`
}

func (u User) Profile() Profile {
	return Profile{ID: u.ID, Email: u.Email, Username: u.Username, FullName: u.FullName, Roles: u.Roles, EmployeeID: u.EmployeeID, Status: u.Status}
}
