package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", Claims{UserID: 7, Email: "hr@idms.local", Roles: []string{RoleHR}, EmployeeID: "E7"}, time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 7 || claims.EmployeeID != "E7" || len(claims.Roles) != 1 || claims.Roles[0] != RoleHR {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if _, err := ParseToken("other", token); err == nil {
		t.Fatal("expected signature failure")
	}
	expired, _ := GenerateToken("secret", Claims{UserID: 1}, -time.Minute)
	if _, err := ParseToken("secret", expired); err == nil {
		t.Fatal("expected expired token to fail")
	}
}

func TestNormalizeRoles(t *testing.T) {
	got := NormalizeRoles([]string{"role_admin", " hr ", "ADMIN", "janitor", ""})
	if len(got) != 2 || got[0] != RoleAdmin || got[1] != RoleHR {
		t.Fatalf("unexpected roles %v", got)
	}
	if !OnlyEmployee([]string{RoleEmployee}) || OnlyEmployee([]string{RoleEmployee, RoleHR}) || OnlyEmployee(nil) {
		t.Fatal("OnlyEmployee misclassified")
	}
}

func TestDefaultPolicies(t *testing.T) {
	policy, err := NewPolicy(DefaultPolicies())
	if err != nil {
		t.Fatalf("policy: %v", err)
	}
	tests := []struct {
		roles  []string
		path   string
		method string
		want   bool
	}{
		{[]string{RoleAdmin}, "/api/auth/register", "POST", true},
		{[]string{RoleFinance}, "/api/rent", "POST", true},
		{[]string{RoleFinance}, "/api/commissions/4", "DELETE", true},
		{[]string{RoleFinance}, "/api/leave-requests/hr/all", "GET", false},
		{[]string{RoleHR}, "/api/leave-requests/3/status", "PUT", true},
		{[]string{RoleHR}, "/api/rent", "GET", false},
		{[]string{RoleStore}, "/api/assets/2", "PUT", true},
		{[]string{RoleDataManager}, "/api/salaries", "GET", true},
		{[]string{RoleDataManager}, "/api/salaries", "POST", false},
		{[]string{RoleEmployee}, "/api/attendance/mark", "POST", true},
		{[]string{RoleEmployee}, "/api/leave-requests/employee", "POST", true},
		{[]string{RoleEmployee}, "/api/leave-requests/hr/all", "GET", false},
		{[]string{RoleEmployee}, "/api/holidays", "POST", false},
		{[]string{RoleHR}, "/api/performance-reviews", "POST", true},
		{[]string{RoleHR}, "/api/hr/upload/resume/E1", "POST", true},
		{[]string{RoleEmployee}, "/api/performance-reviews/employee/E1", "GET", true},
		{[]string{RoleEmployee}, "/api/performance-reviews", "POST", false},
		{[]string{RoleEmployee}, "/api/hr/download/E1/RESUME", "GET", true},
		{[]string{RoleEmployee}, "/api/hr/upload/resume/E1", "POST", true},
		{[]string{RoleEmployee}, "/api/hr/documents", "GET", false},
		{[]string{RoleEmployee}, "/api/hr/documents/3", "DELETE", false},
		{[]string{RoleEmployee, RoleFinance}, "/api/water-bills", "GET", true},
		{nil, "/api/rent", "GET", false},
	}
	for _, tc := range tests {
		got, err := policy.Allowed(tc.roles, tc.path, tc.method)
		if err != nil {
			t.Fatalf("enforce: %v", err)
		}
		if got != tc.want {
			t.Fatalf("Allowed(%v, %s %s) = %v, want %v", tc.roles, tc.method, tc.path, got, tc.want)
		}
	}
}

func TestServiceLoginFlows(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore(), "secret", time.Hour)

	if _, err := svc.Register(ctx, Registration{Email: "Fin@IDMS.local", Password: "Passw0rd!", Role: "finance"}); err != nil {
		t.Fatalf("register finance: %v", err)
	}
	employee, err := svc.Register(ctx, Registration{Email: "emp@idms.local", Password: "Passw0rd!", EmployeeID: "EMP001", FullName: "Asha Rao"})
	if err != nil {
		t.Fatalf("register employee: %v", err)
	}
	if len(employee.Roles) != 1 || employee.Roles[0] != RoleEmployee {
		t.Fatalf("employee users carry the EMPLOYEE role, got %v", employee.Roles)
	}
	if _, err := svc.Register(ctx, Registration{Email: "fin@idms.local", Password: "Passw0rd!", Role: RoleHR}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if _, err := svc.Register(ctx, Registration{Email: "nobody@idms.local", Password: "Passw0rd!"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without roles, got %v", err)
	}

	res, err := svc.Login(ctx, Credentials{Email: "fin@idms.local", Password: "Passw0rd!"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Token == "" || len(res.Roles) != 1 || res.Roles[0] != RoleFinance {
		t.Fatalf("unexpected login result %+v", res)
	}
	if _, err := svc.Login(ctx, Credentials{Email: "fin@idms.local", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, Credentials{Email: "ghost@idms.local", Password: "x"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}

	res, err = svc.EmployeeLogin(ctx, Credentials{Email: "EMP001", Password: "Passw0rd!"})
	if err != nil {
		t.Fatalf("employee login by id: %v", err)
	}
	if res.EmployeeID != "EMP001" || res.EmployeeName != "Asha Rao" {
		t.Fatalf("unexpected employee login %+v", res)
	}
	if _, err := svc.EmployeeLogin(ctx, Credentials{Email: "fin@idms.local", Password: "Passw0rd!"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("non-employee users cannot use employee login, got %v", err)
	}

	_, created, err := svc.EnsureUser(ctx, Registration{Email: "fin@idms.local", Password: "other", Role: RoleAdmin})
	if err != nil || created {
		t.Fatalf("EnsureUser must be idempotent: created=%v err=%v", created, err)
	}
}
