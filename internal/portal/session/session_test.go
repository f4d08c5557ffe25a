package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHomeRoute(t *testing.T) {
	cases := []struct {
		name  string
		state State
		want  string
	}{
		{"admin", State{Roles: []string{"ADMIN"}}, "/admin"},
		{"store", State{Roles: []string{"STORE"}}, "/store"},
		{"finance", State{Roles: []string{"FINANCE"}}, "/finance-manager/dashboard"},
		{"hr", State{Roles: []string{"HR"}}, "/hr"},
		{"data manager", State{Roles: []string{"DATAMANAGER"}}, "/data-manager"},
		{"employee role", State{Roles: []string{"EMPLOYEE"}}, "/dashboard"},
		{"no roles", State{}, "/dashboard"},
		{"admin wins over hr", State{Roles: []string{"HR", "ADMIN"}}, "/admin"},
		{"employee login", State{Roles: []string{"EMPLOYEE"}, EmployeeID: "E7", EmployeeLogin: true}, "/employee"},
		{"employee login without id", State{Roles: []string{"HR"}, EmployeeLogin: true}, "/hr"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HomeRoute(tc.state))
		})
	}
}

func TestServiceSurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	svc, err := Open(path)
	require.NoError(t, err)
	assert.False(t, svc.Current().LoggedIn())
	assert.Empty(t, svc.Token())

	require.NoError(t, svc.Set(State{Token: "tok", Email: "hr@test.local", Roles: []string{"role_hr", "HR"}, EmployeeID: "E1"}))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	reloaded, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "tok", reloaded.Token())
	assert.Equal(t, []string{"HR"}, reloaded.Current().Roles)
	assert.Equal(t, "E1", reloaded.Current().EmployeeID)

	require.NoError(t, reloaded.Clear())
	assert.Empty(t, reloaded.Token())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	require.NoError(t, reloaded.Clear())
}

func TestOpenRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	_, err := Open(path)
	assert.Error(t, err)
}

func TestCurrentReturnsCopy(t *testing.T) {
	svc := InMemory()
	require.NoError(t, svc.Set(State{Token: "t", Roles: []string{"ADMIN"}}))
	snapshot := svc.Current()
	snapshot.Roles[0] = "HR"
	assert.Equal(t, []string{"ADMIN"}, svc.Current().Roles)
}
