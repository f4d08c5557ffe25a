package auth

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const policyModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && keyMatch(r.obj, p.obj) && regexMatch(r.act, p.act)
`

const (
	anyMethod = "^(GET|POST|PUT|DELETE)$"
	readOnly  = "^GET$"
)

var financePaths = []string{
	"/api/rent*", "/api/electric-bills*", "/api/internet-bills*", "/api/sim-bills*",
	"/api/water-bills*", "/api/salaries*", "/api/travel*", "/api/expo-advertisements*",
	"/api/incentives*", "/api/commissions*",
}

// DefaultPolicies maps each role to the API path prefixes and methods it may use.
func DefaultPolicies() [][]string {
	rules := [][]string{
		{RoleAdmin, "/api/*", anyMethod},
		{RoleDataManager, "/api/*", readOnly},

		{RoleHR, "/api/leave-requests*", anyMethod},
		{RoleHR, "/api/holidays*", anyMethod},
		{RoleHR, "/api/memos*", anyMethod},
		{RoleHR, "/api/attendance*", readOnly},
		{RoleHR, "/api/assets*", readOnly},
		{RoleHR, "/api/performance-reviews*", anyMethod},
		{RoleHR, "/api/hr/*", anyMethod},

		{RoleStore, "/api/assets*", anyMethod},

		{RoleEmployee, "/api/leave-requests/employee*", "^(GET|POST)$"},
		{RoleEmployee, "/api/attendance/employee/*", readOnly},
		{RoleEmployee, "/api/attendance/mark", "^POST$"},
		{RoleEmployee, "/api/memos/employee/*", readOnly},
		{RoleEmployee, "/api/assets/employee/*", readOnly},
		{RoleEmployee, "/api/holidays", readOnly},
		{RoleEmployee, "/api/performance-reviews/employee/*", readOnly},
		{RoleEmployee, "/api/hr/documents/employee/*", readOnly},
		{RoleEmployee, "/api/hr/download/*", readOnly},
		{RoleEmployee, "/api/hr/upload/*", "^(POST|PUT)$"},
	}
	for _, path := range financePaths {
		rules = append(rules, []string{RoleFinance, path, anyMethod})
	}
	return rules
}

// Policy answers role/path/method questions with a casbin enforcer.
type Policy struct {
	enforcer *casbin.Enforcer
}

func NewPolicy(rules [][]string) (*Policy, error) {
	m, err := model.NewModelFromString(policyModel)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}
	if _, err := enforcer.AddPolicies(rules); err != nil {
		return nil, err
	}
	return &Policy{enforcer: enforcer}, nil
}

// Allowed is true when any of the roles grants method on path.
func (p *Policy) Allowed(roles []string, path, method string) (bool, error) {
	for _, role := range roles {
		ok, err := p.enforcer.Enforce(role, path, method)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
