package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"idms/internal/app/server"
	"idms/internal/platform/config"
)

const (
	adminEmail    = "admin@test.local"
	adminPassword = "ChangeMe123!"
)

type envelope struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details struct {
			Fields []struct {
				Field  string `json:"field"`
				Reason string `json:"reason"`
			} `json:"fields"`
		} `json:"details"`
	} `json:"error"`
}

func testConfig() config.Config {
	return config.Config{
		Environment:        "test",
		StoreDriver:        config.StoreDriverMemory,
		JWTSecret:          "test-secret",
		TokenTTL:           time.Hour,
		RunSeed:            true,
		SeedAdminEmail:     adminEmail,
		SeedAdminPassword:  adminPassword,
		MaxBodyBytes:       1048576,
		RateLimitPerMinute: 10000,
		CORSAllowedOrigins: []string{"*"},
		ReportCurrency:     "INR",
	}
}

type harness struct {
	t      *testing.T
	url    string
	client *http.Client
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	app, err := server.New(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	ts := httptest.NewServer(app.Router)
	t.Cleanup(func() {
		ts.Close()
		app.Close()
	})
	return &harness{t: t, url: ts.URL, client: ts.Client()}
}

func (h *harness) do(method, path, token string, body any) (int, []byte) {
	h.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			h.t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, h.url+path, reader)
	if err != nil {
		h.t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := h.client.Do(req)
	if err != nil {
		h.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	if err != nil {
		h.t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, out
}

func (h *harness) expect(method, path, token string, body any, want int) []byte {
	h.t.Helper()
	status, out := h.do(method, path, token, body)
	if status != want {
		h.t.Fatalf("%s %s: expected %d, got %d: %s", method, path, want, status, out)
	}
	return out
}

func (h *harness) login(path, email, password string) string {
	h.t.Helper()
	out := h.expect(http.MethodPost, path, "", map[string]string{"email": email, "password": password}, http.StatusOK)
	var result struct {
		Token string   `json:"token"`
		Roles []string `json:"roles"`
	}
	if err := json.Unmarshal(out, &result); err != nil {
		h.t.Fatalf("decode login: %v", err)
	}
	if result.Token == "" {
		h.t.Fatalf("expected token in %s", out)
	}
	return result.Token
}

func (h *harness) register(adminToken string, body map[string]any) {
	h.t.Helper()
	h.expect(http.MethodPost, "/api/auth/register", adminToken, body, http.StatusCreated)
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return out
}

func TestFinanceExpenseJourney(t *testing.T) {
	h := newHarness(t)
	admin := h.login("/api/auth/login", adminEmail, adminPassword)
	h.register(admin, map[string]any{"email": "finance@test.local", "password": "Finance123!", "role": "FINANCE"})
	token := h.login("/api/auth/login", "finance@test.local", "Finance123!")

	created := decode[map[string]any](t, h.expect(http.MethodPost, "/api/rent", token, map[string]any{
		"date": []int{2025, 6, 1}, "amount": 15000, "description": "June office rent",
	}, http.StatusCreated))
	id := int64(created["id"].(float64))
	if id == 0 {
		t.Fatalf("expected server-assigned id, got %v", created)
	}

	list := decode[[]map[string]any](t, h.expect(http.MethodGet, "/api/rent", token, nil, http.StatusOK))
	if len(list) != 1 {
		t.Fatalf("expected one rent entry, got %d", len(list))
	}
	date := list[0]["date"].([]any)
	if date[0].(float64) != 2025 || date[1].(float64) != 6 || date[2].(float64) != 1 {
		t.Fatalf("expected [2025,6,1], got %v", date)
	}
	if _, ok := list[0]["recipient"]; ok {
		t.Fatal("rent entries carry no recipient")
	}

	h.expect(http.MethodPut, "/api/rent/"+jsonID(id), token, map[string]any{
		"date": []int{2025, 6, 1}, "amount": 16000, "description": "Revised rent",
	}, http.StatusOK)
	list = decode[[]map[string]any](t, h.expect(http.MethodGet, "/api/rent", token, nil, http.StatusOK))
	if list[0]["amount"].(float64) != 16000 || list[0]["description"] != "Revised rent" {
		t.Fatalf("update not applied: %v", list[0])
	}

	pdf := h.expect(http.MethodGet, "/api/rent/export/pdf", token, nil, http.StatusOK)
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("expected a pdf body, got %q", pdf[:min(len(pdf), 16)])
	}

	h.expect(http.MethodDelete, "/api/rent/"+jsonID(id), token, nil, http.StatusNoContent)
	h.expect(http.MethodDelete, "/api/rent/"+jsonID(id), token, nil, http.StatusNotFound)
	list = decode[[]map[string]any](t, h.expect(http.MethodGet, "/api/rent", token, nil, http.StatusOK))
	if len(list) != 0 {
		t.Fatalf("expected empty list after delete, got %v", list)
	}
}

func TestCommissionDatesUseCompactStrings(t *testing.T) {
	h := newHarness(t)
	admin := h.login("/api/auth/login", adminEmail, adminPassword)

	h.expect(http.MethodPost, "/api/commissions", admin, map[string]any{
		"date": "20250615", "amount": 1200.5, "description": "Q2 deal", "recipient": "Asha",
	}, http.StatusCreated)
	h.expect(http.MethodPost, "/api/expo-advertisements", admin, map[string]any{
		"date": "2025-06-20", "amount": 800, "description": "Expo stall",
	}, http.StatusCreated)

	commissions := decode[[]map[string]any](t, h.expect(http.MethodGet, "/api/commissions", admin, nil, http.StatusOK))
	if commissions[0]["date"] != "20250615" || commissions[0]["recipient"] != "Asha" {
		t.Fatalf("unexpected commission wire shape: %v", commissions[0])
	}
	expo := decode[[]map[string]any](t, h.expect(http.MethodGet, "/api/expo-advertisements", admin, nil, http.StatusOK))
	if expo[0]["date"] != "2025-06-20" {
		t.Fatalf("expected ISO expo date, got %v", expo[0]["date"])
	}

	missing := decode[envelope](t, h.expect(http.MethodPost, "/api/incentives", admin, map[string]any{
		"date": []int{2025, 6, 1}, "amount": 10, "description": "No recipient",
	}, http.StatusBadRequest))
	if missing.Error.Code != "validation_error" {
		t.Fatalf("expected validation_error, got %+v", missing)
	}
}

func TestNegativeAmountsAreRejected(t *testing.T) {
	h := newHarness(t)
	admin := h.login("/api/auth/login", adminEmail, adminPassword)

	env := decode[envelope](t, h.expect(http.MethodPost, "/api/travel", admin, map[string]any{
		"date": []int{2025, 6, 1}, "amount": -5, "description": "Cab",
	}, http.StatusBadRequest))
	if env.Success || env.Error.Code != "validation_error" {
		t.Fatalf("expected validation_error envelope, got %+v", env)
	}
	if !strings.Contains(env.Error.Details.Fields[0].Reason, "negative") {
		t.Fatalf("expected negative amount reason, got %+v", env.Error.Details.Fields)
	}

	env = decode[envelope](t, h.expect(http.MethodPost, "/api/travel", admin, map[string]any{
		"date": []int{2025, 6, 1}, "amount": 5,
	}, http.StatusBadRequest))
	if len(env.Error.Details.Fields) == 0 || env.Error.Details.Fields[0].Field != "description" {
		t.Fatalf("expected description field issue, got %+v", env.Error.Details.Fields)
	}
}

func TestLeaveRequestJourney(t *testing.T) {
	h := newHarness(t)
	admin := h.login("/api/auth/login", adminEmail, adminPassword)
	h.register(admin, map[string]any{"email": "hr@test.local", "password": "HrPass123!", "role": "HR", "employeeId": "H1"})
	h.register(admin, map[string]any{"email": "emp@test.local", "password": "EmpPass123!", "role": "EMPLOYEE", "employeeId": "E100", "fullName": "Ravi"})

	hr := h.login("/api/auth/login", "hr@test.local", "HrPass123!")
	emp := h.login("/api/employees/login", "E100", "EmpPass123!")

	created := decode[map[string]any](t, h.expect(http.MethodPost, "/api/leave-requests/employee", emp, map[string]any{
		"employeeId": "E100", "employeeName": "Ravi", "leaveType": "Casual",
		"startDate": "2025-06-02", "endDate": "2025-06-04", "reason": "Family visit",
	}, http.StatusCreated))
	if created["status"] != "PENDING" || created["numberOfDays"].(float64) != 3 || created["leaveType"] != "casual" {
		t.Fatalf("unexpected created leave: %v", created)
	}
	id := int64(created["id"].(float64))

	h.expect(http.MethodPost, "/api/leave-requests/employee", emp, map[string]any{
		"employeeId": "E100", "leaveType": "sick", "startDate": "2025-06-05", "endDate": "2025-06-01", "reason": "Backwards",
	}, http.StatusBadRequest)
	h.expect(http.MethodPost, "/api/leave-requests/employee", emp, map[string]any{
		"employeeId": "E999", "leaveType": "sick", "startDate": "2025-06-05", "endDate": "2025-06-05", "reason": "Someone else",
	}, http.StatusForbidden)
	h.expect(http.MethodGet, "/api/leave-requests/employee/E999", emp, nil, http.StatusForbidden)
	h.expect(http.MethodGet, "/api/leave-requests/hr/all", emp, nil, http.StatusForbidden)

	all := decode[[]map[string]any](t, h.expect(http.MethodGet, "/api/leave-requests/hr/all", hr, nil, http.StatusOK))
	if len(all) != 1 {
		t.Fatalf("expected one request on the hr board, got %d", len(all))
	}

	h.expect(http.MethodPut, "/api/leave-requests/"+jsonID(id)+"/status", hr, map[string]any{"status": "rejected"}, http.StatusBadRequest)
	decided := decode[map[string]any](t, h.expect(http.MethodPut, "/api/leave-requests/"+jsonID(id)+"/status", hr,
		map[string]any{"status": "approved", "hrComments": "Enjoy"}, http.StatusOK))
	if decided["status"] != "APPROVED" || decided["hrComments"] != "Enjoy" {
		t.Fatalf("unexpected decision: %v", decided)
	}
	h.expect(http.MethodPut, "/api/leave-requests/"+jsonID(id)+"/status", hr, map[string]any{"status": "approved"}, http.StatusConflict)

	mine := decode[[]map[string]any](t, h.expect(http.MethodGet, "/api/leave-requests/employee/E100", emp, nil, http.StatusOK))
	if len(mine) != 1 || mine[0]["status"] != "APPROVED" {
		t.Fatalf("expected approved request in history, got %v", mine)
	}
}

func TestHolidayJourney(t *testing.T) {
	h := newHarness(t)
	admin := h.login("/api/auth/login", adminEmail, adminPassword)
	h.register(admin, map[string]any{"email": "emp@test.local", "password": "EmpPass123!", "role": "EMPLOYEE", "employeeId": "E1"})
	emp := h.login("/api/employees/login", "emp@test.local", "EmpPass123!")

	created := decode[map[string]any](t, h.expect(http.MethodPost, "/api/holidays", admin, map[string]any{
		"holidayName": "Independence Day", "startDate": []int{2025, 8, 15}, "type": "National",
	}, http.StatusCreated))
	if created["day"] != "Friday" {
		t.Fatalf("expected derived weekday Friday, got %v", created["day"])
	}
	end := created["endDate"].([]any)
	if end[2].(float64) != 15 {
		t.Fatalf("expected end date to default to start, got %v", end)
	}

	list := decode[[]map[string]any](t, h.expect(http.MethodGet, "/api/holidays", emp, nil, http.StatusOK))
	if len(list) != 1 {
		t.Fatalf("employees can read holidays, got %v", list)
	}
	h.expect(http.MethodPost, "/api/holidays", emp, map[string]any{"holidayName": "Nope", "startDate": []int{2025, 1, 1}}, http.StatusForbidden)
	h.expect(http.MethodDelete, "/api/holidays/"+jsonID(int64(created["id"].(float64))), admin, nil, http.StatusNoContent)
}

func TestAttendanceJourney(t *testing.T) {
	h := newHarness(t)
	admin := h.login("/api/auth/login", adminEmail, adminPassword)
	h.register(admin, map[string]any{"email": "emp@test.local", "password": "EmpPass123!", "role": "EMPLOYEE", "employeeId": "E7"})
	emp := h.login("/api/employees/login", "E7", "EmpPass123!")

	in := decode[map[string]any](t, h.expect(http.MethodPost, "/api/attendance/mark", emp, map[string]any{
		"employeeId": "E7", "date": "2025-06-02", "checkInTime": "09:45:00",
	}, http.StatusOK))
	if in["status"] != "late" || in["checkOutTime"] != nil {
		t.Fatalf("unexpected sign-in record: %v", in)
	}
	h.expect(http.MethodPost, "/api/attendance/mark", emp, map[string]any{
		"employeeId": "E7", "date": "2025-06-02", "checkInTime": "09:50:00",
	}, http.StatusConflict)

	out := decode[map[string]any](t, h.expect(http.MethodPost, "/api/attendance/mark", emp, map[string]any{
		"employeeId": "E7", "date": []int{2025, 6, 2}, "checkOutTime": "12:45:00",
	}, http.StatusOK))
	if out["status"] != "half-day" || out["workHours"].(float64) != 3 {
		t.Fatalf("unexpected sign-out record: %v", out)
	}

	history := decode[[]map[string]any](t, h.expect(http.MethodGet, "/api/attendance/employee/E7", emp, nil, http.StatusOK))
	if len(history) != 1 {
		t.Fatalf("expected one attendance row, got %v", history)
	}
	h.expect(http.MethodGet, "/api/attendance/employee/E8", emp, nil, http.StatusForbidden)
}

func TestMemoFeedJourney(t *testing.T) {
	h := newHarness(t)
	admin := h.login("/api/auth/login", adminEmail, adminPassword)
	h.register(admin, map[string]any{"email": "hr@test.local", "password": "HrPass123!", "role": "HR", "employeeId": "H1"})
	h.register(admin, map[string]any{"email": "emp@test.local", "password": "EmpPass123!", "role": "EMPLOYEE", "employeeId": "E5", "department": "Sales"})
	hr := h.login("/api/auth/login", "hr@test.local", "HrPass123!")
	emp := h.login("/api/employees/login", "E5", "EmpPass123!")

	h.expect(http.MethodPost, "/api/memos", hr, map[string]any{
		"title": "All hands", "content": "Friday 4pm", "priority": "high", "sentToAll": true,
	}, http.StatusCreated)
	h.expect(http.MethodPost, "/api/memos", hr, map[string]any{
		"title": "Sales sync", "content": "Targets", "recipientDepartments": []string{"sales"}, "meetingDate": "2025-06-10",
	}, http.StatusCreated)
	h.expect(http.MethodPost, "/api/memos", hr, map[string]any{
		"title": "Ops only", "content": "Rota", "recipientDepartments": []string{"Ops"},
	}, http.StatusCreated)
	h.expect(http.MethodPost, "/api/memos", hr, map[string]any{"title": "Nobody", "content": "x"}, http.StatusBadRequest)
	h.expect(http.MethodPost, "/api/memos", emp, map[string]any{"title": "Nope", "content": "x", "sentToAll": true}, http.StatusForbidden)

	feed := decode[[]map[string]any](t, h.expect(http.MethodGet, "/api/memos/employee/E5?department=Sales", emp, nil, http.StatusOK))
	if len(feed) != 2 {
		t.Fatalf("expected two memos in the feed, got %v", feed)
	}
	if feed[0]["title"] != "Sales sync" || feed[0]["meetingDate"] != "2025-06-10" {
		t.Fatalf("expected newest memo first, got %v", feed[0])
	}
	if feed[1]["priority"] != "High" {
		t.Fatalf("expected normalized priority, got %v", feed[1]["priority"])
	}
}

func TestAssetJourney(t *testing.T) {
	h := newHarness(t)
	admin := h.login("/api/auth/login", adminEmail, adminPassword)
	h.register(admin, map[string]any{"email": "store@test.local", "password": "StorePass1!", "role": "STORE"})
	h.register(admin, map[string]any{"email": "emp@test.local", "password": "EmpPass123!", "role": "EMPLOYEE", "employeeId": "E9"})
	store := h.login("/api/auth/login", "store@test.local", "StorePass1!")
	emp := h.login("/api/employees/login", "E9", "EmpPass123!")

	created := decode[map[string]any](t, h.expect(http.MethodPost, "/api/assets", store, map[string]any{
		"assetName": "Laptop", "category": "IT", "serialNumber": "SN-1", "assignedTo": "E9",
	}, http.StatusCreated))
	if created["status"] != "ACTIVE" || created["assetcondition"] != "GOOD" {
		t.Fatalf("expected defaults, got %v", created)
	}
	h.expect(http.MethodPost, "/api/assets", store, map[string]any{"assetName": "Dup", "serialNumber": "SN-1"}, http.StatusConflict)

	mine := decode[[]map[string]any](t, h.expect(http.MethodGet, "/api/assets/employee/E9", emp, nil, http.StatusOK))
	if len(mine) != 1 {
		t.Fatalf("expected one assigned asset, got %v", mine)
	}
	h.expect(http.MethodGet, "/api/assets", emp, nil, http.StatusForbidden)
}

func TestAuthBoundaries(t *testing.T) {
	h := newHarness(t)
	h.expect(http.MethodGet, "/api/rent", "", nil, http.StatusUnauthorized)

	env := decode[envelope](t, h.expect(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": adminEmail, "password": "wrong",
	}, http.StatusUnauthorized))
	if env.Error.Code != "invalid_credentials" {
		t.Fatalf("expected invalid_credentials, got %+v", env)
	}

	admin := h.login("/api/auth/login", adminEmail, adminPassword)
	h.register(admin, map[string]any{"email": "dm@test.local", "password": "DataMgr123!", "role": "DATAMANAGER"})
	dm := h.login("/api/auth/login", "dm@test.local", "DataMgr123!")
	h.expect(http.MethodGet, "/api/salaries", dm, nil, http.StatusOK)
	h.expect(http.MethodPost, "/api/salaries", dm, map[string]any{"date": []int{2025, 1, 1}, "amount": 1, "description": "x"}, http.StatusForbidden)
	h.expect(http.MethodPost, "/api/auth/register", dm, map[string]any{"email": "x@test.local", "password": "Password1!", "role": "HR"}, http.StatusForbidden)
	h.expect(http.MethodPost, "/api/auth/register", admin, map[string]any{"email": "dm@test.local", "password": "DataMgr123!", "role": "HR"}, http.StatusConflict)

	h.expect(http.MethodPost, "/api/employees/login", "", map[string]string{"email": "dm@test.local", "password": "DataMgr123!"}, http.StatusUnauthorized)
	h.expect(http.MethodGet, "/healthz", "", nil, http.StatusOK)
	h.expect(http.MethodGet, "/readyz", "", nil, http.StatusOK)
}

func jsonID(id int64) string {
	raw, _ := json.Marshal(id)
	return string(raw)
}
