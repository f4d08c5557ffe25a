package leave

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"idms/internal/wiredate"
)

func newTestService() *Service {
	svc := NewService(NewMemoryStore())
	svc.Today = func() wiredate.Date { return wiredate.New(2025, time.May, 30) }
	return svc
}

func TestSubmitComputesInclusiveDays(t *testing.T) {
	svc := newTestService()
	req, err := svc.Submit(context.Background(), RequestInput{
		EmployeeID: "EMP001",
		LeaveType:  "Casual",
		StartDate:  wiredate.New(2025, time.June, 2),
		EndDate:    wiredate.New(2025, time.June, 4),
		Reason:     "family event",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if req.NumberOfDays != 3 {
		t.Fatalf("expected 3 days, got %d", req.NumberOfDays)
	}
	if req.Status != StatusPending || req.LeaveType != TypeCasual {
		t.Fatalf("unexpected request %+v", req)
	}
	if req.RequestDate != wiredate.New(2025, time.May, 30) {
		t.Fatalf("unexpected request date %v", req.RequestDate)
	}
}

func TestSubmitRejectsBadInput(t *testing.T) {
	svc := newTestService()
	tests := []struct {
		name string
		in   RequestInput
	}{
		{"start after end", RequestInput{EmployeeID: "E1", LeaveType: TypeSick, StartDate: wiredate.New(2025, time.June, 10), EndDate: wiredate.New(2025, time.June, 1)}},
		{"unknown type", RequestInput{EmployeeID: "E1", LeaveType: "sabbatical", StartDate: wiredate.New(2025, time.June, 1), EndDate: wiredate.New(2025, time.June, 1)}},
		{"missing employee", RequestInput{LeaveType: TypeSick, StartDate: wiredate.New(2025, time.June, 1), EndDate: wiredate.New(2025, time.June, 1)}},
		{"missing dates", RequestInput{EmployeeID: "E1", LeaveType: TypeSick}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Submit(context.Background(), tc.in); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestDecideFlow(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	req, err := svc.Submit(ctx, RequestInput{
		EmployeeID: "E1",
		LeaveType:  TypeSick,
		StartDate:  wiredate.New(2025, time.June, 1),
		EndDate:    wiredate.New(2025, time.June, 1),
		Reason:     "flu",
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Decide(ctx, req.ID, Decision{Status: "rejected"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("rejection without comments must fail, got %v", err)
	}
	if _, err := svc.Decide(ctx, req.ID, Decision{Status: "pending"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("pending is not a decision, got %v", err)
	}

	approved, err := svc.Decide(ctx, req.ID, Decision{Status: "approved"})
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != StatusApproved {
		t.Fatalf("expected APPROVED, got %s", approved.Status)
	}

	if _, err := svc.Decide(ctx, req.ID, Decision{Status: "rejected", HRComments: "too late"}); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	if _, err := svc.Decide(ctx, 999, Decision{Status: "approved"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListByEmployeeNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	for _, employee := range []string{"E1", "E2", "E1"} {
		if _, err := svc.Submit(ctx, RequestInput{
			EmployeeID: employee,
			LeaveType:  TypeCasual,
			StartDate:  wiredate.New(2025, time.June, 1),
			EndDate:    wiredate.New(2025, time.June, 2),
			Reason:     "trip",
		}); err != nil {
			t.Fatal(err)
		}
	}
	items, err := svc.ListByEmployee(ctx, "E1")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 || items[0].ID != 3 || items[1].ID != 1 {
		t.Fatalf("unexpected history %+v", items)
	}
	all, _ := svc.ListAll(ctx)
	if len(all) != 3 {
		t.Fatalf("expected 3 requests, got %d", len(all))
	}
}

func TestHolidayDefaults(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	h, err := svc.CreateHoliday(ctx, HolidayInput{HolidayName: "Independence Day", StartDate: wiredate.New(2025, time.August, 15), Type: "National"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if h.Day != "Friday" || h.EndDate != h.StartDate {
		t.Fatalf("expected derived day and end date, got %+v", h)
	}
	if _, err := svc.CreateHoliday(ctx, HolidayInput{HolidayName: "x", StartDate: wiredate.New(2025, time.August, 15), EndDate: wiredate.New(2025, time.August, 14)}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if err := svc.DeleteHoliday(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRequestWireShape(t *testing.T) {
	raw, err := json.Marshal(Request{
		ID:           7,
		EmployeeID:   "E1",
		LeaveType:    TypeSick,
		StartDate:    wiredate.New(2025, time.June, 1),
		EndDate:      wiredate.New(2025, time.June, 2),
		NumberOfDays: 2,
		Status:       StatusPending,
		RequestDate:  wiredate.New(2025, time.May, 30),
	})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"id":7,"employeeId":"E1","employeeName":"","leaveType":"sick","startDate":"2025-06-01","endDate":"2025-06-02","numberOfDays":2,"status":"PENDING","reason":"","requestDate":"2025-05-30"}`
	if string(raw) != want {
		t.Fatalf("expected %s, got %s", want, raw)
	}

	var in RequestInput
	if err := json.Unmarshal([]byte(`{"employeeId":"E1","leaveType":"SICK","startDate":"2025-06-01","endDate":"2025-06-02","status":"approved","numberOfDays":99}`), &in); err != nil {
		t.Fatal(err)
	}
	if in.LeaveType != TypeSick || in.EndDate != wiredate.New(2025, time.June, 2) {
		t.Fatalf("unexpected input %+v", in)
	}

	raw, err = json.Marshal(Holiday{ID: 1, HolidayName: "Diwali", StartDate: wiredate.New(2025, time.October, 20), EndDate: wiredate.New(2025, time.October, 20), Day: "Monday"})
	if err != nil {
		t.Fatal(err)
	}
	want = `{"id":1,"holidayName":"Diwali","startDate":[2025,10,20],"endDate":[2025,10,20],"day":"Monday","type":"","coverage":""}`
	if string(raw) != want {
		t.Fatalf("expected %s, got %s", want, raw)
	}
}
