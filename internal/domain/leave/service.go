package leave

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"idms/internal/wiredate"
)

type Service struct {
	Store StoreAPI
	Today func() wiredate.Date
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store, Today: wiredate.Today}
}

// Submit files a pending request; the day count is inclusive of both ends.
func (s *Service) Submit(ctx context.Context, in RequestInput) (Request, error) {
	leaveType := strings.ToLower(strings.TrimSpace(in.LeaveType))
	if !slices.Contains(Types, leaveType) {
		return Request{}, fmt.Errorf("%w: unknown leave type %q", ErrInvalidInput, in.LeaveType)
	}
	if strings.TrimSpace(in.EmployeeID) == "" {
		return Request{}, fmt.Errorf("%w: employeeId is required", ErrInvalidInput)
	}
	days, err := CalculateDays(in.StartDate, in.EndDate)
	if err != nil {
		return Request{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.Store.CreateRequest(ctx, Request{
		EmployeeID:   in.EmployeeID,
		EmployeeName: in.EmployeeName,
		LeaveType:    leaveType,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		NumberOfDays: days,
		Status:       StatusPending,
		Reason:       in.Reason,
		RequestDate:  s.Today(),
	})
}

func (s *Service) ListByEmployee(ctx context.Context, employeeID string) ([]Request, error) {
	return s.Store.ListRequestsByEmployee(ctx, employeeID)
}

func (s *Service) ListAll(ctx context.Context) ([]Request, error) {
	return s.Store.ListRequests(ctx)
}

// Decide approves or rejects a pending request. Rejections need a comment.
func (s *Service) Decide(ctx context.Context, id int64, d Decision) (Request, error) {
	status, ok := NormalizeStatus(d.Status)
	if !ok || status == StatusPending {
		return Request{}, fmt.Errorf("%w: status must be approved or rejected", ErrInvalidInput)
	}
	if status == StatusRejected && strings.TrimSpace(d.HRComments) == "" {
		return Request{}, fmt.Errorf("%w: hrComments is required when rejecting", ErrInvalidInput)
	}
	current, err := s.Store.GetRequest(ctx, id)
	if err != nil {
		return Request{}, err
	}
	if !CanDecide(current.Status, status) {
		return Request{}, fmt.Errorf("%w: request is already %s", ErrInvalidState, strings.ToLower(current.Status))
	}
	return s.Store.UpdateRequestStatus(ctx, id, status, d.HRComments)
}

func (s *Service) ListHolidays(ctx context.Context) ([]Holiday, error) {
	return s.Store.ListHolidays(ctx)
}

func (s *Service) CreateHoliday(ctx context.Context, in HolidayInput) (Holiday, error) {
	h, err := holidayFromInput(in)
	if err != nil {
		return Holiday{}, err
	}
	return s.Store.CreateHoliday(ctx, h)
}

func (s *Service) UpdateHoliday(ctx context.Context, id int64, in HolidayInput) (Holiday, error) {
	h, err := holidayFromInput(in)
	if err != nil {
		return Holiday{}, err
	}
	return s.Store.UpdateHoliday(ctx, id, h)
}

func (s *Service) DeleteHoliday(ctx context.Context, id int64) error {
	return s.Store.DeleteHoliday(ctx, id)
}

// holidayFromInput fills the end date and weekday when they are omitted.
func holidayFromInput(in HolidayInput) (Holiday, error) {
	if strings.TrimSpace(in.HolidayName) == "" {
		return Holiday{}, fmt.Errorf("%w: holidayName is required", ErrInvalidInput)
	}
	if in.StartDate.IsZero() {
		return Holiday{}, fmt.Errorf("%w: startDate is required", ErrInvalidInput)
	}
	end := in.EndDate
	if end.IsZero() {
		end = in.StartDate
	}
	if in.StartDate.After(end) {
		return Holiday{}, fmt.Errorf("%w: %v", ErrInvalidInput, errRangeOrder)
	}
	day := in.Day
	if day == "" {
		day = WeekdayName(in.StartDate)
	}
	return Holiday{
		HolidayName: in.HolidayName,
		StartDate:   in.StartDate,
		EndDate:     end,
		Day:         day,
		Type:        in.Type,
		Coverage:    in.Coverage,
	}, nil
}
