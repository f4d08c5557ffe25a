package attendance

import (
	"context"
	"errors"
	"fmt"

	"idms/internal/wiredate"
)

type Service struct {
	Store StoreAPI
	Today func() wiredate.Date
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store, Today: wiredate.Today}
}

func (s *Service) ListByEmployee(ctx context.Context, employeeID string) ([]Record, error) {
	return s.Store.ListByEmployee(ctx, employeeID)
}

// Mark applies a sign-in or a sign-out to the employee's record for the day.
// A sign-in sets present or late. A sign-out computes work hours and may
// downgrade the day to half-day.
func (s *Service) Mark(ctx context.Context, m Mark) (Record, error) {
	if m.EmployeeID == "" {
		return Record{}, fmt.Errorf("%w: employeeId is required", ErrInvalidInput)
	}
	date := m.Date
	if date.IsZero() {
		date = s.Today()
	}

	current, err := s.Store.Get(ctx, m.EmployeeID, date)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return Record{}, err
	}
	exists := err == nil

	switch {
	case m.CheckOutTime != "":
		if !exists || current.CheckInTime == "" {
			return Record{}, fmt.Errorf("%w: sign in before signing out", ErrInvalidState)
		}
		if current.CheckOutTime != "" {
			return Record{}, fmt.Errorf("%w: already signed out", ErrInvalidState)
		}
		checkOut, err := NormalizeClock(m.CheckOutTime)
		if err != nil {
			return Record{}, err
		}
		hours, err := WorkHours(current.CheckInTime, checkOut)
		if err != nil {
			return Record{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		current.CheckOutTime = checkOut
		current.WorkHours = hours
		current.Status = CheckOutStatus(current.Status, hours)
		return s.Store.Save(ctx, current)
	case m.CheckInTime != "":
		if exists && current.CheckInTime != "" {
			return Record{}, fmt.Errorf("%w: already signed in", ErrInvalidState)
		}
		checkIn, err := NormalizeClock(m.CheckInTime)
		if err != nil {
			return Record{}, err
		}
		status, err := CheckInStatus(checkIn)
		if err != nil {
			return Record{}, err
		}
		return s.Store.Save(ctx, Record{
			EmployeeID:  m.EmployeeID,
			Date:        date,
			CheckInTime: checkIn,
			Status:      status,
		})
	}
	return Record{}, fmt.Errorf("%w: checkInTime or checkOutTime is required", ErrInvalidInput)
}
