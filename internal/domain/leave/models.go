package leave

import (
	"time"

	"idms/internal/wiredate"
)

const (
	TypeCasual  = "casual"
	TypeSick    = "sick"
	TypeHoliday = "holiday"
)

// Statuses are stored and written upper-case.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

var Types = []string{TypeCasual, TypeSick, TypeHoliday}

type Request struct {
	ID           int64
	EmployeeID   string
	EmployeeName string
	LeaveType    string
	StartDate    wiredate.Date
	EndDate      wiredate.Date
	NumberOfDays int
	Status       string
	Reason       string
	HRComments   string
	RequestDate  wiredate.Date
	CreatedAt    time.Time
}

type RequestInput struct {
	EmployeeID   string `validate:"required,max=64"`
	EmployeeName string `validate:"max=255"`
	LeaveType    string `validate:"required,oneof=casual sick holiday"`
	StartDate    wiredate.Date
	EndDate      wiredate.Date
	Reason       string `validate:"required,max=1000"`
}

type Decision struct {
	Status     string `validate:"required"`
	HRComments string `validate:"max=1000"`
}

type Holiday struct {
	ID          int64
	HolidayName string
	StartDate   wiredate.Date
	EndDate     wiredate.Date
	Day         string
	Type        string
	Coverage    string
}

type HolidayInput struct {
	HolidayName string `validate:"required,max=255"`
	StartDate   wiredate.Date
	EndDate     wiredate.Date
	Day         string `validate:"max=16"`
	Type        string `validate:"max=64"`
	Coverage    string `validate:"max=255"`
}
