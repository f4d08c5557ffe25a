package attendance

import (
	"time"

	"idms/internal/wiredate"
)

const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusHalfDay = "half-day"
	StatusLate    = "late"
)

// Record is one employee's attendance for one day. Empty clock times are
// written as null.
type Record struct {
	ID           int64
	EmployeeID   string
	Date         wiredate.Date
	CheckInTime  string
	CheckOutTime string
	Status       string
	WorkHours    float64
	UpdatedAt    time.Time
}

// Mark is a sign-in (CheckInTime set) or a sign-out (CheckOutTime set).
type Mark struct {
	EmployeeID   string `validate:"required,max=64"`
	Date         wiredate.Date
	CheckInTime  string
	CheckOutTime string
}
