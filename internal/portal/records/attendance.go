package records

import (
	"encoding/json"
	"fmt"
	"strings"

	"idms/internal/wiredate"
)

const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceHalfDay = "half-day"
	AttendanceLate    = "late"
)

var AttendanceStatuses = []string{AttendancePresent, AttendanceAbsent, AttendanceHalfDay, AttendanceLate}

// Attendance is one employee-day. Empty clock times mean not yet marked.
type Attendance struct {
	ID           int64
	EmployeeID   string
	Date         wiredate.Date
	CheckInTime  string
	CheckOutTime string
	Status       string
	WorkHours    float64
}

func AttendanceKey(a Attendance) int64 { return a.ID }

type attendanceWire struct {
	ID           int64           `json:"id,omitempty"`
	EmployeeID   string          `json:"employeeId"`
	Date         json.RawMessage `json:"date,omitempty"`
	CheckInTime  *string         `json:"checkInTime,omitempty"`
	CheckOutTime *string         `json:"checkOutTime,omitempty"`
	Status       string          `json:"status,omitempty"`
	WorkHours    float64         `json:"workHours,omitempty"`
}

// AttendanceMapper reads [y,m,d] dates and nullable clock times. Encode
// writes a mark body carrying whichever clock time is set.
type AttendanceMapper struct{}

func (AttendanceMapper) Decode(raw json.RawMessage) (Attendance, error) {
	var w attendanceWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return Attendance{}, err
	}
	date, err := wiredate.Array.Decode(w.Date)
	if err != nil {
		return Attendance{}, fmt.Errorf("attendance date: %w", err)
	}
	out := Attendance{ID: w.ID, EmployeeID: w.EmployeeID, Date: date, Status: strings.ToLower(w.Status), WorkHours: w.WorkHours}
	if w.CheckInTime != nil {
		out.CheckInTime = *w.CheckInTime
	}
	if w.CheckOutTime != nil {
		out.CheckOutTime = *w.CheckOutTime
	}
	return out, nil
}

func (AttendanceMapper) Encode(a Attendance) ([]byte, error) {
	w := attendanceWire{EmployeeID: a.EmployeeID}
	if !a.Date.IsZero() {
		date, err := wiredate.Array.Encode(a.Date)
		if err != nil {
			return nil, err
		}
		w.Date = date
	}
	if a.CheckInTime != "" {
		w.CheckInTime = &a.CheckInTime
	}
	if a.CheckOutTime != "" {
		w.CheckOutTime = &a.CheckOutTime
	}
	return json.Marshal(w)
}
