package records

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"idms/internal/portal/form"
	"idms/internal/wiredate"
)

const (
	LeaveCasual  = "casual"
	LeaveSick    = "sick"
	LeaveHoliday = "holiday"

	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

var LeaveTypes = []string{LeaveCasual, LeaveSick, LeaveHoliday}

// Leave is a leave request. Status and type are always lower-case.
type Leave struct {
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
}

func LeaveKey(l Leave) int64 { return l.ID }

type leaveWire struct {
	ID           int64           `json:"id,omitempty"`
	EmployeeID   string          `json:"employeeId"`
	EmployeeName string          `json:"employeeName,omitempty"`
	LeaveType    string          `json:"leaveType"`
	StartDate    json.RawMessage `json:"startDate"`
	EndDate      json.RawMessage `json:"endDate"`
	NumberOfDays int             `json:"numberOfDays,omitempty"`
	Status       string          `json:"status,omitempty"`
	Reason       string          `json:"reason"`
	HRComments   string          `json:"hrComments,omitempty"`
	RequestDate  json.RawMessage `json:"requestDate,omitempty"`
}

// LeaveMapper reads ISO dates and lower-cases status on receipt.
type LeaveMapper struct{}

func (LeaveMapper) Decode(raw json.RawMessage) (Leave, error) {
	var w leaveWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return Leave{}, err
	}
	var dates [3]wiredate.Date
	for i, field := range []json.RawMessage{w.StartDate, w.EndDate, w.RequestDate} {
		d, err := wiredate.ISO.Decode(field)
		if err != nil {
			return Leave{}, fmt.Errorf("leave date: %w", err)
		}
		dates[i] = d
	}
	return Leave{
		ID:           w.ID,
		EmployeeID:   w.EmployeeID,
		EmployeeName: w.EmployeeName,
		LeaveType:    strings.ToLower(w.LeaveType),
		StartDate:    dates[0],
		EndDate:      dates[1],
		NumberOfDays: w.NumberOfDays,
		Status:       strings.ToLower(w.Status),
		Reason:       w.Reason,
		HRComments:   w.HRComments,
		RequestDate:  dates[2],
	}, nil
}

// Encode writes a new request. The server computes days and status.
func (LeaveMapper) Encode(l Leave) ([]byte, error) {
	start, err := wiredate.ISO.Encode(l.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := wiredate.ISO.Encode(l.EndDate)
	if err != nil {
		return nil, err
	}
	return json.Marshal(leaveWire{
		EmployeeID:   l.EmployeeID,
		EmployeeName: l.EmployeeName,
		LeaveType:    l.LeaveType,
		StartDate:    start,
		EndDate:      end,
		Reason:       l.Reason,
	})
}

// Decision is the HR approve/reject body.
type Decision struct {
	Status     string `json:"status"`
	HRComments string `json:"hrComments,omitempty"`
}

type LeaveForm struct {
	LeaveType string
	StartDate string
	EndDate   string
	Reason    string
}

// BuildLeave validates the form for employeeID. A start after the end is
// rejected here, before any request.
func BuildLeave(f LeaveForm, employeeID, employeeName string) (Leave, error) {
	var v form.Validator
	v.Required("leaveType", f.LeaveType)
	v.Required("startDate", f.StartDate)
	v.Required("endDate", f.EndDate)
	v.Required("reason", f.Reason)
	leaveType := strings.ToLower(strings.TrimSpace(f.LeaveType))
	if leaveType != "" && !slices.Contains(LeaveTypes, leaveType) {
		v.Add("leaveType", "must be casual, sick or holiday")
	}
	start, _ := v.Date("startDate", f.StartDate)
	end, _ := v.Date("endDate", f.EndDate)
	v.DateOrder("startDate", start, end)
	if err := v.Err(); err != nil {
		return Leave{}, err
	}
	return Leave{
		EmployeeID:   employeeID,
		EmployeeName: employeeName,
		LeaveType:    leaveType,
		StartDate:    start,
		EndDate:      end,
		Reason:       strings.TrimSpace(f.Reason),
	}, nil
}
