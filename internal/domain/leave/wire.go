package leave

import (
	"encoding/json"
	"fmt"
	"strings"

	"idms/internal/wiredate"
)

type requestWire struct {
	ID           int64           `json:"id"`
	EmployeeID   string          `json:"employeeId"`
	EmployeeName string          `json:"employeeName"`
	LeaveType    string          `json:"leaveType"`
	StartDate    json.RawMessage `json:"startDate"`
	EndDate      json.RawMessage `json:"endDate"`
	NumberOfDays int             `json:"numberOfDays"`
	Status       string          `json:"status"`
	Reason       string          `json:"reason"`
	HRComments   string          `json:"hrComments,omitempty"`
	RequestDate  json.RawMessage `json:"requestDate"`
}

func (r Request) MarshalJSON() ([]byte, error) {
	start, err := wiredate.ISO.Encode(r.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := wiredate.ISO.Encode(r.EndDate)
	if err != nil {
		return nil, err
	}
	requested, err := wiredate.ISO.Encode(r.RequestDate)
	if err != nil {
		return nil, err
	}
	return json.Marshal(requestWire{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		LeaveType:    r.LeaveType,
		StartDate:    start,
		EndDate:      end,
		NumberOfDays: r.NumberOfDays,
		Status:       r.Status,
		Reason:       r.Reason,
		HRComments:   r.HRComments,
		RequestDate:  requested,
	})
}

// UnmarshalJSON reads a submission body. Server-owned fields such as
// status and numberOfDays are ignored.
func (in *RequestInput) UnmarshalJSON(raw []byte) error {
	var body requestWire
	if err := json.Unmarshal(raw, &body); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	start, err := wiredate.ISO.Decode(body.StartDate)
	if err != nil {
		return fmt.Errorf("%w: startDate: %v", ErrInvalidInput, err)
	}
	end, err := wiredate.ISO.Decode(body.EndDate)
	if err != nil {
		return fmt.Errorf("%w: endDate: %v", ErrInvalidInput, err)
	}
	*in = RequestInput{
		EmployeeID:   strings.TrimSpace(body.EmployeeID),
		EmployeeName: strings.TrimSpace(body.EmployeeName),
		LeaveType:    strings.ToLower(strings.TrimSpace(body.LeaveType)),
		StartDate:    start,
		EndDate:      end,
		Reason:       strings.TrimSpace(body.Reason),
	}
	return nil
}

type decisionWire struct {
	Status     string `json:"status"`
	HRComments string `json:"hrComments"`
}

func (d *Decision) UnmarshalJSON(raw []byte) error {
	var body decisionWire
	if err := json.Unmarshal(raw, &body); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	d.Status = strings.TrimSpace(body.Status)
	d.HRComments = strings.TrimSpace(body.HRComments)
	return nil
}

type holidayWire struct {
	ID          int64           `json:"id,omitempty"`
	HolidayName string          `json:"holidayName"`
	StartDate   json.RawMessage `json:"startDate"`
	EndDate     json.RawMessage `json:"endDate"`
	Day         string          `json:"day"`
	Type        string          `json:"type"`
	Coverage    string          `json:"coverage"`
}

func (h Holiday) MarshalJSON() ([]byte, error) {
	start, err := wiredate.Array.Encode(h.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := wiredate.Array.Encode(h.EndDate)
	if err != nil {
		return nil, err
	}
	return json.Marshal(holidayWire{
		ID:          h.ID,
		HolidayName: h.HolidayName,
		StartDate:   start,
		EndDate:     end,
		Day:         h.Day,
		Type:        h.Type,
		Coverage:    h.Coverage,
	})
}

func (in *HolidayInput) UnmarshalJSON(raw []byte) error {
	var body holidayWire
	if err := json.Unmarshal(raw, &body); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	start, err := wiredate.Array.Decode(body.StartDate)
	if err != nil {
		return fmt.Errorf("%w: startDate: %v", ErrInvalidInput, err)
	}
	end, err := wiredate.Array.Decode(body.EndDate)
	if err != nil {
		return fmt.Errorf("%w: endDate: %v", ErrInvalidInput, err)
	}
	*in = HolidayInput{
		HolidayName: strings.TrimSpace(body.HolidayName),
		StartDate:   start,
		EndDate:     end,
		Day:         strings.TrimSpace(body.Day),
		Type:        strings.TrimSpace(body.Type),
		Coverage:    strings.TrimSpace(body.Coverage),
	}
	return nil
}
