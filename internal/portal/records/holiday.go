package records

import (
	"encoding/json"
	"fmt"
	"strings"

	"idms/internal/portal/form"
	"idms/internal/wiredate"
)

type Holiday struct {
	ID          int64
	HolidayName string
	StartDate   wiredate.Date
	EndDate     wiredate.Date
	Day         string
	Type        string
	Coverage    string
}

type holidayWire struct {
	ID          int64           `json:"id,omitempty"`
	HolidayName string          `json:"holidayName"`
	StartDate   json.RawMessage `json:"startDate"`
	EndDate     json.RawMessage `json:"endDate"`
	Day         string          `json:"day,omitempty"`
	Type        string          `json:"type,omitempty"`
	Coverage    string          `json:"coverage,omitempty"`
}

// HolidayMapper uses [y,m,d] dates.
type HolidayMapper struct{}

func (HolidayMapper) Decode(raw json.RawMessage) (Holiday, error) {
	var w holidayWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return Holiday{}, err
	}
	start, err := wiredate.Array.Decode(w.StartDate)
	if err != nil {
		return Holiday{}, fmt.Errorf("holiday startDate: %w", err)
	}
	end, err := wiredate.Array.Decode(w.EndDate)
	if err != nil {
		return Holiday{}, fmt.Errorf("holiday endDate: %w", err)
	}
	return Holiday{ID: w.ID, HolidayName: w.HolidayName, StartDate: start, EndDate: end, Day: w.Day, Type: w.Type, Coverage: w.Coverage}, nil
}

func (HolidayMapper) Encode(h Holiday) ([]byte, error) {
	start, err := wiredate.Array.Encode(h.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := wiredate.Array.Encode(h.EndDate)
	if err != nil {
		return nil, err
	}
	return json.Marshal(holidayWire{HolidayName: h.HolidayName, StartDate: start, EndDate: end, Day: h.Day, Type: h.Type, Coverage: h.Coverage})
}

type HolidayForm struct {
	HolidayName string
	StartDate   string
	EndDate     string
	Type        string
	Coverage    string
}

type HolidayBinding struct{}

func (HolidayBinding) Key(h Holiday) int64 { return h.ID }

func (HolidayBinding) Blank() HolidayForm { return HolidayForm{} }

func (HolidayBinding) FormOf(h Holiday) HolidayForm {
	return HolidayForm{HolidayName: h.HolidayName, StartDate: h.StartDate.String(), EndDate: h.EndDate.String(), Type: h.Type, Coverage: h.Coverage}
}

// Build leaves the end date and weekday to the server when omitted.
func (HolidayBinding) Build(f HolidayForm) (Holiday, error) {
	var v form.Validator
	v.Required("holidayName", f.HolidayName)
	v.Required("startDate", f.StartDate)
	start, _ := v.Date("startDate", f.StartDate)
	end, _ := v.Date("endDate", f.EndDate)
	v.DateOrder("startDate", start, end)
	if err := v.Err(); err != nil {
		return Holiday{}, err
	}
	return Holiday{
		HolidayName: strings.TrimSpace(f.HolidayName),
		StartDate:   start,
		EndDate:     end,
		Type:        strings.TrimSpace(f.Type),
		Coverage:    strings.TrimSpace(f.Coverage),
	}, nil
}
