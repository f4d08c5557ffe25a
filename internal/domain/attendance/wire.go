package attendance

import (
	"encoding/json"
	"fmt"
	"strings"

	"idms/internal/wiredate"
)

type recordWire struct {
	ID           int64           `json:"id,omitempty"`
	EmployeeID   string          `json:"employeeId"`
	Date         json.RawMessage `json:"date,omitempty"`
	CheckInTime  *string         `json:"checkInTime"`
	CheckOutTime *string         `json:"checkOutTime"`
	Status       string          `json:"status,omitempty"`
	WorkHours    float64         `json:"workHours"`
}

func nullable(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func (r Record) MarshalJSON() ([]byte, error) {
	date, err := wiredate.Array.Encode(r.Date)
	if err != nil {
		return nil, err
	}
	return json.Marshal(recordWire{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		Date:         date,
		CheckInTime:  nullable(r.CheckInTime),
		CheckOutTime: nullable(r.CheckOutTime),
		Status:       r.Status,
		WorkHours:    r.WorkHours,
	})
}

// UnmarshalJSON reads a mark body. The date may be an array, an ISO
// string or absent.
func (m *Mark) UnmarshalJSON(raw []byte) error {
	var body recordWire
	if err := json.Unmarshal(raw, &body); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	date, err := decodeDate(body.Date)
	if err != nil {
		return fmt.Errorf("%w: date: %v", ErrInvalidInput, err)
	}
	*m = Mark{EmployeeID: strings.TrimSpace(body.EmployeeID), Date: date}
	if body.CheckInTime != nil {
		m.CheckInTime = strings.TrimSpace(*body.CheckInTime)
	}
	if body.CheckOutTime != nil {
		m.CheckOutTime = strings.TrimSpace(*body.CheckOutTime)
	}
	return nil
}

func decodeDate(raw json.RawMessage) (wiredate.Date, error) {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		return wiredate.Array.Decode(raw)
	}
	return wiredate.ISO.Decode(raw)
}
