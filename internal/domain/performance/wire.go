package performance

import (
	"encoding/json"
	"fmt"
	"strings"

	"idms/internal/wiredate"
)

// employeeWire nests the reviewed employee the way the review list
// carries it.
type employeeWire struct {
	EmployeeID   string `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
	Position     string `json:"position"`
	Department   string `json:"department"`
}

type reviewWire struct {
	ID             int64           `json:"id,omitempty"`
	Employee       *employeeWire   `json:"employee,omitempty"`
	EmployeeID     string          `json:"employeeId"`
	ReviewStatus   string          `json:"reviewStatus"`
	Rating         int             `json:"rating"`
	LastReviewDate json.RawMessage `json:"lastReviewDate"`
	NextReviewDate json.RawMessage `json:"nextReviewDate"`
	Goals          string          `json:"goals"`
	Feedback       string          `json:"feedback"`
	Achievements   string          `json:"achievements"`
	Reviewer       string          `json:"reviewer"`

	EmployeeName string `json:"employeeName,omitempty"`
	Position     string `json:"position,omitempty"`
	Department   string `json:"department,omitempty"`
}

func (r Review) MarshalJSON() ([]byte, error) {
	last, err := wiredate.Array.Encode(r.LastReviewDate)
	if err != nil {
		return nil, err
	}
	next, err := wiredate.Array.Encode(r.NextReviewDate)
	if err != nil {
		return nil, err
	}
	return json.Marshal(reviewWire{
		ID: r.ID,
		Employee: &employeeWire{
			EmployeeID:   r.EmployeeID,
			EmployeeName: r.EmployeeName,
			Position:     r.Position,
			Department:   r.Department,
		},
		EmployeeID:     r.EmployeeID,
		ReviewStatus:   r.ReviewStatus,
		Rating:         r.Rating,
		LastReviewDate: last,
		NextReviewDate: next,
		Goals:          r.Goals,
		Feedback:       r.Feedback,
		Achievements:   r.Achievements,
		Reviewer:       r.Reviewer,
	})
}

// UnmarshalJSON reads a create or update body. Employee details may be
// flat or nested under "employee".
func (in *Input) UnmarshalJSON(raw []byte) error {
	var body reviewWire
	if err := json.Unmarshal(raw, &body); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	last, err := wiredate.Array.Decode(body.LastReviewDate)
	if err != nil {
		return fmt.Errorf("%w: lastReviewDate: %v", ErrInvalidInput, err)
	}
	next, err := wiredate.Array.Decode(body.NextReviewDate)
	if err != nil {
		return fmt.Errorf("%w: nextReviewDate: %v", ErrInvalidInput, err)
	}
	if body.Employee != nil {
		if body.EmployeeID == "" {
			body.EmployeeID = body.Employee.EmployeeID
		}
		if body.EmployeeName == "" {
			body.EmployeeName = body.Employee.EmployeeName
		}
		if body.Position == "" {
			body.Position = body.Employee.Position
		}
		if body.Department == "" {
			body.Department = body.Employee.Department
		}
	}
	*in = Input{
		EmployeeID:     strings.TrimSpace(body.EmployeeID),
		EmployeeName:   strings.TrimSpace(body.EmployeeName),
		Position:       strings.TrimSpace(body.Position),
		Department:     strings.TrimSpace(body.Department),
		ReviewStatus:   strings.TrimSpace(body.ReviewStatus),
		Rating:         body.Rating,
		LastReviewDate: last,
		NextReviewDate: next,
		Goals:          strings.TrimSpace(body.Goals),
		Feedback:       strings.TrimSpace(body.Feedback),
		Achievements:   strings.TrimSpace(body.Achievements),
		Reviewer:       strings.TrimSpace(body.Reviewer),
	}
	return nil
}
