package records

import (
	"encoding/json"
	"strconv"

	"idms/internal/wiredate"
)

// Review is one performance appraisal as the employee sees it.
type Review struct {
	ID             int64
	EmployeeID     string
	EmployeeName   string
	Position       string
	Department     string
	ReviewStatus   string
	Rating         int
	LastReviewDate wiredate.Date
	NextReviewDate wiredate.Date
	Goals          string
	Feedback       string
	Achievements   string
	Reviewer       string
}

func ReviewKey(r Review) int64 { return r.ID }

// DisplayRating renders the rating out of five, e.g. 4/5.
func (r Review) DisplayRating() string {
	return strconv.Itoa(r.Rating) + "/5"
}

type reviewEmployeeWire struct {
	EmployeeID   string `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
	Position     string `json:"position"`
	Department   string `json:"department"`
}

type reviewWire struct {
	ID             int64               `json:"id,omitempty"`
	Employee       *reviewEmployeeWire `json:"employee,omitempty"`
	EmployeeID     string              `json:"employeeId,omitempty"`
	ReviewStatus   string              `json:"reviewStatus"`
	Rating         int                 `json:"rating"`
	LastReviewDate json.RawMessage     `json:"lastReviewDate"`
	NextReviewDate json.RawMessage     `json:"nextReviewDate"`
	Goals          string              `json:"goals"`
	Feedback       string              `json:"feedback"`
	Achievements   string              `json:"achievements"`
	Reviewer       string              `json:"reviewer"`
}

// ReviewMapper reads the nested employee and array dates.
type ReviewMapper struct{}

func (ReviewMapper) Decode(raw json.RawMessage) (Review, error) {
	var w reviewWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return Review{}, err
	}
	last, err := wiredate.Array.Decode(w.LastReviewDate)
	if err != nil {
		return Review{}, err
	}
	next, err := wiredate.Array.Decode(w.NextReviewDate)
	if err != nil {
		return Review{}, err
	}
	out := Review{
		ID:             w.ID,
		EmployeeID:     w.EmployeeID,
		ReviewStatus:   w.ReviewStatus,
		Rating:         w.Rating,
		LastReviewDate: last,
		NextReviewDate: next,
		Goals:          w.Goals,
		Feedback:       w.Feedback,
		Achievements:   w.Achievements,
		Reviewer:       w.Reviewer,
	}
	if e := w.Employee; e != nil {
		if out.EmployeeID == "" {
			out.EmployeeID = e.EmployeeID
		}
		out.EmployeeName = e.EmployeeName
		out.Position = e.Position
		out.Department = e.Department
	}
	return out, nil
}

func (ReviewMapper) Encode(r Review) ([]byte, error) {
	last, err := wiredate.Array.Encode(r.LastReviewDate)
	if err != nil {
		return nil, err
	}
	next, err := wiredate.Array.Encode(r.NextReviewDate)
	if err != nil {
		return nil, err
	}
	return json.Marshal(reviewWire{
		Employee: &reviewEmployeeWire{
			EmployeeID:   r.EmployeeID,
			EmployeeName: r.EmployeeName,
			Position:     r.Position,
			Department:   r.Department,
		},
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
