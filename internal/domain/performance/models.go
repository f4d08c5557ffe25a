package performance

import "idms/internal/wiredate"

const (
	StatusPending    = "PENDING"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"

	MinRating = 1
	MaxRating = 5
)

var Statuses = []string{StatusPending, StatusInProgress, StatusCompleted}

// Review is one appraisal of an employee. An employee's reviews are listed
// newest first, so the head of the list is the current rating.
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

type Input struct {
	EmployeeID     string `validate:"required,max=64"`
	EmployeeName   string `validate:"max=255"`
	Position       string `validate:"max=128"`
	Department     string `validate:"max=128"`
	ReviewStatus   string `validate:"max=32"`
	Rating         int    `validate:"min=1,max=5"`
	LastReviewDate wiredate.Date
	NextReviewDate wiredate.Date
	Goals          string `validate:"max=2000"`
	Feedback       string `validate:"max=2000"`
	Achievements   string `validate:"max=2000"`
	Reviewer       string `validate:"max=255"`
}
