package memo

import (
	"time"

	"idms/internal/wiredate"
)

const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"

	StatusSent  = "sent"
	StatusDraft = "draft"
)

type Memo struct {
	ID                   int64
	Title                string
	MeetingType          string
	MeetingDate          wiredate.Date
	Priority             string
	Content              string
	SentBy               string
	SentByName           string
	RecipientEmployeeIDs []string
	RecipientDepartments []string
	SentToAll            bool
	SentAt               time.Time
	Status               string
}

type Input struct {
	Title                string `validate:"required,max=255"`
	MeetingType          string `validate:"max=64"`
	MeetingDate          wiredate.Date
	Priority             string `validate:"max=16"`
	Content              string `validate:"required,max=10000"`
	SentBy               string `validate:"max=64"`
	SentByName           string `validate:"max=255"`
	RecipientEmployeeIDs []string
	RecipientDepartments []string
	SentToAll            bool
	Status               string `validate:"omitempty,oneof=sent draft"`
}

// Audience identifies who is reading a feed.
type Audience struct {
	EmployeeID string
	Department string
}
