package records

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"idms/internal/portal/form"
	"idms/internal/wiredate"
)

const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
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

func MemoKey(m Memo) int64 { return m.ID }

type memoWire struct {
	ID                   int64           `json:"id,omitempty"`
	Title                string          `json:"title"`
	MeetingType          string          `json:"meetingType,omitempty"`
	MeetingDate          json.RawMessage `json:"meetingDate,omitempty"`
	Priority             string          `json:"priority,omitempty"`
	Content              string          `json:"content"`
	SentBy               string          `json:"sentBy,omitempty"`
	SentByName           string          `json:"sentByName,omitempty"`
	RecipientEmployeeIDs []string        `json:"recipientEmployeeIds"`
	RecipientDepartments []string        `json:"recipientDepartments"`
	SentToAll            bool            `json:"sentToAll"`
	SentAt               string          `json:"sentAt,omitempty"`
	Status               string          `json:"status,omitempty"`
}

// MemoMapper reads ISO meeting dates and RFC 3339 send times.
type MemoMapper struct{}

func (MemoMapper) Decode(raw json.RawMessage) (Memo, error) {
	var w memoWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return Memo{}, err
	}
	date, err := wiredate.ISO.Decode(w.MeetingDate)
	if err != nil {
		return Memo{}, fmt.Errorf("memo meetingDate: %w", err)
	}
	out := Memo{
		ID:                   w.ID,
		Title:                w.Title,
		MeetingType:          w.MeetingType,
		MeetingDate:          date,
		Priority:             w.Priority,
		Content:              w.Content,
		SentBy:               w.SentBy,
		SentByName:           w.SentByName,
		RecipientEmployeeIDs: w.RecipientEmployeeIDs,
		RecipientDepartments: w.RecipientDepartments,
		SentToAll:            w.SentToAll,
		Status:               strings.ToLower(w.Status),
	}
	if w.SentAt != "" {
		if out.SentAt, err = time.Parse(time.RFC3339, w.SentAt); err != nil {
			return Memo{}, fmt.Errorf("memo sentAt: %w", err)
		}
	}
	return out, nil
}

func (MemoMapper) Encode(m Memo) ([]byte, error) {
	w := memoWire{
		Title:                m.Title,
		MeetingType:          m.MeetingType,
		Priority:             m.Priority,
		Content:              m.Content,
		SentBy:               m.SentBy,
		SentByName:           m.SentByName,
		RecipientEmployeeIDs: m.RecipientEmployeeIDs,
		RecipientDepartments: m.RecipientDepartments,
		SentToAll:            m.SentToAll,
		Status:               m.Status,
	}
	if w.RecipientEmployeeIDs == nil {
		w.RecipientEmployeeIDs = []string{}
	}
	if w.RecipientDepartments == nil {
		w.RecipientDepartments = []string{}
	}
	if !m.MeetingDate.IsZero() {
		date, err := wiredate.ISO.Encode(m.MeetingDate)
		if err != nil {
			return nil, err
		}
		w.MeetingDate = date
	}
	return json.Marshal(w)
}

// MemoForm holds raw inputs. Recipient lists are comma separated.
type MemoForm struct {
	Title       string
	MeetingType string
	MeetingDate string
	Priority    string
	Content     string
	Employees   string
	Departments string
	SentToAll   bool
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// BuildMemo validates a memo from the sender. A memo not sent to everyone
// needs at least one recipient.
func BuildMemo(f MemoForm, sentBy, sentByName string) (Memo, error) {
	var v form.Validator
	v.Required("title", f.Title)
	v.Required("content", f.Content)
	date, _ := v.Date("meetingDate", f.MeetingDate)
	employees := splitList(f.Employees)
	departments := splitList(f.Departments)
	if !f.SentToAll && len(employees) == 0 && len(departments) == 0 {
		v.Add("recipients", "choose at least one employee or department")
	}
	if err := v.Err(); err != nil {
		return Memo{}, err
	}
	priority := strings.TrimSpace(f.Priority)
	if priority == "" {
		priority = PriorityMedium
	}
	return Memo{
		Title:                strings.TrimSpace(f.Title),
		MeetingType:          strings.TrimSpace(f.MeetingType),
		MeetingDate:          date,
		Priority:             priority,
		Content:              strings.TrimSpace(f.Content),
		SentBy:               sentBy,
		SentByName:           sentByName,
		RecipientEmployeeIDs: employees,
		RecipientDepartments: departments,
		SentToAll:            f.SentToAll,
		Status:               "sent",
	}, nil
}
