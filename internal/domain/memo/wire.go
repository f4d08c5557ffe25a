package memo

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"idms/internal/wiredate"
)

type memoWire struct {
	ID                   int64           `json:"id,omitempty"`
	Title                string          `json:"title"`
	MeetingType          string          `json:"meetingType"`
	MeetingDate          json.RawMessage `json:"meetingDate,omitempty"`
	Priority             string          `json:"priority"`
	Content              string          `json:"content"`
	SentBy               string          `json:"sentBy"`
	SentByName           string          `json:"sentByName"`
	RecipientEmployeeIDs []string        `json:"recipientEmployeeIds"`
	RecipientDepartments []string        `json:"recipientDepartments"`
	SentToAll            bool            `json:"sentToAll"`
	SentAt               string          `json:"sentAt,omitempty"`
	Status               string          `json:"status"`
}

func (m Memo) MarshalJSON() ([]byte, error) {
	out := memoWire{
		ID:                   m.ID,
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
	if out.RecipientEmployeeIDs == nil {
		out.RecipientEmployeeIDs = []string{}
	}
	if out.RecipientDepartments == nil {
		out.RecipientDepartments = []string{}
	}
	if !m.MeetingDate.IsZero() {
		date, err := wiredate.ISO.Encode(m.MeetingDate)
		if err != nil {
			return nil, err
		}
		out.MeetingDate = date
	}
	if !m.SentAt.IsZero() {
		out.SentAt = m.SentAt.UTC().Format(time.RFC3339)
	}
	return json.Marshal(out)
}

func (in *Input) UnmarshalJSON(raw []byte) error {
	var body memoWire
	if err := json.Unmarshal(raw, &body); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	date, err := wiredate.ISO.Decode(body.MeetingDate)
	if err != nil {
		return fmt.Errorf("%w: meetingDate: %v", ErrInvalidInput, err)
	}
	*in = Input{
		Title:                strings.TrimSpace(body.Title),
		MeetingType:          strings.TrimSpace(body.MeetingType),
		MeetingDate:          date,
		Priority:             strings.TrimSpace(body.Priority),
		Content:              strings.TrimSpace(body.Content),
		SentBy:               strings.TrimSpace(body.SentBy),
		SentByName:           strings.TrimSpace(body.SentByName),
		RecipientEmployeeIDs: body.RecipientEmployeeIDs,
		RecipientDepartments: body.RecipientDepartments,
		SentToAll:            body.SentToAll,
		Status:               strings.ToLower(strings.TrimSpace(body.Status)),
	}
	return nil
}
