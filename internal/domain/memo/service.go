package memo

import (
	"context"
	"fmt"
	"time"
)

type Service struct {
	Store StoreAPI
	Now   func() time.Time
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store, Now: time.Now}
}

// Send stores a memo. A memo with no recipients at all is rejected.
func (s *Service) Send(ctx context.Context, in Input) (Memo, error) {
	if in.Title == "" || in.Content == "" {
		return Memo{}, fmt.Errorf("%w: title and content are required", ErrInvalidInput)
	}
	employees := cleanList(in.RecipientEmployeeIDs)
	departments := cleanList(in.RecipientDepartments)
	if !in.SentToAll && len(employees) == 0 && len(departments) == 0 {
		return Memo{}, fmt.Errorf("%w: memo has no recipients", ErrInvalidInput)
	}
	status := in.Status
	if status == "" {
		status = StatusSent
	}
	return s.Store.Create(ctx, Memo{
		Title:                in.Title,
		MeetingType:          in.MeetingType,
		MeetingDate:          in.MeetingDate,
		Priority:             normalizePriority(in.Priority),
		Content:              in.Content,
		SentBy:               in.SentBy,
		SentByName:           in.SentByName,
		RecipientEmployeeIDs: employees,
		RecipientDepartments: departments,
		SentToAll:            in.SentToAll,
		SentAt:               s.Now().UTC(),
		Status:               status,
	})
}

func (s *Service) Feed(ctx context.Context, a Audience) ([]Memo, error) {
	return s.Store.ListFor(ctx, a)
}
