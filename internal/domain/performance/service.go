package performance

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
)

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

func (s *Service) List(ctx context.Context) ([]Review, error) {
	return s.Store.List(ctx)
}

// ListByEmployee returns the employee's reviews, latest review date first.
func (s *Service) ListByEmployee(ctx context.Context, employeeID string) ([]Review, error) {
	return s.Store.ListByEmployee(ctx, employeeID)
}

func (s *Service) Create(ctx context.Context, in Input) (Review, error) {
	r, err := normalize(in)
	if err != nil {
		return Review{}, err
	}
	return s.Store.Create(ctx, r)
}

func (s *Service) Update(ctx context.Context, id int64, in Input) (Review, error) {
	r, err := normalize(in)
	if err != nil {
		return Review{}, err
	}
	return s.Store.Update(ctx, id, r)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.Store.Delete(ctx, id)
}

func normalize(in Input) (Review, error) {
	r := Review{
		EmployeeID:     in.EmployeeID,
		EmployeeName:   in.EmployeeName,
		Position:       in.Position,
		Department:     in.Department,
		ReviewStatus:   strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(in.ReviewStatus), " ", "_")),
		Rating:         in.Rating,
		LastReviewDate: in.LastReviewDate,
		NextReviewDate: in.NextReviewDate,
		Goals:          in.Goals,
		Feedback:       in.Feedback,
		Achievements:   in.Achievements,
		Reviewer:       in.Reviewer,
	}
	if r.EmployeeID == "" {
		return Review{}, fmt.Errorf("%w: employeeId is required", ErrInvalidInput)
	}
	if r.Rating < MinRating || r.Rating > MaxRating {
		return Review{}, fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, MinRating, MaxRating)
	}
	if r.LastReviewDate.IsZero() {
		return Review{}, fmt.Errorf("%w: lastReviewDate is required", ErrInvalidInput)
	}
	if !r.NextReviewDate.IsZero() && r.NextReviewDate.Before(r.LastReviewDate) {
		return Review{}, fmt.Errorf("%w: nextReviewDate is before lastReviewDate", ErrInvalidInput)
	}
	if r.ReviewStatus == "" {
		r.ReviewStatus = StatusPending
	}
	if !slices.Contains(Statuses, r.ReviewStatus) {
		return Review{}, fmt.Errorf("%w: unknown review status %q", ErrInvalidInput, in.ReviewStatus)
	}
	return r, nil
}

// newestFirst orders reviews by last review date, then id, descending.
func newestFirst(a, b Review) int {
	switch {
	case a.LastReviewDate.After(b.LastReviewDate):
		return -1
	case a.LastReviewDate.Before(b.LastReviewDate):
		return 1
	}
	return cmp.Compare(b.ID, a.ID)
}
