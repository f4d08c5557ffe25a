package finance

import (
	"context"
	"fmt"
	"io"
	"strings"
)

type Service struct {
	Store    StoreAPI
	Currency string
}

func NewService(store StoreAPI, currency string) *Service {
	return &Service{Store: store, Currency: currency}
}

// Check applies the rules the struct tags cannot express.
func Check(res Resource, in ExpenseInput) error {
	var problems []string
	if in.Date.IsZero() {
		problems = append(problems, "date is required")
	} else if !in.Date.Valid() {
		problems = append(problems, "date is not a calendar day")
	}
	if in.Amount.IsNegative() {
		problems = append(problems, "amount must not be negative")
	}
	if res.HasRecipient && in.Recipient == "" {
		problems = append(problems, "recipient is required")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(problems, "; "))
	}
	return nil
}

func (s *Service) List(ctx context.Context, res Resource) ([]Expense, error) {
	return s.Store.List(ctx, res)
}

func (s *Service) Create(ctx context.Context, res Resource, in ExpenseInput) (Expense, error) {
	if err := Check(res, in); err != nil {
		return Expense{}, err
	}
	return s.Store.Create(ctx, res, in)
}

func (s *Service) Update(ctx context.Context, res Resource, id int64, in ExpenseInput) (Expense, error) {
	if err := Check(res, in); err != nil {
		return Expense{}, err
	}
	return s.Store.Update(ctx, res, id, in)
}

func (s *Service) Delete(ctx context.Context, res Resource, id int64) error {
	return s.Store.Delete(ctx, res, id)
}

// Report writes the PDF summary of one resource to w.
func (s *Service) Report(ctx context.Context, res Resource, w io.Writer) error {
	items, err := s.Store.List(ctx, res)
	if err != nil {
		return err
	}
	return RenderReport(w, res, items, s.Currency)
}
