package asset

import (
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

func (s *Service) List(ctx context.Context) ([]Asset, error) {
	return s.Store.List(ctx)
}

func (s *Service) ListByEmployee(ctx context.Context, employeeID string) ([]Asset, error) {
	return s.Store.ListByEmployee(ctx, employeeID)
}

func (s *Service) Create(ctx context.Context, in Input) (Asset, error) {
	a, err := normalize(in)
	if err != nil {
		return Asset{}, err
	}
	return s.Store.Create(ctx, a)
}

func (s *Service) Update(ctx context.Context, id int64, in Input) (Asset, error) {
	a, err := normalize(in)
	if err != nil {
		return Asset{}, err
	}
	return s.Store.Update(ctx, id, a)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.Store.Delete(ctx, id)
}

// normalize upper-cases the enums and applies ACTIVE/GOOD defaults.
func normalize(in Input) (Asset, error) {
	a := Asset{
		AssetName:    strings.TrimSpace(in.AssetName),
		Category:     strings.TrimSpace(in.Category),
		SerialNumber: strings.TrimSpace(in.SerialNumber),
		Status:       strings.ToUpper(strings.TrimSpace(in.Status)),
		Condition:    strings.ToUpper(strings.TrimSpace(in.Condition)),
		AssignedTo:   strings.TrimSpace(in.AssignedTo),
	}
	if a.AssetName == "" || a.SerialNumber == "" {
		return Asset{}, fmt.Errorf("%w: assetName and serialNumber are required", ErrInvalidInput)
	}
	if a.Status == "" {
		a.Status = StatusActive
	}
	if a.Condition == "" {
		a.Condition = ConditionGood
	}
	if !slices.Contains(Statuses, a.Status) {
		return Asset{}, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, in.Status)
	}
	if !slices.Contains(Conditions, a.Condition) {
		return Asset{}, fmt.Errorf("%w: unknown condition %q", ErrInvalidInput, in.Condition)
	}
	return a, nil
}
