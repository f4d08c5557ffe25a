package asset

import "context"

type StoreAPI interface {
	List(ctx context.Context) ([]Asset, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Asset, error)
	Create(ctx context.Context, a Asset) (Asset, error)
	Update(ctx context.Context, id int64, a Asset) (Asset, error)
	Delete(ctx context.Context, id int64) error
}
