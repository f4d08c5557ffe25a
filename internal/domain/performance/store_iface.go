package performance

import "context"

type StoreAPI interface {
	List(ctx context.Context) ([]Review, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Review, error)
	Create(ctx context.Context, r Review) (Review, error)
	Update(ctx context.Context, id int64, r Review) (Review, error)
	Delete(ctx context.Context, id int64) error
}
