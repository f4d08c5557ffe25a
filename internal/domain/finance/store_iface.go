package finance

import "context"

type StoreAPI interface {
	List(ctx context.Context, res Resource) ([]Expense, error)
	Get(ctx context.Context, res Resource, id int64) (Expense, error)
	Create(ctx context.Context, res Resource, in ExpenseInput) (Expense, error)
	Update(ctx context.Context, res Resource, id int64, in ExpenseInput) (Expense, error)
	Delete(ctx context.Context, res Resource, id int64) error
}
