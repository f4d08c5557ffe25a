package auth

import "context"

type StoreAPI interface {
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByEmployeeID(ctx context.Context, employeeID string) (User, error)
	Create(ctx context.Context, u User) (User, error)
	UpdateLastLogin(ctx context.Context, id int64) error
}
