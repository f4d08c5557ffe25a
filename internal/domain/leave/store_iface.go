package leave

import "context"

type StoreAPI interface {
	CreateRequest(ctx context.Context, req Request) (Request, error)
	GetRequest(ctx context.Context, id int64) (Request, error)
	ListRequests(ctx context.Context) ([]Request, error)
	ListRequestsByEmployee(ctx context.Context, employeeID string) ([]Request, error)
	UpdateRequestStatus(ctx context.Context, id int64, status, hrComments string) (Request, error)
	ListHolidays(ctx context.Context) ([]Holiday, error)
	CreateHoliday(ctx context.Context, h Holiday) (Holiday, error)
	UpdateHoliday(ctx context.Context, id int64, h Holiday) (Holiday, error)
	DeleteHoliday(ctx context.Context, id int64) error
}
