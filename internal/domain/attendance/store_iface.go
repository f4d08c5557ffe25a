package attendance

import (
	"context"

	"idms/internal/wiredate"
)

type StoreAPI interface {
	Get(ctx context.Context, employeeID string, date wiredate.Date) (Record, error)
	Save(ctx context.Context, rec Record) (Record, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Record, error)
}
