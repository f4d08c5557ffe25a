package document

import "context"

type StoreAPI interface {
	List(ctx context.Context) ([]Document, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Document, error)
	// Put inserts or replaces the employee's document of the upload's type.
	Put(ctx context.Context, f File) (Document, error)
	Get(ctx context.Context, employeeID, docType string) (File, error)
	Delete(ctx context.Context, id int64) error
}
