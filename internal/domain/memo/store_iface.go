package memo

import "context"

type StoreAPI interface {
	Create(ctx context.Context, m Memo) (Memo, error)
	ListFor(ctx context.Context, a Audience) ([]Memo, error)
}
