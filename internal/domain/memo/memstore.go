package memo

import (
	"context"
	"slices"
	"sync"
)

type MemoryStore struct {
	mu     sync.Mutex
	nextID int64
	memos  []Memo
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Create(_ context.Context, memo Memo) (Memo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	memo.ID = m.nextID
	m.memos = append(m.memos, memo)
	return memo, nil
}

func (m *MemoryStore) ListFor(_ context.Context, a Audience) ([]Memo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Memo
	for _, memo := range m.memos {
		if Reaches(memo, a) {
			out = append(out, memo)
		}
	}
	slices.SortStableFunc(out, func(x, y Memo) int {
		if c := y.SentAt.Compare(x.SentAt); c != 0 {
			return c
		}
		return int(y.ID - x.ID)
	})
	return out, nil
}
