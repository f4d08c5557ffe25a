package performance

import (
	"context"
	"slices"
	"sync"
)

type MemoryStore struct {
	mu      sync.Mutex
	nextID  int64
	reviews []Review
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) List(_ context.Context) ([]Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := slices.Clone(m.reviews)
	slices.SortStableFunc(out, newestFirst)
	return out, nil
}

func (m *MemoryStore) ListByEmployee(_ context.Context, employeeID string) ([]Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Review
	for _, r := range m.reviews {
		if r.EmployeeID == employeeID {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, newestFirst)
	return out, nil
}

func (m *MemoryStore) Create(_ context.Context, r Review) (Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	r.ID = m.nextID
	m.reviews = append(m.reviews, r)
	return r, nil
}

func (m *MemoryStore) Update(_ context.Context, id int64, r Review) (Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := slices.IndexFunc(m.reviews, func(x Review) bool { return x.ID == id })
	if idx < 0 {
		return Review{}, ErrNotFound
	}
	r.ID = id
	m.reviews[idx] = r
	return r, nil
}

func (m *MemoryStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := slices.IndexFunc(m.reviews, func(x Review) bool { return x.ID == id })
	if idx < 0 {
		return ErrNotFound
	}
	m.reviews = slices.Delete(m.reviews, idx, idx+1)
	return nil
}
