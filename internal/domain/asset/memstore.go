package asset

import (
	"context"
	"slices"
	"sync"
)

type MemoryStore struct {
	mu     sync.Mutex
	nextID int64
	assets []Asset
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) List(_ context.Context) ([]Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.assets), nil
}

func (m *MemoryStore) ListByEmployee(_ context.Context, employeeID string) ([]Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Asset
	for _, a := range m.assets {
		if a.AssignedTo == employeeID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *MemoryStore) Create(_ context.Context, a Asset) (Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.serialTaken(a.SerialNumber, 0) {
		return Asset{}, ErrDuplicate
	}
	m.nextID++
	a.ID = m.nextID
	m.assets = append(m.assets, a)
	return a, nil
}

func (m *MemoryStore) Update(_ context.Context, id int64, a Asset) (Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := slices.IndexFunc(m.assets, func(x Asset) bool { return x.ID == id })
	if idx < 0 {
		return Asset{}, ErrNotFound
	}
	if m.serialTaken(a.SerialNumber, id) {
		return Asset{}, ErrDuplicate
	}
	a.ID = id
	m.assets[idx] = a
	return a, nil
}

func (m *MemoryStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := slices.IndexFunc(m.assets, func(x Asset) bool { return x.ID == id })
	if idx < 0 {
		return ErrNotFound
	}
	m.assets = slices.Delete(m.assets, idx, idx+1)
	return nil
}

func (m *MemoryStore) serialTaken(serial string, except int64) bool {
	return slices.ContainsFunc(m.assets, func(x Asset) bool {
		return x.SerialNumber == serial && x.ID != except
	})
}
