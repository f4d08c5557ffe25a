package finance

import (
	"context"
	"slices"
	"sync"
	"time"
)

// MemoryStore keeps expenses in process; ids are assigned per resource.
type MemoryStore struct {
	mu     sync.Mutex
	nextID map[string]int64
	items  map[string][]Expense
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID: map[string]int64{},
		items:  map[string][]Expense{},
	}
}

func (m *MemoryStore) List(_ context.Context, res Resource) ([]Expense, error) {
	if _, ok := Lookup(res.Name); !ok {
		return nil, ErrUnknownResource
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.items[res.Name]), nil
}

func (m *MemoryStore) Get(_ context.Context, res Resource, id int64) (Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.indexOf(res, id)
	if idx < 0 {
		return Expense{}, ErrNotFound
	}
	return m.items[res.Name][idx], nil
}

func (m *MemoryStore) Create(_ context.Context, res Resource, in ExpenseInput) (Expense, error) {
	if _, ok := Lookup(res.Name); !ok {
		return Expense{}, ErrUnknownResource
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID[res.Name]++
	e := Expense{
		ID:          m.nextID[res.Name],
		Date:        in.Date,
		Amount:      in.Amount,
		Description: in.Description,
		CreatedAt:   time.Now().UTC(),
	}
	if res.HasRecipient {
		e.Recipient = in.Recipient
	}
	m.items[res.Name] = append(m.items[res.Name], e)
	return e, nil
}

func (m *MemoryStore) Update(_ context.Context, res Resource, id int64, in ExpenseInput) (Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.indexOf(res, id)
	if idx < 0 {
		return Expense{}, ErrNotFound
	}
	e := m.items[res.Name][idx]
	e.Date = in.Date
	e.Amount = in.Amount
	e.Description = in.Description
	if res.HasRecipient {
		e.Recipient = in.Recipient
	}
	m.items[res.Name][idx] = e
	return e, nil
}

func (m *MemoryStore) Delete(_ context.Context, res Resource, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.indexOf(res, id)
	if idx < 0 {
		return ErrNotFound
	}
	m.items[res.Name] = slices.Delete(m.items[res.Name], idx, idx+1)
	return nil
}

func (m *MemoryStore) indexOf(res Resource, id int64) int {
	return slices.IndexFunc(m.items[res.Name], func(e Expense) bool { return e.ID == id })
}
