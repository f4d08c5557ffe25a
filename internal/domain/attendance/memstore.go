package attendance

import (
	"context"
	"slices"
	"sync"
	"time"

	"idms/internal/wiredate"
)

type MemoryStore struct {
	mu      sync.Mutex
	nextID  int64
	records []Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Get(_ context.Context, employeeID string, date wiredate.Date) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.indexOf(employeeID, date)
	if idx < 0 {
		return Record{}, ErrNotFound
	}
	return m.records[idx], nil
}

func (m *MemoryStore) Save(_ context.Context, rec Record) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec.UpdatedAt = time.Now().UTC()
	if idx := m.indexOf(rec.EmployeeID, rec.Date); idx >= 0 {
		rec.ID = m.records[idx].ID
		m.records[idx] = rec
		return rec, nil
	}
	m.nextID++
	rec.ID = m.nextID
	m.records = append(m.records, rec)
	return rec, nil
}

func (m *MemoryStore) ListByEmployee(_ context.Context, employeeID string) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Record
	for _, rec := range m.records {
		if rec.EmployeeID == employeeID {
			out = append(out, rec)
		}
	}
	slices.SortStableFunc(out, func(a, b Record) int {
		return b.Date.Time().Compare(a.Date.Time())
	})
	return out, nil
}

func (m *MemoryStore) indexOf(employeeID string, date wiredate.Date) int {
	return slices.IndexFunc(m.records, func(r Record) bool {
		return r.EmployeeID == employeeID && r.Date == date
	})
}
