package leave

import (
	"context"
	"slices"
	"sync"
	"time"
)

type MemoryStore struct {
	mu            sync.Mutex
	nextRequestID int64
	nextHolidayID int64
	requests      []Request
	holidays      []Holiday
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) CreateRequest(_ context.Context, req Request) (Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextRequestID++
	req.ID = m.nextRequestID
	req.CreatedAt = time.Now().UTC()
	m.requests = append(m.requests, req)
	return req, nil
}

func (m *MemoryStore) GetRequest(_ context.Context, id int64) (Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.requestIndex(id)
	if idx < 0 {
		return Request{}, ErrNotFound
	}
	return m.requests[idx], nil
}

func (m *MemoryStore) ListRequests(_ context.Context) ([]Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := slices.Clone(m.requests)
	slices.Reverse(out)
	return out, nil
}

func (m *MemoryStore) ListRequestsByEmployee(_ context.Context, employeeID string) ([]Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Request
	for i := len(m.requests) - 1; i >= 0; i-- {
		if m.requests[i].EmployeeID == employeeID {
			out = append(out, m.requests[i])
		}
	}
	return out, nil
}

func (m *MemoryStore) UpdateRequestStatus(_ context.Context, id int64, status, hrComments string) (Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.requestIndex(id)
	if idx < 0 {
		return Request{}, ErrNotFound
	}
	if m.requests[idx].Status != StatusPending {
		return Request{}, ErrInvalidState
	}
	m.requests[idx].Status = status
	m.requests[idx].HRComments = hrComments
	return m.requests[idx], nil
}

func (m *MemoryStore) ListHolidays(_ context.Context) ([]Holiday, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := slices.Clone(m.holidays)
	slices.SortStableFunc(out, func(a, b Holiday) int {
		return a.StartDate.Time().Compare(b.StartDate.Time())
	})
	return out, nil
}

func (m *MemoryStore) CreateHoliday(_ context.Context, h Holiday) (Holiday, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextHolidayID++
	h.ID = m.nextHolidayID
	m.holidays = append(m.holidays, h)
	return h, nil
}

func (m *MemoryStore) UpdateHoliday(_ context.Context, id int64, h Holiday) (Holiday, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := slices.IndexFunc(m.holidays, func(x Holiday) bool { return x.ID == id })
	if idx < 0 {
		return Holiday{}, ErrNotFound
	}
	h.ID = id
	m.holidays[idx] = h
	return h, nil
}

func (m *MemoryStore) DeleteHoliday(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := slices.IndexFunc(m.holidays, func(x Holiday) bool { return x.ID == id })
	if idx < 0 {
		return ErrNotFound
	}
	m.holidays = slices.Delete(m.holidays, idx, idx+1)
	return nil
}

func (m *MemoryStore) requestIndex(id int64) int {
	return slices.IndexFunc(m.requests, func(r Request) bool { return r.ID == id })
}
