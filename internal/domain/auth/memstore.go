package auth

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"
)

type MemoryStore struct {
	mu     sync.Mutex
	nextID int64
	users  []User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) FindByEmail(_ context.Context, email string) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := slices.IndexFunc(m.users, func(u User) bool { return strings.EqualFold(u.Email, strings.TrimSpace(email)) })
	if idx < 0 {
		return User{}, ErrNotFound
	}
	return m.users[idx], nil
}

func (m *MemoryStore) FindByEmployeeID(_ context.Context, employeeID string) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := slices.IndexFunc(m.users, func(u User) bool { return u.EmployeeID != "" && u.EmployeeID == employeeID })
	if idx < 0 {
		return User{}, ErrNotFound
	}
	return m.users[idx], nil
}

func (m *MemoryStore) Create(_ context.Context, u User) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, u.Email) || (u.EmployeeID != "" && existing.EmployeeID == u.EmployeeID) {
			return User{}, ErrDuplicate
		}
	}
	m.nextID++
	u.ID = m.nextID
	u.CreatedAt = time.Now().UTC()
	m.users = append(m.users, u)
	return u, nil
}

func (m *MemoryStore) UpdateLastLogin(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := slices.IndexFunc(m.users, func(u User) bool { return u.ID == id })
	if idx < 0 {
		return ErrNotFound
	}
	now := time.Now().UTC()
	m.users[idx].LastLogin = &now
	return nil
}
