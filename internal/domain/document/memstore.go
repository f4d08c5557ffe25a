package document

import (
	"context"
	"slices"
	"sync"
	"time"
)

type MemoryStore struct {
	mu     sync.Mutex
	nextID int64
	files  []File
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) List(_ context.Context) ([]Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Document, 0, len(m.files))
	for _, f := range m.files {
		out = append(out, f.Document)
	}
	return out, nil
}

func (m *MemoryStore) ListByEmployee(_ context.Context, employeeID string) ([]Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Document
	for _, f := range m.files {
		if f.EmployeeID == employeeID {
			out = append(out, f.Document)
		}
	}
	return out, nil
}

func (m *MemoryStore) Put(_ context.Context, f File) (Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f.Content = slices.Clone(f.Content)
	f.UploadedAt = time.Now().UTC()
	idx := slices.IndexFunc(m.files, func(x File) bool {
		return x.EmployeeID == f.EmployeeID && x.DocumentType == f.DocumentType
	})
	if idx >= 0 {
		f.ID = m.files[idx].ID
		m.files[idx] = f
		return f.Document, nil
	}
	m.nextID++
	f.ID = m.nextID
	m.files = append(m.files, f)
	return f.Document, nil
}

func (m *MemoryStore) Get(_ context.Context, employeeID, docType string) (File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := slices.IndexFunc(m.files, func(x File) bool {
		return x.EmployeeID == employeeID && x.DocumentType == docType
	})
	if idx < 0 {
		return File{}, ErrNotFound
	}
	f := m.files[idx]
	f.Content = slices.Clone(f.Content)
	return f, nil
}

func (m *MemoryStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := slices.IndexFunc(m.files, func(x File) bool { return x.ID == id })
	if idx < 0 {
		return ErrNotFound
	}
	m.files = slices.Delete(m.files, idx, idx+1)
	return nil
}
