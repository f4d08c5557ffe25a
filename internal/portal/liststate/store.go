// Package liststate holds a page's cached copy of one collection.
package liststate

import (
	"slices"
	"sync"
)

// Placement decides where UpsertByID puts a record whose key is new.
type Placement int

const (
	Append Placement = iota
	Prepend
)

// Store is an ordered, key-addressed list. The order is whatever the
// backend returned plus local inserts; the store never sorts.
type Store[T any, K comparable] struct {
	mu        sync.RWMutex
	items     []T
	key       func(T) K
	placement Placement
}

func New[T any, K comparable](key func(T) K, placement Placement) *Store[T, K] {
	return &Store[T, K]{key: key, placement: placement}
}

func (s *Store[T, K]) ReplaceAll(records []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = slices.Clone(records)
}

// UpsertByID replaces the record with the same key in place, or inserts it
// at the store's placement.
func (s *Store[T, K]) UpsertByID(record T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := s.key(record)
	if i := s.indexLocked(k); i >= 0 {
		s.items[i] = record
		return
	}
	if s.placement == Prepend {
		s.items = slices.Insert(s.items, 0, record)
		return
	}
	s.items = append(s.items, record)
}

// RemoveByID drops the record with key k and reports whether it was there.
func (s *Store[T, K]) RemoveByID(k K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(k)
	if i < 0 {
		return false
	}
	s.items = slices.Delete(s.items, i, i+1)
	return true
}

func (s *Store[T, K]) Get(k K) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexLocked(k); i >= 0 {
		return s.items[i], true
	}
	var zero T
	return zero, false
}

// Items returns a copy in display order.
func (s *Store[T, K]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

func (s *Store[T, K]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store[T, K]) indexLocked(k K) int {
	return slices.IndexFunc(s.items, func(item T) bool { return s.key(item) == k })
}
