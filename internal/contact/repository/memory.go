package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/hutchinsdata/site/internal/contact"
)

var (
	ErrNotFound  = errors.New("submission not found")
	ErrDuplicate = errors.New("submission already stored")
)

// MemoryRepo keeps submissions in process memory. Used when MongoDB is not
// configured and in tests.
type MemoryRepo struct {
	mu    sync.RWMutex
	order []string
	store map[string]*contact.Submission
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]*contact.Submission)}
}

func (m *MemoryRepo) Save(_ context.Context, s *contact.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[s.ID]; ok {
		return ErrDuplicate
	}
	cp := *s
	m.store[s.ID] = &cp
	m.order = append(m.order, s.ID)
	return nil
}

func (m *MemoryRepo) Get(_ context.Context, id string) (*contact.Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.store[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, ErrNotFound
}

// List returns up to limit submissions, newest first. limit <= 0 means all.
func (m *MemoryRepo) List(_ context.Context, limit int) ([]*contact.Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*contact.Submission, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		cp := *m.store[m.order[i]]
		out = append(out, &cp)
	}
	return out, nil
}
