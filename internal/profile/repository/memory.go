package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/profilehub/profilehub/internal/profile"
)

// MemoryRepo is an in-process implementation of the gateway used by unit
// tests and when the service runs without a MongoDB connection. Documents are
// stored as copies so callers cannot mutate repository state through retained
// pointers.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]profile.UserProfile
	seq   map[string]int // insertion order, tie-break for equal created_at
	next  int
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]profile.UserProfile), seq: make(map[string]int)}
}

func (m *MemoryRepo) Insert(ctx context.Context, p *profile.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[p.ID] = clone(p)
	m.seq[p.ID] = m.next
	m.next++
	return nil
}

func (m *MemoryRepo) FindByID(ctx context.Context, id string) (*profile.UserProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := clone(&p)
	return &cp, nil
}

func (m *MemoryRepo) FindPage(ctx context.Context, skip, limit int64) ([]*profile.UserProfile, error) {
	if limit <= 0 {
		return []*profile.UserProfile{}, nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := make([]profile.UserProfile, 0, len(m.store))
	for _, p := range m.store {
		all = append(all, clone(&p))
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return m.seq[all[i].ID] > m.seq[all[j].ID]
	})
	if skip >= int64(len(all)) {
		return []*profile.UserProfile{}, nil
	}
	all = all[skip:]
	if limit < int64(len(all)) {
		all = all[:limit]
	}
	out := make([]*profile.UserProfile, len(all))
	for i := range all {
		out[i] = &all[i]
	}
	return out, nil
}

func (m *MemoryRepo) Replace(ctx context.Context, id string, p *profile.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	m.store[id] = clone(p)
	return nil
}

func (m *MemoryRepo) DeleteByID(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	delete(m.store, id)
	delete(m.seq, id)
	return nil
}

func clone(p *profile.UserProfile) profile.UserProfile {
	cp := *p
	cp.ContentItems = append([]profile.ContentItem(nil), p.ContentItems...)
	return cp
}
