package users

import (
	"context"
	"slices"
	"strconv"
	"sync"
)

// MemoryStore keeps users in process memory, in insertion order. Ids are sequential.
type MemoryStore struct {
	mu    sync.RWMutex
	seq   int
	order []string
	users map[string]User
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: map[string]User{}}
}

func (s *MemoryStore) List(context.Context) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]User, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.users[id])
	}

	return out, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return User{}, ErrNotFound
	}

	return u, nil
}

func (s *MemoryStore) Create(_ context.Context, u User) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	u.ID = strconv.Itoa(s.seq)
	s.users[u.ID] = u
	s.order = append(s.order, u.ID)

	return u, nil
}

func (s *MemoryStore) Update(_ context.Context, u User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.ID]; !ok {
		return ErrNotFound
	}

	s.users[u.ID] = u

	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}

	delete(s.users, id)
	s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == id })

	return nil
}
