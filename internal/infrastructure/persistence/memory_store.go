package persistence

import (
	"context"
	"sync"

	"tg_giftbuyer/internal/domain/entity"
)

// MemoryStore держит состояние в памяти процесса. Для тестов и dry-run.
type MemoryStore struct {
	mu    sync.Mutex
	state *entity.State
	saves int
}

func NewMemoryStore(initial *entity.State) *MemoryStore {
	s := &MemoryStore{}
	if initial != nil {
		c := initial.Clone()
		s.state = &c
	}
	return s
}

func (s *MemoryStore) Load(_ context.Context) (entity.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == nil {
		return entity.DefaultState(), nil
	}
	return s.state.Clone(), nil
}

func (s *MemoryStore) Save(_ context.Context, state entity.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := state.Clone()
	s.state = &c
	s.saves++
	return nil
}

// Saves: число успешных сохранений.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
