package settings

import (
	"context"
	"sync"

	"github.com/writewithwrabit/wordstreak/models"
)

// MemoryStore keeps the record in process memory.
type MemoryStore struct {
	mu    sync.Mutex
	state models.StreakState
	saves int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: models.DefaultStreakState()}
}

var _ Store = (*MemoryStore)(nil)

func (s *MemoryStore) Load(ctx context.Context) (models.StreakState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, nil
}

func (s *MemoryStore) Save(ctx context.Context, state models.StreakState) error {
	if err := state.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.saves++
	return nil
}

// Saves returns how many times Save succeeded.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func (s *MemoryStore) Close() error {
	return nil
}
