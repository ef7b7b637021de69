package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/writewithwrabit/wordstreak/models"
)

// JSONStore keeps the record in a single JSON document.
type JSONStore struct {
	filePath string
	mu       sync.Mutex
}

// NewJSONStore returns a store backed by filePath. The file is created on
// the first Save.
func NewJSONStore(filePath string) (*JSONStore, error) {
	if filePath == "" {
		return nil, errors.New("json store: empty path")
	}
	return &JSONStore{filePath: filePath}, nil
}

var _ Store = (*JSONStore)(nil)

func (s *JSONStore) Load(ctx context.Context) (models.StreakState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if errors.Is(err, os.ErrNotExist) {
		return models.DefaultStreakState(), nil
	}
	if err != nil {
		return models.StreakState{}, fmt.Errorf("read settings: %w", err)
	}

	var partial models.PartialStreakState
	if err := json.Unmarshal(data, &partial); err != nil {
		return models.StreakState{}, fmt.Errorf("decode settings: %w", err)
	}
	state := partial.Merge()
	if err := state.Validate(); err != nil {
		return models.StreakState{}, err
	}
	return state, nil
}

func (s *JSONStore) Save(ctx context.Context, state models.StreakState) error {
	if err := state.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.filePath), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := s.filePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpPath, s.filePath)
}

func (s *JSONStore) Close() error {
	return nil
}
