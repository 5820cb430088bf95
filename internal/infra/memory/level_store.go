package memory

import (
	"context"
	"sort"
	"sync"

	"ai-learning-service/internal/domain"
)

// LevelStore is an in-memory implementation of app.LevelRepository,
// useful for tests and running without Postgres.
type LevelStore struct {
	mu       sync.RWMutex
	byID     map[string]domain.Level
	byNumber map[int]string
}

func NewLevelStore(seed []domain.Level) *LevelStore {
	s := &LevelStore{
		byID:     make(map[string]domain.Level),
		byNumber: make(map[int]string),
	}
	for _, level := range seed {
		s.byID[level.ID] = level
		s.byNumber[level.LevelNumber] = level.ID
	}
	return s
}

func (s *LevelStore) FindByID(_ context.Context, id string) (domain.Level, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	level, ok := s.byID[id]
	if !ok {
		return domain.Level{}, domain.ErrLevelNotFound
	}
	return level, nil
}

func (s *LevelStore) FindByNumber(_ context.Context, levelNumber int) (domain.Level, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byNumber[levelNumber]
	if !ok {
		return domain.Level{}, domain.ErrLevelNotFound
	}
	return s.byID[id], nil
}

func (s *LevelStore) ListOrdered(_ context.Context) ([]domain.Level, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	levels := make([]domain.Level, 0, len(s.byID))
	for _, level := range s.byID {
		levels = append(levels, level)
	}
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].LevelNumber < levels[j].LevelNumber
	})
	return levels, nil
}

func (s *LevelStore) Save(_ context.Context, level domain.Level) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[level.ID]; !ok {
		return domain.ErrLevelNotFound
	}
	s.byID[level.ID] = level
	s.byNumber[level.LevelNumber] = level.ID
	return nil
}

func (s *LevelStore) InsertMany(_ context.Context, levels []domain.Level) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, level := range levels {
		s.byID[level.ID] = level
		s.byNumber[level.LevelNumber] = level.ID
	}
	return nil
}
