package settings

import (
	"context"
	"sync"
	"time"
)

type memoryStore struct {
	mu       sync.RWMutex
	profiles map[string]Profile
}

func newMemoryStore() *memoryStore {
	return &memoryStore{profiles: make(map[string]Profile)}
}

func (s *memoryStore) Get(ctx context.Context, userID string) (Profile, bool, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[userID]
	return profile, ok, nil
}

func (s *memoryStore) Put(ctx context.Context, profile Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	profile.UpdatedAt = time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.UserID] = profile
	return nil
}
