package settings

import "context"

type store interface {
	Get(ctx context.Context, userID string) (Profile, bool, error)
	Put(ctx context.Context, profile Profile) error
}

// Service manages per-user weight profiles via an underlying store.
type Service struct {
	store store
}

// NewService constructs a Service with an in-memory store.
func NewService() *Service {
	return &Service{store: newMemoryStore()}
}

// NewPostgresService constructs a Service backed by Postgres.
func NewPostgresService(pgStore store) *Service {
	return &Service{store: pgStore}
}

// Get returns the user's weight profile, falling back to the defaults
// {0.5, 0.3, 0.1, 0.1} when none is stored.
func (s *Service) Get(ctx context.Context, userID string) (Profile, error) {
	profile, ok, err := s.store.Get(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	if !ok {
		return defaultProfile(userID), nil
	}
	return profile, nil
}

// Put stores the user's weight profile as given.
func (s *Service) Put(ctx context.Context, profile Profile) error {
	return s.store.Put(ctx, profile)
}
