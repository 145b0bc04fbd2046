package memory

import (
	"context"
	"sync"

	"github.com/personaapply/personaapply/internal/core/domain"
	"github.com/personaapply/personaapply/internal/core/ports/driven"
)

// Ensure ProfileStore implements the interface.
var _ driven.ProfileStore = (*ProfileStore)(nil)

// ProfileStore is an in-memory implementation of driven.ProfileStore.
type ProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]domain.UserProfile
}

// NewProfileStore creates a new in-memory profile store.
func NewProfileStore() *ProfileStore {
	return &ProfileStore{
		profiles: make(map[string]domain.UserProfile),
	}
}

// Save stores or updates a profile.
func (s *ProfileStore) Save(_ context.Context, profile *domain.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.UID] = *profile
	return nil
}

// Get retrieves a profile by UID.
func (s *ProfileStore) Get(_ context.Context, uid string) (*domain.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[uid]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &profile, nil
}

// Delete removes a profile.
func (s *ProfileStore) Delete(_ context.Context, uid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[uid]; !ok {
		return domain.ErrNotFound
	}
	delete(s.profiles, uid)
	return nil
}
