package services

import (
	"context"
	"fmt"
	"time"

	"github.com/personaapply/personaapply/internal/core/domain"
	"github.com/personaapply/personaapply/internal/core/ports/driven"
	"github.com/personaapply/personaapply/internal/core/ports/driving"
	"github.com/personaapply/personaapply/internal/logger"
)

// Ensure ProfileService implements the interface.
var _ driving.ProfileService = (*ProfileService)(nil)

// ProfileService manages user profiles.
type ProfileService struct {
	profileStore driven.ProfileStore
	documents    driving.DocumentService
}

// NewProfileService creates a new profile service. The documents service is
// used to cascade deletion of a user's documents.
func NewProfileService(profileStore driven.ProfileStore, documents driving.DocumentService) *ProfileService {
	return &ProfileService{
		profileStore: profileStore,
		documents:    documents,
	}
}

// Save creates or updates a profile.
func (s *ProfileService) Save(ctx context.Context, profile *domain.UserProfile) error {
	if profile == nil || profile.UID == "" || profile.Email == "" {
		return fmt.Errorf("save profile: %w", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	if err := s.profileStore.Save(ctx, profile); err != nil {
		return fmt.Errorf("save profile %s: %w", profile.UID, err)
	}
	return nil
}

// Get retrieves a profile by UID.
func (s *ProfileService) Get(ctx context.Context, uid string) (*domain.UserProfile, error) {
	if uid == "" {
		return nil, fmt.Errorf("get profile: %w", domain.ErrInvalidInput)
	}
	return s.profileStore.Get(ctx, uid)
}

// Delete removes a profile together with the user's documents and indexed
// chunks.
func (s *ProfileService) Delete(ctx context.Context, uid string) error {
	if uid == "" {
		return fmt.Errorf("delete profile: %w", domain.ErrInvalidInput)
	}

	if s.documents != nil {
		docs, err := s.documents.ListByOwner(ctx, uid)
		if err != nil {
			return fmt.Errorf("delete profile %s: list documents: %w", uid, err)
		}
		for _, doc := range docs {
			if err := s.documents.Delete(ctx, uid, doc.ID); err != nil {
				return fmt.Errorf("delete profile %s: document %s: %w", uid, doc.ID, err)
			}
		}
	}

	if err := s.profileStore.Delete(ctx, uid); err != nil {
		return fmt.Errorf("delete profile %s: %w", uid, err)
	}

	logger.Info("Profile %s deleted", uid)
	return nil
}
