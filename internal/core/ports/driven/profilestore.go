package driven

import (
	"context"

	"github.com/personaapply/personaapply/internal/core/domain"
)

// ProfileStore persists user profiles.
type ProfileStore interface {
	// Save stores or updates a profile.
	Save(ctx context.Context, profile *domain.UserProfile) error

	// Get retrieves a profile by UID. Returns domain.ErrNotFound when absent.
	Get(ctx context.Context, uid string) (*domain.UserProfile, error)

	// Delete removes a profile.
	Delete(ctx context.Context, uid string) error
}
