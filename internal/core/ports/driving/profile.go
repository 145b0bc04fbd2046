package driving

import (
	"context"

	"github.com/personaapply/personaapply/internal/core/domain"
)

// ProfileService manages user profiles.
type ProfileService interface {
	// Save creates or updates a profile.
	Save(ctx context.Context, profile *domain.UserProfile) error

	// Get retrieves a profile by UID.
	Get(ctx context.Context, uid string) (*domain.UserProfile, error)

	// Delete removes a profile together with the user's documents and
	// indexed chunks.
	Delete(ctx context.Context, uid string) error
}
