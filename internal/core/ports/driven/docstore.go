package driven

import (
	"context"

	"github.com/personaapply/personaapply/internal/core/domain"
)

// DocumentStore persists user document records outside the index.
// The retrieval index keeps its own chunk copies; this store is the
// system of record for uploads.
type DocumentStore interface {
	// Save stores or updates a document record.
	Save(ctx context.Context, doc *domain.UserDocument) error

	// Get retrieves a document by ID. Returns domain.ErrNotFound when absent.
	Get(ctx context.Context, id string) (*domain.UserDocument, error)

	// Delete removes a document record.
	Delete(ctx context.Context, id string) error

	// ListByOwner returns all documents owned by a user.
	ListByOwner(ctx context.Context, ownerID string) ([]domain.UserDocument, error)
}
