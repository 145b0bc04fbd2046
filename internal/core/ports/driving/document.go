package driving

import (
	"context"

	"github.com/personaapply/personaapply/internal/core/domain"
)

// DocumentService manages a user's career documents: ingestion, listing,
// and removal, keeping the metadata store and the retrieval index in step.
type DocumentService interface {
	// Upload extracts text from an uploaded file, stores the document
	// record, and indexes its chunks. Returns domain.ErrDocumentTooLarge
	// when data exceeds the configured size limit.
	Upload(ctx context.Context, ownerID, filename string, data []byte, docType domain.DocumentType) (*domain.UserDocument, error)

	// Delete removes a document record and its indexed chunks. Returns
	// domain.ErrNotFound when the document does not exist or is not
	// owned by ownerID.
	Delete(ctx context.Context, ownerID, documentID string) error

	// ListByOwner returns all documents owned by a user.
	ListByOwner(ctx context.Context, ownerID string) ([]domain.UserDocument, error)
}
