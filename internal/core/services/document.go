package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/personaapply/personaapply/internal/core/domain"
	"github.com/personaapply/personaapply/internal/core/ports/driven"
	"github.com/personaapply/personaapply/internal/core/ports/driving"
	"github.com/personaapply/personaapply/internal/extract"
	"github.com/personaapply/personaapply/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DefaultMaxUploadBytes caps uploaded documents at 10 MiB.
const DefaultMaxUploadBytes = 10 << 20

// DocumentService manages a user's career documents, keeping the metadata
// store and the retrieval index in step.
type DocumentService struct {
	docStore       driven.DocumentStore
	index          driving.IndexService
	extractor      driven.TextExtractor
	maxUploadBytes int
}

// DocumentOption configures the document service.
type DocumentOption func(*DocumentService)

// WithMaxUploadBytes overrides the upload size limit.
func WithMaxUploadBytes(n int) DocumentOption {
	return func(s *DocumentService) {
		if n > 0 {
			s.maxUploadBytes = n
		}
	}
}

// WithExtractor replaces the default text extractor.
func WithExtractor(e driven.TextExtractor) DocumentOption {
	return func(s *DocumentService) {
		if e != nil {
			s.extractor = e
		}
	}
}

// NewDocumentService creates a new document service.
func NewDocumentService(
	docStore driven.DocumentStore,
	index driving.IndexService,
	opts ...DocumentOption,
) *DocumentService {
	s := &DocumentService{
		docStore:       docStore,
		index:          index,
		extractor:      extract.New(),
		maxUploadBytes: DefaultMaxUploadBytes,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Upload extracts text from an uploaded file, stores the document record,
// and indexes its chunks.
func (s *DocumentService) Upload(
	ctx context.Context, ownerID, filename string, data []byte, docType domain.DocumentType,
) (*domain.UserDocument, error) {
	if ownerID == "" || filename == "" {
		return nil, fmt.Errorf("upload: %w", domain.ErrInvalidInput)
	}
	if !docType.Valid() {
		return nil, fmt.Errorf("upload: unknown document type %q: %w", docType, domain.ErrInvalidInput)
	}
	if len(data) > s.maxUploadBytes {
		return nil, fmt.Errorf("upload %s: %d bytes: %w", filename, len(data), domain.ErrDocumentTooLarge)
	}

	content := s.extractText(ctx, filename, data)

	now := time.Now().UTC()
	doc := &domain.UserDocument{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Type:      docType,
		Filename:  filename,
		Content:   content,
		SizeBytes: len(data),
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Record first, index second: an indexing failure must not leave an
	// indexed document the store knows nothing about.
	if err := s.docStore.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document %s: %w", filename, err)
	}

	if err := s.index.AddDocument(ctx, doc.ID, ownerID, content, docType); err != nil {
		// Roll the record back so a retry does not duplicate chunks.
		if delErr := s.docStore.Delete(ctx, doc.ID); delErr != nil {
			logger.Warn("Upload: failed to roll back record %s: %v", doc.ID, delErr)
		}
		return nil, fmt.Errorf("index document %s: %w", filename, err)
	}

	logger.Info("Document %s uploaded for %s (%d bytes)", doc.ID, ownerID, len(data))
	return doc, nil
}

// Delete removes a document record and its indexed chunks.
func (s *DocumentService) Delete(ctx context.Context, ownerID, documentID string) error {
	doc, err := s.docStore.Get(ctx, documentID)
	if err != nil {
		return fmt.Errorf("delete document %s: %w", documentID, err)
	}
	if doc.OwnerID != ownerID {
		// Not owned by the caller; indistinguishable from absent.
		return fmt.Errorf("delete document %s: %w", documentID, domain.ErrNotFound)
	}

	if err := s.index.DeleteDocument(ctx, documentID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("deindex document %s: %w", documentID, err)
	}

	if err := s.docStore.Delete(ctx, documentID); err != nil {
		return fmt.Errorf("delete document record %s: %w", documentID, err)
	}

	logger.Info("Document %s deleted for %s", documentID, ownerID)
	return nil
}

// ListByOwner returns all documents owned by a user.
func (s *DocumentService) ListByOwner(ctx context.Context, ownerID string) ([]domain.UserDocument, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("list documents: %w", domain.ErrInvalidInput)
	}
	return s.docStore.ListByOwner(ctx, ownerID)
}

// extractText converts an uploaded payload to plain text. Binary or
// undecodable content degrades to a filename placeholder rather than
// failing the upload.
func (s *DocumentService) extractText(ctx context.Context, filename string, data []byte) string {
	text, err := s.extractor.Extract(ctx, filename, data)
	if err != nil {
		logger.Warn("Upload: extracting %s: %v", filename, err)
		return fmt.Sprintf("Document: %s", filename)
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Sprintf("Document: %s", filename)
	}
	return text
}
