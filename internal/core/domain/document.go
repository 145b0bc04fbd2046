package domain

import "time"

// DocumentType classifies a user's career document.
type DocumentType string

// Supported document types.
const (
	DocumentTypeResume    DocumentType = "resume"
	DocumentTypeGitHub    DocumentType = "github"
	DocumentTypeLinkedIn  DocumentType = "linkedin"
	DocumentTypePortfolio DocumentType = "portfolio"
	DocumentTypeOther     DocumentType = "other"
)

// Valid reports whether t is one of the supported document types.
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentTypeResume, DocumentTypeGitHub, DocumentTypeLinkedIn,
		DocumentTypePortfolio, DocumentTypeOther:
		return true
	}
	return false
}

// UserDocument is the stored record of an uploaded career document.
// The extracted text is retained in full so the index can re-chunk and
// re-embed it after a rebuild.
type UserDocument struct {
	// ID is the unique identifier for the document.
	ID string

	// OwnerID is the user who uploaded the document.
	OwnerID string

	// Type classifies the document.
	Type DocumentType

	// Filename is the original upload filename.
	Filename string

	// Content is the extracted UTF-8 text.
	Content string

	// SizeBytes is the size of the uploaded payload.
	SizeBytes int

	// CreatedAt is when the document was first stored.
	CreatedAt time.Time

	// UpdatedAt is when the document was last updated.
	UpdatedAt time.Time
}

// DocumentRecord summarises a document inside the index. It exists so
// deletion and statistics never require scanning every chunk.
type DocumentRecord struct {
	// DocumentID identifies the document.
	DocumentID string

	// OwnerID is the user who owns the document.
	OwnerID string

	// Type classifies the document.
	Type DocumentType

	// ChunkCount is the number of chunks the document contributed.
	// Invariant: equals the number of indexed chunks whose DocumentID
	// matches.
	ChunkCount int
}
