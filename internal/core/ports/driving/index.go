// Package driving provides interfaces for application entry points (primary/inbound ports).
package driving

import (
	"context"

	"github.com/personaapply/personaapply/internal/core/domain"
)

// SearchOptions configures a similarity search.
type SearchOptions struct {
	// OwnerID restricts results to chunks owned by this user.
	// Empty means no owner scoping.
	OwnerID string

	// Filter is an additional predicate over chunk metadata. Applied
	// after owner scoping; nil matches everything.
	Filter domain.ChunkPredicate
}

// IndexService is the retrieval kernel: a durable similarity index over
// document chunks, scoped by ownership, with a context assembler on top.
//
// Adding the same document ID twice duplicates its chunks; callers must
// delete before re-adding. Deletion triggers a full index rebuild and costs
// O(remaining chunks), so batch deletions where possible.
type IndexService interface {
	// AddDocument chunks and embeds text, appends the chunks to the
	// index, and persists. Not idempotent (see above).
	AddDocument(ctx context.Context, documentID, ownerID, text string, docType domain.DocumentType) error

	// DeleteDocument removes every chunk of the document by rebuilding
	// the index from the surviving chunk texts. Returns
	// domain.ErrNotFound when the document is not indexed.
	DeleteDocument(ctx context.Context, documentID string) error

	// Search returns up to k chunks nearest to the query, ascending by
	// distance. May return fewer than k when filtering exhausts the
	// bounded over-fetch expansions.
	Search(ctx context.Context, query string, k int, opts SearchOptions) ([]domain.ScoredChunk, error)

	// UserContext assembles the owner's chunks, in document order, into
	// a single context string for prompting. Returns a sentinel string
	// (not an error) when the owner has no chunks.
	UserContext(ctx context.Context, ownerID string, maxChunks int) (string, error)

	// Stats returns a read-only snapshot of index size.
	Stats(ctx context.Context) (domain.IndexStats, error)

	// Clear discards all index state and persists the empty index.
	Clear(ctx context.Context) error
}
