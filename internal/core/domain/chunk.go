package domain

// Chunk is the atomic retrieval unit: a bounded text window carved out of a
// user document, carried alongside its embedding vector in the index.
// The vector itself lives in a parallel slice inside the index, co-indexed
// positionally with the chunk metadata.
type Chunk struct {
	// Text is a contiguous window of the source document, at most the
	// configured chunk size long and overlapping the previous window.
	Text string

	// OwnerID is the user who owns the source document. Immutable.
	OwnerID string

	// DocumentID links back to the owning document. Immutable.
	// This is a back-reference only; the index does not own documents.
	DocumentID string

	// ChunkIndex is the 0-based position of this chunk within its
	// document, carried for traceability.
	ChunkIndex int

	// DocumentType classifies the source document (resume, portfolio,
	// etc) for display and optional filtering.
	DocumentType DocumentType
}

// ChunkPredicate filters chunks during search. A nil predicate matches
// every chunk.
type ChunkPredicate func(Chunk) bool

// OwnedBy returns a predicate matching chunks owned by the given user.
func OwnedBy(ownerID string) ChunkPredicate {
	return func(c Chunk) bool {
		return c.OwnerID == ownerID
	}
}

// ScoredChunk is a search result: a chunk and its distance from the query.
// Lower distance means a closer match. The chunk is embedded so its fields
// read directly off the result.
type ScoredChunk struct {
	Chunk
	Distance float64
}

// IndexStats is a read-only snapshot of index size.
type IndexStats struct {
	TotalChunks    int
	TotalDocuments int
}
