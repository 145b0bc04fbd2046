package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDocumentTooLarge indicates an upload exceeds the size limit.
	ErrDocumentTooLarge = errors.New("document too large")

	// ErrEmbeddingUnavailable indicates the embedding backend is
	// unreachable. Raised at startup; the process should not continue
	// without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates the generation backend is not
	// configured or unreachable. Content generation substitutes a
	// fallback template instead of surfacing this to the end user.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrCorruptSnapshot indicates a persisted index snapshot is
	// partially present or unreadable. The index recovers by
	// reinitialising to empty.
	ErrCorruptSnapshot = errors.New("corrupt index snapshot")

	// ErrDimensionMismatch indicates a vector does not match the
	// index's embedding dimension.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
