package driven

import "github.com/personaapply/personaapply/internal/core/domain"

// IndexSnapshot is the durable form of the retrieval index: the vector set,
// the co-indexed chunk metadata, and the document records, saved and loaded
// as one unit. Vectors[i] always corresponds to Chunks[i].
type IndexSnapshot struct {
	// ModelName is the embedding model the vectors were produced with.
	ModelName string

	// Dimension is the embedding vector size.
	Dimension int

	// Vectors holds one embedding per chunk.
	Vectors [][]float32

	// Chunks holds the metadata parallel to Vectors.
	Chunks []domain.Chunk

	// Documents summarises the indexed documents.
	Documents []domain.DocumentRecord
}

// SnapshotStore persists index snapshots atomically. A mutation is not
// complete until Save returns; a crash mid-save must leave the previous
// snapshot intact and loadable.
type SnapshotStore interface {
	// Save durably writes the snapshot, replacing any previous one.
	Save(snapshot *IndexSnapshot) error

	// Load reads the current snapshot. Returns domain.ErrNotFound when
	// no snapshot exists, and domain.ErrCorruptSnapshot when one exists
	// but cannot be decoded or is internally inconsistent.
	Load() (*IndexSnapshot, error)
}
