package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/personaapply/personaapply/internal/core/domain"
	"github.com/personaapply/personaapply/internal/core/ports/driven"
	"github.com/personaapply/personaapply/internal/core/ports/driving"
	"github.com/personaapply/personaapply/internal/logger"
	"github.com/personaapply/personaapply/internal/splitter"
)

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

// EmptyContextSentinel is returned by UserContext when the owner has no
// indexed chunks. It is a defined value, not an error and not an empty
// string, so callers can distinguish "no documents" from a blank context.
const EmptyContextSentinel = "No user documents found."

// Default tuning values.
const (
	// DefaultSearchK is the result count when the caller passes k <= 0.
	DefaultSearchK = 5

	// DefaultMaxContextChunks caps UserContext assembly.
	DefaultMaxContextChunks = 10

	// DefaultOverfetchMultiplier is the initial raw-fetch factor used to
	// compensate for post-search filtering.
	DefaultOverfetchMultiplier = 2

	// DefaultMaxExpansions bounds how many times a filtered search grows
	// its raw fetch before returning fewer than k results.
	DefaultMaxExpansions = 3
)

// contextSeparator divides chunks in an assembled user context.
const contextSeparator = "---"

// IndexService is the retrieval kernel: a flat similarity index over
// document chunks with owner-scoped search and a context assembler.
//
// The vector set and the chunk metadata set are parallel slices, co-indexed
// positionally; every mutation preserves that correspondence and persists a
// snapshot before returning. Mutations build fresh slices and swap them in,
// so a failed persist leaves both the in-memory index and the durable
// snapshot untouched.
type IndexService struct {
	mu        sync.RWMutex
	split     *splitter.Splitter
	embedder  driven.EmbeddingService
	snapshots driven.SnapshotStore

	dimension int
	vectors   [][]float32
	chunks    []domain.Chunk
	documents []domain.DocumentRecord

	overfetch        int
	maxExpansions    int
	maxContextChunks int
}

// IndexOption configures the index service.
type IndexOption func(*IndexService)

// WithSplitter replaces the default text splitter.
func WithSplitter(s *splitter.Splitter) IndexOption {
	return func(svc *IndexService) {
		if s != nil {
			svc.split = s
		}
	}
}

// WithOverfetchMultiplier sets the initial raw-fetch factor for filtered
// searches.
func WithOverfetchMultiplier(m int) IndexOption {
	return func(svc *IndexService) {
		if m > 1 {
			svc.overfetch = m
		}
	}
}

// WithMaxExpansions bounds fetch growth for filtered searches.
func WithMaxExpansions(n int) IndexOption {
	return func(svc *IndexService) {
		if n > 0 {
			svc.maxExpansions = n
		}
	}
}

// WithMaxContextChunks caps UserContext assembly.
func WithMaxContextChunks(n int) IndexOption {
	return func(svc *IndexService) {
		if n > 0 {
			svc.maxContextChunks = n
		}
	}
}

// NewIndexService creates an index service, loading any existing snapshot.
// A missing snapshot starts an empty index. A corrupt snapshot, or one built
// with a different embedding model or dimension, is discarded: the index
// reinitialises to empty rather than failing startup.
func NewIndexService(
	embedder driven.EmbeddingService,
	snapshots driven.SnapshotStore,
	opts ...IndexOption,
) (*IndexService, error) {
	if embedder == nil {
		return nil, fmt.Errorf("index: %w", domain.ErrEmbeddingUnavailable)
	}
	if snapshots == nil {
		return nil, fmt.Errorf("index: snapshot store is required")
	}

	svc := &IndexService{
		split:            splitter.New(),
		embedder:         embedder,
		snapshots:        snapshots,
		dimension:        embedder.Dimensions(),
		overfetch:        DefaultOverfetchMultiplier,
		maxExpansions:    DefaultMaxExpansions,
		maxContextChunks: DefaultMaxContextChunks,
	}

	for _, opt := range opts {
		opt(svc)
	}

	if err := svc.restore(); err != nil {
		return nil, err
	}

	return svc, nil
}

// restore loads the persisted snapshot into memory.
func (s *IndexService) restore() error {
	snap, err := s.snapshots.Load()
	switch {
	case errors.Is(err, domain.ErrNotFound):
		logger.Debug("Index: no snapshot found, starting empty")
		return nil
	case errors.Is(err, domain.ErrCorruptSnapshot):
		logger.Warn("Index: snapshot unreadable, reinitialising empty: %v", err)
		return nil
	case err != nil:
		return fmt.Errorf("load index snapshot: %w", err)
	}

	if snap.ModelName != s.embedder.ModelName() || snap.Dimension != s.dimension {
		logger.Warn("Index: snapshot built with model %s/%d, current is %s/%d; discarding",
			snap.ModelName, snap.Dimension, s.embedder.ModelName(), s.dimension)
		return nil
	}

	s.vectors = snap.Vectors
	s.chunks = snap.Chunks
	s.documents = snap.Documents
	logger.Info("Index: loaded %d chunks across %d documents", len(s.chunks), len(s.documents))
	return nil
}

// AddDocument chunks and embeds text, appends the chunks, and persists.
// Calling twice with the same document ID duplicates chunks; callers must
// delete first.
func (s *IndexService) AddDocument(
	ctx context.Context, documentID, ownerID, text string, docType domain.DocumentType,
) error {
	if documentID == "" || ownerID == "" {
		return fmt.Errorf("add document: %w", domain.ErrInvalidInput)
	}
	if !docType.Valid() {
		docType = domain.DocumentTypeOther
	}

	windows := s.split.Split(text)
	logger.Debug("Index: document %s split into %d chunks", documentID, len(windows))

	// Embedding is the expensive part; do it before taking the lock.
	vectors, err := s.embedBatch(ctx, windows)
	if err != nil {
		return fmt.Errorf("add document %s: %w", documentID, err)
	}

	chunks := make([]domain.Chunk, len(windows))
	for i, w := range windows {
		chunks[i] = domain.Chunk{
			Text:         w,
			OwnerID:      ownerID,
			DocumentID:   documentID,
			ChunkIndex:   i,
			DocumentType: docType,
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	newVectors := append(append([][]float32{}, s.vectors...), vectors...)
	newChunks := append(append([]domain.Chunk{}, s.chunks...), chunks...)

	newDocs := append([]domain.DocumentRecord{}, s.documents...)
	updated := false
	for i := range newDocs {
		if newDocs[i].DocumentID == documentID {
			newDocs[i].ChunkCount += len(chunks)
			updated = true
			break
		}
	}
	if !updated {
		newDocs = append(newDocs, domain.DocumentRecord{
			DocumentID: documentID,
			OwnerID:    ownerID,
			Type:       docType,
			ChunkCount: len(chunks),
		})
	}

	if err := s.persist(newVectors, newChunks, newDocs); err != nil {
		return fmt.Errorf("add document %s: %w", documentID, err)
	}

	s.vectors, s.chunks, s.documents = newVectors, newChunks, newDocs
	logger.Info("Index: added document %s (%d chunks, %d total)", documentID, len(chunks), len(newChunks))
	return nil
}

// DeleteDocument removes every chunk of a document by rebuilding the index
// from the surviving chunk texts. The flat index has no point deletion, so
// this costs O(remaining chunks); batch deletions where possible.
func (s *IndexService) DeleteDocument(ctx context.Context, documentID string) error {
	if documentID == "" {
		return fmt.Errorf("delete document: %w", domain.ErrInvalidInput)
	}

	// The rebuild re-embeds from internal state, so the whole operation
	// runs under the write lock; readers must never observe the index
	// between "chunks filtered" and "vectors rebuilt".
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	newDocs := make([]domain.DocumentRecord, 0, len(s.documents))
	for _, rec := range s.documents {
		if rec.DocumentID == documentID {
			found = true
			continue
		}
		newDocs = append(newDocs, rec)
	}
	if !found {
		return fmt.Errorf("delete document %s: %w", documentID, domain.ErrNotFound)
	}

	survivors := make([]domain.Chunk, 0, len(s.chunks))
	for _, c := range s.chunks {
		if c.DocumentID != documentID {
			survivors = append(survivors, c)
		}
	}

	texts := make([]string, len(survivors))
	for i, c := range survivors {
		texts[i] = c.Text
	}

	logger.Debug("Index: rebuilding after delete of %s (%d survivors)", documentID, len(survivors))
	vectors, err := s.embedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("rebuild index after delete %s: %w", documentID, err)
	}

	if err := s.persist(vectors, survivors, newDocs); err != nil {
		return fmt.Errorf("delete document %s: %w", documentID, err)
	}

	s.vectors, s.chunks, s.documents = vectors, survivors, newDocs
	logger.Info("Index: deleted document %s (%d chunks remain)", documentID, len(survivors))
	return nil
}

// Search returns up to k chunks nearest to the query, ascending by cosine
// distance. Owner scoping and metadata filters run after the raw search;
// the fetch grows geometrically, up to a bounded number of expansions,
// until k matches survive or the whole index has been considered.
func (s *IndexService) Search(
	ctx context.Context, query string, k int, opts driving.SearchOptions,
) ([]domain.ScoredChunk, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.ScoredChunk{}, nil
	}
	if k <= 0 {
		k = DefaultSearchK
	}

	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	pred := combinePredicates(opts.OwnerID, opts.Filter)

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.chunks) == 0 {
		return []domain.ScoredChunk{}, nil
	}

	// Rank every chunk once; the over-fetch loop only moves the cutoff.
	ranked := s.rankByDistance(queryVec)

	fetch := k * s.overfetch
	for expansion := 0; ; expansion++ {
		if fetch > len(ranked) {
			fetch = len(ranked)
		}

		results := make([]domain.ScoredChunk, 0, k)
		for _, ri := range ranked[:fetch] {
			c := s.chunks[ri.position]
			if pred != nil && !pred(c) {
				continue
			}
			results = append(results, domain.ScoredChunk{Chunk: c, Distance: ri.distance})
			if len(results) == k {
				return results, nil
			}
		}

		if fetch == len(ranked) || expansion >= s.maxExpansions {
			logger.Debug("Search: %d/%d matches after %d expansions", len(results), k, expansion)
			return results, nil
		}
		fetch *= 2
	}
}

// UserContext assembles the owner's chunks, in document order, into one
// context string. This deliberately walks the index rather than issuing a
// content-free similarity query: "all of a user's content" is not a
// nearest-neighbour question.
func (s *IndexService) UserContext(_ context.Context, ownerID string, maxChunks int) (string, error) {
	if ownerID == "" {
		return "", fmt.Errorf("user context: %w", domain.ErrInvalidInput)
	}
	if maxChunks <= 0 {
		maxChunks = s.maxContextChunks
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	// Chunks are appended in (document, chunk index) order and rebuilds
	// preserve relative order, so a linear scan is already document order.
	var parts []string
	taken := 0
	for _, c := range s.chunks {
		if c.OwnerID != ownerID {
			continue
		}
		parts = append(parts,
			fmt.Sprintf("Document Type: %s", c.DocumentType),
			fmt.Sprintf("Content: %s", c.Text),
			contextSeparator,
		)
		taken++
		if taken == maxChunks {
			break
		}
	}

	if taken == 0 {
		return EmptyContextSentinel, nil
	}
	return strings.Join(parts, "\n"), nil
}

// Stats returns a read-only snapshot of index size.
func (s *IndexService) Stats(_ context.Context) (domain.IndexStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.IndexStats{
		TotalChunks:    len(s.chunks),
		TotalDocuments: len(s.documents),
	}, nil
}

// Clear discards all index state and persists the empty index.
func (s *IndexService) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(nil, nil, nil); err != nil {
		return fmt.Errorf("clear index: %w", err)
	}

	s.vectors, s.chunks, s.documents = nil, nil, nil
	logger.Info("Index: cleared")
	return nil
}

// embedBatch embeds texts and validates the resulting dimensions.
func (s *IndexService) embedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embed chunks: got %d vectors for %d texts", len(vectors), len(texts))
	}
	for _, v := range vectors {
		if len(v) != s.dimension {
			return nil, fmt.Errorf("embed chunks: %w: got %d, index uses %d",
				domain.ErrDimensionMismatch, len(v), s.dimension)
		}
	}
	return vectors, nil
}

// persist writes a snapshot of the given state. Called with the write lock
// held and before the state is installed, so a failure changes nothing.
func (s *IndexService) persist(vectors [][]float32, chunks []domain.Chunk, docs []domain.DocumentRecord) error {
	return s.snapshots.Save(&driven.IndexSnapshot{
		ModelName: s.embedder.ModelName(),
		Dimension: s.dimension,
		Vectors:   vectors,
		Chunks:    chunks,
		Documents: docs,
	})
}

// rankedIndex pairs a chunk position with its distance from the query.
type rankedIndex struct {
	position int
	distance float64
}

// rankByDistance scores every vector against the query and returns chunk
// positions ordered by ascending cosine distance. Caller holds the read lock.
func (s *IndexService) rankByDistance(query []float32) []rankedIndex {
	ranked := make([]rankedIndex, len(s.vectors))
	for i, v := range s.vectors {
		ranked[i] = rankedIndex{position: i, distance: cosineDistance(query, v)}
	}
	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].distance < ranked[j].distance
	})
	return ranked
}

// cosineDistance returns 1 - cosine similarity. Zero-norm vectors are
// treated as maximally distant.
func cosineDistance(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}

// combinePredicates merges owner scoping with an optional metadata filter.
func combinePredicates(ownerID string, filter domain.ChunkPredicate) domain.ChunkPredicate {
	if ownerID == "" {
		return filter
	}
	owned := domain.OwnedBy(ownerID)
	if filter == nil {
		return owned
	}
	return func(c domain.Chunk) bool {
		return owned(c) && filter(c)
	}
}
