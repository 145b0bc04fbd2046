package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/personaapply/personaapply/internal/adapters/driven/storage/memory"
	"github.com/personaapply/personaapply/internal/core/domain"
)

// --- Test helpers ---

func newTestProfileService(t *testing.T) (*ProfileService, *DocumentService, *IndexService) {
	t.Helper()
	profileStore := memory.NewProfileStore()
	docStore := memory.NewDocumentStore()
	index := newTestIndex(t, nil, nil)
	documents := NewDocumentService(docStore, index)
	return NewProfileService(profileStore, documents), documents, index
}

// --- Tests ---

func TestProfileService_SaveAndGet(t *testing.T) {
	svc, _, _ := newTestProfileService(t)
	ctx := context.Background()

	profile := &domain.UserProfile{
		UID:    "user-1",
		Email:  "dev@example.com",
		Name:   "Sam Developer",
		Skills: []string{"go"},
	}

	require.NoError(t, svc.Save(ctx, profile))
	assert.False(t, profile.CreatedAt.IsZero())
	assert.False(t, profile.UpdatedAt.IsZero())

	saved, err := svc.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "dev@example.com", saved.Email)
	assert.Equal(t, []string{"go"}, saved.Skills)
}

func TestProfileService_Save_PreservesCreatedAt(t *testing.T) {
	svc, _, _ := newTestProfileService(t)
	ctx := context.Background()

	profile := &domain.UserProfile{UID: "user-1", Email: "dev@example.com"}
	require.NoError(t, svc.Save(ctx, profile))
	created := profile.CreatedAt

	profile.Title = "Staff Engineer"
	require.NoError(t, svc.Save(ctx, profile))

	assert.Equal(t, created, profile.CreatedAt)
	assert.False(t, profile.UpdatedAt.Before(created))
}

func TestProfileService_Save_InvalidInput(t *testing.T) {
	svc, _, _ := newTestProfileService(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Save(ctx, nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, svc.Save(ctx, &domain.UserProfile{Email: "dev@example.com"}), domain.ErrInvalidInput)
	assert.ErrorIs(t, svc.Save(ctx, &domain.UserProfile{UID: "user-1"}), domain.ErrInvalidInput)
}

func TestProfileService_Get_NotFound(t *testing.T) {
	svc, _, _ := newTestProfileService(t)

	_, err := svc.Get(context.Background(), "nonexistent")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProfileService_Delete_CascadesDocuments(t *testing.T) {
	svc, documents, index := newTestProfileService(t)
	ctx := context.Background()

	require.NoError(t, svc.Save(ctx, &domain.UserProfile{UID: "user-1", Email: "dev@example.com"}))
	_, err := documents.Upload(ctx, "user-1", "resume.txt", []byte("text"), domain.DocumentTypeResume)
	require.NoError(t, err)
	_, err = documents.Upload(ctx, "user-1", "github.txt", []byte("repos"), domain.DocumentTypeGitHub)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "user-1"))

	_, err = svc.Get(ctx, "user-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	listed, err := documents.ListByOwner(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, listed)

	stats, err := index.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalChunks)
}

func TestProfileService_Delete_NotFound(t *testing.T) {
	svc, _, _ := newTestProfileService(t)

	err := svc.Delete(context.Background(), "nonexistent")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProfileService_Delete_InvalidInput(t *testing.T) {
	svc, _, _ := newTestProfileService(t)

	assert.ErrorIs(t, svc.Delete(context.Background(), ""), domain.ErrInvalidInput)
}
