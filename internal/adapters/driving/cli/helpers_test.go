package cli

import (
	"context"
	"errors"
	"time"

	"github.com/personaapply/personaapply/internal/core/domain"
	"github.com/personaapply/personaapply/internal/core/ports/driving"
)

// --- Mock implementations ---

var errMock = errors.New("mock failure")

type mockIndexService struct{}

var _ driving.IndexService = (*mockIndexService)(nil)

func (m *mockIndexService) AddDocument(_ context.Context, _, _, _ string, _ domain.DocumentType) error {
	return nil
}

func (m *mockIndexService) DeleteDocument(_ context.Context, _ string) error {
	return nil
}

func (m *mockIndexService) Search(_ context.Context, _ string, _ int, _ driving.SearchOptions) ([]domain.ScoredChunk, error) {
	return []domain.ScoredChunk{
		{
			Chunk: domain.Chunk{
				Text:         "Senior Go engineer with five years of backend work.",
				OwnerID:      "user-1",
				DocumentID:   "doc-1",
				ChunkIndex:   0,
				DocumentType: domain.DocumentTypeResume,
			},
			Distance: 0.1234,
		},
	}, nil
}

func (m *mockIndexService) UserContext(_ context.Context, _ string, _ int) (string, error) {
	return "Document Type: resume\nContent: Senior Go engineer.\n---", nil
}

func (m *mockIndexService) Stats(_ context.Context) (domain.IndexStats, error) {
	return domain.IndexStats{TotalChunks: 4, TotalDocuments: 2}, nil
}

func (m *mockIndexService) Clear(_ context.Context) error {
	return nil
}

type mockIndexServiceEmpty struct {
	mockIndexService
}

func (m *mockIndexServiceEmpty) Search(_ context.Context, _ string, _ int, _ driving.SearchOptions) ([]domain.ScoredChunk, error) {
	return nil, nil
}

type mockIndexServiceError struct{}

var _ driving.IndexService = (*mockIndexServiceError)(nil)

func (m *mockIndexServiceError) AddDocument(_ context.Context, _, _, _ string, _ domain.DocumentType) error {
	return errMock
}

func (m *mockIndexServiceError) DeleteDocument(_ context.Context, _ string) error {
	return errMock
}

func (m *mockIndexServiceError) Search(_ context.Context, _ string, _ int, _ driving.SearchOptions) ([]domain.ScoredChunk, error) {
	return nil, errMock
}

func (m *mockIndexServiceError) UserContext(_ context.Context, _ string, _ int) (string, error) {
	return "", errMock
}

func (m *mockIndexServiceError) Stats(_ context.Context) (domain.IndexStats, error) {
	return domain.IndexStats{}, errMock
}

func (m *mockIndexServiceError) Clear(_ context.Context) error {
	return errMock
}

type mockDocumentService struct{}

var _ driving.DocumentService = (*mockDocumentService)(nil)

func (m *mockDocumentService) Upload(_ context.Context, ownerID, filename string, data []byte, docType domain.DocumentType) (*domain.UserDocument, error) {
	return &domain.UserDocument{
		ID:        "doc-1",
		OwnerID:   ownerID,
		Type:      docType,
		Filename:  filename,
		SizeBytes: len(data),
		CreatedAt: time.Now().UTC(),
	}, nil
}

func (m *mockDocumentService) Delete(_ context.Context, _, _ string) error {
	return nil
}

func (m *mockDocumentService) ListByOwner(_ context.Context, ownerID string) ([]domain.UserDocument, error) {
	now := time.Now().UTC()
	return []domain.UserDocument{
		{ID: "doc-1", OwnerID: ownerID, Type: domain.DocumentTypeResume, Filename: "resume.txt", SizeBytes: 120, CreatedAt: now},
		{ID: "doc-2", OwnerID: ownerID, Type: domain.DocumentTypeGitHub, Filename: "github.md", SizeBytes: 80, CreatedAt: now},
	}, nil
}

type mockDocumentServiceEmpty struct {
	mockDocumentService
}

func (m *mockDocumentServiceEmpty) ListByOwner(_ context.Context, _ string) ([]domain.UserDocument, error) {
	return nil, nil
}

type mockDocumentServiceError struct{}

var _ driving.DocumentService = (*mockDocumentServiceError)(nil)

func (m *mockDocumentServiceError) Upload(_ context.Context, _, _ string, _ []byte, _ domain.DocumentType) (*domain.UserDocument, error) {
	return nil, errMock
}

func (m *mockDocumentServiceError) Delete(_ context.Context, _, _ string) error {
	return errMock
}

func (m *mockDocumentServiceError) ListByOwner(_ context.Context, _ string) ([]domain.UserDocument, error) {
	return nil, errMock
}

type mockContentService struct {
	fallback bool
}

var _ driving.ContentService = (*mockContentService)(nil)

func (m *mockContentService) Generate(_ context.Context, _ string, req domain.GenerationRequest) (*domain.GenerationResult, error) {
	return &domain.GenerationResult{
		ContentType: req.ContentType,
		Content:     "Dear Hiring Manager, I am excited to apply.",
		PromptUsed:  "full prompt text",
		Fallback:    m.fallback,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

type mockContentServiceError struct{}

var _ driving.ContentService = (*mockContentServiceError)(nil)

func (m *mockContentServiceError) Generate(_ context.Context, _ string, _ domain.GenerationRequest) (*domain.GenerationResult, error) {
	return nil, errMock
}

type mockProfileService struct {
	saved *domain.UserProfile
}

var _ driving.ProfileService = (*mockProfileService)(nil)

func (m *mockProfileService) Save(_ context.Context, profile *domain.UserProfile) error {
	m.saved = profile
	return nil
}

func (m *mockProfileService) Get(_ context.Context, uid string) (*domain.UserProfile, error) {
	return &domain.UserProfile{
		UID:             uid,
		Email:           "dev@example.com",
		Name:            "Sam Developer",
		Title:           "Backend Engineer",
		Skills:          []string{"go", "sql"},
		ExperienceYears: 7,
		GitHubURL:       "https://github.com/samdev",
	}, nil
}

func (m *mockProfileService) Delete(_ context.Context, _ string) error {
	return nil
}

type mockProfileServiceNotFound struct {
	mockProfileService
}

func (m *mockProfileServiceNotFound) Get(_ context.Context, _ string) (*domain.UserProfile, error) {
	return nil, domain.ErrNotFound
}

type mockProfileServiceError struct{}

var _ driving.ProfileService = (*mockProfileServiceError)(nil)

func (m *mockProfileServiceError) Save(_ context.Context, _ *domain.UserProfile) error {
	return errMock
}

func (m *mockProfileServiceError) Get(_ context.Context, _ string) (*domain.UserProfile, error) {
	return nil, errMock
}

func (m *mockProfileServiceError) Delete(_ context.Context, _ string) error {
	return errMock
}

// --- Test helpers ---

// setupTestServices installs mock services and returns a cleanup function
// restoring the previous wiring and persistent flags.
func setupTestServices() func() {
	oldIndex := indexService
	oldDocument := documentService
	oldContent := contentService
	oldProfile := profileService

	indexService = &mockIndexService{}
	documentService = &mockDocumentService{}
	contentService = &mockContentService{}
	profileService = &mockProfileService{}

	return func() {
		indexService = oldIndex
		documentService = oldDocument
		contentService = oldContent
		profileService = oldProfile
		userID = ""
	}
}
