package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/personaapply/personaapply/internal/core/domain"
	"github.com/personaapply/personaapply/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockLLM implements driven.LLMService for testing.
type mockLLM struct {
	response    string
	generateErr error

	lastPrompt string
	lastOpts   driven.GenerateOptions
}

func (m *mockLLM) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m.lastPrompt = prompt
	m.lastOpts = opts
	if m.generateErr != nil {
		return "", m.generateErr
	}
	return m.response, nil
}

func (m *mockLLM) ModelName() string {
	return "mock-llm"
}

func (m *mockLLM) Ping(_ context.Context) error {
	return nil
}

func (m *mockLLM) Close() error {
	return nil
}

// --- Test helpers ---

func newTestContentService(t *testing.T, llm driven.LLMService) *ContentService {
	t.Helper()
	index := newTestIndex(t, nil, nil)
	require.NoError(t, index.AddDocument(context.Background(),
		"doc-1", "user-1", "Senior Go engineer, five years of backend work.", domain.DocumentTypeResume))
	return NewContentService(index, llm)
}

// --- Tests ---

func TestContentService_Generate(t *testing.T) {
	llm := &mockLLM{response: "Dear hiring team, I am excited to apply."}
	svc := newTestContentService(t, llm)

	result, err := svc.Generate(context.Background(), "user-1", domain.GenerationRequest{
		ContentType:    domain.ContentTypeCoverLetter,
		JobDescription: "Backend engineer at Acme",
		TargetCompany:  "Acme",
		TargetRole:     "Backend Engineer",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ContentTypeCoverLetter, result.ContentType)
	assert.Equal(t, "Dear hiring team, I am excited to apply.", result.Content)
	assert.False(t, result.Fallback)
	assert.False(t, result.GeneratedAt.IsZero())

	// The prompt carries the user's indexed content and the request fields.
	assert.Contains(t, llm.lastPrompt, "Senior Go engineer")
	assert.Contains(t, llm.lastPrompt, "Backend engineer at Acme")
	assert.Contains(t, llm.lastPrompt, "Acme")
	assert.Contains(t, llm.lastPrompt, "cover letter")
}

func TestContentService_Generate_DefaultsTone(t *testing.T) {
	llm := &mockLLM{response: "content"}
	svc := newTestContentService(t, llm)

	_, err := svc.Generate(context.Background(), "user-1", domain.GenerationRequest{
		ContentType:    domain.ContentTypeColdEmail,
		JobDescription: "role",
	})

	require.NoError(t, err)
	assert.Contains(t, llm.lastPrompt, string(domain.ToneProfessional))
}

func TestContentService_Generate_InvalidInput(t *testing.T) {
	svc := newTestContentService(t, nil)
	ctx := context.Background()

	_, err := svc.Generate(ctx, "", domain.GenerationRequest{ContentType: domain.ContentTypeCoverLetter})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Generate(ctx, "user-1", domain.GenerationRequest{ContentType: "haiku"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestContentService_Generate_NoLLM_UsesFallback(t *testing.T) {
	svc := newTestContentService(t, nil)

	for _, ct := range []domain.ContentType{
		domain.ContentTypeCoverLetter,
		domain.ContentTypeColdEmail,
		domain.ContentTypeLinkedInMessage,
	} {
		result, err := svc.Generate(context.Background(), "user-1", domain.GenerationRequest{
			ContentType:    ct,
			JobDescription: "role",
		})

		require.NoError(t, err)
		assert.True(t, result.Fallback)
		assert.Equal(t, fallbackTemplates[ct], result.Content)
	}
}

func TestContentService_Generate_LLMError_UsesFallback(t *testing.T) {
	llm := &mockLLM{generateErr: errors.New("quota exceeded")}
	svc := newTestContentService(t, llm)

	result, err := svc.Generate(context.Background(), "user-1", domain.GenerationRequest{
		ContentType:    domain.ContentTypeCoverLetter,
		JobDescription: "role",
	})

	require.NoError(t, err)
	assert.True(t, result.Fallback)
	assert.Equal(t, fallbackTemplates[domain.ContentTypeCoverLetter], result.Content)
}

func TestContentService_Generate_BlankLLMOutput_UsesFallback(t *testing.T) {
	llm := &mockLLM{response: "   \n\t  "}
	svc := newTestContentService(t, llm)

	result, err := svc.Generate(context.Background(), "user-1", domain.GenerationRequest{
		ContentType:    domain.ContentTypeColdEmail,
		JobDescription: "role",
	})

	require.NoError(t, err)
	assert.True(t, result.Fallback)
	assert.Equal(t, fallbackTemplates[domain.ContentTypeColdEmail], result.Content)
}

func TestContentService_Generate_LinkedInTruncated(t *testing.T) {
	llm := &mockLLM{response: strings.Repeat("a", 500)}
	svc := newTestContentService(t, llm)

	result, err := svc.Generate(context.Background(), "user-1", domain.GenerationRequest{
		ContentType:    domain.ContentTypeLinkedInMessage,
		JobDescription: "role",
	})

	require.NoError(t, err)
	assert.Len(t, []rune(result.Content), domain.LinkedInMessageMaxLen)
}

func TestContentService_Generate_CoverLetterNotTruncated(t *testing.T) {
	long := strings.Repeat("b", 500)
	llm := &mockLLM{response: long}
	svc := newTestContentService(t, llm)

	result, err := svc.Generate(context.Background(), "user-1", domain.GenerationRequest{
		ContentType:    domain.ContentTypeCoverLetter,
		JobDescription: "role",
	})

	require.NoError(t, err)
	assert.Equal(t, long, result.Content)
}

func TestContentService_Generate_EmptyContextSentinelInPrompt(t *testing.T) {
	// A user with no documents still generates; the prompt carries the
	// sentinel rather than an empty context block.
	llm := &mockLLM{response: "content"}
	index := newTestIndex(t, nil, nil)
	svc := NewContentService(index, llm)

	_, err := svc.Generate(context.Background(), "user-without-docs", domain.GenerationRequest{
		ContentType:    domain.ContentTypeCoverLetter,
		JobDescription: "role",
	})

	require.NoError(t, err)
	assert.Contains(t, llm.lastPrompt, EmptyContextSentinel)
}

func TestContentService_Generate_OptionalFieldsPlaceholders(t *testing.T) {
	llm := &mockLLM{response: "content"}
	svc := newTestContentService(t, llm)

	_, err := svc.Generate(context.Background(), "user-1", domain.GenerationRequest{
		ContentType:    domain.ContentTypeCoverLetter,
		JobDescription: "role",
	})

	require.NoError(t, err)
	assert.Contains(t, llm.lastPrompt, "Target Company: Not specified")
	assert.Contains(t, llm.lastPrompt, "Target Role: Not specified")
	assert.Contains(t, llm.lastPrompt, "Additional Context: None")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "abc", truncate("abcdef", 3))
	assert.Equal(t, "hél", truncate("héllø", 3))
	assert.Equal(t, "", truncate("", 3))
}
