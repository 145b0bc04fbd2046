package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/personaapply/personaapply/internal/core/domain"
	"github.com/personaapply/personaapply/internal/core/ports/driven"
	"github.com/personaapply/personaapply/internal/core/ports/driving"
	"github.com/personaapply/personaapply/internal/logger"
)

// Ensure ContentService implements the interface.
var _ driving.ContentService = (*ContentService)(nil)

// Generation defaults.
const (
	defaultGenerateMaxTokens   = 1024
	defaultGenerateTemperature = 0.7
)

// ContentService generates outreach content from a user's indexed documents.
// The LLM is an optional collaborator: when nil or failing, generation
// substitutes a static template keyed by content type, so the caller always
// receives text.
type ContentService struct {
	index driving.IndexService
	llm   driven.LLMService
}

// NewContentService creates a content service. The llm parameter may be nil;
// generation then always uses fallback templates.
func NewContentService(index driving.IndexService, llm driven.LLMService) *ContentService {
	return &ContentService{
		index: index,
		llm:   llm,
	}
}

// Generate assembles the user's retrieval context, builds the prompt for the
// requested content type, and produces the content.
func (s *ContentService) Generate(
	ctx context.Context, ownerID string, req domain.GenerationRequest,
) (*domain.GenerationResult, error) {
	if ownerID == "" || !req.ContentType.Valid() {
		return nil, fmt.Errorf("generate content: %w", domain.ErrInvalidInput)
	}
	if req.Tone == "" {
		req.Tone = domain.ToneProfessional
	}

	userContext, err := s.index.UserContext(ctx, ownerID, 0)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	prompt := buildPrompt(req, userContext)
	logger.Debug("Content: prompt for %s is %d chars", req.ContentType, len(prompt))

	content, fallback := s.callLLM(ctx, prompt, req.ContentType)

	// LinkedIn messages have a hard platform cap.
	if req.ContentType == domain.ContentTypeLinkedInMessage {
		content = truncate(content, domain.LinkedInMessageMaxLen)
	}

	return &domain.GenerationResult{
		ContentType: req.ContentType,
		Content:     content,
		PromptUsed:  prompt,
		Fallback:    fallback,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// callLLM asks the model for content, degrading to the fallback template on
// any failure. The bool reports whether the fallback was used.
func (s *ContentService) callLLM(ctx context.Context, prompt string, ct domain.ContentType) (string, bool) {
	if s.llm == nil {
		logger.Debug("Content: no LLM configured, using fallback template")
		return fallbackTemplates[ct], true
	}

	content, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   defaultGenerateMaxTokens,
		Temperature: defaultGenerateTemperature,
	})
	if err != nil || strings.TrimSpace(content) == "" {
		logger.Warn("Content: generation failed (%v), using fallback template", err)
		return fallbackTemplates[ct], true
	}

	return strings.TrimSpace(content), false
}

// buildPrompt renders the generation prompt for a content type.
func buildPrompt(req domain.GenerationRequest, userContext string) string {
	base := fmt.Sprintf(`User Context (from their documents):
%s

Job Description/Situation:
%s

Target Company: %s
Target Role: %s
Additional Context: %s
Tone: %s`,
		userContext,
		req.JobDescription,
		orNotSpecified(req.TargetCompany),
		orNotSpecified(req.TargetRole),
		orNone(req.AdditionalContext),
		req.Tone,
	)

	instruction := promptInstructions[req.ContentType]
	return fmt.Sprintf(instruction, base, req.Tone)
}

// promptInstructions maps each content type to its prompt template. The
// first placeholder is the base context, the second the tone.
var promptInstructions = map[domain.ContentType]string{
	domain.ContentTypeCoverLetter: `Write a professional cover letter based on this information:

%s

The cover letter should be professional, highlight relevant skills, and be about 300-400 words. Use a %s tone.

Cover Letter:`,
	domain.ContentTypeColdEmail: `Write a professional cold email based on this information:

%s

The cold email should be concise (150-200 words), have a compelling subject line, and use a %s tone.

Cold Email:`,
	domain.ContentTypeLinkedInMessage: `Write a professional LinkedIn message based on this information:

%s

The LinkedIn message should be brief (max 300 characters), professional, and use a %s tone.

LinkedIn Message:`,
}

// fallbackTemplates maps each content type to the static text returned when
// the LLM is unavailable. Keyed by the content type enum, never by
// inspecting the prompt text.
var fallbackTemplates = map[domain.ContentType]string{
	domain.ContentTypeCoverLetter: `Dear Hiring Manager,

I am writing to express my strong interest in the position. Based on my background and the job requirements, I believe I would be an excellent fit for this role.

My experience and skills align well with what you're looking for. I am excited about the opportunity to contribute to your team and would welcome the chance to discuss how I can add value to your organization.

Thank you for considering my application. I look forward to hearing from you.

Best regards,
[Your Name]`,
	domain.ContentTypeColdEmail: `Subject: Quick Question About [Company/Project]

Hi [Name],

I hope this email finds you well. I came across your work at [Company] and was impressed by [specific detail].

I'm reaching out because [specific reason/connection]. I'd love to learn more about [specific topic] and see if there might be opportunities to collaborate or connect.

Would you be available for a brief call next week?

Best regards,
[Your Name]`,
	domain.ContentTypeLinkedInMessage: `Hi [Name],

I came across your profile and was impressed by your work at [Company]. I'd love to connect and learn more about your experience in [industry/field].

Best regards,
[Your Name]`,
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func orNotSpecified(s string) string {
	if s == "" {
		return "Not specified"
	}
	return s
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}
