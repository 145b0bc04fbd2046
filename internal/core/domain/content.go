package domain

import "time"

// ContentType identifies the kind of outreach content to generate.
type ContentType string

// Supported content types.
const (
	ContentTypeCoverLetter     ContentType = "cover_letter"
	ContentTypeColdEmail       ContentType = "cold_email"
	ContentTypeLinkedInMessage ContentType = "linkedin_message"
)

// Valid reports whether t is one of the supported content types.
func (t ContentType) Valid() bool {
	switch t {
	case ContentTypeCoverLetter, ContentTypeColdEmail, ContentTypeLinkedInMessage:
		return true
	}
	return false
}

// Tone controls the voice of generated content.
type Tone string

// Supported tones.
const (
	ToneProfessional Tone = "professional"
	ToneFriendly     Tone = "friendly"
	ToneConfident    Tone = "confident"
	ToneEnthusiastic Tone = "enthusiastic"
	ToneFormal       Tone = "formal"
)

// LinkedInMessageMaxLen is the character cap applied to LinkedIn messages.
const LinkedInMessageMaxLen = 300

// GenerationRequest describes a content generation job.
type GenerationRequest struct {
	// ContentType selects the kind of content to produce.
	ContentType ContentType

	// JobDescription is the target job description or situation.
	JobDescription string

	// TargetCompany is the target company name, if known.
	TargetCompany string

	// TargetRole is the target role or title, if known.
	TargetRole string

	// AdditionalContext carries extra requirements from the user.
	AdditionalContext string

	// Tone is the desired voice. Defaults to professional.
	Tone Tone
}

// GenerationResult is the outcome of a content generation job.
type GenerationResult struct {
	// ContentType echoes the requested kind.
	ContentType ContentType

	// Content is the generated text. Always non-empty: when the LLM is
	// unavailable a static fallback template is substituted.
	Content string

	// PromptUsed is the full prompt sent to the model, for inspection.
	PromptUsed string

	// Fallback is true when Content came from a template rather than
	// the model.
	Fallback bool

	// GeneratedAt is when the content was produced.
	GeneratedAt time.Time
}
