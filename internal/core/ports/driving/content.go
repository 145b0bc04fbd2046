package driving

import (
	"context"

	"github.com/personaapply/personaapply/internal/core/domain"
)

// ContentService generates personalized outreach content from a user's
// indexed documents. Generation always yields text: when the LLM is
// unavailable a static fallback template is returned instead of an error.
type ContentService interface {
	// Generate assembles the user's retrieval context, builds a prompt
	// for the requested content type, and produces the content.
	Generate(ctx context.Context, ownerID string, req domain.GenerationRequest) (*domain.GenerationResult, error)
}
