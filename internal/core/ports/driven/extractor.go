package driven

import "context"

// TextExtractor converts an uploaded file to plain text for indexing.
type TextExtractor interface {
	// Extract returns the plain text content of the file. Returns
	// domain.ErrInvalidInput for empty or undecodable payloads.
	Extract(ctx context.Context, filename string, data []byte) (string, error)
}
