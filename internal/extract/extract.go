// Package extract converts uploaded career documents to plain text for
// indexing. Format is selected by file extension: PDF and DOCX get real
// extraction, HTML and Markdown get their markup stripped, and anything
// else is accepted as-is when it decodes as UTF-8.
package extract

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/personaapply/personaapply/internal/core/domain"
	"github.com/personaapply/personaapply/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// CommandRunner executes an external command and returns its stdout.
// Abstracted so tests can avoid spawning processes.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Extractor converts uploaded files to plain text.
type Extractor struct {
	runner CommandRunner
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithRunner replaces the command runner used for PDF extraction.
func WithRunner(r CommandRunner) Option {
	return func(e *Extractor) {
		if r != nil {
			e.runner = r
		}
	}
}

// New creates an extractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{runner: execRunner{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the plain text content of an uploaded file.
func (e *Extractor) Extract(ctx context.Context, filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("extract %s: empty file: %w", filename, domain.ErrInvalidInput)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return e.extractPDF(ctx, data)
	case ".docx":
		return extractDOCX(data)
	case ".html", ".htm":
		return stripHTML(string(data)), nil
	case ".md", ".markdown":
		return stripMarkdown(string(data)), nil
	default:
		if !utf8.Valid(data) {
			return "", fmt.Errorf("extract %s: binary content: %w", filename, domain.ErrInvalidInput)
		}
		return strings.TrimSpace(string(data)), nil
	}
}

// extractPDF shells out to pdftotext, which handles the PDF formats found
// in the wild far better than any pure-Go parser.
func (e *Extractor) extractPDF(ctx context.Context, data []byte) (string, error) {
	tmp, err := os.CreateTemp("", "personaapply-*.pdf")
	if err != nil {
		return "", fmt.Errorf("extract pdf: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("extract pdf: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("extract pdf: %w", err)
	}

	// "-" sends the text to stdout.
	out, err := e.runner.Run(ctx, "pdftotext", "-layout", tmp.Name(), "-")
	if err != nil {
		return "", fmt.Errorf("extract pdf: pdftotext: %w", err)
	}

	return strings.TrimSpace(string(out)), nil
}
