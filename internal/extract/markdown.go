package extract

import (
	"regexp"
	"strings"
)

var (
	codeBlock    = regexp.MustCompile("(?s)```[^`]*```")
	inlineCode   = regexp.MustCompile("`[^`]+`")
	mdImages     = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	mdLinks      = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	mdHeadings   = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	mdBlockquote = regexp.MustCompile(`(?m)^>\s*`)
	mdHRule      = regexp.MustCompile(`(?m)^[-*_]{3,}\s*$`)
	listMarkers  = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	numberedList = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
)

// stripMarkdown removes common markdown formatting for plain text content.
// This is a simplified implementation that handles common cases.
func stripMarkdown(content string) string {
	content = codeBlock.ReplaceAllString(content, "")
	content = inlineCode.ReplaceAllString(content, "")

	// Remove images, keep link text
	content = mdImages.ReplaceAllString(content, "")
	content = mdLinks.ReplaceAllString(content, "$1")

	content = mdHeadings.ReplaceAllString(content, "")
	content = mdBlockquote.ReplaceAllString(content, "")
	content = mdHRule.ReplaceAllString(content, "")

	// Remove bold/italic markers
	content = strings.ReplaceAll(content, "**", "")
	content = strings.ReplaceAll(content, "__", "")
	content = strings.ReplaceAll(content, "*", "")
	content = strings.ReplaceAll(content, "_", " ")

	content = listMarkers.ReplaceAllString(content, "")
	content = numberedList.ReplaceAllString(content, "")

	content = multiNewlines.ReplaceAllString(content, "\n\n")

	return strings.TrimSpace(content)
}
