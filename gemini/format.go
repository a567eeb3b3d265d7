// Package gemini implements the LLM collaborators (slot suggestion, best
// image selection, widget data extraction) using Google Gemini.
package gemini

import (
	"fmt"
	"strings"

	"github.com/dhalloran/adorn"
)

const (
	// maxParagraphChars truncates long paragraphs in prompts for token
	// efficiency; the model only needs enough text to judge placement.
	maxParagraphChars = 500

	// maxPromptChars caps the formatted article text.
	maxPromptChars = 50000
)

// FormatOutline renders an outline as prompt text. Section and paragraph
// ids are embedded as [Section ID: x] / [Paragraph ID: y] markers so the
// model can reference anchors exactly as extracted.
func FormatOutline(o *adorn.Outline) string {
	var sb strings.Builder

	title := o.Title
	if title == "" {
		title = "Article"
	}
	fmt.Fprintf(&sb, "Title: %s\n", title)

	for _, section := range o.Sections {
		level := section.Level
		if level < 1 || level > 6 {
			level = 2
		}
		fmt.Fprintf(&sb, "\n%s %s [Section ID: %s]\n", strings.Repeat("#", level), section.Heading, section.ID)

		for _, p := range section.Paragraphs {
			text := p.Text
			if len(text) > maxParagraphChars {
				text = text[:maxParagraphChars] + "..."
			}
			fmt.Fprintf(&sb, "[Paragraph ID: %s] %s\n", p.ID, text)
		}
	}

	out := sb.String()
	if len(out) > maxPromptChars {
		out = out[:maxPromptChars] + "\n\n[Article truncated]"
	}
	return out
}
