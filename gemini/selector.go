package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/dhalloran/adorn"
	"google.golang.org/genai"
)

const selectorSystemPrompt = `You pick the best image from a list of search results for a given query. Judge relevance to the query, likely visual quality from the dimensions, and how trustworthy the source page looks.

Return ONLY a valid JSON object: {"index": <zero-based index of the best candidate, or -1 if none is acceptable>, "caption": "<a one-sentence factual caption for the chosen image>"}`

// Ensure Selector implements adorn.ImageSelector at compile time.
var _ adorn.ImageSelector = (*Selector)(nil)

// Selector implements best-candidate image selection using Google Gemini.
type Selector struct {
	client *genai.Client
	model  string
}

// NewSelector creates a new Selector. An empty model selects DefaultModel.
func NewSelector(client *genai.Client, model string) *Selector {
	if model == "" {
		model = DefaultModel
	}
	return &Selector{client: client, model: model}
}

// SelectImage picks the best candidate for the query. A nil choice means no
// candidate is viable and the slot should be dropped.
func (s *Selector) SelectImage(ctx context.Context, candidates []adorn.ImageCandidate, query string) (*adorn.ImageChoice, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	result, err := s.client.Models.GenerateContent(ctx, s.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildSelectionPrompt(candidates, query)}},
		}},
		jsonConfig(selectorSystemPrompt),
	)
	if err != nil {
		return nil, adorn.Errorf(adorn.EUNAVAILABLE, "gemini call failed: %v", err)
	}
	if result == nil {
		return nil, adorn.Errorf(adorn.EINTERNAL, "gemini returned nil result")
	}

	return ParseChoice(result.Text(), len(candidates))
}

// BuildSelectionPrompt builds the user prompt for a selection call.
func BuildSelectionPrompt(candidates []adorn.ImageCandidate, query string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Search query: %s\n\nCandidates:\n", query)
	for i, c := range candidates {
		fmt.Fprintf(&sb, "%d. title=%q size=%dx%d type=%s source=%s\n",
			i, c.Title, c.Width, c.Height, c.MimeType, c.SourcePage)
	}
	sb.WriteString("\nReturn ONLY the JSON object.")
	return sb.String()
}

// ParseChoice decodes a selection response. An index of -1 (or out of
// range) means no viable candidate.
func ParseChoice(raw string, n int) (*adorn.ImageChoice, error) {
	var payload struct {
		Index   int    `json:"index"`
		Caption string `json:"caption"`
	}
	if err := decodeJSON(raw, &payload); err != nil {
		return nil, err
	}
	if payload.Index < 0 || payload.Index >= n {
		return nil, nil
	}
	return &adorn.ImageChoice{Index: payload.Index, Caption: payload.Caption}, nil
}
