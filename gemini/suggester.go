package gemini

import (
	"context"
	"fmt"

	"github.com/dhalloran/adorn"
	"google.golang.org/genai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

const imageSystemPrompt = `You are an expert content strategist specializing in article layout and visual content placement.

Your task is to analyze an article and suggest optimal locations for images. For each suggested image slot, provide:
- The exact section_id and paragraph_id (or null for paragraph_id if placing after a heading)
- The position relative to the content: "after" (after paragraph), "before", "after_heading", "before_heading"
- The image_type that would be most appropriate: "photo", "diagram", "chart", "infographic", "illustration", "screenshot"
- A search_query that could be used to find a suitable image
- An alt_text_hint for accessibility
- A caption_hint providing context
- A priority score (0.0 to 1.0) indicating how valuable this placement would be

Return ONLY a valid JSON object of this shape, no markdown and no extra text:

{"slots": [{"section_id": "sec_1", "paragraph_id": "p_2", "position": "after", "image_type": "photo", "search_query": "young elon musk childhood photo", "alt_text_hint": "Elon Musk as a child.", "caption_hint": "Elon Musk during his early years.", "priority": 0.9}]}

GUIDELINES:
- Suggest images that enhance understanding, break up long text, or illustrate key concepts
- Prioritize photos of key people, events and locations, and diagrams for complex concepts
- Use section_id and paragraph_id exactly as provided in the article structure
- Set paragraph_id to null if placing relative to a section heading
- Search queries should be specific and descriptive`

const widgetSystemPrompt = `You are an expert content strategist specializing in enhancing articles with visual components. Use ONLY these widget types (never suggest images; they are handled separately):
- "timeline": chronological sequences of events or milestones
- "key_facts": sidebar panel of important facts or highlights
- "stat_cards": grid of cards for notable numerical facts
- "key_definitions": framed box of important terminology

For each suggested widget slot, provide:
- The exact section_id and paragraph_id (or null for section-wide placement)
- The position relative to the content: "after", "before", "after_heading", "before_heading"
- The widget_type from the list above
- A content_hint: a detailed description of what data to include, referencing specific article elements
- A priority score (0.0 to 1.0)
- recommended_dimensions as {"width": int, "height": int} in pixels

Return ONLY a valid JSON object of this shape, no markdown and no extra text:

{"slots": [{"section_id": "sec_1", "paragraph_id": null, "position": "after_heading", "widget_type": "timeline", "content_hint": "Timeline of early life: birth in 1971, move to Canada 1989, first companies.", "priority": 0.9, "recommended_dimensions": {"width": 800, "height": 600}}]}

GUIDELINES:
- Place widgets after headings for section-wide content, after specific paragraphs for targeted content
- Content hints must reference material actually present in the article
- Avoid over-suggestion; focus on a few high-impact placements`

// Ensure Suggester implements both suggestion interfaces at compile time.
var (
	_ adorn.ImageSuggester  = (*Suggester)(nil)
	_ adorn.WidgetSuggester = (*Suggester)(nil)
)

// Suggester implements slot suggestion using Google Gemini.
type Suggester struct {
	client *genai.Client
	model  string
}

// NewSuggester creates a new Suggester. An empty model selects DefaultModel.
func NewSuggester(client *genai.Client, model string) *Suggester {
	if model == "" {
		model = DefaultModel
	}
	return &Suggester{client: client, model: model}
}

// SuggestImageSlots proposes image placements for the outline. Malformed
// records in the model response are dropped; the remainder is returned in
// response order.
func (s *Suggester) SuggestImageSlots(ctx context.Context, outline *adorn.Outline, maxSlots int) ([]adorn.SlotSpec, error) {
	raw, err := s.generate(ctx, imageSystemPrompt, BuildSuggestionPrompt(outline, maxSlots, "image slot"))
	if err != nil {
		return nil, err
	}
	slots, _, err := ParseSlots(raw, adorn.SlotImage)
	return slots, err
}

// SuggestWidgetSlots proposes widget placements for the outline.
func (s *Suggester) SuggestWidgetSlots(ctx context.Context, outline *adorn.Outline, maxSlots int) ([]adorn.SlotSpec, error) {
	raw, err := s.generate(ctx, widgetSystemPrompt, BuildSuggestionPrompt(outline, maxSlots, "widget slot"))
	if err != nil {
		return nil, err
	}
	slots, _, err := ParseSlots(raw, adorn.SlotWidget)
	return slots, err
}

// BuildSuggestionPrompt builds the user prompt for a suggestion call.
func BuildSuggestionPrompt(outline *adorn.Outline, maxSlots int, kind string) string {
	return fmt.Sprintf(`Analyze this article and suggest optimal %s placements.

Article Structure:
%s

Provide %d or fewer suggestions. Focus on the most valuable placements.

Return ONLY the JSON object with the slots array, no additional text.`, kind, FormatOutline(outline), maxSlots)
}

// generate runs one JSON-mode completion against the configured model.
func (s *Suggester) generate(ctx context.Context, system, prompt string) (string, error) {
	result, err := s.client.Models.GenerateContent(ctx, s.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		jsonConfig(system),
	)
	if err != nil {
		return "", adorn.Errorf(adorn.EUNAVAILABLE, "gemini call failed: %v", err)
	}
	if result == nil {
		return "", adorn.Errorf(adorn.EINTERNAL, "gemini returned nil result")
	}
	return result.Text(), nil
}

// jsonConfig returns the GenerateContentConfig for JSON-mode calls.
func jsonConfig(system string) *genai.GenerateContentConfig {
	temp := float32(0.3)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
}
