package adorn

import (
	"context"
	"encoding/json"
)

// WidgetType identifies a supported widget.
type WidgetType string

// Supported widget types.
const (
	WidgetTimeline       WidgetType = "timeline"
	WidgetKeyFacts       WidgetType = "key_facts"
	WidgetStatCards      WidgetType = "stat_cards"
	WidgetKeyDefinitions WidgetType = "key_definitions"
)

// WidgetDataSchemas describes, per widget type, the JSON shape an assessor
// should extract from article text. The descriptions are embedded in
// extraction prompts.
var WidgetDataSchemas = map[WidgetType]string{
	WidgetTimeline:       `List of objects: [{"date": str (e.g. "1971"), "title": str, "description": str}, ...] Extract 4-8 chronological events from the context.`,
	WidgetKeyFacts:       `List of objects: [{"label": str, "values": [str, ...]}, ...] Extract 6-10 summary facts. Each value short and concise (2-8 words per line). Example: {"label": "Born", "values": ["June 28, 1971", "Pretoria, South Africa"]}.`,
	WidgetStatCards:      `List of objects: [{"label": str (e.g. "Net Worth"), "value": str (e.g. "$180B"), "note": str (optional)}, ...] Extract 3-6 notable numerical facts.`,
	WidgetKeyDefinitions: `List of objects: [{"term": str, "definition": str}, ...] Extract 2-5 key terms or concepts introduced in the context.`,
}

// Widget placement score thresholds. An assessment below PlaceThreshold is
// not placed outright; the single highest-scoring rejected candidate at or
// above FallbackThreshold is retained so at least one widget lands per
// document when possible.
const (
	WidgetPlaceThreshold    = 0.5
	WidgetFallbackThreshold = 0.3
)

// WidgetAssessment is the outcome of extracting widget data from article
// context. Data is nil when the context cannot support the widget.
type WidgetAssessment struct {
	Score  float64         `json:"score"`
	Reason string          `json:"reason"`
	Data   json.RawMessage `json:"data"`
}

// WidgetAssessor judges whether a suggested widget is supported by the
// surrounding article text and extracts its structured data.
type WidgetAssessor interface {
	Assess(ctx context.Context, contextText, contentHint string, widgetType WidgetType) (*WidgetAssessment, error)
}

// WidgetRenderer turns extracted widget data into an HTML fragment.
// An empty fragment with a nil error means the type is unsupported or the
// data is unrenderable; callers treat it as a skip.
type WidgetRenderer interface {
	Render(widgetType WidgetType, data json.RawMessage) (string, error)
}
