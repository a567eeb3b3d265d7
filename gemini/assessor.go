package gemini

import (
	"context"
	"fmt"

	"github.com/dhalloran/adorn"
	"google.golang.org/genai"
)

const assessorSystemPrompt = `You judge whether a proposed widget is supported by a passage of article text, and if so extract its structured data.

Return ONLY a valid JSON object: {"score": <0.0-1.0 confidence that the passage supports a useful widget of this type>, "reason": "<one sentence>", "data": <the extracted data matching the schema, or null if the passage cannot support it>}

Extract data ONLY from the passage; never invent facts. A score below 0.5 means the widget should not be placed.`

// Ensure Assessor implements adorn.WidgetAssessor at compile time.
var _ adorn.WidgetAssessor = (*Assessor)(nil)

// Assessor implements widget data extraction using Google Gemini.
type Assessor struct {
	client *genai.Client
	model  string
}

// NewAssessor creates a new Assessor. An empty model selects DefaultModel.
func NewAssessor(client *genai.Client, model string) *Assessor {
	if model == "" {
		model = DefaultModel
	}
	return &Assessor{client: client, model: model}
}

// Assess extracts widget data for the given type from the context text.
func (a *Assessor) Assess(ctx context.Context, contextText, contentHint string, widgetType adorn.WidgetType) (*adorn.WidgetAssessment, error) {
	schema, ok := adorn.WidgetDataSchemas[widgetType]
	if !ok {
		return nil, adorn.Errorf(adorn.EINVALID, "unknown widget type %q", widgetType)
	}

	result, err := a.client.Models.GenerateContent(ctx, a.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildAssessmentPrompt(contextText, contentHint, widgetType, schema)}},
		}},
		jsonConfig(assessorSystemPrompt),
	)
	if err != nil {
		return nil, adorn.Errorf(adorn.EUNAVAILABLE, "gemini call failed: %v", err)
	}
	if result == nil {
		return nil, adorn.Errorf(adorn.EINTERNAL, "gemini returned nil result")
	}

	return ParseAssessment(result.Text())
}

// BuildAssessmentPrompt builds the user prompt for an assessment call.
func BuildAssessmentPrompt(contextText, contentHint string, widgetType adorn.WidgetType, schema string) string {
	return fmt.Sprintf(`Widget type: %s
Data schema: %s
Content hint from the layout pass: %s

Passage:
%s

Return ONLY the JSON object.`, widgetType, schema, contentHint, contextText)
}

// ParseAssessment decodes an assessment response. A JSON null data field
// decodes to nil Data, which callers treat as "do not place".
func ParseAssessment(raw string) (*adorn.WidgetAssessment, error) {
	var assessment adorn.WidgetAssessment
	if err := decodeJSON(raw, &assessment); err != nil {
		return nil, err
	}
	if assessment.Score < 0 || assessment.Score > 1 {
		return nil, adorn.Errorf(adorn.EINVALID, "assessment score %v out of range [0,1]", assessment.Score)
	}
	if string(assessment.Data) == "null" {
		assessment.Data = nil
	}
	return &assessment, nil
}
