package mock

import (
	"context"
	"encoding/json"

	"github.com/dhalloran/adorn"
)

var _ adorn.WidgetAssessor = (*WidgetAssessor)(nil)

// WidgetAssessor is a mock implementation of adorn.WidgetAssessor.
type WidgetAssessor struct {
	AssessFn func(ctx context.Context, contextText, contentHint string, widgetType adorn.WidgetType) (*adorn.WidgetAssessment, error)
}

func (a *WidgetAssessor) Assess(ctx context.Context, contextText, contentHint string, widgetType adorn.WidgetType) (*adorn.WidgetAssessment, error) {
	return a.AssessFn(ctx, contextText, contentHint, widgetType)
}

var _ adorn.WidgetRenderer = (*WidgetRenderer)(nil)

// WidgetRenderer is a mock implementation of adorn.WidgetRenderer.
type WidgetRenderer struct {
	RenderFn func(widgetType adorn.WidgetType, data json.RawMessage) (string, error)
}

func (r *WidgetRenderer) Render(widgetType adorn.WidgetType, data json.RawMessage) (string, error) {
	return r.RenderFn(widgetType, data)
}
