package mock

import (
	"context"

	"github.com/dhalloran/adorn"
)

var _ adorn.ImageSuggester = (*ImageSuggester)(nil)

// ImageSuggester is a mock implementation of adorn.ImageSuggester.
type ImageSuggester struct {
	SuggestImageSlotsFn func(ctx context.Context, outline *adorn.Outline, maxSlots int) ([]adorn.SlotSpec, error)
}

func (s *ImageSuggester) SuggestImageSlots(ctx context.Context, outline *adorn.Outline, maxSlots int) ([]adorn.SlotSpec, error) {
	return s.SuggestImageSlotsFn(ctx, outline, maxSlots)
}

var _ adorn.WidgetSuggester = (*WidgetSuggester)(nil)

// WidgetSuggester is a mock implementation of adorn.WidgetSuggester.
type WidgetSuggester struct {
	SuggestWidgetSlotsFn func(ctx context.Context, outline *adorn.Outline, maxSlots int) ([]adorn.SlotSpec, error)
}

func (s *WidgetSuggester) SuggestWidgetSlots(ctx context.Context, outline *adorn.Outline, maxSlots int) ([]adorn.SlotSpec, error) {
	return s.SuggestWidgetSlotsFn(ctx, outline, maxSlots)
}
