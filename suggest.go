package adorn

import "context"

// ImageSuggester proposes image placement slots for an article outline.
// Implementations may return fewer than maxSlots and must drop malformed
// records rather than propagate them.
type ImageSuggester interface {
	SuggestImageSlots(ctx context.Context, outline *Outline, maxSlots int) ([]SlotSpec, error)
}

// WidgetSuggester proposes widget placement slots for an article outline.
type WidgetSuggester interface {
	SuggestWidgetSlots(ctx context.Context, outline *Outline, maxSlots int) ([]SlotSpec, error)
}
