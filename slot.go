package adorn

// Position describes where a slot's content is inserted relative to its
// anchor element.
type Position string

// Position values. Unknown values parse as PositionAfter.
const (
	PositionAfter         Position = "after"
	PositionBefore        Position = "before"
	PositionAfterHeading  Position = "after_heading"
	PositionBeforeHeading Position = "before_heading"
)

// ParsePosition normalizes a position string from a suggestion payload.
// Absent or unrecognized values default to PositionAfter.
func ParsePosition(s string) Position {
	switch Position(s) {
	case PositionBefore, PositionAfterHeading, PositionBeforeHeading:
		return Position(s)
	default:
		return PositionAfter
	}
}

// SlotKind distinguishes image slots from widget slots.
type SlotKind string

// SlotKind values.
const (
	SlotImage  SlotKind = "image"
	SlotWidget SlotKind = "widget"
)

// Dimensions is a suggested widget size in pixels.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// SlotSpec is an unresolved placement suggestion produced by a suggestion
// collaborator. Its anchor references come from an LLM and are not
// guaranteed valid; the injector skips anything that fails to resolve.
//
// Image and widget suggestions share this wire shape; the kind determines
// which type-specific fields are required.
type SlotSpec struct {
	SectionID   string  `json:"section_id"`
	ParagraphID *string `json:"paragraph_id"`
	Position    string  `json:"position"`
	Priority    float64 `json:"priority"`

	// Image slot fields.
	ImageType   string `json:"image_type,omitempty"`
	SearchQuery string `json:"search_query,omitempty"`
	AltTextHint string `json:"alt_text_hint,omitempty"`
	CaptionHint string `json:"caption_hint,omitempty"`

	// Widget slot fields.
	WidgetType            WidgetType  `json:"widget_type,omitempty"`
	ContentHint           string      `json:"content_hint,omitempty"`
	RecommendedDimensions *Dimensions `json:"recommended_dimensions,omitempty"`
}

// Validate returns an error if the spec is malformed for the given kind.
// Callers drop invalid specs and continue with the remainder of the batch.
func (s *SlotSpec) Validate(kind SlotKind) error {
	if s.SectionID == "" {
		return Errorf(EINVALID, "slot section_id required")
	}
	if s.Priority < 0 || s.Priority > 1 {
		return Errorf(EINVALID, "slot priority %v out of range [0,1]", s.Priority)
	}
	switch kind {
	case SlotImage:
		if s.SearchQuery == "" {
			return Errorf(EINVALID, "image slot search_query required")
		}
	case SlotWidget:
		if s.WidgetType == "" {
			return Errorf(EINVALID, "widget slot widget_type required")
		}
		if s.ContentHint == "" {
			return Errorf(EINVALID, "widget slot content_hint required")
		}
		if s.RecommendedDimensions != nil &&
			(s.RecommendedDimensions.Width <= 0 || s.RecommendedDimensions.Height <= 0) {
			return Errorf(EINVALID, "widget slot dimensions must be positive")
		}
	default:
		return Errorf(EINVALID, "unknown slot kind %q", kind)
	}
	return nil
}

// Slot is a fully resolved placement instruction consumed by the injector.
// Exactly one of the image payload (URL, alt text, caption) or WidgetHTML
// is set, according to Kind.
type Slot struct {
	Kind        SlotKind `json:"kind"`
	SectionID   string   `json:"section_id"`
	ParagraphID *string  `json:"paragraph_id"`
	Position    Position `json:"position"`

	ImageURL string `json:"image_url,omitempty"`
	AltText  string `json:"alt_text,omitempty"`
	Caption  string `json:"caption,omitempty"`

	WidgetHTML string `json:"widget_html,omitempty"`
}

// Validate returns an error if the resolved slot is missing its payload.
func (s *Slot) Validate() error {
	if s.SectionID == "" && (s.ParagraphID == nil || *s.ParagraphID == "") {
		return Errorf(EINVALID, "slot requires a section or paragraph anchor")
	}
	switch s.Kind {
	case SlotImage:
		if s.ImageURL == "" {
			return Errorf(EINVALID, "image slot requires an image URL")
		}
	case SlotWidget:
		if s.WidgetHTML == "" {
			return Errorf(EINVALID, "widget slot requires rendered HTML")
		}
	default:
		return Errorf(EINVALID, "unknown slot kind %q", s.Kind)
	}
	return nil
}
