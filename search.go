package adorn

import "context"

// ImageCandidate is one result from an image search.
type ImageCandidate struct {
	URL        string `json:"url"`
	Title      string `json:"title"`
	Thumbnail  string `json:"thumbnail,omitempty"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	MimeType   string `json:"mimeType,omitempty"`
	SourcePage string `json:"sourcePage,omitempty"`
}

// ImageSearcher finds candidate images for a query. Best-effort: an empty
// result is not an error.
type ImageSearcher interface {
	SearchImages(ctx context.Context, query string, n int) ([]ImageCandidate, error)
}

// ImageChoice identifies the best candidate for a slot.
type ImageChoice struct {
	// Index into the candidate list passed to Select.
	Index int

	// Caption for the chosen image.
	Caption string
}

// ImageSelector picks the best candidate for a query. A nil choice with a
// nil error means no candidate is viable and the slot must be dropped rather
// than silently defaulted.
type ImageSelector interface {
	SelectImage(ctx context.Context, candidates []ImageCandidate, query string) (*ImageChoice, error)
}
