package mock

import (
	"context"

	"github.com/dhalloran/adorn"
)

var _ adorn.ImageSearcher = (*ImageSearcher)(nil)

// ImageSearcher is a mock implementation of adorn.ImageSearcher.
type ImageSearcher struct {
	SearchImagesFn func(ctx context.Context, query string, n int) ([]adorn.ImageCandidate, error)
}

func (s *ImageSearcher) SearchImages(ctx context.Context, query string, n int) ([]adorn.ImageCandidate, error) {
	return s.SearchImagesFn(ctx, query, n)
}

var _ adorn.ImageSelector = (*ImageSelector)(nil)

// ImageSelector is a mock implementation of adorn.ImageSelector.
type ImageSelector struct {
	SelectImageFn func(ctx context.Context, candidates []adorn.ImageCandidate, query string) (*adorn.ImageChoice, error)
}

func (s *ImageSelector) SelectImage(ctx context.Context, candidates []adorn.ImageCandidate, query string) (*adorn.ImageChoice, error) {
	return s.SelectImageFn(ctx, candidates, query)
}
