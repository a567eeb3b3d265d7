package mock

import "github.com/dhalloran/adorn"

var _ adorn.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of adorn.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*adorn.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*adorn.ExtractResult, error) {
	return e.ExtractFn(html)
}
