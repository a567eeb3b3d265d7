package mock

import "github.com/dhalloran/adorn"

var _ adorn.ArtifactStore = (*ArtifactStore)(nil)

// ArtifactStore is a mock implementation of adorn.ArtifactStore.
type ArtifactStore struct {
	SaveOutlineFn   func(outline *adorn.Outline) error
	SaveSlotSpecsFn func(name string, specs []adorn.SlotSpec) error
	SaveHTMLFn      func(name string, html string) error
}

func (s *ArtifactStore) SaveOutline(outline *adorn.Outline) error {
	return s.SaveOutlineFn(outline)
}

func (s *ArtifactStore) SaveSlotSpecs(name string, specs []adorn.SlotSpec) error {
	return s.SaveSlotSpecsFn(name, specs)
}

func (s *ArtifactStore) SaveHTML(name string, html string) error {
	return s.SaveHTMLFn(name, html)
}
