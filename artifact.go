package adorn

// ArtifactStore persists the intermediate artifacts of an enhancement run:
// the extracted outline, the raw slot suggestions, and the final HTML.
// Artifacts are plain files whose JSON format is exactly the Outline and
// SlotSpec wire shapes, pretty-printed.
type ArtifactStore interface {
	SaveOutline(outline *Outline) error
	SaveSlotSpecs(name string, specs []SlotSpec) error
	SaveHTML(name string, html string) error
}
