// Package fs provides file-based storage for enhancement run artifacts.
package fs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dhalloran/adorn"
)

// Ensure ArtifactStore implements adorn.ArtifactStore at compile time.
var _ adorn.ArtifactStore = (*ArtifactStore)(nil)

// ArtifactStore writes run artifacts to a single directory: the extracted
// outline, the raw slot suggestions, and the enhanced HTML. JSON artifacts
// are pretty-printed so they stay reviewable by hand.
type ArtifactStore struct {
	dir string
}

// NewArtifactStore creates a store rooted at dir, creating it if needed.
func NewArtifactStore(dir string) (*ArtifactStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}
	return &ArtifactStore{dir: dir}, nil
}

// Dir returns the directory the store writes to.
func (s *ArtifactStore) Dir() string {
	return s.dir
}

// SaveOutline writes the outline to outline.json.
func (s *ArtifactStore) SaveOutline(outline *adorn.Outline) error {
	return s.writeJSON("outline.json", outline)
}

// SaveSlotSpecs writes slot suggestions to <name>.json. A nil spec list is
// written as an empty array so downstream tooling always finds the file.
func (s *ArtifactStore) SaveSlotSpecs(name string, specs []adorn.SlotSpec) error {
	if specs == nil {
		specs = []adorn.SlotSpec{}
	}
	return s.writeJSON(name+".json", specs)
}

// SaveHTML writes a document snapshot to <name>.html.
func (s *ArtifactStore) SaveHTML(name string, html string) error {
	return os.WriteFile(filepath.Join(s.dir, name+".html"), []byte(html), 0644)
}

func (s *ArtifactStore) writeJSON(filename string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filename, err)
	}
	return os.WriteFile(filepath.Join(s.dir, filename), append(data, '\n'), 0644)
}
