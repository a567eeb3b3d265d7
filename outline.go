package adorn

// Outline is the structured view of an article extracted from HTML.
// It is the wire contract handed to the suggestion collaborators: every id
// it carries is also present, verbatim, as the id attribute of exactly one
// element in the mutated HTML returned alongside it, which is what makes
// outline ids usable as injection anchors later.
type Outline struct {
	Title    string     `json:"title"`
	Sections []*Section `json:"sections"`
}

// Section represents one article section opened by a heading element, or
// the synthetic "Introduction" section fabricated for content that precedes
// the first heading.
type Section struct {
	ID         string       `json:"id"`
	Level      int          `json:"level"`
	Heading    string       `json:"heading"`
	Paragraphs []*Paragraph `json:"paragraphs"`
}

// Paragraph represents one paragraph-like element inside a section.
type Paragraph struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// FindSection returns the section with the given id, or nil if absent.
func (o *Outline) FindSection(id string) *Section {
	for _, s := range o.Sections {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// FindParagraph returns the paragraph with the given id and its enclosing
// section, or nils if absent.
func (o *Outline) FindParagraph(id string) (*Section, *Paragraph) {
	for _, s := range o.Sections {
		for _, p := range s.Paragraphs {
			if p.ID == id {
				return s, p
			}
		}
	}
	return nil, nil
}

// Text returns the concatenated paragraph text of a section, separated by
// blank lines. Used as context for widget data extraction.
func (s *Section) Text() string {
	var out string
	for i, p := range s.Paragraphs {
		if i > 0 {
			out += "\n\n"
		}
		out += p.Text
	}
	return out
}

// ExtractResult holds the outcome of outline extraction: the outline itself
// and the serialized document with anchor ids written onto every element
// the outline references.
type ExtractResult struct {
	// HTML is the mutated document. A superset of the input: ids have been
	// assigned where missing and a synthetic section anchor may have been
	// inserted, but no content was removed or reordered.
	HTML string

	// Outline is the extracted article structure.
	Outline *Outline
}

// Extractor parses article HTML into an Outline while annotating the
// document with stable anchor ids.
//
// Extraction is idempotent: running it on already-annotated HTML reuses
// existing ids rather than minting new ones. Returns ENOTFOUND if the
// document contains no recognizable article root element.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}
