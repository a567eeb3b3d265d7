// Package goquery provides the HTML document core: outline extraction with
// stable anchor ids, anchor-relative slot injection, and stylesheet
// inlining, all built on github.com/PuerkitoBio/goquery.
package goquery

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dhalloran/adorn"
)

// articleSchemaSelector matches an article element semantically marked with
// the schema.org Article type. Preferred over a bare <article> because some
// pages wrap unrelated chrome in article tags.
const articleSchemaSelector = `article[itemtype='https://schema.org/Article']`

var headingTags = map[string]int{
	"h1": 1, "h2": 2, "h3": 3, "h4": 4, "h5": 5, "h6": 6,
}

// ParagraphSignature decides whether a non-paragraph element should be
// treated as paragraph content. The source site sometimes renders paragraphs
// as styled spans instead of <p> tags; signatures make that heuristic
// extensible without touching traversal logic.
type ParagraphSignature func(s *goquery.Selection) bool

// BlockSpanSignature matches spans carrying all of the given style classes.
func BlockSpanSignature(classes ...string) ParagraphSignature {
	return func(s *goquery.Selection) bool {
		if goquery.NodeName(s) != "span" {
			return false
		}
		for _, class := range classes {
			if !s.HasClass(class) {
				return false
			}
		}
		return true
	}
}

// Ensure Extractor implements adorn.Extractor at compile time.
var _ adorn.Extractor = (*Extractor)(nil)

// Extractor builds an article outline from HTML and annotates the document
// with stable anchor ids as a side effect.
type Extractor struct {
	signatures []ParagraphSignature
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithParagraphSignatures replaces the default paragraph-like signatures.
func WithParagraphSignatures(sigs ...ParagraphSignature) Option {
	return func(e *Extractor) {
		e.signatures = sigs
	}
}

// NewExtractor creates a new Extractor. By default it treats spans styled
// with both "mb-4" and "block" as paragraphs, matching the source site's
// block-paragraph template.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		signatures: []ParagraphSignature{BlockSpanSignature("mb-4", "block")},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses article HTML into an outline and returns the serialized
// document with every outline id written onto exactly one element.
//
// Id assignment reuses existing non-empty id attributes verbatim, so
// extraction is idempotent: a second pass over its own output yields the
// same outline. Synthetic ids use global document-order counters
// (sec_1, sec_2, ... and p_1, p_2, ...) independent of nesting.
func (e *Extractor) Extract(html string) (*adorn.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, adorn.Errorf(adorn.EINVALID, "failed to parse HTML: %v", err)
	}

	root := doc.Find(articleSchemaSelector).First()
	if root.Length() == 0 {
		root = doc.Find("article").First()
	}
	if root.Length() == 0 {
		return nil, adorn.Errorf(adorn.ENOTFOUND, "no article element found in document")
	}

	// The first h1 inside the root is the article title, not a section.
	title := root.Find("h1").First()
	titleText := ""
	if title.Length() > 0 {
		titleText = strings.TrimSpace(title.Text())
	}

	outline := &adorn.Outline{Title: titleText, Sections: []*adorn.Section{}}

	var current *adorn.Section
	sectionCounter := 0
	paragraphCounter := 0

	root.Find("h1,h2,h3,h4,h5,h6,p,span").Each(func(_ int, sel *goquery.Selection) {
		name := goquery.NodeName(sel)

		if level, ok := headingTags[name]; ok {
			if title.Length() > 0 && sel.Nodes[0] == title.Nodes[0] {
				return
			}

			sectionCounter++
			id := elementID(sel)
			if id == "" {
				id = fmt.Sprintf("sec_%d", sectionCounter)
			}
			sel.SetAttr("id", id)

			current = &adorn.Section{
				ID:         id,
				Level:      level,
				Heading:    strings.TrimSpace(sel.Text()),
				Paragraphs: []*adorn.Paragraph{},
			}
			outline.Sections = append(outline.Sections, current)
			return
		}

		if name != "p" && !e.matchesSignature(sel) {
			return
		}

		paragraphCounter++
		id := elementID(sel)
		if id == "" {
			id = fmt.Sprintf("p_%d", paragraphCounter)
		}
		sel.SetAttr("id", id)

		// Content before the first heading goes into a synthetic
		// "Introduction" section. There is no heading element to carry its
		// id, so an empty anchor element is inserted before this paragraph.
		// A second pass over already-annotated HTML finds the anchor from
		// the first pass and reuses it instead of inserting another.
		if current == nil {
			sectionCounter++
			secID := fmt.Sprintf("sec_%d", sectionCounter)
			if prev := syntheticAnchorID(sel.Prev()); prev != "" {
				secID = prev
			} else {
				sel.BeforeHtml(fmt.Sprintf(`<div id="%s"></div>`, secID))
			}

			current = &adorn.Section{
				ID:         secID,
				Level:      2,
				Heading:    "Introduction",
				Paragraphs: []*adorn.Paragraph{},
			}
			outline.Sections = append(outline.Sections, current)
		}

		current.Paragraphs = append(current.Paragraphs, &adorn.Paragraph{
			ID:   id,
			Text: strings.TrimSpace(sel.Text()),
		})
	})

	mutated, err := doc.Html()
	if err != nil {
		return nil, adorn.Errorf(adorn.EINTERNAL, "failed to serialize document: %v", err)
	}

	return &adorn.ExtractResult{HTML: mutated, Outline: outline}, nil
}

// matchesSignature reports whether the element counts as paragraph content
// under any configured signature. Heading checks happen before this, so a
// heading styled like a paragraph is still a heading.
func (e *Extractor) matchesSignature(sel *goquery.Selection) bool {
	for _, sig := range e.signatures {
		if sig(sel) {
			return true
		}
	}
	return false
}

// elementID returns the element's existing id attribute, or "" if absent
// or empty.
func elementID(sel *goquery.Selection) string {
	id, _ := sel.Attr("id")
	return id
}

// syntheticSectionID matches the ids this extractor generates for section
// anchors.
var syntheticSectionID = regexp.MustCompile(`^sec_\d+$`)

// syntheticAnchorID returns the id of a previously injected synthetic
// section anchor: an empty div carrying a generated sec_<n> id and nothing
// else. Site-authored empty divs keep their own ids and do not qualify,
// so a fresh anchor gets inserted next to them instead.
func syntheticAnchorID(sel *goquery.Selection) string {
	if sel.Length() == 0 || goquery.NodeName(sel) != "div" {
		return ""
	}
	if sel.Children().Length() > 0 || strings.TrimSpace(sel.Text()) != "" {
		return ""
	}
	id := elementID(sel)
	if !syntheticSectionID.MatchString(id) {
		return ""
	}
	return id
}
