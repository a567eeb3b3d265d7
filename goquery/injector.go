package goquery

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dhalloran/adorn"
	nethtml "golang.org/x/net/html"
)

// SlotClass marks every system-inserted node so downstream passes can
// identify (and if needed strip) injected content.
const SlotClass = "mm-slot"

// WidgetClass additionally marks injected widget wrappers.
const WidgetClass = "mm-widget"

// Ensure Injector implements adorn.Injector at compile time.
var _ adorn.Injector = (*Injector)(nil)

// Injector inserts resolved slots into an anchor-annotated document.
type Injector struct{}

// NewInjector creates a new Injector.
func NewInjector() *Injector {
	return &Injector{}
}

// Inject places each slot relative to its anchor, in input order. Every
// insertion is a localized edit that leaves all other anchors untouched, so
// later slots resolve against the same document positions as earlier ones
// and repeated anchors stack in batch order.
//
// Slots whose anchors do not resolve are skipped and reported in the
// result; only a document that cannot be parsed or serialized is an error.
func (in *Injector) Inject(htmlDoc string, slots []adorn.Slot) (*adorn.InjectResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlDoc))
	if err != nil {
		return nil, adorn.Errorf(adorn.EINVALID, "failed to parse HTML: %v", err)
	}

	result := &adorn.InjectResult{}

	// Inserting after an anchor always lands immediately behind it, so a
	// second fragment at the same anchor would end up ahead of the first.
	// Tracking the trailing fragment per anchor keeps repeated insertions
	// in batch order: each one goes after the previous fragment instead.
	tails := map[*nethtml.Node]*goquery.Selection{}
	insertAfter := func(anchor *goquery.Selection, fragment string) {
		node := anchor.Get(0)
		at, ok := tails[node]
		if !ok {
			at = anchor
		}
		at.AfterHtml(fragment)
		tails[node] = at.Next()
	}

	for i, slot := range slots {
		if err := slot.Validate(); err != nil {
			result.Skipped = append(result.Skipped, skipped(i, slot, adorn.ErrorMessage(err)))
			continue
		}

		// Primary anchor: the paragraph if set, else the section.
		anchor := findByID(doc, stringValue(slot.ParagraphID))
		if anchor.Length() == 0 {
			anchor = findByID(doc, slot.SectionID)
		}
		if anchor.Length() == 0 {
			result.Skipped = append(result.Skipped, skipped(i, slot, "anchor not found"))
			continue
		}

		fragment := buildFragment(slot)

		switch slot.Position {
		case adorn.PositionBefore:
			anchor.BeforeHtml(fragment)
		case adorn.PositionBeforeHeading:
			sectionAnchorOr(doc, slot.SectionID, anchor).BeforeHtml(fragment)
		case adorn.PositionAfterHeading:
			insertAfter(sectionAnchorOr(doc, slot.SectionID, anchor), fragment)
		default:
			insertAfter(anchor, fragment)
		}

		result.Inserted++
	}

	out, err := doc.Html()
	if err != nil {
		return nil, adorn.Errorf(adorn.EINTERNAL, "failed to serialize document: %v", err)
	}
	result.HTML = out

	return result, nil
}

// buildFragment renders the markup to insert for a slot. Image slots become
// a self-contained captioned figure; widget slots wrap their pre-rendered
// fragment in a marked container.
func buildFragment(slot adorn.Slot) string {
	if slot.Kind == adorn.SlotWidget {
		return fmt.Sprintf(`<div class="%s %s">%s</div>`, SlotClass, WidgetClass, slot.WidgetHTML)
	}
	return fmt.Sprintf(
		`<figure class="%s"><img src="%s" alt="%s"/><figcaption>%s</figcaption></figure>`,
		SlotClass,
		html.EscapeString(slot.ImageURL),
		html.EscapeString(slot.AltText),
		html.EscapeString(slot.Caption),
	)
}

// sectionAnchorOr resolves the section's heading/anchor element for the
// *_heading positions, degrading to the primary anchor when the section id
// does not resolve.
func sectionAnchorOr(doc *goquery.Document, sectionID string, primary *goquery.Selection) *goquery.Selection {
	if sel := findByID(doc, sectionID); sel.Length() > 0 {
		return sel
	}
	return primary
}

// findByID locates the unique element carrying the given id attribute.
// Attribute-selector matching avoids the CSS identifier restrictions of #id
// syntax; site-authored ids may start with digits or contain dots.
func findByID(doc *goquery.Document, id string) *goquery.Selection {
	if id == "" {
		return doc.Selection.Slice(0, 0)
	}
	return doc.Find("[id=" + strconv.Quote(id) + "]").First()
}

func skipped(index int, slot adorn.Slot, reason string) adorn.SkippedSlot {
	return adorn.SkippedSlot{
		Index:       index,
		Kind:        slot.Kind,
		SectionID:   slot.SectionID,
		ParagraphID: slot.ParagraphID,
		Reason:      reason,
	}
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
