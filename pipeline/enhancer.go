// Package pipeline orchestrates article enhancement. It sequences outline
// extraction, slot suggestion, image search and selection, widget
// assessment and rendering, and final injection, keeping per-slot failures
// isolated from the rest of the batch.
package pipeline

import (
	"context"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/dhalloran/adorn"
	"golang.org/x/sync/errgroup"
)

// Default limits applied when the corresponding Enhancer field is zero.
const (
	DefaultMaxImages     = 10
	DefaultMaxWidgets    = 5
	DefaultSearchResults = 5
	DefaultConcurrency   = 4
)

// Enhancer orchestrates the enhancement of one article.
//
// The document value flows through the stages by exclusive ownership:
// extraction mutates it, injection mutates it further, and no stage aliases
// it concurrently. Only the collaborator calls between those stages run in
// parallel.
type Enhancer struct {
	Extractor       adorn.Extractor
	ImageSuggester  adorn.ImageSuggester
	WidgetSuggester adorn.WidgetSuggester
	Searcher        adorn.ImageSearcher
	// Selector picks the best image candidate. When nil, the pipeline runs
	// in the documented degraded mode: first candidate, its own title as
	// the caption, and Result.Degraded set.
	Selector  adorn.ImageSelector
	Assessor  adorn.WidgetAssessor
	Renderer  adorn.WidgetRenderer
	Injector  adorn.Injector
	Artifacts adorn.ArtifactStore

	// MaxImages and MaxWidgets bound the suggestion calls. A negative
	// value disables that slot kind entirely.
	MaxImages  int
	MaxWidgets int

	// SearchResults is the number of candidates requested per image slot.
	SearchResults int

	// Concurrency bounds parallel collaborator calls.
	Concurrency int
}

// Result holds the outcome of an enhancement.
type Result struct {
	HTML          string
	Outline       *adorn.Outline
	ContentHash   string
	ImagesPlaced  int
	WidgetsPlaced int
	SlotsSkipped  int

	// Degraded reports that some slot was resolved on a degraded path
	// (image selection unavailable) rather than by an explicit choice.
	Degraded bool
}

// ProgressType indicates the type of progress event.
type ProgressType int

// Progress event types.
const (
	ProgressStarted ProgressType = iota
	ProgressOutlined
	ProgressResolved
	ProgressSkipped
	ProgressFinished
)

// ProgressEvent reports progress during enhancement.
type ProgressEvent struct {
	Type      ProgressType
	Kind      adorn.SlotKind
	Detail    string
	Completed int
	Total     int
	Err       error
}

// ProgressFunc is a callback for reporting enhancement progress.
type ProgressFunc func(event ProgressEvent)

// Enhance runs the full pipeline over one article document and returns the
// enhanced HTML. Per-slot failures are isolated: a bad anchor reference or
// failed image search drops that slot and the batch continues. Only a
// structurally unusable document (no article root) or a failed suggestion
// call aborts.
func (e *Enhancer) Enhance(ctx context.Context, html string, progress ProgressFunc) (*Result, error) {
	notify(progress, ProgressEvent{Type: ProgressStarted})

	extracted, err := e.Extractor.Extract(html)
	if err != nil {
		return nil, err
	}
	notify(progress, ProgressEvent{Type: ProgressOutlined, Detail: extracted.Outline.Title})

	if e.Artifacts != nil {
		if err := e.Artifacts.SaveOutline(extracted.Outline); err != nil {
			return nil, fmt.Errorf("save outline: %w", err)
		}
	}

	result := &Result{Outline: extracted.Outline}

	imageSpecs, err := e.suggestImages(ctx, extracted.Outline)
	if err != nil {
		return nil, err
	}
	widgetSpecs, err := e.suggestWidgets(ctx, extracted.Outline)
	if err != nil {
		return nil, err
	}

	if e.Artifacts != nil {
		if err := e.Artifacts.SaveSlotSpecs("image_slots", imageSpecs); err != nil {
			return nil, fmt.Errorf("save image slots: %w", err)
		}
		if err := e.Artifacts.SaveSlotSpecs("widget_slots", widgetSpecs); err != nil {
			return nil, fmt.Errorf("save widget slots: %w", err)
		}
	}

	images := e.resolveImageSlots(ctx, imageSpecs, progress, result)
	widgets := e.resolveWidgetSlots(ctx, extracted.Outline, widgetSpecs, progress, result)

	// One injection pass, images then widgets, each in suggestion order.
	// Injection is order-sensitive; the resolvers preserve input order.
	slots := append(images, widgets...)
	injected, err := e.Injector.Inject(extracted.HTML, slots)
	if err != nil {
		return nil, err
	}

	for _, skip := range injected.Skipped {
		result.SlotsSkipped++
		notify(progress, ProgressEvent{
			Type:   ProgressSkipped,
			Kind:   skip.Kind,
			Detail: skip.Reason,
		})
		switch skip.Kind {
		case adorn.SlotImage:
			result.ImagesPlaced--
		case adorn.SlotWidget:
			result.WidgetsPlaced--
		}
	}

	result.HTML = injected.HTML
	result.ContentHash = fmt.Sprintf("%016x", xxhash.Sum64String(injected.HTML))

	if e.Artifacts != nil {
		if err := e.Artifacts.SaveHTML("enhanced", injected.HTML); err != nil {
			return nil, fmt.Errorf("save enhanced HTML: %w", err)
		}
	}

	notify(progress, ProgressEvent{
		Type:      ProgressFinished,
		Completed: result.ImagesPlaced + result.WidgetsPlaced,
		Total:     len(slots),
	})

	return result, nil
}

func (e *Enhancer) suggestImages(ctx context.Context, outline *adorn.Outline) ([]adorn.SlotSpec, error) {
	if e.ImageSuggester == nil || e.MaxImages < 0 {
		return nil, nil
	}
	max := e.MaxImages
	if max == 0 {
		max = DefaultMaxImages
	}
	specs, err := e.ImageSuggester.SuggestImageSlots(ctx, outline, max)
	if err != nil {
		return nil, fmt.Errorf("image suggestion: %w", err)
	}
	if len(specs) > max {
		specs = specs[:max]
	}
	return specs, nil
}

func (e *Enhancer) suggestWidgets(ctx context.Context, outline *adorn.Outline) ([]adorn.SlotSpec, error) {
	if e.WidgetSuggester == nil || e.MaxWidgets < 0 {
		return nil, nil
	}
	max := e.MaxWidgets
	if max == 0 {
		max = DefaultMaxWidgets
	}
	specs, err := e.WidgetSuggester.SuggestWidgetSlots(ctx, outline, max)
	if err != nil {
		return nil, fmt.Errorf("widget suggestion: %w", err)
	}
	if len(specs) > max {
		specs = specs[:max]
	}
	return specs, nil
}

// resolveImageSlots turns image suggestions into injectable slots: search
// for candidates, pick the best one, fill alt text and caption. Failures
// drop the slot; output order matches input order.
func (e *Enhancer) resolveImageSlots(ctx context.Context, specs []adorn.SlotSpec, progress ProgressFunc, result *Result) []adorn.Slot {
	if len(specs) == 0 || e.Searcher == nil {
		return nil
	}

	type imageOutcome struct {
		slot     *adorn.Slot
		degraded bool
		err      error
	}
	outcomes := make([]imageOutcome, len(specs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency())

	for i, spec := range specs {
		g.Go(func() error {
			slot, degraded, err := e.resolveImage(gctx, spec)
			outcomes[i] = imageOutcome{slot: slot, degraded: degraded, err: err}
			return nil
		})
	}
	_ = g.Wait()

	var slots []adorn.Slot
	for i, out := range outcomes {
		if out.err != nil || out.slot == nil {
			result.SlotsSkipped++
			notify(progress, ProgressEvent{
				Type:   ProgressSkipped,
				Kind:   adorn.SlotImage,
				Detail: specs[i].SearchQuery,
				Err:    out.err,
			})
			continue
		}
		if out.degraded {
			result.Degraded = true
		}
		result.ImagesPlaced++
		slots = append(slots, *out.slot)
		notify(progress, ProgressEvent{
			Type:   ProgressResolved,
			Kind:   adorn.SlotImage,
			Detail: specs[i].SearchQuery,
		})
	}
	return slots
}

// resolveImage resolves one image slot. A nil slot with a nil error means
// the slot was dropped (no candidates, or selection found none viable).
func (e *Enhancer) resolveImage(ctx context.Context, spec adorn.SlotSpec) (*adorn.Slot, bool, error) {
	n := e.SearchResults
	if n <= 0 {
		n = DefaultSearchResults
	}

	candidates, err := e.Searcher.SearchImages(ctx, spec.SearchQuery, n)
	if err != nil {
		return nil, false, err
	}
	if len(candidates) == 0 {
		return nil, false, nil
	}

	var chosen adorn.ImageCandidate
	var caption string
	degraded := false

	if e.Selector == nil {
		// Degraded mode: no selection available, take the top candidate.
		chosen = candidates[0]
		caption = firstNonEmpty(spec.CaptionHint, chosen.Title)
		degraded = true
	} else {
		choice, err := e.Selector.SelectImage(ctx, candidates, spec.SearchQuery)
		if err != nil {
			return nil, false, err
		}
		if choice == nil {
			// Explicit "nothing viable": drop, never default past it.
			return nil, false, nil
		}
		chosen = candidates[choice.Index]
		caption = firstNonEmpty(choice.Caption, spec.CaptionHint, chosen.Title)
	}

	return &adorn.Slot{
		Kind:        adorn.SlotImage,
		SectionID:   spec.SectionID,
		ParagraphID: spec.ParagraphID,
		Position:    adorn.ParsePosition(spec.Position),
		ImageURL:    chosen.URL,
		AltText:     firstNonEmpty(spec.AltTextHint, chosen.Title),
		Caption:     caption,
	}, degraded, nil
}

// resolveWidgetSlots assesses each widget suggestion against its section's
// text and renders the ones that pass. If nothing passes, the single
// highest-scoring rejected candidate at or above the fallback threshold is
// placed anyway, so an article gets at least one widget when any candidate
// was plausible.
func (e *Enhancer) resolveWidgetSlots(ctx context.Context, outline *adorn.Outline, specs []adorn.SlotSpec, progress ProgressFunc, result *Result) []adorn.Slot {
	if len(specs) == 0 || e.Assessor == nil || e.Renderer == nil {
		return nil
	}

	type widgetOutcome struct {
		assessment *adorn.WidgetAssessment
		err        error
	}
	outcomes := make([]widgetOutcome, len(specs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency())

	for i, spec := range specs {
		g.Go(func() error {
			assessment, err := e.assessWidget(gctx, outline, spec)
			outcomes[i] = widgetOutcome{assessment: assessment, err: err}
			return nil
		})
	}
	_ = g.Wait()

	var slots []adorn.Slot
	fallback := -1
	var fallbackScore float64

	for i, out := range outcomes {
		spec := specs[i]
		a := out.assessment

		if out.err != nil || a == nil || a.Data == nil {
			result.SlotsSkipped++
			notify(progress, ProgressEvent{
				Type:   ProgressSkipped,
				Kind:   adorn.SlotWidget,
				Detail: string(spec.WidgetType),
				Err:    out.err,
			})
			continue
		}

		if a.Score < adorn.WidgetPlaceThreshold {
			if a.Score >= adorn.WidgetFallbackThreshold && a.Score > fallbackScore {
				fallback, fallbackScore = i, a.Score
			}
			result.SlotsSkipped++
			notify(progress, ProgressEvent{
				Type:   ProgressSkipped,
				Kind:   adorn.SlotWidget,
				Detail: fmt.Sprintf("%s scored %.2f: %s", spec.WidgetType, a.Score, a.Reason),
			})
			continue
		}

		if slot := e.renderWidget(spec, a); slot != nil {
			slots = append(slots, *slot)
			result.WidgetsPlaced++
			notify(progress, ProgressEvent{
				Type:   ProgressResolved,
				Kind:   adorn.SlotWidget,
				Detail: string(spec.WidgetType),
			})
		} else {
			result.SlotsSkipped++
		}
	}

	if len(slots) == 0 && fallback >= 0 {
		if slot := e.renderWidget(specs[fallback], outcomes[fallback].assessment); slot != nil {
			slots = append(slots, *slot)
			result.WidgetsPlaced++
			result.SlotsSkipped--
			notify(progress, ProgressEvent{
				Type:   ProgressResolved,
				Kind:   adorn.SlotWidget,
				Detail: fmt.Sprintf("%s (fallback, scored %.2f)", specs[fallback].WidgetType, fallbackScore),
			})
		}
	}

	return slots
}

// assessWidget gathers the widget's context text and runs the assessor.
// Context is the referenced section's text, falling back to the whole
// paragraph's section when only a paragraph id is valid.
func (e *Enhancer) assessWidget(ctx context.Context, outline *adorn.Outline, spec adorn.SlotSpec) (*adorn.WidgetAssessment, error) {
	section := outline.FindSection(spec.SectionID)
	if section == nil && spec.ParagraphID != nil {
		section, _ = outline.FindParagraph(*spec.ParagraphID)
	}
	if section == nil {
		// Anchor may be hallucinated; the injector would skip it anyway.
		return nil, adorn.Errorf(adorn.ENOTFOUND, "section %q not in outline", spec.SectionID)
	}
	return e.Assessor.Assess(ctx, section.Text(), spec.ContentHint, spec.WidgetType)
}

// renderWidget renders an assessment into an injectable slot, or nil when
// the type is unrenderable.
func (e *Enhancer) renderWidget(spec adorn.SlotSpec, a *adorn.WidgetAssessment) *adorn.Slot {
	html, err := e.Renderer.Render(spec.WidgetType, a.Data)
	if err != nil || html == "" {
		return nil
	}
	return &adorn.Slot{
		Kind:        adorn.SlotWidget,
		SectionID:   spec.SectionID,
		ParagraphID: spec.ParagraphID,
		Position:    adorn.ParsePosition(spec.Position),
		WidgetHTML:  html,
	}
}

func (e *Enhancer) concurrency() int {
	if e.Concurrency > 0 {
		return e.Concurrency
	}
	return DefaultConcurrency
}

func notify(progress ProgressFunc, event ProgressEvent) {
	if progress != nil {
		progress(event)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
