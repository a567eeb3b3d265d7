package pipeline_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/dhalloran/adorn"
	"github.com/dhalloran/adorn/mock"
	"github.com/dhalloran/adorn/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOutline() *adorn.Outline {
	return &adorn.Outline{
		Title: "Nelson Mandela",
		Sections: []*adorn.Section{
			{
				ID:      "sec_1",
				Level:   2,
				Heading: "Introduction",
				Paragraphs: []*adorn.Paragraph{
					{ID: "p_1", Text: "Mandela was a South African statesman."},
				},
			},
			{
				ID:      "sec_2",
				Level:   2,
				Heading: "Early Life",
				Paragraphs: []*adorn.Paragraph{
					{ID: "p_2", Text: "Born in 1918 in Mvezo."},
				},
			},
		},
	}
}

func testExtractor(t *testing.T) *mock.Extractor {
	t.Helper()
	return &mock.Extractor{
		ExtractFn: func(html string) (*adorn.ExtractResult, error) {
			return &adorn.ExtractResult{HTML: html, Outline: testOutline()}, nil
		},
	}
}

func imageSpec(sectionID, query string) adorn.SlotSpec {
	return adorn.SlotSpec{
		SectionID:   sectionID,
		Position:    "after",
		SearchQuery: query,
	}
}

func widgetSpec(sectionID string, wt adorn.WidgetType) adorn.SlotSpec {
	return adorn.SlotSpec{
		SectionID:   sectionID,
		Position:    "after",
		WidgetType:  wt,
		ContentHint: "key dates",
	}
}

func TestEnhancer_Enhance(t *testing.T) {
	t.Parallel()

	t.Run("places images and widgets through a single injection pass", func(t *testing.T) {
		t.Parallel()

		var injectedSlots []adorn.Slot
		e := &pipeline.Enhancer{
			Extractor: testExtractor(t),
			ImageSuggester: &mock.ImageSuggester{
				SuggestImageSlotsFn: func(ctx context.Context, outline *adorn.Outline, maxSlots int) ([]adorn.SlotSpec, error) {
					return []adorn.SlotSpec{
						imageSpec("sec_1", "mandela portrait"),
						imageSpec("sec_2", "mvezo village"),
					}, nil
				},
			},
			WidgetSuggester: &mock.WidgetSuggester{
				SuggestWidgetSlotsFn: func(ctx context.Context, outline *adorn.Outline, maxSlots int) ([]adorn.SlotSpec, error) {
					return []adorn.SlotSpec{widgetSpec("sec_2", adorn.WidgetTimeline)}, nil
				},
			},
			Searcher: &mock.ImageSearcher{
				SearchImagesFn: func(ctx context.Context, query string, n int) ([]adorn.ImageCandidate, error) {
					return []adorn.ImageCandidate{
						{URL: "https://img.example.com/" + query, Title: "Photo of " + query},
					}, nil
				},
			},
			Selector: &mock.ImageSelector{
				SelectImageFn: func(ctx context.Context, candidates []adorn.ImageCandidate, query string) (*adorn.ImageChoice, error) {
					return &adorn.ImageChoice{Index: 0, Caption: "Chosen: " + query}, nil
				},
			},
			Assessor: &mock.WidgetAssessor{
				AssessFn: func(ctx context.Context, contextText, contentHint string, widgetType adorn.WidgetType) (*adorn.WidgetAssessment, error) {
					return &adorn.WidgetAssessment{
						Score: 0.9,
						Data:  json.RawMessage(`{"events":[]}`),
					}, nil
				},
			},
			Renderer: &mock.WidgetRenderer{
				RenderFn: func(widgetType adorn.WidgetType, data json.RawMessage) (string, error) {
					return "<div>timeline</div>", nil
				},
			},
			Injector: &mock.Injector{
				InjectFn: func(html string, slots []adorn.Slot) (*adorn.InjectResult, error) {
					injectedSlots = slots
					return &adorn.InjectResult{HTML: html + "<!-- injected -->", Inserted: len(slots)}, nil
				},
			},
		}

		result, err := e.Enhance(context.Background(), "<article></article>", nil)

		require.NoError(t, err)
		assert.Equal(t, 2, result.ImagesPlaced)
		assert.Equal(t, 1, result.WidgetsPlaced)
		assert.Equal(t, 0, result.SlotsSkipped)
		assert.False(t, result.Degraded)
		assert.Contains(t, result.HTML, "<!-- injected -->")
		assert.Len(t, result.ContentHash, 16)

		// Images precede widgets and keep suggestion order despite
		// concurrent resolution.
		require.Len(t, injectedSlots, 3)
		assert.Equal(t, adorn.SlotImage, injectedSlots[0].Kind)
		assert.Equal(t, "sec_1", injectedSlots[0].SectionID)
		assert.Equal(t, "https://img.example.com/mandela portrait", injectedSlots[0].ImageURL)
		assert.Equal(t, "Chosen: mandela portrait", injectedSlots[0].Caption)
		assert.Equal(t, adorn.SlotImage, injectedSlots[1].Kind)
		assert.Equal(t, "sec_2", injectedSlots[1].SectionID)
		assert.Equal(t, adorn.SlotWidget, injectedSlots[2].Kind)
		assert.Equal(t, "<div>timeline</div>", injectedSlots[2].WidgetHTML)
	})

	t.Run("falls back to the first candidate when no selector is configured", func(t *testing.T) {
		t.Parallel()

		e := &pipeline.Enhancer{
			Extractor: testExtractor(t),
			ImageSuggester: &mock.ImageSuggester{
				SuggestImageSlotsFn: func(ctx context.Context, outline *adorn.Outline, maxSlots int) ([]adorn.SlotSpec, error) {
					return []adorn.SlotSpec{imageSpec("sec_1", "mandela portrait")}, nil
				},
			},
			Searcher: &mock.ImageSearcher{
				SearchImagesFn: func(ctx context.Context, query string, n int) ([]adorn.ImageCandidate, error) {
					return []adorn.ImageCandidate{
						{URL: "https://img.example.com/a.jpg", Title: "Mandela in 1994"},
						{URL: "https://img.example.com/b.jpg", Title: "Another photo"},
					}, nil
				},
			},
		}

		var placed []adorn.Slot
		e.Injector = &mock.Injector{
			InjectFn: func(html string, slots []adorn.Slot) (*adorn.InjectResult, error) {
				placed = slots
				return &adorn.InjectResult{HTML: html, Inserted: len(slots)}, nil
			},
		}

		result, err := e.Enhance(context.Background(), "<article></article>", nil)

		require.NoError(t, err)
		assert.True(t, result.Degraded)
		assert.Equal(t, 1, result.ImagesPlaced)
		require.Len(t, placed, 1)
		assert.Equal(t, "https://img.example.com/a.jpg", placed[0].ImageURL)
		assert.Equal(t, "Mandela in 1994", placed[0].Caption)
	})

	t.Run("drops a slot when the selector finds nothing viable", func(t *testing.T) {
		t.Parallel()

		e := &pipeline.Enhancer{
			Extractor: testExtractor(t),
			ImageSuggester: &mock.ImageSuggester{
				SuggestImageSlotsFn: func(ctx context.Context, outline *adorn.Outline, maxSlots int) ([]adorn.SlotSpec, error) {
					return []adorn.SlotSpec{imageSpec("sec_1", "mandela portrait")}, nil
				},
			},
			Searcher: &mock.ImageSearcher{
				SearchImagesFn: func(ctx context.Context, query string, n int) ([]adorn.ImageCandidate, error) {
					return []adorn.ImageCandidate{{URL: "https://img.example.com/a.jpg"}}, nil
				},
			},
			Selector: &mock.ImageSelector{
				SelectImageFn: func(ctx context.Context, candidates []adorn.ImageCandidate, query string) (*adorn.ImageChoice, error) {
					return nil, nil
				},
			},
			Injector: passthroughInjector(),
		}

		result, err := e.Enhance(context.Background(), "<article></article>", nil)

		require.NoError(t, err)
		assert.Equal(t, 0, result.ImagesPlaced)
		assert.Equal(t, 1, result.SlotsSkipped)
		assert.False(t, result.Degraded)
	})

	t.Run("continues past a failed image search", func(t *testing.T) {
		t.Parallel()

		e := &pipeline.Enhancer{
			Extractor: testExtractor(t),
			ImageSuggester: &mock.ImageSuggester{
				SuggestImageSlotsFn: func(ctx context.Context, outline *adorn.Outline, maxSlots int) ([]adorn.SlotSpec, error) {
					return []adorn.SlotSpec{
						imageSpec("sec_1", "failing query"),
						imageSpec("sec_2", "working query"),
					}, nil
				},
			},
			Searcher: &mock.ImageSearcher{
				SearchImagesFn: func(ctx context.Context, query string, n int) ([]adorn.ImageCandidate, error) {
					if query == "failing query" {
						return nil, adorn.Errorf(adorn.EUNAVAILABLE, "search unavailable")
					}
					return []adorn.ImageCandidate{{URL: "https://img.example.com/ok.jpg", Title: "ok"}}, nil
				},
			},
			Selector: &mock.ImageSelector{
				SelectImageFn: func(ctx context.Context, candidates []adorn.ImageCandidate, query string) (*adorn.ImageChoice, error) {
					return &adorn.ImageChoice{Index: 0}, nil
				},
			},
			Injector: passthroughInjector(),
		}

		result, err := e.Enhance(context.Background(), "<article></article>", nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.ImagesPlaced)
		assert.Equal(t, 1, result.SlotsSkipped)
	})

	t.Run("places the best rejected widget when none pass the threshold", func(t *testing.T) {
		t.Parallel()

		scores := map[adorn.WidgetType]float64{
			adorn.WidgetTimeline: 0.45,
			adorn.WidgetKeyFacts: 0.2,
		}
		var placed []adorn.Slot
		e := &pipeline.Enhancer{
			Extractor: testExtractor(t),
			WidgetSuggester: &mock.WidgetSuggester{
				SuggestWidgetSlotsFn: func(ctx context.Context, outline *adorn.Outline, maxSlots int) ([]adorn.SlotSpec, error) {
					return []adorn.SlotSpec{
						widgetSpec("sec_1", adorn.WidgetKeyFacts),
						widgetSpec("sec_2", adorn.WidgetTimeline),
					}, nil
				},
			},
			Assessor: &mock.WidgetAssessor{
				AssessFn: func(ctx context.Context, contextText, contentHint string, widgetType adorn.WidgetType) (*adorn.WidgetAssessment, error) {
					return &adorn.WidgetAssessment{
						Score: scores[widgetType],
						Data:  json.RawMessage(`{}`),
					}, nil
				},
			},
			Renderer: &mock.WidgetRenderer{
				RenderFn: func(widgetType adorn.WidgetType, data json.RawMessage) (string, error) {
					return "<div>" + string(widgetType) + "</div>", nil
				},
			},
			Injector: &mock.Injector{
				InjectFn: func(html string, slots []adorn.Slot) (*adorn.InjectResult, error) {
					placed = slots
					return &adorn.InjectResult{HTML: html, Inserted: len(slots)}, nil
				},
			},
		}

		result, err := e.Enhance(context.Background(), "<article></article>", nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.WidgetsPlaced)
		require.Len(t, placed, 1)
		assert.Equal(t, "<div>timeline</div>", placed[0].WidgetHTML)
		// The key_facts rejection stays counted; only the fallback's own
		// skip is reversed.
		assert.Equal(t, 1, result.SlotsSkipped)
	})

	t.Run("places no widget when every score is below the fallback floor", func(t *testing.T) {
		t.Parallel()

		e := &pipeline.Enhancer{
			Extractor: testExtractor(t),
			WidgetSuggester: &mock.WidgetSuggester{
				SuggestWidgetSlotsFn: func(ctx context.Context, outline *adorn.Outline, maxSlots int) ([]adorn.SlotSpec, error) {
					return []adorn.SlotSpec{widgetSpec("sec_1", adorn.WidgetTimeline)}, nil
				},
			},
			Assessor: &mock.WidgetAssessor{
				AssessFn: func(ctx context.Context, contextText, contentHint string, widgetType adorn.WidgetType) (*adorn.WidgetAssessment, error) {
					return &adorn.WidgetAssessment{Score: 0.1, Data: json.RawMessage(`{}`)}, nil
				},
			},
			Renderer: &mock.WidgetRenderer{
				RenderFn: func(widgetType adorn.WidgetType, data json.RawMessage) (string, error) {
					return "<div></div>", nil
				},
			},
			Injector: passthroughInjector(),
		}

		result, err := e.Enhance(context.Background(), "<article></article>", nil)

		require.NoError(t, err)
		assert.Equal(t, 0, result.WidgetsPlaced)
		assert.Equal(t, 1, result.SlotsSkipped)
	})

	t.Run("skips a widget whose anchor is not in the outline", func(t *testing.T) {
		t.Parallel()

		var assessed bool
		e := &pipeline.Enhancer{
			Extractor: testExtractor(t),
			WidgetSuggester: &mock.WidgetSuggester{
				SuggestWidgetSlotsFn: func(ctx context.Context, outline *adorn.Outline, maxSlots int) ([]adorn.SlotSpec, error) {
					return []adorn.SlotSpec{widgetSpec("sec_99", adorn.WidgetTimeline)}, nil
				},
			},
			Assessor: &mock.WidgetAssessor{
				AssessFn: func(ctx context.Context, contextText, contentHint string, widgetType adorn.WidgetType) (*adorn.WidgetAssessment, error) {
					assessed = true
					return nil, nil
				},
			},
			Renderer: &mock.WidgetRenderer{
				RenderFn: func(widgetType adorn.WidgetType, data json.RawMessage) (string, error) {
					return "<div></div>", nil
				},
			},
			Injector: passthroughInjector(),
		}

		result, err := e.Enhance(context.Background(), "<article></article>", nil)

		require.NoError(t, err)
		assert.False(t, assessed)
		assert.Equal(t, 0, result.WidgetsPlaced)
		assert.Equal(t, 1, result.SlotsSkipped)
	})

	t.Run("adjusts counts for slots the injector skips", func(t *testing.T) {
		t.Parallel()

		e := &pipeline.Enhancer{
			Extractor: testExtractor(t),
			ImageSuggester: &mock.ImageSuggester{
				SuggestImageSlotsFn: func(ctx context.Context, outline *adorn.Outline, maxSlots int) ([]adorn.SlotSpec, error) {
					return []adorn.SlotSpec{imageSpec("sec_1", "q")}, nil
				},
			},
			Searcher: &mock.ImageSearcher{
				SearchImagesFn: func(ctx context.Context, query string, n int) ([]adorn.ImageCandidate, error) {
					return []adorn.ImageCandidate{{URL: "https://img.example.com/a.jpg", Title: "a"}}, nil
				},
			},
			Selector: &mock.ImageSelector{
				SelectImageFn: func(ctx context.Context, candidates []adorn.ImageCandidate, query string) (*adorn.ImageChoice, error) {
					return &adorn.ImageChoice{Index: 0}, nil
				},
			},
			Injector: &mock.Injector{
				InjectFn: func(html string, slots []adorn.Slot) (*adorn.InjectResult, error) {
					return &adorn.InjectResult{
						HTML: html,
						Skipped: []adorn.SkippedSlot{
							{Index: 0, Kind: adorn.SlotImage, SectionID: "sec_1", Reason: "anchor not found"},
						},
					}, nil
				},
			},
		}

		result, err := e.Enhance(context.Background(), "<article></article>", nil)

		require.NoError(t, err)
		assert.Equal(t, 0, result.ImagesPlaced)
		assert.Equal(t, 1, result.SlotsSkipped)
	})

	t.Run("aborts when extraction fails", func(t *testing.T) {
		t.Parallel()

		e := &pipeline.Enhancer{
			Extractor: &mock.Extractor{
				ExtractFn: func(html string) (*adorn.ExtractResult, error) {
					return nil, adorn.Errorf(adorn.ENOTFOUND, "no article element")
				},
			},
			Injector: passthroughInjector(),
		}

		_, err := e.Enhance(context.Background(), "<p>no article</p>", nil)

		require.Error(t, err)
		assert.Equal(t, adorn.ENOTFOUND, adorn.ErrorCode(err))
	})

	t.Run("aborts when suggestion fails", func(t *testing.T) {
		t.Parallel()

		e := &pipeline.Enhancer{
			Extractor: testExtractor(t),
			ImageSuggester: &mock.ImageSuggester{
				SuggestImageSlotsFn: func(ctx context.Context, outline *adorn.Outline, maxSlots int) ([]adorn.SlotSpec, error) {
					return nil, adorn.Errorf(adorn.EUNAVAILABLE, "model unavailable")
				},
			},
			Injector: passthroughInjector(),
		}

		_, err := e.Enhance(context.Background(), "<article></article>", nil)

		require.Error(t, err)
		assert.Equal(t, adorn.EUNAVAILABLE, adorn.ErrorCode(err))
	})

	t.Run("caps suggestions at the configured maximum", func(t *testing.T) {
		t.Parallel()

		e := &pipeline.Enhancer{
			Extractor: testExtractor(t),
			MaxImages: 1,
			ImageSuggester: &mock.ImageSuggester{
				SuggestImageSlotsFn: func(ctx context.Context, outline *adorn.Outline, maxSlots int) ([]adorn.SlotSpec, error) {
					assert.Equal(t, 1, maxSlots)
					return []adorn.SlotSpec{
						imageSpec("sec_1", "first"),
						imageSpec("sec_2", "excess"),
					}, nil
				},
			},
			Searcher: &mock.ImageSearcher{
				SearchImagesFn: func(ctx context.Context, query string, n int) ([]adorn.ImageCandidate, error) {
					return []adorn.ImageCandidate{{URL: "https://img.example.com/a.jpg", Title: "a"}}, nil
				},
			},
			Selector: &mock.ImageSelector{
				SelectImageFn: func(ctx context.Context, candidates []adorn.ImageCandidate, query string) (*adorn.ImageChoice, error) {
					return &adorn.ImageChoice{Index: 0}, nil
				},
			},
			Injector: passthroughInjector(),
		}

		result, err := e.Enhance(context.Background(), "<article></article>", nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.ImagesPlaced)
	})

	t.Run("saves artifacts when a store is configured", func(t *testing.T) {
		t.Parallel()

		var saved []string
		e := &pipeline.Enhancer{
			Extractor: testExtractor(t),
			Artifacts: &mock.ArtifactStore{
				SaveOutlineFn: func(outline *adorn.Outline) error {
					saved = append(saved, "outline")
					return nil
				},
				SaveSlotSpecsFn: func(name string, specs []adorn.SlotSpec) error {
					saved = append(saved, name)
					return nil
				},
				SaveHTMLFn: func(name string, html string) error {
					saved = append(saved, name)
					return nil
				},
			},
			Injector: passthroughInjector(),
		}

		_, err := e.Enhance(context.Background(), "<article></article>", nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"outline", "image_slots", "widget_slots", "enhanced"}, saved)
	})

	t.Run("reports progress events", func(t *testing.T) {
		t.Parallel()

		e := &pipeline.Enhancer{
			Extractor: testExtractor(t),
			ImageSuggester: &mock.ImageSuggester{
				SuggestImageSlotsFn: func(ctx context.Context, outline *adorn.Outline, maxSlots int) ([]adorn.SlotSpec, error) {
					return []adorn.SlotSpec{imageSpec("sec_1", "q")}, nil
				},
			},
			Searcher: &mock.ImageSearcher{
				SearchImagesFn: func(ctx context.Context, query string, n int) ([]adorn.ImageCandidate, error) {
					return []adorn.ImageCandidate{{URL: "https://img.example.com/a.jpg", Title: "a"}}, nil
				},
			},
			Selector: &mock.ImageSelector{
				SelectImageFn: func(ctx context.Context, candidates []adorn.ImageCandidate, query string) (*adorn.ImageChoice, error) {
					return &adorn.ImageChoice{Index: 0}, nil
				},
			},
			Injector: passthroughInjector(),
		}

		var types []pipeline.ProgressType
		_, err := e.Enhance(context.Background(), "<article></article>", func(event pipeline.ProgressEvent) {
			types = append(types, event.Type)
		})

		require.NoError(t, err)
		assert.Equal(t, []pipeline.ProgressType{
			pipeline.ProgressStarted,
			pipeline.ProgressOutlined,
			pipeline.ProgressResolved,
			pipeline.ProgressFinished,
		}, types)
	})
}

func passthroughInjector() *mock.Injector {
	return &mock.Injector{
		InjectFn: func(html string, slots []adorn.Slot) (*adorn.InjectResult, error) {
			return &adorn.InjectResult{HTML: html, Inserted: len(slots)}, nil
		},
	}
}
