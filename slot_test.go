package adorn_test

import (
	"testing"

	"github.com/dhalloran/adorn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePosition(t *testing.T) {
	t.Parallel()

	assert.Equal(t, adorn.PositionAfter, adorn.ParsePosition("after"))
	assert.Equal(t, adorn.PositionBefore, adorn.ParsePosition("before"))
	assert.Equal(t, adorn.PositionAfterHeading, adorn.ParsePosition("after_heading"))
	assert.Equal(t, adorn.PositionBeforeHeading, adorn.ParsePosition("before_heading"))

	// Absent or unrecognized values default to "after".
	assert.Equal(t, adorn.PositionAfter, adorn.ParsePosition(""))
	assert.Equal(t, adorn.PositionAfter, adorn.ParsePosition("inside"))
}

func TestSlotSpec_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts a valid image spec", func(t *testing.T) {
		t.Parallel()

		spec := adorn.SlotSpec{
			SectionID:   "sec_1",
			Position:    "after",
			Priority:    0.8,
			SearchQuery: "mandela portrait",
		}
		require.NoError(t, spec.Validate(adorn.SlotImage))
	})

	t.Run("accepts a valid widget spec", func(t *testing.T) {
		t.Parallel()

		spec := adorn.SlotSpec{
			SectionID:   "sec_1",
			Position:    "after",
			Priority:    0.5,
			WidgetType:  adorn.WidgetTimeline,
			ContentHint: "key dates in early life",
		}
		require.NoError(t, spec.Validate(adorn.SlotWidget))
	})

	t.Run("rejects a missing section id", func(t *testing.T) {
		t.Parallel()

		spec := adorn.SlotSpec{SearchQuery: "q"}
		err := spec.Validate(adorn.SlotImage)
		require.Error(t, err)
		assert.Equal(t, adorn.EINVALID, adorn.ErrorCode(err))
	})

	t.Run("rejects a priority outside the unit interval", func(t *testing.T) {
		t.Parallel()

		spec := adorn.SlotSpec{SectionID: "sec_1", Priority: 1.5, SearchQuery: "q"}
		err := spec.Validate(adorn.SlotImage)
		require.Error(t, err)
		assert.Equal(t, adorn.EINVALID, adorn.ErrorCode(err))
	})

	t.Run("rejects an image spec without a search query", func(t *testing.T) {
		t.Parallel()

		spec := adorn.SlotSpec{SectionID: "sec_1"}
		err := spec.Validate(adorn.SlotImage)
		require.Error(t, err)
		assert.Equal(t, adorn.EINVALID, adorn.ErrorCode(err))
	})

	t.Run("rejects a widget spec without a content hint", func(t *testing.T) {
		t.Parallel()

		spec := adorn.SlotSpec{SectionID: "sec_1", WidgetType: adorn.WidgetTimeline}
		err := spec.Validate(adorn.SlotWidget)
		require.Error(t, err)
		assert.Equal(t, adorn.EINVALID, adorn.ErrorCode(err))
	})

	t.Run("rejects non-positive recommended dimensions", func(t *testing.T) {
		t.Parallel()

		spec := adorn.SlotSpec{
			SectionID:             "sec_1",
			WidgetType:            adorn.WidgetTimeline,
			ContentHint:           "key dates",
			RecommendedDimensions: &adorn.Dimensions{Width: 0, Height: 400},
		}
		err := spec.Validate(adorn.SlotWidget)
		require.Error(t, err)
		assert.Equal(t, adorn.EINVALID, adorn.ErrorCode(err))
	})
}

func TestSlot_Validate(t *testing.T) {
	t.Parallel()

	t.Run("requires an anchor", func(t *testing.T) {
		t.Parallel()

		slot := adorn.Slot{Kind: adorn.SlotImage, ImageURL: "https://img.example.com/a.jpg"}
		err := slot.Validate()
		require.Error(t, err)
		assert.Equal(t, adorn.EINVALID, adorn.ErrorCode(err))
	})

	t.Run("requires an image URL for image slots", func(t *testing.T) {
		t.Parallel()

		slot := adorn.Slot{Kind: adorn.SlotImage, SectionID: "sec_1"}
		err := slot.Validate()
		require.Error(t, err)
		assert.Equal(t, adorn.EINVALID, adorn.ErrorCode(err))
	})

	t.Run("requires rendered HTML for widget slots", func(t *testing.T) {
		t.Parallel()

		slot := adorn.Slot{Kind: adorn.SlotWidget, SectionID: "sec_1"}
		err := slot.Validate()
		require.Error(t, err)
		assert.Equal(t, adorn.EINVALID, adorn.ErrorCode(err))
	})

	t.Run("accepts a paragraph-only anchor", func(t *testing.T) {
		t.Parallel()

		pid := "p_3"
		slot := adorn.Slot{
			Kind:        adorn.SlotImage,
			ParagraphID: &pid,
			Position:    adorn.PositionAfter,
			ImageURL:    "https://img.example.com/a.jpg",
		}
		require.NoError(t, slot.Validate())
	})
}
