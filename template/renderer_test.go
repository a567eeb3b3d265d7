package template_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/dhalloran/adorn"
	"github.com/dhalloran/adorn/template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	r := template.NewRenderer()

	t.Run("renders a timeline", func(t *testing.T) {
		t.Parallel()

		data := json.RawMessage(`[
			{"date": "1971", "title": "Birth", "description": "Born in Pretoria."},
			{"date": "2002", "title": "SpaceX", "description": "Founded SpaceX."}
		]`)

		out, err := r.Render(adorn.WidgetTimeline, data)

		require.NoError(t, err)
		assert.Contains(t, out, `class="widget-timeline`)
		assert.Contains(t, out, "<time")
		assert.Contains(t, out, "1971")
		assert.Contains(t, out, "Founded SpaceX.")
	})

	t.Run("caps timeline events at eight", func(t *testing.T) {
		t.Parallel()

		var events []template.TimelineEvent
		for i := 0; i < 12; i++ {
			events = append(events, template.TimelineEvent{Date: "2000", Title: "Event"})
		}
		data, err := json.Marshal(events)
		require.NoError(t, err)

		out, err := r.Render(adorn.WidgetTimeline, data)

		require.NoError(t, err)
		assert.Equal(t, 8, strings.Count(out, "<time"))
	})

	t.Run("renders key facts with list and string values", func(t *testing.T) {
		t.Parallel()

		data := json.RawMessage(`[
			{"label": "Born", "values": ["June 28, 1971", "Pretoria, South Africa"]},
			{"label": "Citizenship", "values": "United States"}
		]`)

		out, err := r.Render(adorn.WidgetKeyFacts, data)

		require.NoError(t, err)
		assert.Contains(t, out, `class="widget-key-facts`)
		assert.Contains(t, out, "June 28, 1971<br/>Pretoria, South Africa")
		assert.Contains(t, out, "United States")
	})

	t.Run("renders stat cards with optional notes", func(t *testing.T) {
		t.Parallel()

		data := json.RawMessage(`[
			{"label": "Net Worth", "value": "$180B", "note": "As of 2024"},
			{"label": "Employees", "value": "13,000"}
		]`)

		out, err := r.Render(adorn.WidgetStatCards, data)

		require.NoError(t, err)
		assert.Contains(t, out, "$180B")
		assert.Contains(t, out, "As of 2024")
		assert.Equal(t, 2, strings.Count(out, "text-lg font-bold"))
	})

	t.Run("renders key definitions", func(t *testing.T) {
		t.Parallel()

		data := json.RawMessage(`[
			{"term": "API", "definition": "Application Programming Interface."},
			{"term": "LEO", "definition": "Low Earth orbit."}
		]`)

		out, err := r.Render(adorn.WidgetKeyDefinitions, data)

		require.NoError(t, err)
		assert.Contains(t, out, "Key Terms")
		assert.Contains(t, out, "Low Earth orbit.")
		// Only entries after the first get a separator border.
		assert.Equal(t, 1, strings.Count(out, "border-t "))
	})

	t.Run("escapes data content", func(t *testing.T) {
		t.Parallel()

		data := json.RawMessage(`[{"date": "1971", "title": "<script>alert(1)</script>", "description": ""}]`)

		out, err := r.Render(adorn.WidgetTimeline, data)

		require.NoError(t, err)
		assert.NotContains(t, out, "<script>")
		assert.Contains(t, out, "&lt;script&gt;")
	})

	t.Run("unknown type renders empty", func(t *testing.T) {
		t.Parallel()

		out, err := r.Render(adorn.WidgetType("carousel"), json.RawMessage(`[]`))

		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("empty data renders empty", func(t *testing.T) {
		t.Parallel()

		out, err := r.Render(adorn.WidgetTimeline, nil)
		require.NoError(t, err)
		assert.Empty(t, out)

		out, err = r.Render(adorn.WidgetTimeline, json.RawMessage(`[]`))
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("schema mismatch is EINVALID", func(t *testing.T) {
		t.Parallel()

		_, err := r.Render(adorn.WidgetTimeline, json.RawMessage(`{"not": "a list"}`))

		require.Error(t, err)
		assert.Equal(t, adorn.EINVALID, adorn.ErrorCode(err))
	})
}
