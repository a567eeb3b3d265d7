package slog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/dhalloran/adorn"
	"github.com/dhalloran/adorn/mock"
	adornslog "github.com/dhalloran/adorn/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingInjector_Inject(t *testing.T) {
	t.Parallel()

	t.Run("logs batch counts", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Injector{
			InjectFn: func(html string, slots []adorn.Slot) (*adorn.InjectResult, error) {
				return &adorn.InjectResult{HTML: html, Inserted: 2}, nil
			},
		}

		injector := adornslog.NewLoggingInjector(inner, logger)
		slots := []adorn.Slot{
			{Kind: adorn.SlotImage, SectionID: "sec_1", Position: adorn.PositionAfter, ImageURL: "https://img.example.com/a.jpg"},
			{Kind: adorn.SlotWidget, SectionID: "sec_2", Position: adorn.PositionAfter, WidgetHTML: "<div></div>"},
		}
		_, err := injector.Inject("<article></article>", slots)

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "inject")
		assert.Contains(t, output, "slots=2")
		assert.Contains(t, output, "inserted=2")
		assert.Contains(t, output, "skipped=0")
	})

	t.Run("warns for each skipped slot", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Injector{
			InjectFn: func(html string, slots []adorn.Slot) (*adorn.InjectResult, error) {
				return &adorn.InjectResult{
					HTML: html,
					Skipped: []adorn.SkippedSlot{
						{Index: 0, Kind: adorn.SlotImage, SectionID: "sec_99", Reason: "anchor not found"},
					},
				}, nil
			},
		}

		injector := adornslog.NewLoggingInjector(inner, logger)
		_, err := injector.Inject("<article></article>", nil)

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "slot skipped")
		assert.Contains(t, output, "section_id=sec_99")
		assert.Contains(t, output, "anchor not found")
	})

	t.Run("logs errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Injector{
			InjectFn: func(html string, slots []adorn.Slot) (*adorn.InjectResult, error) {
				return nil, adorn.Errorf(adorn.EINTERNAL, "parse failure")
			},
		}

		injector := adornslog.NewLoggingInjector(inner, logger)
		_, err := injector.Inject("<article></article>", nil)

		require.Error(t, err)
		assert.Contains(t, buf.String(), "level=ERROR")
	})
}
