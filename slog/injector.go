package slog

import (
	"log/slog"
	"time"

	"github.com/dhalloran/adorn"
)

// Ensure LoggingInjector implements adorn.Injector.
var _ adorn.Injector = (*LoggingInjector)(nil)

// LoggingInjector wraps an Injector with batch outcome logging. Skipped
// slots are logged individually at warn level so unresolved anchors stay
// visible without failing the run.
type LoggingInjector struct {
	next   adorn.Injector
	logger *slog.Logger
}

// NewLoggingInjector creates a new LoggingInjector.
func NewLoggingInjector(next adorn.Injector, logger *slog.Logger) *LoggingInjector {
	return &LoggingInjector{next: next, logger: logger}
}

// Inject delegates to the wrapped injector and logs the outcome.
func (i *LoggingInjector) Inject(html string, slots []adorn.Slot) (*adorn.InjectResult, error) {
	begin := time.Now()
	result, err := i.next.Inject(html, slots)
	if err != nil {
		i.logger.Error("inject",
			"slots", len(slots),
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, err
	}
	for _, skip := range result.Skipped {
		i.logger.Warn("slot skipped",
			"kind", string(skip.Kind),
			"section_id", skip.SectionID,
			"reason", skip.Reason,
		)
	}
	i.logger.Info("inject",
		"slots", len(slots),
		"inserted", result.Inserted,
		"skipped", len(result.Skipped),
		"duration", time.Since(begin),
	)
	return result, nil
}
