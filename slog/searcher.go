package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/dhalloran/adorn"
)

// Ensure LoggingSearcher implements adorn.ImageSearcher.
var _ adorn.ImageSearcher = (*LoggingSearcher)(nil)

// LoggingSearcher wraps an ImageSearcher with query logging.
type LoggingSearcher struct {
	next   adorn.ImageSearcher
	logger *slog.Logger
}

// NewLoggingSearcher creates a new LoggingSearcher.
func NewLoggingSearcher(next adorn.ImageSearcher, logger *slog.Logger) *LoggingSearcher {
	return &LoggingSearcher{next: next, logger: logger}
}

// SearchImages delegates to the wrapped searcher and logs the outcome.
func (s *LoggingSearcher) SearchImages(ctx context.Context, query string, n int) ([]adorn.ImageCandidate, error) {
	begin := time.Now()
	candidates, err := s.next.SearchImages(ctx, query, n)
	if err != nil {
		s.logger.Error("image search",
			"query", query,
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, err
	}
	s.logger.Info("image search",
		"query", query,
		"results", len(candidates),
		"duration", time.Since(begin),
	)
	return candidates, nil
}
