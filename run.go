package adorn

import (
	"context"
	"time"
)

// Run records one completed enhancement of an article.
type Run struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	SourcePath    string    `json:"sourcePath"`
	OutputPath    string    `json:"outputPath"`
	ContentHash   string    `json:"contentHash"`
	ImagesPlaced  int       `json:"imagesPlaced"`
	WidgetsPlaced int       `json:"widgetsPlaced"`
	SlotsSkipped  int       `json:"slotsSkipped"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.SourcePath == "" {
		return Errorf(EINVALID, "run source path required")
	}
	return nil
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	ID         *string `json:"id"`
	SourcePath *string `json:"sourcePath"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RunService manages the enhancement run history.
type RunService interface {
	// CreateRun records a new run.
	CreateRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs matching the filter, newest first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// DeleteRun permanently removes a run.
	// Returns ENOTFOUND if the run does not exist.
	DeleteRun(ctx context.Context, id string) error
}
