package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dhalloran/adorn"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ adorn.RunService = (*RunService)(nil)

// RunService implements adorn.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun records a new enhancement run.
func (s *RunService) CreateRun(ctx context.Context, run *adorn.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	run.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, title, source_path, output_path, content_hash,
			images_placed, widgets_placed, slots_skipped, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Title, run.SourcePath, run.OutputPath, run.ContentHash,
		run.ImagesPlaced, run.WidgetsPlaced, run.SlotsSkipped,
		run.CreatedAt.Format(time.RFC3339))

	return err
}

// FindRunByID retrieves a run by ID.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*adorn.Run, error) {
	var run adorn.Run
	var createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, source_path, output_path, content_hash,
			images_placed, widgets_placed, slots_skipped, created_at
		FROM runs
		WHERE id = ?
	`, id).Scan(&run.ID, &run.Title, &run.SourcePath, &run.OutputPath, &run.ContentHash,
		&run.ImagesPlaced, &run.WidgetsPlaced, &run.SlotsSkipped, &createdAt)

	if err == sql.ErrNoRows {
		return nil, adorn.Errorf(adorn.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	run.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}

	return &run, nil
}

// FindRuns retrieves runs matching the filter, newest first.
func (s *RunService) FindRuns(ctx context.Context, filter adorn.RunFilter) ([]*adorn.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, title, source_path, output_path, content_hash,
		images_placed, widgets_placed, slots_skipped, created_at FROM runs WHERE 1=1`)

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SourcePath != nil {
		query.WriteString(" AND source_path = ?")
		args = append(args, *filter.SourcePath)
	}

	query.WriteString(" ORDER BY created_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*adorn.Run
	for rows.Next() {
		var run adorn.Run
		var createdAt string

		if err := rows.Scan(&run.ID, &run.Title, &run.SourcePath, &run.OutputPath, &run.ContentHash,
			&run.ImagesPlaced, &run.WidgetsPlaced, &run.SlotsSkipped, &createdAt); err != nil {
			return nil, err
		}

		run.CreatedAt, err = parseRFC3339(createdAt, "created_at")
		if err != nil {
			return nil, err
		}

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}

// DeleteRun permanently removes a run.
func (s *RunService) DeleteRun(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return adorn.Errorf(adorn.ENOTFOUND, "run not found")
	}

	return nil
}

// parseRFC3339 parses an RFC3339 formatted timestamp string.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// appendPagination appends LIMIT and OFFSET clauses to a query builder if values are > 0.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
