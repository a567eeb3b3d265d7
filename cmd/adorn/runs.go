package main

import (
	"fmt"

	"github.com/dhalloran/adorn"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	filter := adorn.RunFilter{Limit: c.Limit, Offset: c.Offset}
	if c.Source != "" {
		filter.SourcePath = &c.Source
	}

	runs, err := deps.Runs.FindRuns(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", adorn.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs found. Use 'adorn enhance' to create one.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %di/%dw/%ds\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.SourcePath,
			r.ImagesPlaced, r.WidgetsPlaced, r.SlotsSkipped)
	}

	return nil
}

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	run, err := deps.Runs.FindRunByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", adorn.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "ID:             %s\n", run.ID)
	fmt.Fprintf(deps.Stdout, "Title:          %s\n", run.Title)
	fmt.Fprintf(deps.Stdout, "Source:         %s\n", run.SourcePath)
	fmt.Fprintf(deps.Stdout, "Output:         %s\n", run.OutputPath)
	fmt.Fprintf(deps.Stdout, "Content hash:   %s\n", run.ContentHash)
	fmt.Fprintf(deps.Stdout, "Images placed:  %d\n", run.ImagesPlaced)
	fmt.Fprintf(deps.Stdout, "Widgets placed: %d\n", run.WidgetsPlaced)
	fmt.Fprintf(deps.Stdout, "Slots skipped:  %d\n", run.SlotsSkipped)
	fmt.Fprintf(deps.Stdout, "Created:        %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))

	return nil
}

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Runs.DeleteRun(deps.Ctx, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", adorn.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted run %s\n", c.ID)
	return nil
}
