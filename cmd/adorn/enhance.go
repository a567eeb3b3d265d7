package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhalloran/adorn"
	"github.com/dhalloran/adorn/fs"
	"github.com/dhalloran/adorn/pipeline"
	"github.com/google/uuid"
)

// Run executes the enhance command.
func (c *EnhanceCmd) Run(deps *Dependencies) error {
	html, err := os.ReadFile(c.Input)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: cannot read %q: %v\n", c.Input, err)
		return err
	}

	progress := func(event pipeline.ProgressEvent) {
		switch event.Type {
		case pipeline.ProgressOutlined:
			fmt.Fprintf(deps.Stdout, "  Outlined %q\n", event.Detail)
		case pipeline.ProgressSkipped:
			if event.Err != nil {
				fmt.Fprintf(deps.Stderr, "  skip %s slot (%s): %v\n", event.Kind, event.Detail, event.Err)
			} else {
				fmt.Fprintf(deps.Stderr, "  skip %s slot: %s\n", event.Kind, event.Detail)
			}
		}
	}

	result, err := deps.Enhancer.Enhance(deps.Ctx, string(html), progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", adorn.ErrorMessage(err))
		return err
	}

	out := c.Out
	if out == "" {
		out = outputPath(c.Input)
	}
	if err := os.WriteFile(out, []byte(result.HTML), 0644); err != nil {
		fmt.Fprintf(deps.Stderr, "error: cannot write %q: %v\n", out, err)
		return err
	}

	run := &adorn.Run{
		Title:         result.Outline.Title,
		SourcePath:    c.Input,
		OutputPath:    out,
		ContentHash:   result.ContentHash,
		ImagesPlaced:  result.ImagesPlaced,
		WidgetsPlaced: result.WidgetsPlaced,
		SlotsSkipped:  result.SlotsSkipped,
	}
	if err := deps.Runs.CreateRun(deps.Ctx, run); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", adorn.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "  Placed %d images, %d widgets (%d skipped)\n",
		result.ImagesPlaced, result.WidgetsPlaced, result.SlotsSkipped)
	if result.Degraded {
		fmt.Fprintln(deps.Stderr, "  note: images were selected without relevance ranking")
	}
	fmt.Fprintf(deps.Stdout, "Wrote %s (run %s)\n", out, run.ID)

	return nil
}

// outputPath derives the default output path from the input path.
// Example: articles/mandela.html becomes articles/mandela.enhanced.html.
func outputPath(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + ".enhanced" + ext
}

// newArtifactStore creates a per-run artifact directory under base.
func newArtifactStore(base string) (*fs.ArtifactStore, error) {
	return fs.NewArtifactStore(filepath.Join(base, uuid.New().String()))
}
