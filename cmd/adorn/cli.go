package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/dhalloran/adorn"
	"github.com/dhalloran/adorn/pipeline"
	"github.com/dhalloran/adorn/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	DB        *sqlite.DB
	Runs      adorn.RunService
	Extractor adorn.Extractor
	Fetcher   adorn.Fetcher
	Enhancer  *pipeline.Enhancer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Enhance EnhanceCmd `cmd:"" help:"Enhance an article with images and widgets"`
	Outline OutlineCmd `cmd:"" help:"Extract an article outline with stable anchors"`
	Scrape  ScrapeCmd  `cmd:"" help:"Download article pages for later enhancement"`
	Runs    RunsCmd    `cmd:"" help:"List past enhancement runs"`
	Show    ShowCmd    `cmd:"" help:"Show one enhancement run"`
	Delete  DeleteCmd  `cmd:"" help:"Delete an enhancement run"`
}

// EnhanceCmd is the "enhance" subcommand.
type EnhanceCmd struct {
	Input         string `arg:"" help:"Path to the article HTML file"`
	Out           string `short:"o" help:"Output path (default: <input>.enhanced.html)"`
	Images        int    `default:"10" help:"Maximum image slots (negative disables images)"`
	Widgets       int    `default:"5" help:"Maximum widget slots (negative disables widgets)"`
	SearchResults int    `default:"5" help:"Image candidates fetched per slot"`
	Concurrency   int    `short:"c" default:"4" help:"Concurrent collaborator calls"`
	Artifacts     string `short:"a" help:"Directory for intermediate artifacts"`
	ImagesOnly    bool   `xor:"mode" help:"Place images only, skip widgets"`
	WidgetsOnly   bool   `xor:"mode" help:"Place widgets only, skip images"`
}

// OutlineCmd is the "outline" subcommand.
type OutlineCmd struct {
	Input string `arg:"" help:"Path to the article HTML file"`
	Out   string `short:"o" help:"Write the anchor-annotated HTML to this path"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URLs        []string `arg:"" help:"Article URLs to download"`
	Dir         string   `short:"d" default:"." help:"Output directory"`
	InlineCSS   bool     `default:"true" negatable:"" help:"Inline the site's stylesheets into the page (disable with --no-inline-css)"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent downloads"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	Source string `help:"Filter by source path"`
	Limit  int    `default:"20" help:"Maximum runs to list"`
	Offset int    `help:"Runs to skip"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Run ID"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID string `arg:"" help:"Run ID"`
}
