package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/dhalloran/adorn"
	"github.com/dhalloran/adorn/gemini"
	"github.com/dhalloran/adorn/goquery"
	adornhttp "github.com/dhalloran/adorn/http"
	"github.com/dhalloran/adorn/pipeline"
	adornslog "github.com/dhalloran/adorn/slog"
	"github.com/dhalloran/adorn/sqlite"
	"github.com/dhalloran/adorn/template"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by the run history service.
	DB *sqlite.DB

	// RunService for end-to-end testing.
	RunService adorn.RunService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: slog.New(slog.NewTextHandler(stderr, nil)),
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("adorn"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'adorn --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set ADORN_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.RunService = sqlite.NewRunService(m.DB)
	deps.DB = m.DB
	deps.Runs = m.RunService
	deps.Extractor = goquery.NewExtractor()

	if cmd == "scrape" {
		// One request per second per host keeps scrapes polite.
		fetcher := adornhttp.NewThrottledFetcher(adornhttp.NewFetcher(), 1.0)
		deps.Fetcher = adornslog.NewLoggingFetcher(fetcher, deps.Logger)
		defer deps.Fetcher.Close()
	}

	if cmd == "enhance" {
		enhancer, err := m.buildEnhancer(ctx, cli, deps)
		if err != nil {
			return err
		}
		deps.Enhancer = enhancer
	}

	return kongCtx.Run(deps)
}

// buildEnhancer wires the full pipeline from environment credentials. A
// missing Gemini key is fatal; missing image search credentials only
// disable image slots.
func (m *Main) buildEnhancer(ctx context.Context, cli *CLI, deps *Dependencies) (*pipeline.Enhancer, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(deps.Stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	model := os.Getenv("ADORN_MODEL")
	if model == "" {
		model = gemini.DefaultModel
	}

	suggester := gemini.NewSuggester(client, model)

	enhancer := &pipeline.Enhancer{
		Extractor:       deps.Extractor,
		ImageSuggester:  suggester,
		WidgetSuggester: suggester,
		Selector:        gemini.NewSelector(client, model),
		Assessor:        gemini.NewAssessor(client, model),
		Renderer:        template.NewRenderer(),
		Injector:        adornslog.NewLoggingInjector(goquery.NewInjector(), deps.Logger),
		MaxImages:       cli.Enhance.Images,
		MaxWidgets:      cli.Enhance.Widgets,
		SearchResults:   cli.Enhance.SearchResults,
		Concurrency:     cli.Enhance.Concurrency,
	}
	if cli.Enhance.ImagesOnly {
		enhancer.MaxWidgets = -1
	}
	if cli.Enhance.WidgetsOnly {
		enhancer.MaxImages = -1
	}

	searchKey := os.Getenv("GOOGLE_CSE_KEY")
	searchCx := os.Getenv("GOOGLE_CSE_CX")
	if searchKey != "" && searchCx != "" {
		enhancer.Searcher = adornslog.NewLoggingSearcher(adornhttp.NewImageSearch(searchKey, searchCx), deps.Logger)
	} else {
		fmt.Fprintln(deps.Stderr, "GOOGLE_CSE_KEY or GOOGLE_CSE_CX not set; image slots disabled")
		enhancer.MaxImages = -1
	}

	if cli.Enhance.Artifacts != "" {
		store, err := newArtifactStore(cli.Enhance.Artifacts)
		if err != nil {
			return nil, err
		}
		enhancer.Artifacts = store
	}

	return enhancer, nil
}

func defaultDBPath() string {
	if path := os.Getenv("ADORN_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "adorn.db"
	}
	dir := filepath.Join(home, ".adorn")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "adorn.db")
}
