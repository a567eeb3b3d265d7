package main

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/dhalloran/adorn"
	"github.com/dhalloran/adorn/goquery"
	"golang.org/x/sync/errgroup"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	if err := os.MkdirAll(c.Dir, 0755); err != nil {
		fmt.Fprintf(deps.Stderr, "error: cannot create %q: %v\n", c.Dir, err)
		return err
	}

	var saved atomic.Int64

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(c.Concurrency)

	for _, rawURL := range c.URLs {
		g.Go(func() error {
			html, err := deps.Fetcher.Fetch(ctx, rawURL)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", rawURL, adorn.ErrorMessage(err))
				return nil
			}

			if c.InlineCSS {
				inlined, n, err := goquery.NewInliner(deps.Fetcher).Inline(ctx, html, rawURL)
				if err != nil {
					fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", rawURL, adorn.ErrorMessage(err))
					return nil
				}
				if n > 0 {
					fmt.Fprintf(deps.Stdout, "  Inlined %d stylesheets for %s\n", n, rawURL)
				}
				html = inlined
			}

			name, err := fileName(rawURL)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", rawURL, err)
				return nil
			}
			path := filepath.Join(c.Dir, name)
			if err := os.WriteFile(path, []byte(html), 0644); err != nil {
				return fmt.Errorf("write %q: %w", path, err)
			}

			saved.Add(1)
			fmt.Fprintf(deps.Stdout, "  Saved %s\n", path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d of %d pages\n", saved.Load(), len(c.URLs))
	return nil
}

// fileName derives an output file name from a page URL.
// Example: https://example.com/wiki/Nelson_Mandela becomes Nelson_Mandela.html.
func fileName(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	base := filepath.Base(strings.TrimSuffix(u.Path, "/"))
	if base == "." || base == "/" || base == "" {
		base = u.Hostname()
	}
	if base == "" {
		return "", fmt.Errorf("cannot derive file name from %q", rawURL)
	}
	if !strings.HasSuffix(base, ".html") {
		base += ".html"
	}
	return base, nil
}
