package adorn

import "context"

// Fetcher retrieves raw HTML content from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)

	// Close releases any resources held by the fetcher.
	Close() error
}
