package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dhalloran/adorn"
	"golang.org/x/time/rate"
)

// DefaultSearchEndpoint is the Google Custom Search API endpoint.
const DefaultSearchEndpoint = "https://www.googleapis.com/customsearch/v1"

// maxResultsPerRequest is the API's hard cap per request.
const maxResultsPerRequest = 10

// Ensure ImageSearch implements adorn.ImageSearcher at compile time.
var _ adorn.ImageSearcher = (*ImageSearch)(nil)

// ImageSearch finds candidate images using the Google Custom Search API.
// Requests are rate limited; the free tier throttles aggressively.
type ImageSearch struct {
	client   *http.Client
	endpoint string
	key      string
	cx       string
	limiter  *rate.Limiter
}

// SearchOption configures an ImageSearch.
type SearchOption func(*ImageSearch)

// WithSearchEndpoint overrides the API endpoint. Used in tests.
func WithSearchEndpoint(endpoint string) SearchOption {
	return func(s *ImageSearch) {
		s.endpoint = endpoint
	}
}

// WithSearchClient overrides the HTTP client.
func WithSearchClient(client *http.Client) SearchOption {
	return func(s *ImageSearch) {
		s.client = client
	}
}

// WithRateLimit overrides the requests-per-second limit.
func WithRateLimit(rps float64) SearchOption {
	return func(s *ImageSearch) {
		s.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewImageSearch creates a new ImageSearch with the given API key and
// programmable search engine id.
func NewImageSearch(key, cx string, opts ...SearchOption) *ImageSearch {
	s := &ImageSearch{
		client:   &http.Client{Timeout: 15 * time.Second},
		endpoint: DefaultSearchEndpoint,
		key:      key,
		cx:       cx,
		limiter:  rate.NewLimiter(rate.Limit(1), 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// searchResponse mirrors the fields of the Custom Search response we use.
type searchResponse struct {
	Items []struct {
		Title string `json:"title"`
		Link  string `json:"link"`
		Mime  string `json:"mime"`
		Image struct {
			ThumbnailLink string `json:"thumbnailLink"`
			ContextLink   string `json:"contextLink"`
			Width         int    `json:"width"`
			Height        int    `json:"height"`
		} `json:"image"`
	} `json:"items"`
}

// SearchImages returns up to n image candidates for the query, in API
// ranking order. An empty result is not an error.
func (s *ImageSearch) SearchImages(ctx context.Context, query string, n int) ([]adorn.ImageCandidate, error) {
	if s.key == "" || s.cx == "" {
		return nil, adorn.Errorf(adorn.EUNAVAILABLE, "image search credentials not configured")
	}
	if n <= 0 || n > maxResultsPerRequest {
		n = maxResultsPerRequest
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("key", s.key)
	params.Set("cx", s.cx)
	params.Set("q", query)
	params.Set("searchType", "image")
	params.Set("num", strconv.Itoa(n))
	params.Set("safe", "active")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, adorn.Errorf(adorn.EUNAVAILABLE, "image search request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, adorn.Errorf(adorn.EUNAVAILABLE, "image search returned HTTP %d", resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, adorn.Errorf(adorn.EINTERNAL, "failed to decode search response: %v", err)
	}

	candidates := make([]adorn.ImageCandidate, 0, len(payload.Items))
	for _, item := range payload.Items {
		if item.Link == "" {
			continue
		}
		candidates = append(candidates, adorn.ImageCandidate{
			URL:        item.Link,
			Title:      item.Title,
			Thumbnail:  item.Image.ThumbnailLink,
			Width:      item.Image.Width,
			Height:     item.Image.Height,
			MimeType:   item.Mime,
			SourcePage: item.Image.ContextLink,
		})
	}

	return candidates, nil
}
