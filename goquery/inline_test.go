package goquery_test

import (
	"context"
	"testing"

	"github.com/dhalloran/adorn"
	"github.com/dhalloran/adorn/goquery"
	"github.com/dhalloran/adorn/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInliner_Inline(t *testing.T) {
	t.Parallel()

	t.Run("replaces build stylesheets with style elements", func(t *testing.T) {
		t.Parallel()

		page := `<html><head>
<link rel="stylesheet" href="/_next/static/css/app.css" media="screen"/>
<link rel="stylesheet" href="https://cdn.example.com/other.css"/>
</head><body><p>Hi</p></body></html>`

		var fetched []string
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				fetched = append(fetched, url)
				return "body{color:red}", nil
			},
			CloseFn: func() error { return nil },
		}

		out, n, err := goquery.NewInliner(fetcher).Inline(context.Background(), page, "https://example.com/page/Thing")

		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, []string{"https://example.com/_next/static/css/app.css"}, fetched)
		assert.Contains(t, out, `<style media="screen">body{color:red}</style>`)
		// Third-party stylesheet link is untouched.
		assert.Contains(t, out, `https://cdn.example.com/other.css`)
	})

	t.Run("skips stylesheets that fail to download", func(t *testing.T) {
		t.Parallel()

		page := `<html><head><link rel="stylesheet" href="/_next/static/css/app.css"/></head><body></body></html>`

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", adorn.Errorf(adorn.EUNAVAILABLE, "css fetch failed")
			},
		}

		out, n, err := goquery.NewInliner(fetcher).Inline(context.Background(), page, "https://example.com")

		require.NoError(t, err)
		assert.Equal(t, 0, n)
		assert.Contains(t, out, `/_next/static/css/app.css`)
	})

	t.Run("rejects an invalid base URL", func(t *testing.T) {
		t.Parallel()

		_, _, err := goquery.NewInliner(&mock.Fetcher{}).Inline(context.Background(), "<html></html>", "::bad url")

		require.Error(t, err)
		assert.Equal(t, adorn.EINVALID, adorn.ErrorCode(err))
	})
}
