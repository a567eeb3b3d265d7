package goquery

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dhalloran/adorn"
)

// stylesheetPathMarker identifies the site's build-generated stylesheets.
// Only these are inlined; third-party stylesheet links are left alone.
const stylesheetPathMarker = "/_next/static/css/"

// Inliner replaces external stylesheet links with inline <style> elements
// so scraped pages render self-contained offline.
type Inliner struct {
	fetcher adorn.Fetcher
}

// NewInliner creates a new Inliner that downloads stylesheets with the
// given fetcher.
func NewInliner(fetcher adorn.Fetcher) *Inliner {
	return &Inliner{fetcher: fetcher}
}

// Inline fetches each matching stylesheet and swaps the link element for a
// style element carrying the CSS text, preserving media and nonce
// attributes. Individual stylesheet failures are skipped; the page is still
// usable without them. Returns the rewritten document and the number of
// stylesheets inlined.
func (in *Inliner) Inline(ctx context.Context, html string, baseURL string) (string, int, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", 0, adorn.Errorf(adorn.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", 0, adorn.Errorf(adorn.EINVALID, "failed to parse HTML: %v", err)
	}

	inlined := 0
	doc.Find("link[rel='stylesheet']").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || !strings.Contains(href, stylesheetPathMarker) {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		cssURL := base.ResolveReference(ref).String()

		css, err := in.fetcher.Fetch(ctx, cssURL)
		if err != nil {
			return
		}

		var b strings.Builder
		b.WriteString("<style")
		if media, ok := sel.Attr("media"); ok {
			b.WriteString(` media="` + media + `"`)
		}
		if nonce, ok := sel.Attr("nonce"); ok {
			b.WriteString(` nonce="` + nonce + `"`)
		}
		b.WriteString(">")
		b.WriteString(css)
		b.WriteString("</style>")

		sel.ReplaceWithHtml(b.String())
		inlined++
	})

	out, err := doc.Html()
	if err != nil {
		return "", 0, adorn.Errorf(adorn.EINTERNAL, "failed to serialize document: %v", err)
	}

	return out, inlined, nil
}
