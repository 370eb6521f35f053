// Package amazon implements the product page Site for Amazon storefronts.
package amazon

import (
	"context"
	"net/url"
	"strings"

	"github.com/use-agent/prodscrape/extractor"
	"github.com/use-agent/prodscrape/models"
	"github.com/use-agent/prodscrape/scraper"
)

// Name identifies the site in logs and metrics.
const Name = "amazon"

// Site fetches and extracts Amazon product detail pages.
// It is safe for concurrent use.
type Site struct {
	baseURL string
	fetcher *scraper.Fetcher
	queries *extractor.QueryTable
	images  extractor.ScriptLocator
}

var _ scraper.Site = (*Site)(nil)

// New creates a Site rooted at baseURL (e.g. "https://www.amazon.com").
func New(baseURL string, fetcher *scraper.Fetcher) *Site {
	return &Site{
		baseURL: strings.TrimRight(baseURL, "/"),
		fetcher: fetcher,
		queries: extractor.NewQueryTable(fieldQueries),
		images: extractor.ScriptLocator{
			Matcher: scriptMatcher,
			Marker:  imageBlockMarker,
		},
	}
}

func (s *Site) Name() string { return Name }

// ProductURL returns <baseURL>/dp/<identifier>.
func (s *Site) ProductURL(identifier string) string {
	return s.baseURL + "/dp/" + url.PathEscape(identifier)
}

func (s *Site) Fetch(ctx context.Context, identifier string) (*models.RawPage, error) {
	if strings.TrimSpace(identifier) == "" {
		return nil, models.NewScrapeError(models.ErrCodeInvalidInput, "empty product identifier", nil)
	}
	return s.fetcher.Fetch(ctx, identifier, s.ProductURL(identifier))
}
