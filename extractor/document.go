// Package extractor holds the site-independent pieces of product page
// extraction: document parsing, embedded script lookup, location-query
// tables and the value cleaning policy.
package extractor

import (
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"github.com/use-agent/prodscrape/models"
)

// Parse parses rawHTML into a navigable document tree.
func Parse(rawHTML string) (*html.Node, error) {
	doc, err := htmlquery.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeParse, "failed to parse document", err)
	}
	return doc, nil
}
