package scraper

import (
	"context"

	"github.com/use-agent/prodscrape/models"
)

// Site is the capability every supported storefront provides: locating,
// downloading and extracting one product page. Each storefront has its own
// implementation; there is no shared base type.
type Site interface {
	// Name returns the site identifier (e.g. "amazon").
	Name() string

	// ProductURL formats the product page address for identifier.
	ProductURL(identifier string) string

	// Fetch downloads the product page for identifier.
	Fetch(ctx context.Context, identifier string) (*models.RawPage, error)

	// Extract pulls every field it can from rawHTML. It never fails; a page
	// it cannot read yields an empty Record.
	Extract(rawHTML string) models.Record
}

// Store persists raw pages and extracted records.
type Store interface {
	Name() string
	SaveRaw(ctx context.Context, page *models.RawPage) error
	SaveRecord(ctx context.Context, identifier string, rec models.Record) error
}

// Notifier is told about every record that reached the store.
type Notifier interface {
	RecordSaved(ctx context.Context, identifier string, rec models.Record) error
}
