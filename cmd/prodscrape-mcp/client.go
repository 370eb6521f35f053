package main

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/use-agent/prodscrape/models"
)

// apiClient talks to a running `prodscrape serve`.
type apiClient struct {
	rc *resty.Client
}

func newAPIClient(baseURL, apiKey string) *apiClient {
	return &apiClient{
		rc: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetHeader("X-API-Key", apiKey).
			SetTimeout(120 * time.Second),
	}
}

// Product fetches one product through the API. Error responses that carry
// a structured body are returned as a response, not an error.
func (c *apiClient) Product(ctx context.Context, identifier string) (*models.ProductResponse, error) {
	var out models.ProductResponse
	resp, err := c.rc.R().
		SetContext(ctx).
		SetResult(&out).
		SetError(&out).
		Get("/api/v1/products/" + url.PathEscape(identifier))
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	if resp.IsError() && out.Error == nil {
		return nil, fmt.Errorf("API returned HTTP %d", resp.StatusCode())
	}
	return &out, nil
}

// displayOrder lists record fields in the order they are shown to the model.
var displayOrder = []struct{ field, label string }{
	{models.FieldTitle, "Title"},
	{models.FieldBrand, "Brand"},
	{models.FieldPrice, "Price"},
	{models.FieldRating, "Rating"},
	{models.FieldReviewsCount, "Reviews"},
	{models.FieldMonthlySales, "Monthly sales"},
	{models.FieldSellerName, "Manufacturer"},
	{models.FieldSellerID, "Seller link"},
}

func formatProduct(resp *models.ProductResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Identifier: %s\nSource: %s\n\n", resp.Identifier, resp.SourceURL)

	if len(resp.Record) == 0 {
		b.WriteString("No product data could be extracted from the page.")
		return b.String()
	}

	for _, d := range displayOrder {
		if v, ok := resp.Record.String(d.field); ok {
			fmt.Fprintf(&b, "%s: %s\n", d.label, v)
		}
	}
	if photos, ok := resp.Record.List(models.FieldPhotoURLs); ok {
		fmt.Fprintf(&b, "\nPhotos (%d):\n", len(photos))
		for _, p := range photos {
			fmt.Fprintf(&b, "- %s\n", p)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
