package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/use-agent/prodscrape/config"
	"github.com/use-agent/prodscrape/models"
)

// Fetcher downloads product pages with a fixed set of session headers and
// cookies. It never retries. It is safe for concurrent use.
type Fetcher struct {
	client *resty.Client
}

// NewFetcher creates a Fetcher. Headers and cookies from cfg are attached to
// every request; they are not configurable per call.
func NewFetcher(cfg config.FetchConfig) *Fetcher {
	client := resty.New().
		SetHeaders(cfg.Headers).
		SetRetryCount(0)
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	for name, value := range cfg.Cookies {
		client.SetCookie(&http.Cookie{Name: name, Value: value})
	}
	return &Fetcher{client: client}
}

// Fetch issues one GET for targetURL. Any transport error or non-2xx status
// is returned as a NETWORK_FAILURE ScrapeError.
func (f *Fetcher) Fetch(ctx context.Context, identifier, targetURL string) (*models.RawPage, error) {
	resp, err := f.client.R().SetContext(ctx).Get(targetURL)
	if err != nil {
		slog.Warn("fetch failed", "url", targetURL, "error", err)
		return nil, models.NewScrapeError(models.ErrCodeNetwork, "request failed", err)
	}

	if !resp.IsSuccess() {
		err := fmt.Errorf("HTTP %d for %s", resp.StatusCode(), targetURL)
		slog.Warn("fetch failed", "url", targetURL, "status", resp.StatusCode())
		return nil, models.NewScrapeError(models.ErrCodeNetwork, "unexpected status", err)
	}

	return &models.RawPage{
		Identifier: identifier,
		URL:        targetURL,
		HTML:       string(resp.Body()),
		StatusCode: resp.StatusCode(),
		FetchedAt:  time.Now(),
	}, nil
}
