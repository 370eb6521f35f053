package scraper

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/use-agent/prodscrape/observability"
)

// Scraper drives the fetch → extract → persist pipeline for one site.
// Identifiers are independent: a failure on one never affects another.
// It is safe for concurrent use.
type Scraper struct {
	site        Site
	store       Store
	notifier    Notifier
	metrics     *observability.Metrics
	concurrency int
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithConcurrency bounds how many identifiers Run processes at once.
// Values below 1 mean strictly sequential.
func WithConcurrency(n int) Option {
	return func(s *Scraper) {
		if n < 1 {
			n = 1
		}
		s.concurrency = n
	}
}

// WithNotifier registers a Notifier for persisted records.
func WithNotifier(n Notifier) Option {
	return func(s *Scraper) { s.notifier = n }
}

// WithMetrics records pipeline metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Scraper) { s.metrics = m }
}

// New creates a Scraper for site that persists into store.
func New(site Site, store Store, opts ...Option) *Scraper {
	s := &Scraper{site: site, store: store, concurrency: 1}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Site returns the site this scraper targets.
func (s *Scraper) Site() Site { return s.site }

// Store returns the store results are written to.
func (s *Scraper) Store() Store { return s.store }

// Run collects every identifier and returns the results in input order.
// It never stops early on a per-identifier failure.
func (s *Scraper) Run(ctx context.Context, identifiers []string) []Result {
	runID := uuid.NewString()
	log := slog.With("run_id", runID, "site", s.site.Name())
	log.Info("run started", "identifiers", len(identifiers), "concurrency", s.concurrency)

	results := make([]Result, len(identifiers))
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, id := range identifiers {
		g.Go(func() error {
			results[i] = s.collect(ctx, log, id)
			return nil
		})
	}
	_ = g.Wait()

	var failed, saved int
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
		if r.Saved {
			saved++
		}
	}
	log.Info("run finished", "identifiers", len(identifiers), "saved", saved, "failed", failed)
	return results
}

// Collect runs the pipeline for a single identifier.
func (s *Scraper) Collect(ctx context.Context, identifier string) Result {
	return s.collect(ctx, slog.With("site", s.site.Name()), identifier)
}

func (s *Scraper) collect(ctx context.Context, log *slog.Logger, identifier string) (res Result) {
	start := time.Now()
	log = log.With("identifier", identifier)
	res = Result{Identifier: identifier, URL: s.site.ProductURL(identifier)}
	defer func() {
		res.Timing.TotalMs = time.Since(start).Milliseconds()
		s.metrics.ObserveCollect(time.Since(start).Seconds())
		log.Info("identifier completed",
			"elapsed", time.Since(start).String(),
			"fields", len(res.Record),
			"saved", res.Saved,
		)
	}()

	// ── 1. Fetch ────────────────────────────────────────────────────
	fetchStart := time.Now()
	page, err := s.site.Fetch(ctx, identifier)
	res.Timing.FetchMs = time.Since(fetchStart).Milliseconds()
	if err != nil {
		s.metrics.Fetch(s.site.Name(), "network_failure")
		log.Error("failed to collect data", "url", res.URL, "error", err)
		res.Err = err
		return res
	}
	s.metrics.Fetch(s.site.Name(), "ok")
	log.Debug("page fetched", "url", page.URL, "bytes", len(page.HTML))

	// ── 2. Persist raw page, regardless of what extraction finds ───
	if err := s.store.SaveRaw(ctx, page); err != nil {
		s.metrics.PersistFailure("raw")
		log.Warn("failed to save raw page", "error", err)
	} else {
		res.RawSaved = true
	}

	// ── 3. Extract ──────────────────────────────────────────────────
	extractStart := time.Now()
	res.Record = s.site.Extract(page.HTML)
	res.Timing.ExtractMs = time.Since(extractStart).Milliseconds()
	for field := range res.Record {
		s.metrics.Field(s.site.Name(), field)
	}

	// ── 4. Persist record, only when something was extracted ───────
	if len(res.Record) == 0 {
		log.Info("no data extracted")
		return res
	}
	if err := s.store.SaveRecord(ctx, identifier, res.Record); err != nil {
		s.metrics.PersistFailure("record")
		log.Warn("failed to save record", "error", err)
		return res
	}
	res.Saved = true
	s.metrics.RecordSaved()

	if s.notifier != nil {
		if err := s.notifier.RecordSaved(ctx, identifier, res.Record); err != nil {
			log.Warn("record notification failed", "error", err)
		}
	}
	return res
}
