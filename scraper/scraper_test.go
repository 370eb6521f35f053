package scraper

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/use-agent/prodscrape/models"
	"github.com/use-agent/prodscrape/observability"
)

type fakeSite struct {
	pages   map[string]string
	records map[string]models.Record
}

func (f *fakeSite) Name() string { return "fake" }
func (f *fakeSite) ProductURL(id string) string { return "https://shop.test/dp/" + id }
func (f *fakeSite) Extract(raw string) models.Record {
	rec := models.Record{}
	for k, v := range f.records[raw] {
		rec[k] = v
	}
	return rec
}

func (f *fakeSite) Fetch(_ context.Context, id string) (*models.RawPage, error) {
	html, ok := f.pages[id]
	if !ok {
		return nil, models.NewScrapeError(models.ErrCodeNetwork, "unexpected status", errors.New("HTTP 404"))
	}
	return &models.RawPage{Identifier: id, URL: f.ProductURL(id), HTML: html, StatusCode: 200}, nil
}

type memStore struct {
	mu         sync.Mutex
	raw        map[string]string
	records    map[string]models.Record
	failRaw    bool
	failRecord bool
}

func newMemStore() *memStore {
	return &memStore{raw: map[string]string{}, records: map[string]models.Record{}}
}

func (s *memStore) Name() string { return "mem" }

func (s *memStore) SaveRaw(_ context.Context, page *models.RawPage) error {
	if s.failRaw {
		return models.NewScrapeError(models.ErrCodePersist, "disk full", nil)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw[page.Identifier] = page.HTML
	return nil
}

func (s *memStore) SaveRecord(_ context.Context, id string, rec models.Record) error {
	if s.failRecord {
		return models.NewScrapeError(models.ErrCodePersist, "disk full", nil)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[id] = rec
	return nil
}

type recordingNotifier struct {
	mu  sync.Mutex
	ids []string
}

func (n *recordingNotifier) RecordSaved(_ context.Context, id string, _ models.Record) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ids = append(n.ids, id)
	return nil
}

func newFakeSite() *fakeSite {
	return &fakeSite{
		pages: map[string]string{
			"GOOD":  "<good>",
			"EMPTY": "<empty>",
		},
		records: map[string]models.Record{
			"<good>": {models.FieldTitle: "Mug", models.FieldPrice: "$1"},
		},
	}
}

func TestCollect_Success(t *testing.T) {
	store := newMemStore()
	notifier := &recordingNotifier{}
	s := New(newFakeSite(), store, WithNotifier(notifier), WithMetrics(observability.NewMetrics()))

	res := s.Collect(context.Background(), "GOOD")
	if res.Err != nil || !res.RawSaved || !res.Saved {
		t.Fatalf("unexpected result: %+v", res)
	}
	if store.raw["GOOD"] != "<good>" {
		t.Errorf("raw page not persisted: %q", store.raw["GOOD"])
	}
	if diff := cmp.Diff(models.Record{models.FieldTitle: "Mug", models.FieldPrice: "$1"}, store.records["GOOD"]); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"GOOD"}, notifier.ids); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
}

func TestCollect_EmptyExtractionSuppressesRecordWrite(t *testing.T) {
	store := newMemStore()
	notifier := &recordingNotifier{}
	s := New(newFakeSite(), store, WithNotifier(notifier))

	res := s.Collect(context.Background(), "EMPTY")
	if res.Err != nil || res.Saved {
		t.Fatalf("unexpected result: %+v", res)
	}
	if _, ok := store.raw["EMPTY"]; !ok {
		t.Error("raw page must be persisted even when nothing is extracted")
	}
	if _, ok := store.records["EMPTY"]; ok {
		t.Error("empty record must not be persisted")
	}
	if len(notifier.ids) != 0 {
		t.Errorf("unexpected notifications: %v", notifier.ids)
	}
}

func TestCollect_FetchFailureAbortsBeforeExtraction(t *testing.T) {
	store := newMemStore()
	s := New(newFakeSite(), store)

	res := s.Collect(context.Background(), "MISSING")
	if models.CodeOf(res.Err) != models.ErrCodeNetwork {
		t.Fatalf("error code = %q, want %q", models.CodeOf(res.Err), models.ErrCodeNetwork)
	}
	if res.Record != nil || res.RawSaved || res.Saved {
		t.Errorf("unexpected result: %+v", res)
	}
	if len(store.raw) != 0 || len(store.records) != 0 {
		t.Errorf("nothing should be persisted: raw=%v records=%v", store.raw, store.records)
	}

	resp := res.Response()
	if resp.Success || resp.Error == nil || resp.Error.Code != models.ErrCodeNetwork {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestCollect_PersistFailuresAreNotFatal(t *testing.T) {
	store := newMemStore()
	store.failRaw = true
	store.failRecord = true
	s := New(newFakeSite(), store)

	res := s.Collect(context.Background(), "GOOD")
	if res.Err != nil {
		t.Fatalf("persist failures must not surface as pipeline errors: %v", res.Err)
	}
	if res.RawSaved || res.Saved {
		t.Errorf("unexpected result: %+v", res)
	}
	if len(res.Record) != 2 {
		t.Errorf("record should still be extracted: %v", res.Record)
	}
}

func TestRun_ContinuesPastFailuresInOrder(t *testing.T) {
	for _, concurrency := range []int{0, 1, 4} {
		store := newMemStore()
		s := New(newFakeSite(), store, WithConcurrency(concurrency))

		ids := []string{"MISSING", "GOOD", "EMPTY", "ALSO-MISSING"}
		results := s.Run(context.Background(), ids)

		if len(results) != len(ids) {
			t.Fatalf("concurrency %d: got %d results, want %d", concurrency, len(results), len(ids))
		}
		for i, r := range results {
			if r.Identifier != ids[i] {
				t.Errorf("concurrency %d: result %d is %q, want %q", concurrency, i, r.Identifier, ids[i])
			}
		}
		if results[0].Err == nil || results[3].Err == nil {
			t.Errorf("concurrency %d: expected failures for missing identifiers", concurrency)
		}
		if !results[1].Saved || results[2].Saved {
			t.Errorf("concurrency %d: unexpected saved flags: %+v", concurrency, results)
		}
	}
}

func TestResultResponse_EmptyRecordIsObject(t *testing.T) {
	resp := Result{Identifier: "X"}.Response()
	if resp.Record == nil {
		t.Error("Record must never be nil in API responses")
	}
	if !resp.Success {
		t.Error("a result without error is a success")
	}
}
