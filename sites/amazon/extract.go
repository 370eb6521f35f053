package amazon

import (
	"encoding/json"
	"log/slog"
	"sort"

	"golang.org/x/net/html"

	"github.com/use-agent/prodscrape/extractor"
	"github.com/use-agent/prodscrape/models"
)

// imageBlock is the subset of the embedded gallery state we read.
type imageBlock struct {
	Title       json.RawMessage            `json:"title"`
	ColorImages map[string]json.RawMessage `json:"colorImages"`
}

// imageDescriptor is one gallery entry of a colour variant.
type imageDescriptor struct {
	HiRes *string `json:"hiRes"`
	Large *string `json:"large"`
}

// url prefers the high-resolution image and falls back to the large one.
// Null and empty values count as absent.
func (d imageDescriptor) url() string {
	if d.HiRes != nil && *d.HiRes != "" {
		return *d.HiRes
	}
	if d.Large != nil && *d.Large != "" {
		return *d.Large
	}
	return ""
}

// Extract pulls the product record out of a detail page. Fields come from two
// independent sources: the embedded image block JSON (title, photo_urls) and
// the location-query table (everything else). Should both ever produce the
// same field, the embedded JSON value wins.
func (s *Site) Extract(rawHTML string) models.Record {
	doc, err := extractor.Parse(rawHTML)
	if err != nil {
		slog.Warn("error parsing HTML response", "error", err)
		return models.Record{}
	}

	rec := s.extractEmbedded(doc)
	rec.Merge(s.queries.Apply(doc))
	return rec
}

// extractEmbedded reads the image block script. Every failure is logged and
// yields an empty record so the tree queries still run.
func (s *Site) extractEmbedded(doc *html.Node) models.Record {
	rec := models.Record{}

	script, ok := s.images.Find(doc)
	if !ok {
		slog.Debug("no image block script found", "marker", imageBlockMarker)
		return rec
	}

	literal, ok := extractor.Capture(parseJSONCall, script)
	if !ok {
		slog.Info("no JSON data pattern found in image block script")
		return rec
	}

	var block imageBlock
	if err := json.Unmarshal([]byte(literal), &block); err != nil {
		slog.Warn("error decoding image block JSON",
			"error", models.NewScrapeError(models.ErrCodeFieldExtraction, "decode image block", err),
		)
		return rec
	}

	if len(block.Title) > 0 && string(block.Title) != "null" {
		var title string
		if err := json.Unmarshal(block.Title, &title); err != nil {
			slog.Warn("image block title is not a string",
				"error", models.NewScrapeError(models.ErrCodeFieldExtraction, "decode title", err),
			)
		} else {
			rec.SetString(models.FieldTitle, title)
			slog.Debug("field extracted", "field", models.FieldTitle, "value", title)
		}
	}

	if urls := photoURLs(block.ColorImages); len(urls) > 0 {
		rec.SetList(models.FieldPhotoURLs, urls)
		slog.Debug("field extracted", "field", models.FieldPhotoURLs, "count", len(urls))
	}
	return rec
}

// photoURLs collects one URL per image descriptor across all colour variants,
// deduplicated and sorted. Variants or entries of an unexpected shape are
// skipped.
func photoURLs(variants map[string]json.RawMessage) []string {
	var urls []string
	for variant, raw := range variants {
		var entries []json.RawMessage
		if err := json.Unmarshal(raw, &entries); err != nil {
			slog.Debug("skipping colour variant", "variant", variant, "error", err)
			continue
		}
		for _, entry := range entries {
			var d imageDescriptor
			if err := json.Unmarshal(entry, &d); err != nil {
				continue
			}
			if u := d.url(); u != "" {
				urls = append(urls, u)
			}
		}
	}

	urls = extractor.Dedupe(urls)
	sort.Strings(urls)
	return urls
}
