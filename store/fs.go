// Package store persists raw product pages and extracted records.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/use-agent/prodscrape/models"
)

var safeFilenameReplaceRegex = regexp.MustCompile(`[^a-zA-Z0-9-]+`)

// FS writes <id>.html and <id>.json files into a directory. A later write for
// the same identifier replaces the earlier one.
type FS struct {
	dir string
}

// NewFS creates the output directory if needed.
func NewFS(dir string) (*FS, error) {
	if err := os.MkdirAll(dir, os.ModeDir|0755); err != nil {
		return nil, models.NewScrapeError(models.ErrCodePersist, "create output directory", err)
	}
	return &FS{dir: dir}, nil
}

func (s *FS) Name() string { return "fs" }

// Dir returns the output directory.
func (s *FS) Dir() string { return s.dir }

// RawPath returns the file the raw page of identifier is written to.
func (s *FS) RawPath(identifier string) string {
	return filepath.Join(s.dir, fileStem(identifier)+".html")
}

// RecordPath returns the file the record of identifier is written to.
func (s *FS) RecordPath(identifier string) string {
	return filepath.Join(s.dir, fileStem(identifier)+".json")
}

// SaveRaw writes the page body verbatim.
func (s *FS) SaveRaw(_ context.Context, page *models.RawPage) error {
	if err := os.WriteFile(s.RawPath(page.Identifier), []byte(page.HTML), 0644); err != nil {
		return models.NewScrapeError(models.ErrCodePersist, "write raw page", err)
	}
	return nil
}

// SaveRecord writes rec as indented UTF-8 JSON. Non-ASCII and HTML
// characters are written as-is.
func (s *FS) SaveRecord(_ context.Context, identifier string, rec models.Record) error {
	data, err := encodeRecord(rec)
	if err != nil {
		return models.NewScrapeError(models.ErrCodePersist, "encode record", err)
	}
	if err := os.WriteFile(s.RecordPath(identifier), data, 0644); err != nil {
		return models.NewScrapeError(models.ErrCodePersist, "write record", err)
	}
	return nil
}

func encodeRecord(rec models.Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return nil, fmt.Errorf("store: encode record: %w", err)
	}
	return buf.Bytes(), nil
}

// fileStem maps an identifier onto a safe file name.
func fileStem(identifier string) string {
	stem := safeFilenameReplaceRegex.ReplaceAllString(identifier, "-")
	if stem == "" {
		stem = "-"
	}
	return stem
}
