package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/use-agent/prodscrape/models"
)

func TestFS_SaveRaw(t *testing.T) {
	s, err := NewFS(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}

	page := &models.RawPage{Identifier: "B0B2JZXW8L", HTML: "<html>\n  <body>Café</body>\n</html>\n"}
	if err := s.SaveRaw(context.Background(), page); err != nil {
		t.Fatalf("SaveRaw: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(s.Dir(), "B0B2JZXW8L.html"))
	if err != nil {
		t.Fatalf("read raw page: %v", err)
	}
	if string(got) != page.HTML {
		t.Errorf("raw page = %q, want %q", got, page.HTML)
	}
}

func TestFS_SaveRecord(t *testing.T) {
	s, err := NewFS(t.TempDir())
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}

	rec := models.Record{
		models.FieldTitle:     "Café <Deluxe> & Co",
		models.FieldPhotoURLs: []string{"https://x/1.jpg"},
	}
	if err := s.SaveRecord(context.Background(), "B01GGKYKQM", rec); err != nil {
		t.Fatalf("SaveRecord: %v", err)
	}

	got, err := os.ReadFile(s.RecordPath("B01GGKYKQM"))
	if err != nil {
		t.Fatalf("read record: %v", err)
	}
	want := "{\n" +
		"  \"photo_urls\": [\n" +
		"    \"https://x/1.jpg\"\n" +
		"  ],\n" +
		"  \"title\": \"Café <Deluxe> & Co\"\n" +
		"}\n"
	if string(got) != want {
		t.Errorf("record file =\n%s\nwant\n%s", got, want)
	}
}

func TestFS_LastWriteWins(t *testing.T) {
	s, err := NewFS(t.TempDir())
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	ctx := context.Background()

	for _, body := range []string{"first", "second"} {
		if err := s.SaveRaw(ctx, &models.RawPage{Identifier: "X", HTML: body}); err != nil {
			t.Fatalf("SaveRaw: %v", err)
		}
	}
	got, _ := os.ReadFile(s.RawPath("X"))
	if string(got) != "second" {
		t.Errorf("raw page = %q, want second", got)
	}
}

func TestFS_SaveFailsIntoMissingDirectory(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	if err := os.RemoveAll(dir); err != nil {
		t.Fatal(err)
	}

	err = s.SaveRecord(context.Background(), "X", models.Record{"title": "t"})
	if code := models.CodeOf(err); code != models.ErrCodePersist {
		t.Errorf("error code = %q, want %q (err: %v)", code, models.ErrCodePersist, err)
	}
}

func TestFileStem(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"B0B2JZXW8L", "B0B2JZXW8L"},
		{"../../etc/passwd", "-etc-passwd"},
		{"a b/c", "a-b-c"},
		{"", "-"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := fileStem(tt.in); got != tt.want {
				t.Errorf("fileStem(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
