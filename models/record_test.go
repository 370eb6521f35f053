package models

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRecordMerge_ExistingWins(t *testing.T) {
	r := Record{FieldTitle: "from json"}
	r.Merge(Record{FieldTitle: "from tree", FieldBrand: "Acme"})

	want := Record{FieldTitle: "from json", FieldBrand: "Acme"}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("Merge mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordUnmarshalJSON(t *testing.T) {
	var r Record
	in := `{"title":"Mug","photo_urls":["https://x/1.jpg","https://x/2.jpg"],"rating":4.5,"price":null}`
	if err := json.Unmarshal([]byte(in), &r); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	want := Record{
		FieldTitle:     "Mug",
		FieldPhotoURLs: []string{"https://x/1.jpg", "https://x/2.jpg"},
	}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("Unmarshal mismatch (-want +got):\n%s", diff)
	}
	if urls, ok := r.List(FieldPhotoURLs); !ok || len(urls) != 2 {
		t.Errorf("List(photo_urls) = %v, %v", urls, ok)
	}
}

func TestCodeOf(t *testing.T) {
	err := NewScrapeError(ErrCodeNetwork, "fetch", nil)
	if got := CodeOf(err); got != ErrCodeNetwork {
		t.Errorf("CodeOf = %q, want %q", got, ErrCodeNetwork)
	}
	if got := CodeOf(json.Unmarshal([]byte("{"), &struct{}{})); got != ErrCodeInternal {
		t.Errorf("CodeOf(plain error) = %q, want %q", got, ErrCodeInternal)
	}
}
