package models

import (
	"encoding/json"
	"time"
)

// Record field names.
const (
	FieldTitle        = "title"
	FieldPhotoURLs    = "photo_urls"
	FieldBrand        = "brand"
	FieldMonthlySales = "monthly_sales"
	FieldRating       = "rating"
	FieldReviewsCount = "reviews_count"
	FieldPrice        = "price"
	FieldSellerName   = "seller_name"
	FieldSellerID     = "seller_id"
)

// Record maps an extracted field name to its value. Values are either a
// string or a []string. Fields that were not extracted are absent.
type Record map[string]any

// SetString stores a single-valued field.
func (r Record) SetString(field, value string) {
	r[field] = value
}

// SetList stores a list-valued field.
func (r Record) SetList(field string, values []string) {
	r[field] = values
}

// String returns a single-valued field.
func (r Record) String(field string) (string, bool) {
	v, ok := r[field].(string)
	return v, ok
}

// List returns a list-valued field.
func (r Record) List(field string) ([]string, bool) {
	v, ok := r[field].([]string)
	return v, ok
}

// Merge copies every field of other that r does not already hold.
// Fields already present in r take precedence.
func (r Record) Merge(other Record) {
	for k, v := range other {
		if _, exists := r[k]; !exists {
			r[k] = v
		}
	}
}

// UnmarshalJSON decodes a record restoring list fields as []string.
// Values that are neither a string nor a list of strings are dropped.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Record, len(raw))
	for k, v := range raw {
		switch t := v.(type) {
		case string:
			out[k] = t
		case []any:
			list := make([]string, 0, len(t))
			for _, item := range t {
				if s, ok := item.(string); ok {
					list = append(list, s)
				}
			}
			out[k] = list
		}
	}
	*r = out
	return nil
}

// RawPage is the unparsed body of one fetched product page.
type RawPage struct {
	Identifier string
	URL        string
	HTML       string
	StatusCode int
	FetchedAt  time.Time
}
