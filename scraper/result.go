package scraper

import "github.com/use-agent/prodscrape/models"

// Result is the outcome of collecting one identifier.
type Result struct {
	Identifier string
	URL        string

	// Record is nil when the fetch failed, otherwise possibly empty.
	Record models.Record

	// RawSaved and Saved report whether the raw page and the record reached
	// the store.
	RawSaved bool
	Saved    bool

	// Err is the fetch failure that aborted the pipeline, if any.
	Err error

	Timing models.TimingInfo
}

// Response converts a Result into its API representation.
func (r Result) Response() models.ProductResponse {
	resp := models.ProductResponse{
		Success:    r.Err == nil,
		Identifier: r.Identifier,
		SourceURL:  r.URL,
		Record:     r.Record,
		Saved:      r.Saved,
		Timing:     r.Timing,
	}
	if resp.Record == nil {
		resp.Record = models.Record{}
	}
	if r.Err != nil {
		resp.Error = &models.ErrorDetail{Code: models.CodeOf(r.Err), Message: r.Err.Error()}
	}
	return resp
}
