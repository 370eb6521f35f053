package models

// ProductResponse is the response for GET /api/v1/products/:id.
type ProductResponse struct {
	// Success indicates whether the page was fetched without errors.
	Success bool `json:"success"`

	// Identifier is the product lookup key.
	Identifier string `json:"identifier"`

	// SourceURL is the product page that was fetched.
	SourceURL string `json:"source_url,omitempty"`

	// Record holds the extracted fields. Empty when nothing was extracted.
	Record Record `json:"record"`

	// Saved reports whether the record was written to the store.
	Saved bool `json:"saved"`

	// Timing provides duration breakdowns for the operation.
	Timing TimingInfo `json:"timing"`

	// Error is populated only when Success is false.
	Error *ErrorDetail `json:"error,omitempty"`
}

// TimingInfo breaks down the time spent in each phase.
type TimingInfo struct {
	// TotalMs is the end-to-end duration in milliseconds.
	TotalMs int64 `json:"total_ms"`

	// FetchMs is the time spent downloading the page.
	FetchMs int64 `json:"fetch_ms"`

	// ExtractMs is the time spent parsing and querying the document.
	ExtractMs int64 `json:"extract_ms"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Site    string `json:"site"`
	Store   string `json:"store"`
	Version string `json:"version"`
}
