// Package observability exposes Prometheus metrics for the scrape pipeline.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the pipeline collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry       *prometheus.Registry
	fetches        *prometheus.CounterVec
	fields         *prometheus.CounterVec
	recordsSaved   prometheus.Counter
	persistFailure *prometheus.CounterVec
	duration       prometheus.Histogram
}

// NewMetrics registers the pipeline collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "prodscrape_fetches_total",
			Help: "Product page fetches by outcome.",
		}, []string{"site", "outcome"}),
		fields: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "prodscrape_fields_extracted_total",
			Help: "Record fields successfully extracted.",
		}, []string{"site", "field"}),
		recordsSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "prodscrape_records_saved_total",
			Help: "Non-empty records written to the store.",
		}),
		persistFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "prodscrape_persist_failures_total",
			Help: "Failed writes to the store by artifact.",
		}, []string{"artifact"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "prodscrape_collect_duration_seconds",
			Help:    "Wall-clock time to collect one identifier.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	m.registry.MustRegister(m.fetches, m.fields, m.recordsSaved, m.persistFailure, m.duration)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Fetch(site, outcome string) {
	if m == nil {
		return
	}
	m.fetches.WithLabelValues(site, outcome).Inc()
}

func (m *Metrics) Field(site, field string) {
	if m == nil {
		return
	}
	m.fields.WithLabelValues(site, field).Inc()
}

func (m *Metrics) RecordSaved() {
	if m == nil {
		return
	}
	m.recordsSaved.Inc()
}

func (m *Metrics) PersistFailure(artifact string) {
	if m == nil {
		return
	}
	m.persistFailure.WithLabelValues(artifact).Inc()
}

func (m *Metrics) ObserveCollect(seconds float64) {
	if m == nil {
		return
	}
	m.duration.Observe(seconds)
}
