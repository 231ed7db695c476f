// Package metrics defines the Prometheus collectors for a processor run.
// The processor is single-shot, so there is no scrape endpoint; after the
// batch completes the registry is gathered and written to a textfile in the
// output directory (node-exporter textfile collector format).
package metrics

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Metrics holds all Prometheus collectors for a run.
type Metrics struct {
	DocsIndexedTotal    prometheus.Counter
	TermsIndexedTotal   *prometheus.CounterVec
	IndexBuildSeconds   *prometheus.GaugeVec
	VocabularySize      *prometheus.GaugeVec
	QueriesTotal        *prometheus.CounterVec
	QueriesMatchedTotal *prometheus.CounterVec
	QueryLatency        *prometheus.HistogramVec

	registry *prometheus.Registry
}

// New creates the collectors on a private registry so repeated runs inside
// one process (tests) never collide.
func New() *Metrics {
	m := &Metrics{
		DocsIndexedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "phraseproc_docs_indexed_total",
				Help: "Total documents loaded from the collection.",
			},
		),
		TermsIndexedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "phraseproc_terms_indexed_total",
				Help: "Total term occurrences indexed by strategy.",
			},
			[]string{"strategy"},
		),
		IndexBuildSeconds: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "phraseproc_index_build_seconds",
				Help: "Wall-clock index construction time by strategy.",
			},
			[]string{"strategy"},
		),
		VocabularySize: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "phraseproc_vocabulary_size",
				Help: "Distinct keys in the index by strategy (terms or term pairs).",
			},
			[]string{"strategy"},
		),
		QueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "phraseproc_queries_total",
				Help: "Queries evaluated by strategy.",
			},
			[]string{"strategy"},
		),
		QueriesMatchedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "phraseproc_queries_matched_total",
				Help: "Queries with at least one matching document by strategy.",
			},
			[]string{"strategy"},
		),
		QueryLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "phraseproc_query_latency_seconds",
				Help:    "Per-query evaluation latency by strategy.",
				Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
			},
			[]string{"strategy"},
		),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.DocsIndexedTotal,
		m.TermsIndexedTotal,
		m.IndexBuildSeconds,
		m.VocabularySize,
		m.QueriesTotal,
		m.QueriesMatchedTotal,
		m.QueryLatency,
	)

	return m
}

// WriteFile gathers the registry and writes it in text exposition format.
func (m *Metrics) WriteFile(path string) error {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating metrics file %s: %w", path, err)
	}
	enc := expfmt.NewEncoder(f, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, family := range families {
		if err := enc.Encode(family); err != nil {
			f.Close()
			return fmt.Errorf("encoding metric family %s: %w", family.GetName(), err)
		}
	}
	return f.Close()
}
