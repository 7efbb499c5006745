package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	computations *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	fetchLatency *prometheus.HistogramVec
	fetchErrors  *prometheus.CounterVec
	cacheLookups *prometheus.CounterVec
}

// NewWithRegistry creates a recorder registered on reg.
func NewWithRegistry(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		computations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "divyield_computations_total",
				Help: "Total number of yield on cost computations by outcome",
			},
			[]string{"outcome"},
		),
		errorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "divyield_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		fetchLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "divyield_provider_fetch_duration_seconds",
				Help:    "Duration of market data provider fetches in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider", "series"},
		),
		fetchErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "divyield_provider_fetch_errors_total",
				Help: "Market data provider fetch failures",
			},
			[]string{"provider", "series"},
		),
		cacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "divyield_cache_lookups_total",
				Help: "Fetch cache lookups by result",
			},
			[]string{"series", "result"},
		),
	}
}

// RecordComputation counts a finished computation. The ticker is not used as
// a label to keep cardinality bounded.
func (r *Recorder) RecordComputation(_ string, outcome string) {
	r.computations.WithLabelValues(outcome).Inc()
}

// RecordFetch records one provider call.
func (r *Recorder) RecordFetch(provider, series string, seconds float64, err error) {
	r.fetchLatency.WithLabelValues(provider, series).Observe(seconds)
	if err != nil {
		r.fetchErrors.WithLabelValues(provider, series).Inc()
	}
}

// RecordCacheLookup records a cache hit or miss.
func (r *Recorder) RecordCacheLookup(series string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(series, result).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}
