package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks the one-shot reference dataset fetch.
type Metrics struct {
	FetchTotal    *prometheus.CounterVec
	FetchDuration prometheus.Histogram
	Entries       prometheus.Gauge
}

// New registers reference metrics on the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		FetchTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "intake_reference_fetch_total",
			Help: "Reference dataset fetch attempts by outcome",
		}, []string{"outcome"}),
		FetchDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "intake_reference_fetch_duration_seconds",
			Help:    "Duration of the reference dataset fetch",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		}),
		Entries: f.NewGauge(prometheus.GaugeOpts{
			Name: "intake_reference_entries",
			Help: "Number of country entries in the loaded dataset",
		}),
	}
}

// ObserveFetch records a finished fetch. Call with time.Now() taken before the fetch.
func (m *Metrics) ObserveFetch(start time.Time, outcome string, entries int) {
	m.FetchTotal.WithLabelValues(outcome).Inc()
	m.FetchDuration.Observe(time.Since(start).Seconds())
	m.Entries.Set(float64(entries))
}
