package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for location autofill.
type Metrics struct {
	Outcomes        *prometheus.CounterVec
	GeocodeDuration prometheus.Histogram
	CacheLookups    *prometheus.CounterVec
	StaleDiscarded  prometheus.Counter
}

// New registers autofill metrics on the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Outcomes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "intake_autofill_outcomes_total",
			Help: "Autofill invocations by final state and reason",
		}, []string{"state", "reason"}),
		GeocodeDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "intake_autofill_geocode_duration_seconds",
			Help:    "Duration of reverse-geocoding calls, cache included",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "intake_autofill_geocode_cache_lookups_total",
			Help: "Geocode cache lookups by result (hit, miss, error)",
		}, []string{"result"}),
		StaleDiscarded: f.NewCounter(prometheus.CounterOpts{
			Name: "intake_autofill_stale_writes_discarded_total",
			Help: "Field writes dropped because a newer invocation already wrote the field",
		}),
	}
}

func (m *Metrics) IncrementOutcome(state, reason string) {
	m.Outcomes.WithLabelValues(state, reason).Inc()
}

// ObserveGeocode records a geocoder call. Call with time.Now() taken before the call.
func (m *Metrics) ObserveGeocode(start time.Time) {
	m.GeocodeDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementCacheLookup(result string) {
	m.CacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) IncrementStaleDiscarded(n int) {
	m.StaleDiscarded.Add(float64(n))
}
