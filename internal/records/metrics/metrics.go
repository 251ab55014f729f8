package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the record table.
type Metrics struct {
	Submissions *prometheus.CounterVec
	Rows        prometheus.Gauge
}

func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Submissions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "intake_records_submissions_total",
			Help: "Record submissions by outcome (accepted, rejected)",
		}, []string{"outcome"}),
		Rows: f.NewGauge(prometheus.GaugeOpts{
			Name: "intake_records_rows",
			Help: "Rows currently held in the record table",
		}),
	}
}

func (m *Metrics) IncrementSubmission(outcome string) {
	m.Submissions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) AddRows(n int) {
	m.Rows.Add(float64(n))
}
