package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Rejected *prometheus.CounterVec
}

func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Rejected: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "intake_ratelimit_rejected_total",
			Help: "Requests rejected by the rate limiter, by scope",
		}, []string{"scope"}),
	}
}

func (m *Metrics) IncrementRejected(scope string) {
	m.Rejected.WithLabelValues(scope).Inc()
}
