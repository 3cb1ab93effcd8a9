package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the check-in lifecycle.
type Metrics struct {
	// Checkouts by trigger: "manual", "expiry"
	Checkouts *prometheus.CounterVec

	CheckoutFailures prometheus.Counter

	// Active check-ins as of the last view recomputation
	Active prometheus.Gauge
}

func New() *Metrics {
	return &Metrics{
		Checkouts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cwa_checkin_checkouts_total",
			Help: "Completed check-outs by trigger",
		}, []string{"trigger"}),

		CheckoutFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cwa_checkin_checkout_failures_total",
			Help: "Check-outs that failed and were reported on the error channel",
		}),

		Active: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "cwa_checkin_active",
			Help: "Number of active check-ins",
		}),
	}
}

func (m *Metrics) IncrementCheckouts(trigger string, n int) {
	if m != nil && n > 0 {
		m.Checkouts.WithLabelValues(trigger).Add(float64(n))
	}
}

func (m *Metrics) IncrementCheckoutFailure() {
	if m != nil {
		m.CheckoutFailures.Inc()
	}
}

func (m *Metrics) SetActive(n int) {
	if m != nil {
		m.Active.Set(float64(n))
	}
}
