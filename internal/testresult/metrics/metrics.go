package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for test result polling.
type Metrics struct {
	// Runs by outcome: "success", "retry", "failure"
	Runs *prometheus.CounterVec

	// Polling stops by reason: "notification_sent", "result_viewed",
	// "max_days", "result_available"
	Stops *prometheus.CounterVec

	NotificationsSent prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		Runs: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cwa_testresult_poll_runs_total",
			Help: "Test result polling runs by outcome",
		}, []string{"outcome"}),

		Stops: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cwa_testresult_poll_stops_total",
			Help: "Times polling was stopped, by reason",
		}, []string{"reason"}),

		NotificationsSent: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cwa_testresult_notifications_sent_total",
			Help: "Test result available notifications shown",
		}),
	}
}

func (m *Metrics) IncrementRun(outcome string) {
	if m != nil {
		m.Runs.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) IncrementStop(reason string) {
	if m != nil {
		m.Stops.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) IncrementNotificationSent() {
	if m != nil {
		m.NotificationsSent.Inc()
	}
}
