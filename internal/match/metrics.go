package match

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics instruments the gate. A nil *Metrics is valid and records nothing.
type Metrics struct {
	transitions    *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	fanoutFailures prometheus.Counter
}

// NewMetrics registers the gate's collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "livescore",
			Name:      "transitions_total",
			Help:      "Match transitions by action and result.",
		}, []string{"action", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "livescore",
			Name:      "transition_seconds",
			Help:      "Time from load to commit for a match transition.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"action"}),
		fanoutFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "livescore",
			Name:      "fanout_failures_total",
			Help:      "Per-user update deliveries that could not be queued.",
		}),
	}
	reg.MustRegister(m.transitions, m.duration, m.fanoutFailures)
	return m
}

func (m *Metrics) observe(action string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(action, resultLabel(err)).Inc()
	m.duration.WithLabelValues(action).Observe(elapsed.Seconds())
}

func (m *Metrics) fanoutFailed() {
	if m == nil {
		return
	}
	m.fanoutFailures.Inc()
}
