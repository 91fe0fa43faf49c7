package metrics

import "github.com/prometheus/client_golang/prometheus"

// TransitionMetrics counts appointment state changes and how they failed.
type TransitionMetrics struct {
	transitions *prometheus.CounterVec
	failures    *prometheus.CounterVec
	conflicts   prometheus.Counter
	lockWait    prometheus.Histogram
	dropped     *prometheus.CounterVec
}

func NewTransitionMetrics(reg prometheus.Registerer) *TransitionMetrics {
	m := &TransitionMetrics{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "studio",
			Subsystem: "appointments",
			Name:      "transitions_total",
			Help:      "Appointment transitions committed, by action and resulting status",
		}, []string{"action", "status"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "studio",
			Subsystem: "appointments",
			Name:      "transition_failures_total",
			Help:      "Appointment transitions refused, by action and error kind",
		}, []string{"action", "kind"}),
		conflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "studio",
			Subsystem: "appointments",
			Name:      "slot_conflicts_total",
			Help:      "Confirmations refused because the artist was already booked",
		}),
		lockWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "studio",
			Subsystem: "appointments",
			Name:      "lock_wait_seconds",
			Help:      "Time spent acquiring the artist-day calendar lock",
			Buckets:   prometheus.DefBuckets,
		}),
		dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "studio",
			Subsystem: "events",
			Name:      "dropped_total",
			Help:      "Events dropped because a dispatcher queue was full",
		}, []string{"queue"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.transitions, m.failures, m.conflicts, m.lockWait, m.dropped)
	return m
}

func (m *TransitionMetrics) ObserveTransition(action, status string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(action, status).Inc()
}

func (m *TransitionMetrics) ObserveFailure(action, kind string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(action, kind).Inc()
}

func (m *TransitionMetrics) ObserveConflict() {
	if m == nil {
		return
	}
	m.conflicts.Inc()
}

func (m *TransitionMetrics) ObserveLockWait(seconds float64) {
	if m == nil {
		return
	}
	m.lockWait.Observe(seconds)
}

func (m *TransitionMetrics) ObserveDropped(queue string) {
	if m == nil {
		return
	}
	m.dropped.WithLabelValues(queue).Inc()
}
