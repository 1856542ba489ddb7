package plugin

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Transition results recorded by Metrics.
const (
	resultOK      = "ok"
	resultNoop    = "noop"
	resultHook    = "hook_error"
	resultPersist = "persist_error"
)

// Metrics holds the Prometheus collectors of a registry. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	transitions  *prometheus.CounterVec
	active       prometheus.Gauge
	registered   prometheus.Gauge
	hookDuration *prometheus.HistogramVec
}

// NewMetrics creates the registry collectors and registers them with reg
// when reg is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "adminshell",
			Subsystem: "plugin",
			Name:      "transitions_total",
			Help:      "Plugin activation state transitions by operation and result.",
		}, []string{"op", "result"}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "adminshell",
			Subsystem: "plugin",
			Name:      "active",
			Help:      "Number of registered plugins that are active.",
		}),
		registered: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "adminshell",
			Subsystem: "plugin",
			Name:      "registered",
			Help:      "Number of registered plugins.",
		}),
		hookDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "adminshell",
			Subsystem: "plugin",
			Name:      "hook_duration_seconds",
			Help:      "Duration of plugin lifecycle hooks.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"hook"}),
	}
	if reg != nil {
		reg.MustRegister(m.transitions, m.active, m.registered, m.hookDuration)
	}
	return m
}

func (m *Metrics) transition(op, result string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(op, result).Inc()
}

func (m *Metrics) hook(kind HookKind, d time.Duration) {
	if m == nil {
		return
	}
	m.hookDuration.WithLabelValues(string(kind)).Observe(d.Seconds())
}

func (m *Metrics) counts(registered, active int) {
	if m == nil {
		return
	}
	m.registered.Set(float64(registered))
	m.active.Set(float64(active))
}
