package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "footy_career"

// Metrics holds the collectors for career intents and simulation throughput.
type Metrics struct {
	registry *prometheus.Registry

	IntentTotal     *prometheus.CounterVec   // by intent and result
	IntentDuration  *prometheus.HistogramVec // by intent
	RoundsSimulated prometheus.Counter
	SaveConflicts   prometheus.Counter
	BalanceCareers  *prometheus.CounterVec // by outcome
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		IntentTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "intents_total",
				Help:      "Career intents handled, by intent and result.",
			},
			[]string{"intent", "result"},
		),
		IntentDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "intent_duration_seconds",
				Help:      "Time spent loading, applying and saving a career intent.",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"intent"},
		),
		RoundsSimulated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rounds_simulated_total",
				Help:      "League rounds simulated across all careers.",
			},
		),
		SaveConflicts: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "save_conflicts_total",
				Help:      "Saves rejected by the optimistic version check.",
			},
		),
		BalanceCareers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "balance_careers_total",
				Help:      "Careers simulated by the balance runner, by outcome.",
			},
			[]string{"outcome"},
		),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.IntentTotal,
		m.IntentDuration,
		m.RoundsSimulated,
		m.SaveConflicts,
		m.BalanceCareers,
	)
	return m
}

// ObserveIntent records one intent outcome. A nil receiver is a no-op.
func (m *Metrics) ObserveIntent(intent string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.IntentTotal.WithLabelValues(intent, result).Inc()
	m.IntentDuration.WithLabelValues(intent).Observe(elapsed.Seconds())
}

func (m *Metrics) IncRounds() {
	if m == nil {
		return
	}
	m.RoundsSimulated.Inc()
}

func (m *Metrics) IncSaveConflict() {
	if m == nil {
		return
	}
	m.SaveConflicts.Inc()
}

func (m *Metrics) IncBalanceCareer(outcome string) {
	if m == nil {
		return
	}
	m.BalanceCareers.WithLabelValues(outcome).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
