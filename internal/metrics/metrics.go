package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeRejected = "rejected"
)

var (
	evaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "essay_evaluations_total",
			Help: "Total number of essay evaluations by outcome",
		},
		[]string{"outcome"},
	)

	evaluationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "essay_evaluation_duration_seconds",
			Help:    "Wall time of a full essay evaluation",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
	)

	traitScore = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "essay_trait_score",
			Help:    "Extracted trait scores (0-10)",
			Buckets: prometheus.LinearBuckets(0, 1, 11),
		},
		[]string{"trait"},
	)

	traitFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "essay_trait_failures_total",
			Help: "Trait chains that failed, by trait and error kind",
		},
		[]string{"trait", "kind"},
	)

	backendCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_backend_call_duration_seconds",
			Help:    "Duration of streamed generation calls",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
		},
		[]string{"model"},
	)

	backendErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_backend_errors_total",
			Help: "Generation calls that ended in a backend error",
		},
		[]string{"model"},
	)

	backendInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "llm_backend_in_flight",
			Help: "Generation calls currently streaming",
		},
	)
)

// ObserveEvaluation registra el resultado y duracion de una evaluacion completa.
func ObserveEvaluation(outcome string, d time.Duration) {
	evaluationsTotal.WithLabelValues(outcome).Inc()
	if outcome != OutcomeRejected {
		evaluationDuration.Observe(d.Seconds())
	}
}

func ObserveTraitScore(trait string, score float64) {
	traitScore.WithLabelValues(trait).Observe(score)
}

func ObserveTraitFailure(trait, kind string) {
	traitFailures.WithLabelValues(trait, kind).Inc()
}

// BackendCallStarted marca el inicio de una llamada y devuelve la funcion que la cierra.
func BackendCallStarted(model string) func(err error) {
	start := time.Now()
	backendInFlight.Inc()
	return func(err error) {
		backendInFlight.Dec()
		backendCallDuration.WithLabelValues(model).Observe(time.Since(start).Seconds())
		if err != nil {
			backendErrors.WithLabelValues(model).Inc()
		}
	}
}
