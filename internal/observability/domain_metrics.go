package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	questionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "askdb_questions_total",
			Help: "Total number of questions processed, by terminal outcome.",
		},
		[]string{"outcome"},
	)
	translationRetriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "askdb_translation_retries_total",
			Help: "Total number of translation retries after an unusable first attempt.",
		},
	)
	generationCallsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "askdb_generation_calls_total",
			Help: "Total number of SQL generation model calls, including repairs.",
		},
	)
	repairAttemptsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "askdb_repair_attempts_total",
			Help: "Total number of SQL repair round-trips after a failed execution.",
		},
	)
	unsafeRejectionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "askdb_unsafe_rejections_total",
			Help: "Total number of statements rejected by the read-only safety gate.",
		},
	)
	executionDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "askdb_execution_duration_seconds",
			Help:    "Database execution latency for generated statements.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)
)

func init() {
	prometheus.MustRegister(
		questionsTotal,
		translationRetriesTotal,
		generationCallsTotal,
		repairAttemptsTotal,
		unsafeRejectionsTotal,
		executionDurationSeconds,
	)
}

func ObserveQuestion(outcome string) {
	questionsTotal.WithLabelValues(outcome).Inc()
}

func IncrementTranslationRetry() {
	translationRetriesTotal.Inc()
}

func IncrementGenerationCall() {
	generationCallsTotal.Inc()
}

func IncrementRepairAttempt() {
	repairAttemptsTotal.Inc()
}

func IncrementUnsafeRejection() {
	unsafeRejectionsTotal.Inc()
}

func ObserveExecution(elapsed time.Duration) {
	executionDurationSeconds.Observe(elapsed.Seconds())
}
