// Package telemetry provides Prometheus metrics and tracing for the
// moderation service.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "tubewarden"

// Metrics holds all moderation Prometheus metrics.
type Metrics struct {
	// Classification metrics
	CommentsClassified  prometheus.Counter
	SpamVerdicts        *prometheus.CounterVec
	SentimentLabels     *prometheus.CounterVec
	ModelFallbackErrors *prometheus.CounterVec
	ClassifyDuration    prometheus.Histogram

	// Ingestion metrics
	IngestionRuns    prometheus.Counter
	IngestionSize    prometheus.Histogram
	ThreadsSkipped   prometheus.Counter

	// Batch moderation metrics
	DeletesAttempted prometheus.Counter
	DeletesSucceeded prometheus.Counter
	DeletesFailed    *prometheus.CounterVec
	RepliesPosted    prometheus.Counter
	RepliesGenerated prometheus.Counter
	BatchSize        prometheus.Histogram
}

// Provider wraps telemetry providers.
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

// NewProvider initializes telemetry with Prometheus metrics.
func NewProvider() *Provider {
	return &Provider{
		Tracer:  otel.Tracer(serviceName),
		Metrics: initMetrics(),
	}
}

func initMetrics() *Metrics {
	m := &Metrics{}
	initClassificationMetrics(m)
	initIngestionMetrics(m)
	initModerationMetrics(m)
	return m
}

func initClassificationMetrics(m *Metrics) {
	m.CommentsClassified = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tubewarden_comments_classified_total",
		Help: "Total comments run through the spam classifier",
	})

	m.SpamVerdicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tubewarden_spam_verdicts_total",
		Help: "Spam verdicts by deciding stage (pattern, model, clean)",
	}, []string{"stage"})

	m.SentimentLabels = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tubewarden_sentiment_labels_total",
		Help: "Sentiment labels assigned to comments",
	}, []string{"label"})

	m.ModelFallbackErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tubewarden_model_fallback_errors_total",
		Help: "Language-model calls recovered with a fail-safe default",
	}, []string{"capability"})

	m.ClassifyDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tubewarden_classify_duration_seconds",
		Help:    "Time to classify a single comment (both stages)",
		Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
	})
}

func initIngestionMetrics(m *Metrics) {
	m.IngestionRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tubewarden_ingestion_runs_total",
		Help: "Total moderation-queue ingestion passes",
	})

	m.IngestionSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tubewarden_ingestion_size",
		Help:    "Comments annotated per ingestion pass",
		Buckets: []float64{1, 5, 10, 25, 50, 100},
	})

	m.ThreadsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tubewarden_threads_skipped_total",
		Help: "Comment threads skipped for missing display text",
	})
}

func initModerationMetrics(m *Metrics) {
	m.DeletesAttempted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tubewarden_deletes_attempted_total",
		Help: "Comment deletions attempted after verification",
	})

	m.DeletesSucceeded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tubewarden_deletes_succeeded_total",
		Help: "Comment deletions accepted by the platform",
	})

	m.DeletesFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tubewarden_deletes_failed_total",
		Help: "Comment deletions rejected by the platform",
	}, []string{"code"})

	m.RepliesPosted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tubewarden_replies_posted_total",
		Help: "Replies posted to the platform",
	})

	m.RepliesGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tubewarden_replies_generated_total",
		Help: "AI reply drafts generated",
	})

	m.BatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tubewarden_batch_size",
		Help:    "Comment ids per batch delete request",
		Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
	})
}
