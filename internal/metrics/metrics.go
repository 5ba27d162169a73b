// Package metrics exposes analysis counters and gauges to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"FusionSentinel/internal/model"
)

// Recorder records analysis outcomes.
type Recorder struct {
	gatherer  prometheus.Gatherer
	analyses  *prometheus.CounterVec
	errors    *prometheus.CounterVec
	lastScore *prometheus.GaugeVec
	degraded  *prometheus.GaugeVec
	duration  prometheus.Histogram
}

// New registers the collectors with reg. A nil reg uses a private registry.
func New(reg *prometheus.Registry) *Recorder {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)
	return &Recorder{
		gatherer: reg,
		analyses: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fusion_analyses_total",
				Help: "Completed analyses by mode and classification",
			},
			[]string{"mode", "classification"},
		),
		errors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fusion_errors_total",
				Help: "Failures by pipeline stage",
			},
			[]string{"stage"},
		),
		lastScore: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fusion_last_score",
				Help: "Most recent fused score for a symbol",
			},
			[]string{"symbol", "mode"},
		),
		degraded: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fusion_degraded_indicators",
				Help: "Indicators reduced or unavailable in the latest analysis",
			},
			[]string{"symbol"},
		),
		duration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "fusion_analysis_duration_seconds",
				Help:    "Duration of fetch plus analysis in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

// RecordReport records a completed analysis.
func (r *Recorder) RecordReport(rep *model.Report, elapsed time.Duration) {
	r.analyses.WithLabelValues(string(rep.Mode), rep.Fusion.Classification.String()).Inc()
	r.lastScore.WithLabelValues(rep.Symbol, string(rep.Mode)).Set(rep.Fusion.Score)
	r.degraded.WithLabelValues(rep.Symbol).Set(float64(len(rep.Indicators.Degraded())))
	r.duration.Observe(elapsed.Seconds())
}

// RecordError records a failure at a stage such as "fetch", "analyze" or "notify".
func (r *Recorder) RecordError(stage string) {
	r.errors.WithLabelValues(stage).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}
