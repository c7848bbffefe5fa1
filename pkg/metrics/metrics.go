package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	OverrideFieldsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "override_fields_total",
			Help: "Fields processed by the override engine, by outcome (count)",
		},
		[]string{"outcome"},
	)

	OverrideSafetyGuardTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "override_safety_guard_reverts_total",
			Help: "Batches reverted to heuristic classification by the blank-out safety guard",
		},
	)

	SkillConfigLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skill_config_loads_total",
			Help: "Field-semantics config lookups, by result",
		},
		[]string{"platform", "result"},
	)

	EnrichmentComponentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enrichment_components_total",
			Help: "Components processed by the transform engine, by component type",
		},
		[]string{"component_type"},
	)

	EnrichmentDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "enrichment_duration_ms",
			Help:    "Per-spec enrichment duration in milliseconds",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
		[]string{"status"},
	)

	SanitizerDroppedPropsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sanitizer_dropped_props_total",
			Help: "Component props dropped by the sanitizer, by reason",
		},
		[]string{"reason"},
	)

	RateLimitedRequestsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rate_limited_requests_total",
			Help: "HTTP requests rejected by the rate limiter",
		},
	)
)

func RegisterPipelineMetrics() {
	prometheus.MustRegister(
		OverrideFieldsTotal,
		OverrideSafetyGuardTotal,
		SkillConfigLoadsTotal,
		EnrichmentComponentsTotal,
		EnrichmentDuration,
		SanitizerDroppedPropsTotal,
		RateLimitedRequestsTotal,
	)
}

func ObserveEnrichmentDuration(d time.Duration, status string) {
	EnrichmentDuration.WithLabelValues(status).Observe(float64(d.Milliseconds()))
}
