package metrics

import "github.com/prometheus/client_golang/prometheus"

// Suggest resolver Prometheus metrics.
var (
	SuggestResolvedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "searchd",
			Name:      "suggest_resolved_total",
			Help:      "Total resolved suggest requests by tier source",
		},
		[]string{"source"}, // "primary" / "cache" / "fallback" / "empty"
	)

	PrimaryTierErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "searchd",
			Name:      "suggest_primary_errors_total",
			Help:      "Total primary full-text tier failures recovered by fallback",
		},
	)

	FallbackCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "searchd",
			Name:      "suggest_fallback_cache_total",
			Help:      "Fallback cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var suggestMetricsRegistered bool

// RegisterSuggestMetrics registers Prometheus suggest metrics. Must be called once from main.
func RegisterSuggestMetrics() {
	if suggestMetricsRegistered {
		return
	}
	prometheus.MustRegister(SuggestResolvedTotal)
	prometheus.MustRegister(PrimaryTierErrorsTotal)
	prometheus.MustRegister(FallbackCacheTotal)
	suggestMetricsRegistered = true
}
