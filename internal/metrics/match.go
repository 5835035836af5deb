package metrics

import "github.com/prometheus/client_golang/prometheus"

// Matching Prometheus metrics.
var (
	MatchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agencymatch",
			Name:      "match_requests_total",
			Help:      "Total number of agency match requests",
		},
		[]string{"status"},
	)

	MatchScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "agencymatch",
			Name:      "match_score",
			Help:      "Distribution of returned agency match scores",
			Buckets:   []float64{0, 15, 30, 45, 60, 75, 90, 100},
		},
	)

	MatchCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "agencymatch",
			Name:      "match_candidates_fetched",
			Help:      "Number of candidate agencies fetched per match request",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
		},
	)

	MatchCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agencymatch",
			Name:      "match_cache_total",
			Help:      "Match result cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	BriefExtractionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agencymatch",
			Name:      "brief_extractions_total",
			Help:      "Total brief extractions by extractor and status",
		},
		[]string{"extractor", "status"},
	)

	BriefRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "agencymatch",
			Name:      "brief_request_duration_seconds",
			Help:      "LLM brief extraction request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		},
		[]string{"model"},
	)
)

var matchMetricsRegistered bool

// RegisterMatchMetrics registers matching metrics. Must be called once from main.
func RegisterMatchMetrics() {
	if matchMetricsRegistered {
		return
	}
	prometheus.MustRegister(MatchRequestsTotal)
	prometheus.MustRegister(MatchScore)
	prometheus.MustRegister(MatchCandidates)
	prometheus.MustRegister(MatchCacheTotal)
	prometheus.MustRegister(BriefExtractionsTotal)
	prometheus.MustRegister(BriefRequestDuration)
	matchMetricsRegistered = true
}
