// Package metrics provides Prometheus metrics for the ensemble engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the engine.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Pipeline throughput
	recommendationsTotal prometheus.Counter
	emptyResultsTotal    prometheus.Counter
	itemsScoredTotal     prometheus.Counter
	outfitsAssembled     prometheus.Counter
	itemsFiltered        *prometheus.CounterVec
	invalidItemsTotal    prometheus.Counter

	// Fallback observability
	fallbackEvents *prometheus.CounterVec

	// Stage latencies (milliseconds)
	scoringLatency  prometheus.Histogram
	assemblyLatency prometheus.Histogram
	pipelineLatency prometheus.Histogram

	// Pool sizing
	candidatePoolSize prometheus.Gauge
	rankedOutfits     prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// Registry returns the registry the global manager registers on, for
// exposing via promhttp.
func Registry() *prometheus.Registry { return customRegistry }

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "ensemble",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.recommendationsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recommendations_total",
		Help:      "Total number of recommendation requests served",
	})

	m.emptyResultsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "empty_results_total",
		Help:      "Total number of requests where no outfit could be assembled",
	})

	m.itemsScoredTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "items_scored_total",
		Help:      "Total number of candidate items scored",
	})

	m.outfitsAssembled = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "outfits_assembled_total",
		Help:      "Total number of outfit combinations evaluated",
	})

	m.itemsFiltered = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "items_filtered_total",
		Help:      "Total number of items dropped by hard filters, by reason",
	}, []string{"reason"})

	m.invalidItemsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "invalid_items_total",
		Help:      "Total number of catalog items skipped for missing id or role",
	})

	m.fallbackEvents = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fallback_events_total",
		Help:      "Total number of fallback events, by role",
	}, []string{"role"})

	m.scoringLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_latency_ms",
		Help:      "Item scoring stage latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.assemblyLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "assembly_latency_ms",
		Help:      "Outfit assembly stage latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.pipelineLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pipeline_latency_ms",
		Help:      "End-to-end recommendation latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.candidatePoolSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "candidate_pool_size",
		Help:      "Number of items surviving hard filters in the last request",
	})

	m.rankedOutfits = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ranked_outfits",
		Help:      "Number of outfits returned per request",
		Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
	})
}

// Package-level helpers recording on the global manager.

// RecordRecommendation increments the served request counter.
func RecordRecommendation() {
	if globalManager.enabled {
		globalManager.recommendationsTotal.Inc()
	}
}

// RecordEmptyResult increments the empty-result counter.
func RecordEmptyResult() {
	if globalManager.enabled {
		globalManager.emptyResultsTotal.Inc()
	}
}

// RecordItemsScored adds to the scored item counter.
func RecordItemsScored(n int) {
	if globalManager.enabled && n > 0 {
		globalManager.itemsScoredTotal.Add(float64(n))
	}
}

// RecordOutfitsAssembled adds to the evaluated combination counter.
func RecordOutfitsAssembled(n int) {
	if globalManager.enabled && n > 0 {
		globalManager.outfitsAssembled.Add(float64(n))
	}
}

// RecordItemFiltered increments the drop counter for a filter reason.
func RecordItemFiltered(reason string) {
	if globalManager.enabled {
		globalManager.itemsFiltered.WithLabelValues(reason).Inc()
	}
}

// RecordItemsFiltered adds n to the drop counter for a filter reason.
func RecordItemsFiltered(reason string, n int) {
	if globalManager.enabled && n > 0 {
		globalManager.itemsFiltered.WithLabelValues(reason).Add(float64(n))
	}
}

// RecordInvalidItem increments the skipped-item counter.
func RecordInvalidItem() {
	if globalManager.enabled {
		globalManager.invalidItemsTotal.Inc()
	}
}

// RecordFallbackEvent increments the fallback counter for a role.
func RecordFallbackEvent(role string) {
	if globalManager.enabled {
		globalManager.fallbackEvents.WithLabelValues(role).Inc()
	}
}

// RecordScoringLatency observes the scoring stage latency in ms.
func RecordScoringLatency(ms float64) {
	if globalManager.enabled {
		globalManager.scoringLatency.Observe(ms)
	}
}

// RecordAssemblyLatency observes the assembly stage latency in ms.
func RecordAssemblyLatency(ms float64) {
	if globalManager.enabled {
		globalManager.assemblyLatency.Observe(ms)
	}
}

// RecordPipelineLatency observes end-to-end latency in ms.
func RecordPipelineLatency(ms float64) {
	if globalManager.enabled {
		globalManager.pipelineLatency.Observe(ms)
	}
}

// UpdateCandidatePoolSize sets the surviving candidate gauge.
func UpdateCandidatePoolSize(n int) {
	if globalManager.enabled {
		globalManager.candidatePoolSize.Set(float64(n))
	}
}

// RecordRankedOutfits observes the result count for a request.
func RecordRankedOutfits(n int) {
	if globalManager.enabled {
		globalManager.rankedOutfits.Observe(float64(n))
	}
}
