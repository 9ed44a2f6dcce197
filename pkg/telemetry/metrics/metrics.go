package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"arcstream/cmcd/pkg/cmcd"
)

// Config controls metric naming and recording behavior.
type Config struct {
	// Enabled toggles recording. When false every Record method is a no-op;
	// collectors are still registered so dashboards see zeroes rather than
	// absent series.
	Enabled bool

	// Namespace is the first component of every metric name.
	// Default: "cmcd".
	Namespace string

	// Subsystem is the second component of every metric name.
	// Default: "policy".
	Subsystem string

	// ThroughputBuckets are the histogram buckets, in kbps, for advertised
	// throughput caps. Default: exponential from 100 kbps to 102400 kbps.
	ThroughputBuckets []float64

	// MaxKeyCardinality bounds the number of distinct key label values on
	// the decision counter. Keys seen after the bound is reached are
	// recorded under the label value "other". Default: 128.
	MaxKeyCardinality int
}

// Metrics holds the Prometheus collectors for policy decisions. All methods
// are safe for concurrent use.
type Metrics struct {
	config   *Config
	registry *prometheus.Registry

	// Per-key allow/deny decisions, labelled by key and decision.
	keyDecisions *prometheus.CounterVec

	// Custom data reads. No labels; the data itself is not recorded.
	customDataLookups prometheus.Counter

	// Throughput cap decisions, labelled by outcome ("capped" or "unset").
	throughputCaps *prometheus.CounterVec

	// Distribution of advertised caps in kbps. Only capped decisions are
	// observed.
	throughputKbps prometheus.Histogram

	keyCardinality *CardinalityLimiter
}

// NewMetrics creates the policy decision collectors and registers them with
// the given registry. A nil registry allocates a fresh one, retrievable via
// Registry. A nil config enables recording with default naming.
//
// Example:
//
//	m := metrics.NewMetrics(nil, nil)
//	cfg, err := cmcd.NewConfiguration(sessionID, contentID, metrics.Instrument(policy, m))
func NewMetrics(cfg *Config, registry *prometheus.Registry) *Metrics {
	if cfg == nil {
		cfg = &Config{Enabled: true}
	}
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	// Set defaults if not specified
	if cfg.Namespace == "" {
		cfg.Namespace = "cmcd"
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = "policy"
	}
	if len(cfg.ThroughputBuckets) == 0 {
		// 100 kbps to ~100 Mbps covers audio-only ladders through UHD video.
		cfg.ThroughputBuckets = prometheus.ExponentialBuckets(100, 2, 11)
	}
	if cfg.MaxKeyCardinality <= 0 {
		cfg.MaxKeyCardinality = 128
	}

	m := &Metrics{
		config:   cfg,
		registry: registry,

		keyDecisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "key_decisions_total",
				Help:      "Total per-key logging decisions, by CMCD key and decision (allowed/denied)",
			},
			[]string{"key", "decision"},
		),

		customDataLookups: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "custom_data_lookups_total",
				Help:      "Total custom data lookups made while assembling request headers",
			},
		),

		throughputCaps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "throughput_caps_total",
				Help:      "Total throughput cap decisions, by outcome (capped/unset)",
			},
			[]string{"outcome"},
		),

		throughputKbps: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "requested_throughput_kbps",
				Help:      "Distribution of advertised throughput caps in kbps",
				Buckets:   cfg.ThroughputBuckets,
			},
		),

		keyCardinality: NewCardinalityLimiter(cfg.MaxKeyCardinality),
	}

	registry.MustRegister(
		m.keyDecisions,
		m.customDataLookups,
		m.throughputCaps,
		m.throughputKbps,
	)

	return m
}

// RecordKeyDecision counts one per-key logging decision.
//
// Parameters:
//   - key: the CMCD key that was queried (e.g. "br", "sid")
//   - allowed: whether the active policy permitted the key
//
// Keys beyond the configured cardinality bound are aggregated under "other"
// so a policy with many custom keys cannot grow the metric space without
// bound.
func (m *Metrics) RecordKeyDecision(key string, allowed bool) {
	if !m.config.Enabled {
		return
	}

	if !m.keyCardinality.Allow(key) {
		key = "other"
	}

	decision := "allowed"
	if !allowed {
		decision = "denied"
	}
	m.keyDecisions.WithLabelValues(key, decision).Inc()
}

// RecordCustomDataLookup counts one read of the policy's custom data.
func (m *Metrics) RecordCustomDataLookup() {
	if !m.config.Enabled {
		return
	}

	m.customDataLookups.Inc()
}

// RecordThroughputDecision counts one throughput cap decision. Capped
// decisions also feed the kbps histogram; cmcd.RateUnset only increments the
// "unset" outcome counter.
//
// Parameters:
//   - kbps: the cap the policy returned, or cmcd.RateUnset
func (m *Metrics) RecordThroughputDecision(kbps int) {
	if !m.config.Enabled {
		return
	}

	if kbps == cmcd.RateUnset {
		m.throughputCaps.WithLabelValues("unset").Inc()
		return
	}

	m.throughputCaps.WithLabelValues("capped").Inc()
	m.throughputKbps.Observe(float64(kbps))
}

// Registry returns the Prometheus registry holding these collectors. Use it
// to expose the metrics over HTTP:
//
//	http.Handle("/metrics", promhttp.HandlerFor(
//		m.Registry(),
//		promhttp.HandlerOpts{},
//	))
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// CardinalityLimiter bounds the set of label values a metric accepts so a
// misconfigured policy with many custom keys cannot exhaust collector
// memory.
type CardinalityLimiter struct {
	mu   sync.Mutex
	max  int
	seen map[string]struct{}
}

// NewCardinalityLimiter creates a limiter admitting at most max distinct
// values.
func NewCardinalityLimiter(max int) *CardinalityLimiter {
	return &CardinalityLimiter{
		max:  max,
		seen: make(map[string]struct{}, max),
	}
}

// Allow reports whether value may be used as a label. Values seen before are
// always allowed; new values are admitted until the limit is reached.
func (l *CardinalityLimiter) Allow(value string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.seen[value]; ok {
		return true
	}
	if len(l.seen) >= l.max {
		return false
	}
	l.seen[value] = struct{}{}
	return true
}

// Count returns the number of distinct values admitted so far.
func (l *CardinalityLimiter) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.seen)
}
