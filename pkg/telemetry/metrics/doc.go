// Package metrics provides Prometheus collectors for CMCD policy decisions.
//
// # Overview
//
// Every query a player makes against a policy is a decision worth watching:
// which keys are being denied, how often custom data is read, and what
// throughput caps are being advertised. This package counts those decisions
// without changing them. Wrap any cmcd.RequestConfig with Instrument and
// bind the wrapped policy into a Configuration; the collectors fill in as
// the player assembles request headers.
//
// # Metrics
//
//   - key_decisions_total{key, decision}: per-key allow/deny decisions
//   - custom_data_lookups_total: reads of the policy's custom data
//   - throughput_caps_total{outcome}: cap decisions, "capped" or "unset"
//   - requested_throughput_kbps: histogram of advertised caps
//
// All names carry the configured namespace and subsystem, "cmcd_policy" by
// default.
//
// # Usage
//
//	m := metrics.NewMetrics(nil, nil)
//
//	pol, err := policy.OpenFile("/etc/cmcd/policy.yaml", nil)
//	if err != nil {
//		return err
//	}
//
//	cfg, err := cmcd.NewConfiguration(sessionID, contentID, metrics.Instrument(pol, m))
//	if err != nil {
//		return err
//	}
//
//	http.Handle("/metrics", m.Handler())
//
// # Cardinality
//
// The key label on key_decisions_total is fed by whatever keys callers query,
// including custom keys from policy documents. A CardinalityLimiter bounds
// the distinct values; keys past the bound are aggregated under "other".
//
// # Thread Safety
//
// Metrics methods and instrumented policies are safe for concurrent use.
package metrics
