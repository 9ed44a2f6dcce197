// Package telemetry groups the observability helpers for CMCD policy
// decisions.
//
// # Overview
//
// The telemetry tree currently holds one package, metrics, which exposes
// Prometheus collectors for policy decisions: per-key allow/deny counts,
// custom data lookups, and requested-throughput caps. Metrics are recorded
// through a RequestConfig decorator, so instrumentation is opt-in and the
// decision surface itself stays dependency-free.
//
// # Usage
//
//	m := metrics.NewMetrics(nil, nil)
//	cfg, err := cmcd.NewConfiguration(sessionID, contentID, metrics.Instrument(pol, m))
//
// See pkg/telemetry/metrics for the collector set and the /metrics handler.
package telemetry
