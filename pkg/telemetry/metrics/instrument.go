package metrics

import (
	"arcstream/cmcd/pkg/cmcd"
)

// Instrument wraps a policy so every decision it makes is counted in m. The
// wrapped policy answers exactly as rc does; only observation is added.
// Passing a nil policy or nil metrics returns rc unchanged.
//
// Example:
//
//	pol, err := policy.OpenFile("/etc/cmcd/policy.yaml", nil)
//	if err != nil {
//		return err
//	}
//	m := metrics.NewMetrics(nil, nil)
//	cfg, err := cmcd.NewConfiguration(sessionID, contentID, metrics.Instrument(pol, m))
func Instrument(rc cmcd.RequestConfig, m *Metrics) cmcd.RequestConfig {
	if rc == nil || m == nil {
		return rc
	}
	return &instrumentedConfig{inner: rc, metrics: m}
}

// instrumentedConfig decorates a RequestConfig with decision counters. It is
// safe for concurrent use whenever the wrapped policy is; the collectors
// themselves always are.
type instrumentedConfig struct {
	inner   cmcd.RequestConfig
	metrics *Metrics
}

func (c *instrumentedConfig) IsKeyAllowed(key string) bool {
	allowed := c.inner.IsKeyAllowed(key)
	c.metrics.RecordKeyDecision(key, allowed)
	return allowed
}

func (c *instrumentedConfig) CustomData() map[string]string {
	c.metrics.RecordCustomDataLookup()
	return c.inner.CustomData()
}

func (c *instrumentedConfig) RequestedMaximumThroughputKbps(observedThroughputKbps int) int {
	kbps := c.inner.RequestedMaximumThroughputKbps(observedThroughputKbps)
	c.metrics.RecordThroughputDecision(kbps)
	return kbps
}
