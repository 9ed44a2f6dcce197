// Package policytest provides scriptable cmcd.RequestConfig implementations
// for tests.
package policytest

import (
	"sync/atomic"

	"arcstream/cmcd/pkg/cmcd"
)

// Config is a mock implementation of the cmcd.RequestConfig interface. Its
// answer fields are read-only once the test starts; the call counters are
// atomic, so a single Config can sit behind concurrently queried
// Configurations.
type Config struct {
	// Denied keys answer false from IsKeyAllowed. Keys absent from the map
	// are allowed.
	Denied map[string]bool

	// Data is returned by CustomData as-is.
	Data map[string]string

	// MaxThroughputKbps is returned by RequestedMaximumThroughputKbps when
	// positive; otherwise the method returns cmcd.RateUnset.
	MaxThroughputKbps int

	// AllowedCalls counts IsKeyAllowed invocations.
	AllowedCalls atomic.Int64

	// DataCalls counts CustomData invocations.
	DataCalls atomic.Int64

	// ThroughputCalls counts RequestedMaximumThroughputKbps invocations.
	ThroughputCalls atomic.Int64

	// LastObserved records the observed throughput most recently handed to
	// RequestedMaximumThroughputKbps.
	LastObserved atomic.Int64
}

// NewConfig creates a permissive mock config with no custom data and no
// throughput cap.
func NewConfig() *Config {
	return &Config{}
}

// Deny marks keys as disallowed.
func (c *Config) Deny(keys ...string) *Config {
	if c.Denied == nil {
		c.Denied = make(map[string]bool, len(keys))
	}
	for _, key := range keys {
		c.Denied[key] = true
	}
	return c
}

// IsKeyAllowed reports whether the key is outside the denied set.
func (c *Config) IsKeyAllowed(key string) bool {
	c.AllowedCalls.Add(1)
	return !c.Denied[key]
}

// CustomData returns the scripted custom data.
func (c *Config) CustomData() map[string]string {
	c.DataCalls.Add(1)
	return c.Data
}

// RequestedMaximumThroughputKbps returns the scripted cap, or
// cmcd.RateUnset when none is scripted.
func (c *Config) RequestedMaximumThroughputKbps(observedThroughputKbps int) int {
	c.ThroughputCalls.Add(1)
	c.LastObserved.Store(int64(observedThroughputKbps))
	if c.MaxThroughputKbps > 0 {
		return c.MaxThroughputKbps
	}
	return cmcd.RateUnset
}
