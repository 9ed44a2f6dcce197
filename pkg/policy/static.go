package policy

import (
	"maps"
	"math"
	"strings"

	"arcstream/cmcd/pkg/cmcd"
)

// Static is an immutable cmcd.RequestConfig compiled from a Document. A
// Static that exists has passed validation; its queries never fail and are
// safe for concurrent use without synchronization.
type Static struct {
	denied  map[string]bool
	custom  map[string]string
	maxKbps int
	factor  float64
}

// New compiles doc into a Static policy. Defaults are applied to a copy, so
// doc itself is left alone; a nil doc yields the permissive policy. Schema
// violations are collected into a ValidationError and no Static is produced
// for an invalid document.
func New(doc *Document) (*Static, error) {
	var d Document
	if doc != nil {
		d = *doc
	}
	d.ApplyDefaults()
	if err := d.Validate(); err != nil {
		return nil, err
	}

	s := &Static{
		denied:  make(map[string]bool, len(d.DeniedKeys)),
		maxKbps: d.MaxRequestedThroughputKbps,
		factor:  d.ThroughputFactor,
	}
	for _, key := range d.DeniedKeys {
		s.denied[key] = true
	}

	// Custom fields are joined once here; CustomData then hands out the
	// finished fragments. Keys are sorted so a document compiles to the
	// same fragment every time.
	if len(d.CustomData) > 0 {
		s.custom = make(map[string]string, len(d.CustomData))
		for group, fields := range d.CustomData {
			if len(fields) == 0 {
				continue
			}
			tokens := make([]string, 0, len(fields))
			for _, key := range sortedKeys(fields) {
				if value := fields[key]; value != "" {
					tokens = append(tokens, key+"="+value)
				} else {
					tokens = append(tokens, key)
				}
			}
			s.custom[headerForGroup[group]] = strings.Join(tokens, ",")
		}
	}
	return s, nil
}

// IsKeyAllowed reports whether the key is outside the document's deny list.
func (s *Static) IsKeyAllowed(key string) bool {
	return !s.denied[key]
}

// CustomData returns the document's custom fields as pre-joined fragments
// keyed by header name. The returned map is a copy.
func (s *Static) CustomData() map[string]string {
	return maps.Clone(s.custom)
}

// RequestedMaximumThroughputKbps returns the document's fixed cap when one
// is set, the factor-scaled observation when a factor is set and an
// observation exists, and cmcd.RateUnset otherwise.
func (s *Static) RequestedMaximumThroughputKbps(observedThroughputKbps int) int {
	switch {
	case s.maxKbps > 0:
		return s.maxKbps
	case s.factor > 0 && observedThroughputKbps > 0:
		scaled := float64(observedThroughputKbps) * s.factor
		if scaled > math.MaxInt32 {
			return math.MaxInt32
		}
		return int(scaled)
	default:
		return cmcd.RateUnset
	}
}
