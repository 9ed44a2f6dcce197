package policy

import "arcstream/cmcd/pkg/cmcd"

// CurrentVersion is the document schema version this package understands.
const CurrentVersion = 1

// Header group labels accepted in a Document's custom_data section.
const (
	// GroupObject labels custom data for the CMCD-Object header.
	GroupObject = "object"

	// GroupRequest labels custom data for the CMCD-Request header.
	GroupRequest = "request"

	// GroupSession labels custom data for the CMCD-Session header.
	GroupSession = "session"

	// GroupStatus labels custom data for the CMCD-Status header.
	GroupStatus = "status"
)

// headerForGroup maps a document group label to the wire header it feeds.
var headerForGroup = map[string]string{
	GroupObject:  cmcd.HeaderObject,
	GroupRequest: cmcd.HeaderRequest,
	GroupSession: cmcd.HeaderSession,
	GroupStatus:  cmcd.HeaderStatus,
}

// Document is the YAML schema of an operator's CMCD reporting policy. A
// Document is data; compile it into a usable policy with New, or go through
// Load/OpenFile which do so for you.
type Document struct {
	// Version is the schema version of the document.
	// Default: 1 (the only version there is).
	Version int `yaml:"version"`

	// DeniedKeys lists CMCD keys that must never be emitted. Keys outside
	// the well-known set may be denied too; anything not listed stays
	// allowed.
	// Default: empty (every key allowed).
	DeniedKeys []string `yaml:"denied_keys"`

	// CustomData declares operator fields per header group label ("object",
	// "request", "session", "status"). A key with an empty value becomes a
	// bare token; values are carried verbatim, so string values need their
	// own double quotes. A custom key may shadow a well-known key only if
	// that key is also denied.
	// Default: empty.
	CustomData map[string]map[string]string `yaml:"custom_data"`

	// MaxRequestedThroughputKbps, when positive, is advertised as a fixed
	// "rtp" cap on every request. Mutually exclusive with ThroughputFactor.
	// Default: 0 (no fixed cap).
	MaxRequestedThroughputKbps int `yaml:"max_requested_throughput_kbps"`

	// ThroughputFactor, when positive, multiplies the observed object
	// throughput to produce the "rtp" cap; requests without an observation
	// advertise none. Mutually exclusive with MaxRequestedThroughputKbps.
	// Default: 0 (unused).
	ThroughputFactor float64 `yaml:"throughput_factor"`
}

// ApplyDefaults fills in defaults for omitted fields.
func (d *Document) ApplyDefaults() {
	if d.Version == 0 {
		d.Version = CurrentVersion
	}
}
