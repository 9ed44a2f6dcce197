package cmcd

// RequestConfig is the deployment's policy over what CMCD telemetry leaves
// the client. One RequestConfig is shared by every in-flight request of a
// playback session, so implementations must be safe for concurrent use;
// callers take no locks on their behalf.
//
// Splitting "is this key emitted at all" (IsKeyAllowed) from "what value
// does it carry" (CustomData, RequestedMaximumThroughputKbps) lets an
// operator disable a field for privacy or compliance independently of the
// value computation, and lets callers skip computing values for disallowed
// keys.
type RequestConfig interface {
	// IsKeyAllowed reports whether the given CMCD key may be emitted.
	// It must be total over the well-known keys. Keys the implementation
	// does not recognize should be allowed: operators opt out of a key,
	// they do not opt in.
	IsKeyAllowed(key string) bool

	// CustomData returns operator-supplied fields keyed by CMCD header name
	// (HeaderObject, HeaderRequest, HeaderSession, HeaderStatus). Each value
	// is a comma-separated list of key=value or bare-key tokens that the
	// assembling collaborator appends verbatim to the matching header.
	//
	// A custom key must not collide with a well-known key that IsKeyAllowed
	// also permits, or the key would appear twice in the assembled header.
	// Upholding that rule is the implementer's obligation; it is not
	// checked here.
	CustomData() map[string]string

	// RequestedMaximumThroughputKbps returns the maximum throughput in kbps
	// to request from the server for an object observed at the given
	// throughput, or RateUnset when the field should not be emitted.
	// observedThroughputKbps may be zero or negative when the caller has no
	// observation yet.
	RequestedMaximumThroughputKbps(observedThroughputKbps int) int
}

// DefaultRequestConfig is the maximally permissive policy: every key
// allowed, no custom data, no throughput cap. It is stateless and safe for
// concurrent use.
var DefaultRequestConfig RequestConfig = defaultRequestConfig{}

type defaultRequestConfig struct{}

func (defaultRequestConfig) IsKeyAllowed(string) bool { return true }

func (defaultRequestConfig) CustomData() map[string]string { return nil }

func (defaultRequestConfig) RequestedMaximumThroughputKbps(int) int { return RateUnset }
