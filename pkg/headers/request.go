package headers

import "time"

// Request is the per-request playback state the assembler may report. The
// zero value knows nothing: only session-scoped values (content id, session
// id, custom data) and a policy-fixed throughput cap are emitted for it.
// Fill in what the caller knows with the With methods.
type Request struct {
	bitrateKbps          int
	bufferedDuration     time.Duration
	hasBufferedDuration  bool
	objectThroughputKbps int
}

// NewRequest returns a Request with no playback state attached.
func NewRequest() *Request {
	return &Request{}
}

// WithBitrateKbps sets the encoded bitrate in kbps of the object being
// requested. Zero or less means the bitrate is unknown and the key is not
// emitted.
func (r *Request) WithBitrateKbps(kbps int) *Request {
	r.bitrateKbps = kbps
	return r
}

// WithBufferedDuration sets the media duration currently buffered ahead of
// the playhead. Zero is a meaningful value (an empty buffer); negative
// durations are ignored.
func (r *Request) WithBufferedDuration(d time.Duration) *Request {
	if d >= 0 {
		r.bufferedDuration = d
		r.hasBufferedDuration = true
	}
	return r
}

// WithObjectThroughputKbps sets the throughput in kbps observed for the
// object about to be requested. The value is handed to the policy's
// RequestedMaximumThroughputKbps; zero or less means no observation.
func (r *Request) WithObjectThroughputKbps(kbps int) *Request {
	r.objectThroughputKbps = kbps
	return r
}
