package cmcd

// Header names for the four CMCD header groups, exactly as they appear on
// the wire. http.Header canonicalization would rewrite them ("Cmcd-Object"),
// so collaborators must assign the header map directly; the headers package
// does this.
const (
	// HeaderObject carries keys whose values vary with the object being
	// requested, such as the encoded bitrate.
	HeaderObject = "CMCD-Object"

	// HeaderRequest carries keys whose values vary with each request, such
	// as the current buffer length.
	HeaderRequest = "CMCD-Request"

	// HeaderSession carries keys whose values are expected to be invariant
	// over the life of the session, such as the content and session ids.
	HeaderSession = "CMCD-Session"

	// HeaderStatus carries keys whose values do not vary with every request
	// or object, such as the requested maximum throughput.
	HeaderStatus = "CMCD-Status"
)

// Well-known CMCD keys in this package's scope. The names are a fixed
// protocol surface shared with the CMCD specification (CTA-5004) and must
// not be renamed.
const (
	// KeyBitrate ("br") is the encoded bitrate in kbps of the audio or
	// video object being requested. CMCD-Object group.
	KeyBitrate = "br"

	// KeyBufferLength ("bl") is the buffer length in milliseconds
	// associated with the media object being requested. CMCD-Request group.
	KeyBufferLength = "bl"

	// KeyContentID ("cid") is a unique string identifying the current
	// content. CMCD-Session group.
	KeyContentID = "cid"

	// KeySessionID ("sid") is a GUID identifying the current playback
	// session. CMCD-Session group.
	KeySessionID = "sid"

	// KeyMaximumRequestedThroughput ("rtp") is the requested maximum
	// throughput in kbps that the server may use for the response.
	// CMCD-Status group.
	KeyMaximumRequestedThroughput = "rtp"
)

const (
	// MaxIDLength is the maximum length, in characters, of the session and
	// content ids accepted by NewConfiguration.
	MaxIDLength = 64

	// RateUnset is returned by RequestedMaximumThroughputKbps when no
	// throughput cap should be advertised.
	RateUnset = -1

	// DefaultContentID is the content id used by DefaultFactory when the
	// media identity declares none.
	DefaultContentID = ""
)

// HeaderNames returns the four CMCD header names in their documented order:
// Object, Request, Session, Status. The returned slice is a fresh copy.
func HeaderNames() []string {
	return []string{HeaderObject, HeaderRequest, HeaderSession, HeaderStatus}
}

// WellKnownKeys returns the well-known keys in alphabetical order. The
// returned slice is a fresh copy.
func WellKnownKeys() []string {
	return []string{KeyBufferLength, KeyBitrate, KeyContentID, KeyMaximumRequestedThroughput, KeySessionID}
}
