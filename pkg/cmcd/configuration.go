package cmcd

import "unicode/utf8"

// Configuration carries the identity and policy under which CMCD telemetry
// is produced for one playback session. It is immutable: build one per
// session with NewConfiguration or a Factory, then share it across all of
// that session's requests.
type Configuration struct {
	sessionID     string
	contentID     string
	requestConfig RequestConfig
}

// NewConfiguration builds the Configuration for a playback session.
//
// sessionID and contentID may be empty when the session or content is not
// identified; non-empty ids are limited to MaxIDLength characters. rc must
// not be nil; use DefaultRequestConfig for the permissive default. Both
// violations fail here, synchronously, so a misconfigured session is caught
// at session start rather than when a request is dispatched.
func NewConfiguration(sessionID, contentID string, rc RequestConfig) (*Configuration, error) {
	if n := utf8.RuneCountInString(sessionID); n > MaxIDLength {
		return nil, &IDLengthError{Field: "session id", Length: n}
	}
	if n := utf8.RuneCountInString(contentID); n > MaxIDLength {
		return nil, &IDLengthError{Field: "content id", Length: n}
	}
	if rc == nil {
		return nil, ErrNilRequestConfig
	}
	return &Configuration{
		sessionID:     sessionID,
		contentID:     contentID,
		requestConfig: rc,
	}, nil
}

// SessionID returns the session id, or "" when the session is not
// identified.
func (c *Configuration) SessionID() string { return c.sessionID }

// ContentID returns the content id, or "" when the content is not
// identified.
func (c *Configuration) ContentID() string { return c.contentID }

// RequestConfig returns the policy bound at construction. Never nil.
func (c *Configuration) RequestConfig() RequestConfig { return c.requestConfig }

// IsBitrateLoggingAllowed reports whether the bitrate key ("br") may be
// emitted.
func (c *Configuration) IsBitrateLoggingAllowed() bool {
	return c.requestConfig.IsKeyAllowed(KeyBitrate)
}

// IsBufferLengthLoggingAllowed reports whether the buffer length key ("bl")
// may be emitted.
func (c *Configuration) IsBufferLengthLoggingAllowed() bool {
	return c.requestConfig.IsKeyAllowed(KeyBufferLength)
}

// IsContentIDLoggingAllowed reports whether the content id key ("cid") may
// be emitted.
func (c *Configuration) IsContentIDLoggingAllowed() bool {
	return c.requestConfig.IsKeyAllowed(KeyContentID)
}

// IsSessionIDLoggingAllowed reports whether the session id key ("sid") may
// be emitted.
func (c *Configuration) IsSessionIDLoggingAllowed() bool {
	return c.requestConfig.IsKeyAllowed(KeySessionID)
}

// IsMaximumRequestThroughputLoggingAllowed reports whether the requested
// maximum throughput key ("rtp") may be emitted.
func (c *Configuration) IsMaximumRequestThroughputLoggingAllowed() bool {
	return c.requestConfig.IsKeyAllowed(KeyMaximumRequestedThroughput)
}
