package headers

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"arcstream/cmcd/pkg/cmcd"
)

// Assembler builds CMCD header lines for one playback session. It is
// stateless apart from the bound Configuration and safe for concurrent use
// by every in-flight request of the session.
type Assembler struct {
	cfg *cmcd.Configuration
}

// NewAssembler binds an assembler to a session's Configuration. cfg must
// not be nil.
func NewAssembler(cfg *cmcd.Configuration) *Assembler {
	return &Assembler{cfg: cfg}
}

// Build returns the header lines for one outgoing request, keyed by CMCD
// header name. Headers with nothing to say are absent from the map. req may
// be nil, meaning no per-request playback state is known.
func (a *Assembler) Build(req *Request) map[string]string {
	if req == nil {
		req = NewRequest()
	}
	rc := a.cfg.RequestConfig()

	tokens := make(map[string][]string, 4)
	add := func(header, token string) {
		tokens[header] = append(tokens[header], token)
	}

	if req.bitrateKbps > 0 && a.cfg.IsBitrateLoggingAllowed() {
		add(cmcd.HeaderObject, cmcd.KeyBitrate+"="+strconv.Itoa(req.bitrateKbps))
	}
	if req.hasBufferedDuration && a.cfg.IsBufferLengthLoggingAllowed() {
		add(cmcd.HeaderRequest, cmcd.KeyBufferLength+"="+strconv.FormatInt(roundMillis(req.bufferedDuration), 10))
	}
	if a.cfg.ContentID() != "" && a.cfg.IsContentIDLoggingAllowed() {
		add(cmcd.HeaderSession, cmcd.KeyContentID+"="+quote(a.cfg.ContentID()))
	}
	if a.cfg.SessionID() != "" && a.cfg.IsSessionIDLoggingAllowed() {
		add(cmcd.HeaderSession, cmcd.KeySessionID+"="+quote(a.cfg.SessionID()))
	}
	if a.cfg.IsMaximumRequestThroughputLoggingAllowed() {
		if rtp := rc.RequestedMaximumThroughputKbps(req.objectThroughputKbps); rtp != cmcd.RateUnset {
			if rounded := roundKbps(rtp); rounded > 0 {
				add(cmcd.HeaderStatus, cmcd.KeyMaximumRequestedThroughput+"="+strconv.Itoa(rounded))
			}
		}
	}

	// Well-known keys are sorted per header; custom fragments come after,
	// verbatim. Fragments for labels other than the four CMCD headers are
	// ignored.
	for header := range tokens {
		sort.Strings(tokens[header])
	}
	custom := rc.CustomData()
	for _, header := range cmcd.HeaderNames() {
		if fragment := custom[header]; fragment != "" {
			add(header, fragment)
		}
	}

	lines := make(map[string]string, len(tokens))
	for header, parts := range tokens {
		lines[header] = strings.Join(parts, ",")
	}
	return lines
}

// Apply builds the header lines for req and writes them into h. The map is
// assigned directly so the mixed-case CMCD header names survive; existing
// values under those names are replaced. Headers with nothing to say are
// left untouched.
func (a *Assembler) Apply(h http.Header, req *Request) {
	for header, line := range a.Build(req) {
		h[header] = []string{line}
	}
}

// GroupFor returns the CMCD header a well-known key is carried in, and
// whether the key is one of the well-known keys.
func GroupFor(key string) (string, bool) {
	switch key {
	case cmcd.KeyBitrate:
		return cmcd.HeaderObject, true
	case cmcd.KeyBufferLength:
		return cmcd.HeaderRequest, true
	case cmcd.KeyContentID, cmcd.KeySessionID:
		return cmcd.HeaderSession, true
	case cmcd.KeyMaximumRequestedThroughput:
		return cmcd.HeaderStatus, true
	}
	return "", false
}

// roundMillis converts a buffered duration to milliseconds rounded to the
// nearest 100ms, as CTA-5004 asks for the "bl" value.
func roundMillis(d time.Duration) int64 {
	return int64((d+50*time.Millisecond)/(100*time.Millisecond)) * 100
}

// roundKbps rounds a throughput cap to the nearest 100kbps, as CTA-5004
// asks for the "rtp" value.
func roundKbps(kbps int) int {
	return (kbps + 50) / 100 * 100
}

// quote renders a CMCD string value: double-quoted with backslash escapes
// for the quote and backslash characters.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	b.WriteByte('"')
	return b.String()
}
