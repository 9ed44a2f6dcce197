package headers

import (
	"net/http"
	"testing"
	"time"

	"arcstream/cmcd/internal/policytest"
	"arcstream/cmcd/pkg/cmcd"
)

func mustConfiguration(t *testing.T, sessionID, contentID string, rc cmcd.RequestConfig) *cmcd.Configuration {
	t.Helper()
	cfg, err := cmcd.NewConfiguration(sessionID, contentID, rc)
	if err != nil {
		t.Fatalf("NewConfiguration failed: %v", err)
	}
	return cfg
}

// ============================================================================
// Build Tests
// ============================================================================

func TestAssembler_DefaultPolicy(t *testing.T) {
	cfg := mustConfiguration(t, "sess-1", "movie-1", cmcd.DefaultRequestConfig)
	asm := NewAssembler(cfg)

	req := NewRequest().
		WithBitrateKbps(3200).
		WithBufferedDuration(12 * time.Second).
		WithObjectThroughputKbps(14000)

	lines := asm.Build(req)

	want := map[string]string{
		cmcd.HeaderObject:  "br=3200",
		cmcd.HeaderRequest: "bl=12000",
		cmcd.HeaderSession: `cid="movie-1",sid="sess-1"`,
	}
	if len(lines) != len(want) {
		t.Errorf("Build returned %d headers, want %d: %v", len(lines), len(want), lines)
	}
	for header, line := range want {
		if lines[header] != line {
			t.Errorf("%s = %q, want %q", header, lines[header], line)
		}
	}
	// The default policy never requests a throughput cap.
	if line, ok := lines[cmcd.HeaderStatus]; ok {
		t.Errorf("Expected no %s header, got %q", cmcd.HeaderStatus, line)
	}
}

func TestAssembler_EmptyRequest(t *testing.T) {
	cfg := mustConfiguration(t, "sess-1", "movie-1", cmcd.DefaultRequestConfig)
	asm := NewAssembler(cfg)

	for _, req := range []*Request{nil, NewRequest()} {
		lines := asm.Build(req)
		if len(lines) != 1 {
			t.Errorf("Build(%v) returned %d headers, want 1: %v", req, len(lines), lines)
		}
		if lines[cmcd.HeaderSession] != `cid="movie-1",sid="sess-1"` {
			t.Errorf("Session header = %q", lines[cmcd.HeaderSession])
		}
	}
}

func TestAssembler_UnidentifiedSession(t *testing.T) {
	cfg := mustConfiguration(t, "", "", cmcd.DefaultRequestConfig)
	asm := NewAssembler(cfg)

	if lines := asm.Build(NewRequest()); len(lines) != 0 {
		t.Errorf("Expected no headers for an unidentified idle session, got %v", lines)
	}
}

func TestAssembler_DeniedKeysOmitted(t *testing.T) {
	rc := policytest.NewConfig().Deny(cmcd.KeyBitrate, cmcd.KeySessionID)
	cfg := mustConfiguration(t, "sess-1", "movie-1", rc)
	asm := NewAssembler(cfg)

	lines := asm.Build(NewRequest().WithBitrateKbps(3200).WithBufferedDuration(time.Second))

	if _, ok := lines[cmcd.HeaderObject]; ok {
		t.Error("Expected the bitrate to be withheld")
	}
	if lines[cmcd.HeaderSession] != `cid="movie-1"` {
		t.Errorf("Session header = %q, want cid only", lines[cmcd.HeaderSession])
	}
	if lines[cmcd.HeaderRequest] != "bl=1000" {
		t.Errorf("Request header = %q, want %q", lines[cmcd.HeaderRequest], "bl=1000")
	}
}

func TestAssembler_BufferLengthRounding(t *testing.T) {
	tests := []struct {
		buffered time.Duration
		want     string
	}{
		{0, "bl=0"},
		{49 * time.Millisecond, "bl=0"},
		{50 * time.Millisecond, "bl=100"},
		{3249 * time.Millisecond, "bl=3200"},
		{3250 * time.Millisecond, "bl=3300"},
		{12 * time.Second, "bl=12000"},
	}

	cfg := mustConfiguration(t, "", "", cmcd.DefaultRequestConfig)
	asm := NewAssembler(cfg)

	for _, tt := range tests {
		lines := asm.Build(NewRequest().WithBufferedDuration(tt.buffered))
		if lines[cmcd.HeaderRequest] != tt.want {
			t.Errorf("buffered %v: Request header = %q, want %q", tt.buffered, lines[cmcd.HeaderRequest], tt.want)
		}
	}
}

func TestAssembler_ThroughputCapRounding(t *testing.T) {
	tests := []struct {
		capKbps int
		want    string
	}{
		{14320, "rtp=14300"},
		{14350, "rtp=14400"},
		{100, "rtp=100"},
		// Caps that round to zero carry no information and are dropped.
		{20, ""},
	}

	for _, tt := range tests {
		rc := &policytest.Config{MaxThroughputKbps: tt.capKbps}
		asm := NewAssembler(mustConfiguration(t, "", "", rc))
		lines := asm.Build(NewRequest())
		if lines[cmcd.HeaderStatus] != tt.want {
			t.Errorf("cap %d: Status header = %q, want %q", tt.capKbps, lines[cmcd.HeaderStatus], tt.want)
		}
	}
}

func TestAssembler_ThroughputObservationForwarded(t *testing.T) {
	rc := policytest.NewConfig()
	asm := NewAssembler(mustConfiguration(t, "", "", rc))

	asm.Build(NewRequest().WithObjectThroughputKbps(14000))

	if got := rc.LastObserved.Load(); got != 14000 {
		t.Errorf("Policy observed %d kbps, want 14000", got)
	}
	if _, ok := asm.Build(NewRequest())[cmcd.HeaderStatus]; ok {
		t.Error("Expected no Status header when the policy returns RateUnset")
	}
}

func TestAssembler_QuotingEscapes(t *testing.T) {
	cfg := mustConfiguration(t, `a\b`, `he said "hi"`, cmcd.DefaultRequestConfig)
	asm := NewAssembler(cfg)

	lines := asm.Build(NewRequest())
	want := `cid="he said \"hi\"",sid="a\\b"`
	if lines[cmcd.HeaderSession] != want {
		t.Errorf("Session header = %q, want %q", lines[cmcd.HeaderSession], want)
	}
}

func TestAssembler_CustomDataAppended(t *testing.T) {
	rc := &policytest.Config{
		Data: map[string]string{
			cmcd.HeaderObject:  "d=4000,ot=v",
			cmcd.HeaderSession: "org=acme",
			cmcd.HeaderStatus:  "bs",
			"X-Other":          "ignored=1",
		},
	}
	cfg := mustConfiguration(t, "sess-1", "movie-1", rc)
	asm := NewAssembler(cfg)

	lines := asm.Build(NewRequest().WithBitrateKbps(3200))

	if lines[cmcd.HeaderObject] != "br=3200,d=4000,ot=v" {
		t.Errorf("Object header = %q", lines[cmcd.HeaderObject])
	}
	if lines[cmcd.HeaderSession] != `cid="movie-1",sid="sess-1",org=acme` {
		t.Errorf("Session header = %q", lines[cmcd.HeaderSession])
	}
	// A header can exist on custom data alone.
	if lines[cmcd.HeaderStatus] != "bs" {
		t.Errorf("Status header = %q, want %q", lines[cmcd.HeaderStatus], "bs")
	}
	for header := range lines {
		if header == "X-Other" {
			t.Error("Expected unknown custom data labels to be ignored")
		}
	}
}

// ============================================================================
// Apply Tests
// ============================================================================

func TestAssembler_ApplyExactCase(t *testing.T) {
	cfg := mustConfiguration(t, "sess-1", "movie-1", cmcd.DefaultRequestConfig)
	asm := NewAssembler(cfg)

	h := http.Header{}
	h[cmcd.HeaderSession] = []string{"stale"}
	asm.Apply(h, NewRequest().WithBitrateKbps(3200))

	// The exact mixed-case names must survive; canonicalized lookups would
	// land on "Cmcd-Object" and miss.
	if got := h[cmcd.HeaderObject]; len(got) != 1 || got[0] != "br=3200" {
		t.Errorf("%s = %v, want [br=3200]", cmcd.HeaderObject, got)
	}
	if got := h[cmcd.HeaderSession]; len(got) != 1 || got[0] != `cid="movie-1",sid="sess-1"` {
		t.Errorf("%s = %v, want the rebuilt session line", cmcd.HeaderSession, got)
	}
	if got := h.Get(cmcd.HeaderObject); got != "" {
		t.Errorf("Canonicalized lookup unexpectedly found %q", got)
	}
	if _, ok := h[cmcd.HeaderStatus]; ok {
		t.Error("Expected headers with nothing to say to be left untouched")
	}
}

// ============================================================================
// GroupFor Tests
// ============================================================================

func TestGroupFor(t *testing.T) {
	tests := []struct {
		key    string
		header string
		ok     bool
	}{
		{cmcd.KeyBitrate, cmcd.HeaderObject, true},
		{cmcd.KeyBufferLength, cmcd.HeaderRequest, true},
		{cmcd.KeyContentID, cmcd.HeaderSession, true},
		{cmcd.KeySessionID, cmcd.HeaderSession, true},
		{cmcd.KeyMaximumRequestedThroughput, cmcd.HeaderStatus, true},
		{"nor", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		header, ok := GroupFor(tt.key)
		if header != tt.header || ok != tt.ok {
			t.Errorf("GroupFor(%q) = (%q, %v), want (%q, %v)", tt.key, header, ok, tt.header, tt.ok)
		}
	}
}
