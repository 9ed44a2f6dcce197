package cmcd

import "testing"

// ============================================================================
// Default RequestConfig Tests
// ============================================================================

func TestDefaultRequestConfig_AllowsEveryKey(t *testing.T) {
	keys := append(WellKnownKeys(), "nor", "d", "com.example-custom")
	for _, key := range keys {
		if !DefaultRequestConfig.IsKeyAllowed(key) {
			t.Errorf("Expected key %q to be allowed", key)
		}
	}
}

func TestDefaultRequestConfig_NoCustomData(t *testing.T) {
	if data := DefaultRequestConfig.CustomData(); len(data) != 0 {
		t.Errorf("Expected empty custom data, got %v", data)
	}
}

func TestDefaultRequestConfig_ThroughputUnset(t *testing.T) {
	for _, observed := range []int{-1, 0, 1, 4800, 1 << 30} {
		if got := DefaultRequestConfig.RequestedMaximumThroughputKbps(observed); got != RateUnset {
			t.Errorf("RequestedMaximumThroughputKbps(%d) = %d, want RateUnset", observed, got)
		}
	}
}

// ============================================================================
// Vocabulary Tests
// ============================================================================

func TestVocabulary_HeaderNames(t *testing.T) {
	want := []string{"CMCD-Object", "CMCD-Request", "CMCD-Session", "CMCD-Status"}
	got := HeaderNames()
	if len(got) != len(want) {
		t.Fatalf("HeaderNames returned %d names, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("HeaderNames[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestVocabulary_WellKnownKeys(t *testing.T) {
	want := []string{"bl", "br", "cid", "rtp", "sid"}
	got := WellKnownKeys()
	if len(got) != len(want) {
		t.Fatalf("WellKnownKeys returned %d keys, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("WellKnownKeys[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestVocabulary_ReturnsCopies(t *testing.T) {
	names := HeaderNames()
	names[0] = "mutated"
	if HeaderNames()[0] != HeaderObject {
		t.Error("Expected HeaderNames to return a fresh copy")
	}

	keys := WellKnownKeys()
	keys[0] = "mutated"
	if WellKnownKeys()[0] != KeyBufferLength {
		t.Error("Expected WellKnownKeys to return a fresh copy")
	}
}
