// Package headers assembles CMCD request headers from a bound
// cmcd.Configuration and per-request playback state.
//
// # Overview
//
// The cmcd package decides WHAT may be reported; this package turns those
// decisions into the four wire headers (CMCD-Object, CMCD-Request,
// CMCD-Session, CMCD-Status). For every outgoing media request the caller
// fills a Request with what it currently knows (bitrate of the object,
// buffer level, observed throughput) and the Assembler produces the header
// lines:
//
//   - keys denied by the policy are omitted,
//   - values are formatted per CTA-5004 (bl rounded to the nearest 100ms,
//     rtp to the nearest 100kbps, string values quoted),
//   - well-known keys are sorted alphabetically within a header,
//   - the policy's custom data fragments are appended verbatim,
//   - headers that end up empty are not emitted at all.
//
// # Usage
//
//	asm := headers.NewAssembler(cfg)
//	req := headers.NewRequest().
//	    WithBitrateKbps(3200).
//	    WithBufferedDuration(12 * time.Second)
//	asm.Apply(httpReq.Header, req)
//
// Apply writes the header map directly: Go's canonical form would mangle
// the mixed-case CMCD header names ("Cmcd-Object"), and CDNs match on the
// exact names.
package headers
