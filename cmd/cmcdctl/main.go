// Cmcdctl is a command-line companion for the CMCD client data library.
//
// It works with the same policy documents the library loads at runtime,
// providing:
//   - Policy file validation with per-field diagnostics
//   - Offline rendering of CMCD request headers
//   - A reference listing of the supported key vocabulary
//   - Header assembly throughput measurement
//
// Usage:
//
//	# Validate a policy file
//	cmcdctl lint --file policy.yaml
//
//	# Render the headers a player would send
//	cmcdctl render --file policy.yaml --bitrate 3200 --buffer 12000
//
//	# Re-render whenever the policy file changes
//	cmcdctl render --file policy.yaml --watch
//
//	# List the CTA-5004 keys this library emits
//	cmcdctl keys
//
//	# Show version information
//	cmcdctl version
package main

func main() {
	Execute()
}
