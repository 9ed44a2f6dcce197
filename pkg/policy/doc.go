// Package policy provides file-based cmcd.RequestConfig implementations for
// operator-controlled CMCD reporting.
//
// # Overview
//
// The cmcd package ships a permissive default policy; this package gives a
// deployment an explicit one, declared in a YAML document:
//
//	version: 1
//	denied_keys: [br, rtp]
//	custom_data:
//	  session:
//	    org: '"acme"'
//	max_requested_throughput_kbps: 15000
//
// Two implementations are provided:
//
//   - Static: an immutable policy compiled from a Document. All document
//     problems, including custom keys that would collide with an allowed
//     well-known key, fail at construction; a Static that exists is valid.
//   - File: a reloadable handle around a Static loaded from disk. Queries
//     read an atomic snapshot, Reload swaps it, and Watch keeps it fresh
//     from debounced file system events. A failed reload keeps the previous
//     snapshot active.
//
// # Usage
//
//	pol, err := policy.OpenFile("/etc/arcstream/cmcd.yaml", nil)
//	if err != nil {
//	    return err
//	}
//	go pol.Watch(ctx)
//
//	cfg, err := cmcd.NewConfiguration(sessionID, contentID, pol)
//
// # Thread Safety
//
// Static is immutable. File publishes snapshots through an atomic pointer,
// so its RequestConfig queries are lock-free and safe against concurrent
// Reload and Watch activity.
package policy
