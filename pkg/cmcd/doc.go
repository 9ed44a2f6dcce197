// Package cmcd models the configuration and policy layer of Common Media
// Client Data (CMCD, CTA-5004) reporting.
//
// # Overview
//
// CMCD lets a media client attach standardized playback telemetry to its
// outgoing segment requests, split across four HTTP headers by how often
// the values change: CMCD-Object, CMCD-Request, CMCD-Session and
// CMCD-Status. This package owns the decision surface behind that
// reporting:
//
//   - Configuration: immutable per-session holder of the session id, the
//     content id, and the bound RequestConfig policy.
//   - RequestConfig: the deployment's policy deciding which keys are
//     emitted, what custom data accompanies them, and whether a maximum
//     throughput is requested from the server.
//   - Factory: construction strategies; DefaultFactory generates a random
//     session id per call and binds the permissive DefaultRequestConfig.
//
// Serializing headers onto a live request belongs to the headers package.
// Transport, retries and inbound header parsing are out of scope entirely.
//
// # Usage
//
//	cfg, err := cmcd.DefaultFactory.CreateConfiguration(cmcd.MediaIdentity{ID: "movie-4812"})
//	if err != nil {
//	    return err
//	}
//	if cfg.IsBitrateLoggingAllowed() {
//	    // include "br" in CMCD-Object
//	}
//
// # Thread Safety
//
// A Configuration and its RequestConfig are shared by every concurrent
// request of a playback session. The Configuration is immutable and its
// queries are pure; a RequestConfig implementation that holds mutable state
// is responsible for its own synchronization.
package cmcd
