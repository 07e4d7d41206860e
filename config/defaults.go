package config

import "time"

// ── Default values ───────────────────────────────────────────────────
//
// All tuneable defaults live here so they are easy to audit and reuse
// across CLI flags and environment variable loading.

const (
	// DefaultSSHPort is the standard SSH port for jump hosts.
	DefaultSSHPort = 22

	// DefaultLocalAddress is the loopback address the listen mode
	// binds to unless told otherwise.
	DefaultLocalAddress = "127.0.0.1"

	// DefaultProbeTimeout is the per-port deadline in probe mode.
	// The dial core itself never imposes a deadline; probe mode
	// bounds each attempt externally via context.
	DefaultProbeTimeout = 3 * time.Second

	// DefaultMaxConcurrentProbes limits simultaneous probe
	// goroutines to prevent resource exhaustion.
	DefaultMaxConcurrentProbes = 100

	// DefaultProbeFailureThreshold is how many consecutive probe
	// failures trip the circuit breaker and abort the remaining
	// ports (the host is considered down).
	DefaultProbeFailureThreshold = 25

	// DefaultRetryWait is the initial backoff between connect
	// retries when --retry is given.
	DefaultRetryWait = 1 * time.Second

	// DefaultMaxRetryWait caps the exponential backoff between
	// connect retries.
	DefaultMaxRetryWait = 30 * time.Second

	// DefaultSSHConnTimeout bounds the jump-host SSH handshake.
	DefaultSSHConnTimeout = 30 * time.Second
)
