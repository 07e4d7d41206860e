// Package core is the orchestration layer.  It composes transports
// and capabilities into complete operational modes and provides a
// builder that selects the right mode from a Config.
//
// Architecture layers (bottom → top):
//
//	dial  →  transport  →  capability  →  session  →  core  →  cmd (CLI)
//
// The builder in this package is the single dispatch point, so the
// CLI never has to know which transport or capability a flag
// combination implies.
package core

import "context"

// Mode represents a complete operational mode of tcpdial (connect,
// listen, or probe).  Each mode owns its full lifecycle from
// connection establishment to teardown.
type Mode interface {
	Run(ctx context.Context) error
}
