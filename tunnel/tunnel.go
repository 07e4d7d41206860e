// Package tunnel provides an SSH jump-host channel backed by
// golang.org/x/crypto/ssh. Connections dialed through the tunnel
// egress from the gateway, so name resolution of the target happens
// on the remote side.
package tunnel

import (
	"context"
	"fmt"
	"net"
)

// Tunnel abstracts an encrypted channel through which TCP connections
// can be forwarded.
type Tunnel interface {
	// Connect establishes the channel to the gateway.
	Connect(ctx context.Context) error

	// Dial opens a connection to host:port through the tunnel.
	// The port is numeric; service names are resolved by the caller.
	Dial(ctx context.Context, host string, port int) (net.Conn, error)

	// Close tears down the tunnel and frees resources.
	Close() error

	// IsAlive reports whether the underlying connection is still up.
	IsAlive() bool
}

// Error describes a failure in a tunnel phase (auth, hostkey,
// handshake, dial).
type Error struct {
	Phase   string
	Gateway string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("ssh %s %s: %v", e.Phase, e.Gateway, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
