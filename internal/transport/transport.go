// Package transport provides abstractions for network connection
// establishment.  Transports handle the "how" of reaching a
// destination — a direct TCP dial, an SSH jump host, or a SOCKS5
// proxy — independent of what happens over the connection (which is
// the capability layer's job).
package transport

import (
	"context"
	"net"
)

// Dialer opens an outbound connection to a host/port pair.  The port
// may be a decimal number or a service name.  Implementations include
// the direct TCP dialer built on the dial core, an SSH-tunnelled
// dialer that routes through an encrypted gateway, and a SOCKS5
// proxy dialer.
type Dialer interface {
	// Dial establishes a connection to host:port.
	Dial(ctx context.Context, host, port string) (net.Conn, error)

	// Close releases any long-lived resources held by the dialer
	// (e.g. an SSH session).  Stateless dialers return nil.
	Close() error
}
