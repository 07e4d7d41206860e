package transport

import (
	"context"
	"fmt"
	"net"
	"sync"

	"tcpdial/tunnel"
	"tcpdial/util"
)

// SSHDialer routes connections through an SSH jump host.  The tunnel
// is connected lazily on the first Dial call and torn down on Close.
type SSHDialer struct {
	tunnel    *tunnel.SSHTunnel
	config    *tunnel.SSHConfig
	logger    *util.Logger
	mu        sync.Mutex
	connected bool
}

// NewSSHDialer creates a dialer that forwards connections through an
// SSH jump host.  The tunnel is not connected until the first Dial.
func NewSSHDialer(cfg *tunnel.SSHConfig, logger *util.Logger) *SSHDialer {
	return &SSHDialer{
		tunnel: tunnel.NewSSHTunnel(cfg, logger),
		config: cfg,
		logger: logger,
	}
}

// connect establishes the SSH tunnel if not already connected.
func (d *SSHDialer) connect(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.connected {
		return nil
	}

	d.logger.Verbose("establishing SSH tunnel to %s@%s:%d",
		d.config.User, d.config.Host, d.config.Port)

	if err := d.tunnel.Connect(ctx); err != nil {
		return fmt.Errorf("tunnel: %w", err)
	}

	d.connected = true
	d.logger.Verbose("SSH tunnel established")
	return nil
}

// Dial connects to host:port through the SSH jump host, lazily
// establishing the tunnel on the first call.  Service-name ports are
// resolved locally because the SSH direct-tcpip channel carries only
// a numeric port.
func (d *SSHDialer) Dial(ctx context.Context, host, port string) (net.Conn, error) {
	if err := d.connect(ctx); err != nil {
		return nil, err
	}
	portNum, err := resolvePortNumber(ctx, port)
	if err != nil {
		return nil, err
	}
	return d.tunnel.Dial(ctx, host, portNum)
}

// Close tears down the underlying SSH tunnel.
func (d *SSHDialer) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.connected {
		d.connected = false
		return d.tunnel.Close()
	}
	return nil
}

// resolvePortNumber turns a service name or decimal string into a
// port number using the system services database.
func resolvePortNumber(ctx context.Context, port string) (int, error) {
	n, err := net.DefaultResolver.LookupPort(ctx, "tcp", port)
	if err != nil {
		return 0, fmt.Errorf("resolve port %q: %w", port, err)
	}
	return n, nil
}
