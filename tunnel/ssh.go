package tunnel

import (
	"context"
	"errors"
	"net"
	"strconv"
	"sync"
	"time"

	"golang.org/x/crypto/ssh"

	"tcpdial/util"
)

// ErrNotConnected is returned by Dial before Connect has succeeded or
// after the gateway connection drops.
var ErrNotConnected = errors.New("tunnel not connected")

// SSHConfig holds everything needed to dial an SSH gateway.
type SSHConfig struct {
	User          string
	Host          string
	Port          int
	KeyPath       string
	PromptPass    bool
	UseAgent      bool
	StrictHostKey bool
	KnownHosts    string
	ConnTimeout   time.Duration
}

// gateway returns the host:port address of the SSH server.
func (c *SSHConfig) gateway() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// SSHTunnel implements [Tunnel] by opening an SSH connection and
// forwarding traffic over direct-tcpip channels.
type SSHTunnel struct {
	config *SSHConfig
	client *ssh.Client
	logger *util.Logger
	mu     sync.RWMutex
	alive  bool
}

// NewSSHTunnel creates a tunnel that is ready to [Connect].
func NewSSHTunnel(cfg *SSHConfig, logger *util.Logger) *SSHTunnel {
	if cfg.Port == 0 {
		cfg.Port = 22
	}
	if cfg.ConnTimeout == 0 {
		cfg.ConnTimeout = 30 * time.Second
	}
	return &SSHTunnel{config: cfg, logger: logger}
}

// Connect dials the SSH gateway and completes the handshake.
func (t *SSHTunnel) Connect(ctx context.Context) error {
	gw := t.config.gateway()

	authMethods, err := BuildAuthMethods(t.config)
	if err != nil {
		return &Error{Phase: "auth", Gateway: gw, Err: err}
	}

	hkCallback, err := hostKeyCallback(t.config)
	if err != nil {
		return &Error{Phase: "hostkey", Gateway: gw, Err: err}
	}

	sshCfg := &ssh.ClientConfig{
		User:            t.config.User,
		Auth:            authMethods,
		HostKeyCallback: hkCallback,
		Timeout:         t.config.ConnTimeout,
	}

	t.logger.Debug("SSH: dialing %s as %s", gw, t.config.User)

	// Use a context-aware TCP dial so callers can cancel.
	var dialer net.Dialer
	tcpConn, err := dialer.DialContext(ctx, "tcp", gw)
	if err != nil {
		return &Error{Phase: "dial", Gateway: gw, Err: err}
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(tcpConn, gw, sshCfg)
	if err != nil {
		tcpConn.Close()
		return &Error{Phase: "handshake", Gateway: gw, Err: err}
	}

	client := ssh.NewClient(sshConn, chans, reqs)

	t.mu.Lock()
	t.client = client
	t.alive = true
	t.mu.Unlock()

	go t.monitor()

	return nil
}

// Dial opens a direct-tcpip channel to host:port through the gateway.
// The target is resolved by the gateway, not locally.
func (t *SSHTunnel) Dial(ctx context.Context, host string, port int) (net.Conn, error) {
	t.mu.RLock()
	client := t.client
	alive := t.alive
	t.mu.RUnlock()

	if !alive || client == nil {
		return nil, ErrNotConnected
	}

	target := net.JoinHostPort(host, strconv.Itoa(port))
	t.logger.Debug("tunnel: opening channel to %s", target)

	conn, err := client.DialContext(ctx, "tcp", target)
	if err != nil {
		return nil, &Error{Phase: "channel", Gateway: t.config.gateway(), Err: err}
	}
	return conn, nil
}

// Close shuts down the SSH connection.
func (t *SSHTunnel) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.alive = false
	if t.client != nil {
		err := t.client.Close()
		t.client = nil
		return err
	}
	return nil
}

// IsAlive reports whether the tunnel is still connected.
func (t *SSHTunnel) IsAlive() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.alive
}

// monitor blocks until the SSH connection closes and flips the alive flag.
func (t *SSHTunnel) monitor() {
	t.mu.RLock()
	client := t.client
	t.mu.RUnlock()
	if client == nil {
		return
	}

	err := client.Wait()

	t.mu.Lock()
	t.alive = false
	t.mu.Unlock()

	if err != nil {
		t.logger.Debug("SSH tunnel closed: %v", err)
	} else {
		t.logger.Debug("SSH tunnel closed")
	}
}
