package core

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"tcpdial/config"
	"tcpdial/dial"
	"tcpdial/internal/capability"
	"tcpdial/internal/metrics"
	"tcpdial/internal/retry"
	"tcpdial/internal/session"
	"tcpdial/internal/transport"
	"tcpdial/util"
)

// ConnectMode dials a remote host/port and runs a capability on the
// resulting connection — the default client mode.
type ConnectMode struct {
	Dialer     transport.Dialer
	Capability capability.Capability
	Host       string
	Port       string

	// Retries is the number of extra dial attempts after the first
	// failure.  Only failures the dial taxonomy marks retryable
	// (resolver hiccups, exhausted candidates) are retried.
	Retries   int
	RetryWait time.Duration

	// Timeout bounds each individual dial attempt, 0 meaning no limit.
	Timeout time.Duration

	Logger  *util.Logger
	Metrics *metrics.Collector

	// Stdin/Stdout default to os.Stdin/os.Stdout when nil.
	// Override in tests for deterministic I/O.
	Stdin  io.Reader
	Stdout io.Writer
}

func (m *ConnectMode) stdin() io.Reader {
	if m.Stdin != nil {
		return m.Stdin
	}
	return os.Stdin
}

func (m *ConnectMode) stdout() io.Writer {
	if m.Stdout != nil {
		return m.Stdout
	}
	return os.Stdout
}

// Run dials the remote endpoint, creates a session, and hands it to
// the capability.  The transport is closed when Run returns.
func (m *ConnectMode) Run(ctx context.Context) error {
	defer m.Dialer.Close()

	target := util.FormatAddr(m.Host, m.Port)
	m.Logger.Verbose("connecting to %s", target)

	conn, err := m.dialWithRetry(ctx)
	if err != nil {
		m.Metrics.RecordError(err.Error())
		return fmt.Errorf("connect to %s: %w", target, err)
	}
	defer conn.Close()

	m.Logger.Verbose("connected to %s", conn.RemoteAddr())
	m.Metrics.ConnectionOpened()
	defer m.Metrics.ConnectionClosed()

	sess := session.New(conn, m.stdin(), m.stdout(), m.Logger)
	sess.Metrics = m.Metrics
	return m.Capability.Handle(ctx, sess)
}

// dialWithRetry performs the dial, re-attempting retryable failures
// with exponential backoff when Retries > 0.
func (m *ConnectMode) dialWithRetry(ctx context.Context) (net.Conn, error) {
	if m.Retries <= 0 {
		return m.dialOnce(ctx)
	}

	b := m.backoff()

	var conn net.Conn
	err := b.Do(ctx, func(attempt int) error {
		if attempt > 1 {
			m.Logger.Verbose("retrying (attempt %d of %d)", attempt, m.Retries+1)
		}
		c, err := m.dialOnce(ctx)
		if err != nil {
			return retry.Classify(err, dial.IsRetryable)
		}
		conn = c
		return nil
	})
	return conn, err
}

// backoff builds the retry policy: the wait doubles from RetryWait
// per attempt and is capped so long retry runs do not stall for
// minutes between dials.
func (m *ConnectMode) backoff() *retry.Backoff {
	return &retry.Backoff{
		InitialDelay: m.RetryWait,
		MaxDelay:     config.DefaultMaxRetryWait,
		MaxAttempts:  m.Retries + 1,
		Jitter:       true,
	}
}

// dialOnce performs a single dial attempt, bounded by Timeout.
func (m *ConnectMode) dialOnce(ctx context.Context) (net.Conn, error) {
	if m.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.Timeout)
		defer cancel()
	}
	return m.Dialer.Dial(ctx, m.Host, m.Port)
}
