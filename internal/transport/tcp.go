package transport

import (
	"context"
	"net"

	"tcpdial/dial"
	"tcpdial/internal/metrics"
	"tcpdial/util"
)

// TCPDialer establishes direct TCP connections through the dial core:
// protocol gate, resolver-ordered candidates, serial connect, and the
// normalized error taxonomy.
type TCPDialer struct {
	// NumericOnly disables DNS: the host must be an IP literal.
	NumericOnly bool

	// Metrics, when non-nil, counts dial attempts and per-candidate
	// connects.
	Metrics *metrics.Collector
}

// Dial connects to host:port over TCP.
func (d *TCPDialer) Dial(ctx context.Context, host, port string) (net.Conn, error) {
	core := &dial.Dialer{}
	if d.NumericOnly {
		core.LookupIPAddr = util.LiteralIPAddrs
	}
	if d.Metrics != nil {
		core.OnConnectAttempt = func(net.TCPAddr) { d.Metrics.CandidateTried() }
	}
	d.Metrics.DialAttempt()
	return core.Dial(ctx, host, port)
}

// Close is a no-op for stateless TCP dialers.
func (d *TCPDialer) Close() error { return nil }
