// Package dial establishes outbound TCP connections to a named
// host/port pair. It is the core building block of tcpdial: given a
// hostname (or IP literal) and a service name (or numeric port) it
// returns a live, connected *net.TCPConn or a definitive, normalized
// reason it could not produce one.
//
// The algorithm is strictly sequential: look up the TCP protocol
// number in the system protocol database, resolve the host/port pair
// to an ordered candidate sequence (IPv4 and IPv6), then attempt a
// blocking connect against each candidate in resolver order, stopping
// at the first success. Per-candidate connect failures are discarded;
// the caller sees a single terminal outcome.
//
// The package imposes no timeouts, performs no internal retries, and
// holds no state across calls. Callers needing bounded wait time
// cancel the context they pass in.
package dial

import (
	"context"
	"net"
	"strconv"
)

// Dialer resolves and connects. The zero value uses the system
// resolver and protocol database; the hooks exist so tests can
// substitute resolution without a real name server.
type Dialer struct {
	// LookupIPAddr overrides host resolution.
	// Defaults to net.DefaultResolver.LookupIPAddr.
	LookupIPAddr func(ctx context.Context, host string) ([]net.IPAddr, error)

	// LookupPort overrides service-name resolution.
	// Defaults to net.DefaultResolver.LookupPort for network "tcp".
	LookupPort func(ctx context.Context, service string) (int, error)

	// ProtocolNumber overrides the protocol database lookup.
	// Defaults to reading the system database (/etc/protocols).
	ProtocolNumber func(name string) (int, error)

	// OnConnectAttempt, when non-nil, is called once per candidate
	// right before its connect attempt. Used for instrumentation.
	OnConnectAttempt func(addr net.TCPAddr)
}

// Dial connects to host:port over TCP using a zero-value [Dialer].
//
// host is a DNS name, an IPv4/IPv6 literal, or empty (whatever the
// platform resolver defines for an empty host). port is a decimal
// port number or a service name from the system services database.
//
// On success the returned connection is ready for bidirectional
// transfer and the caller owns it. On failure no resource is leaked
// and the error unwraps to one of the package sentinels, or to the
// originating system error for conditions outside the taxonomy.
func Dial(ctx context.Context, host, port string) (*net.TCPConn, error) {
	return (&Dialer{}).Dial(ctx, host, port)
}

// Dial implements the full protocol-lookup → resolution → serial
// connect sequence described in the package documentation.
func (d *Dialer) Dial(ctx context.Context, host, port string) (*net.TCPConn, error) {
	// The protocol gate comes first and short-circuits everything
	// else: a host that cannot identify TCP cannot dial it.
	if _, err := d.protocolNumber("tcp"); err != nil {
		return nil, &Error{Op: "protocol", Host: host, Port: port, Err: err}
	}

	candidates, err := d.Resolve(ctx, host, port)
	if err != nil {
		return nil, &Error{Op: "resolve", Host: host, Port: port, Err: err}
	}

	conn, err := d.connectSerial(ctx, candidates)
	if err != nil {
		return nil, &Error{Op: "connect", Host: host, Port: port, Err: err}
	}
	return conn, nil
}

// Resolve maps host:port to an ordered candidate sequence. The order
// is whatever the resolution subsystem returns — typically shaped by
// system address-selection policy — and is neither reordered nor
// deduplicated here. Resolution failures come back normalized to the
// package sentinels.
func (d *Dialer) Resolve(ctx context.Context, host, port string) ([]net.TCPAddr, error) {
	portNum, err := d.resolvePort(ctx, port)
	if err != nil {
		return nil, normalizeLookupError(err)
	}

	ipAddrs, err := d.lookupIPAddr(ctx, host)
	if err != nil {
		return nil, normalizeLookupError(err)
	}

	candidates := make([]net.TCPAddr, 0, len(ipAddrs))
	for _, ia := range ipAddrs {
		candidates = append(candidates, net.TCPAddr{IP: ia.IP, Port: portNum, Zone: ia.Zone})
	}
	return candidates, nil
}

// connectSerial attempts a blocking connect against each candidate in
// sequence order and returns the first one that succeeds. A failed
// attempt is not reported individually — its endpoint is released and
// the next candidate is tried. Process-wide failures (no privilege,
// no memory) abort the loop instead, since no later candidate can do
// better. An exhausted or empty sequence yields ErrNotConnected.
func (d *Dialer) connectSerial(ctx context.Context, candidates []net.TCPAddr) (*net.TCPConn, error) {
	var sysDialer net.Dialer
	for i := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if d.OnConnectAttempt != nil {
			d.OnConnectAttempt(candidates[i])
		}
		conn, err := sysDialer.DialContext(ctx, "tcp", candidates[i].String())
		if err == nil {
			return conn.(*net.TCPConn), nil
		}
		if fatal := normalizeConnectError(err); fatal != nil {
			return nil, fatal
		}
	}
	return nil, ErrNotConnected
}

// ── resolution helpers ───────────────────────────────────────────────

func (d *Dialer) resolvePort(ctx context.Context, port string) (int, error) {
	// Numeric ports skip the services database entirely.
	if n, err := strconv.Atoi(port); err == nil {
		if n < 0 || n > 65535 {
			return 0, ErrInvalidArgument
		}
		return n, nil
	}
	if d.LookupPort != nil {
		return d.LookupPort(ctx, port)
	}
	return net.DefaultResolver.LookupPort(ctx, "tcp", port)
}

func (d *Dialer) lookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error) {
	if d.LookupIPAddr != nil {
		return d.LookupIPAddr(ctx, host)
	}
	return net.DefaultResolver.LookupIPAddr(ctx, host)
}

func (d *Dialer) protocolNumber(name string) (int, error) {
	if d.ProtocolNumber != nil {
		return d.ProtocolNumber(name)
	}
	return lookupProtocolNumber(name)
}
