package util

import (
	"context"
	"fmt"
	"net"
)

// FormatAddr returns "host:port", bracketing IPv6 literals.  The port
// may be a service name; the dial core resolves it either way.
func FormatAddr(host, port string) string {
	return net.JoinHostPort(host, port)
}

// LiteralIPAddrs resolves a host without consulting DNS: the host must
// already be an IP literal.  It has the shape of a dial.Dialer
// LookupIPAddr hook and backs the --no-dns flag.
func LiteralIPAddrs(ctx context.Context, host string) ([]net.IPAddr, error) {
	ip := net.ParseIP(host)
	if ip == nil {
		return nil, fmt.Errorf("cannot parse %q as an IP address (DNS disabled with -n)", host)
	}
	return []net.IPAddr{{IP: ip}}, nil
}

// FindFreePort returns an available TCP port on 127.0.0.1.
func FindFreePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, fmt.Errorf("finding free port: %w", err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}
