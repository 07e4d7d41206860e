package transport

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"golang.org/x/net/proxy"

	"tcpdial/util"
)

// SOCKS5Dialer establishes connections through a SOCKS5 proxy
// (no authentication).  The proxy performs the remote dial, so the
// destination host is resolved by the proxy, not locally.
type SOCKS5Dialer struct {
	// ProxyAddr is the host:port of the SOCKS5 server.
	ProxyAddr string
	Logger    *util.Logger
}

// Dial connects to host:port via the configured proxy.  Service-name
// ports are resolved locally; the SOCKS5 CONNECT request carries only
// a numeric port.
func (d *SOCKS5Dialer) Dial(ctx context.Context, host, port string) (net.Conn, error) {
	portNum, err := resolvePortNumber(ctx, port)
	if err != nil {
		return nil, err
	}

	pd, err := proxy.SOCKS5("tcp", d.ProxyAddr, nil, proxy.Direct)
	if err != nil {
		return nil, fmt.Errorf("socks5 proxy %s: %w", d.ProxyAddr, err)
	}

	addr := net.JoinHostPort(host, strconv.Itoa(portNum))
	if d.Logger != nil {
		d.Logger.Debug("socks5: CONNECT %s via %s", addr, d.ProxyAddr)
	}

	// The dialer returned by proxy.SOCKS5 is context-aware.
	cd, ok := pd.(proxy.ContextDialer)
	if !ok {
		return pd.Dial("tcp", addr)
	}
	return cd.DialContext(ctx, "tcp", addr)
}

// Close is a no-op; each Dial opens its own proxy connection.
func (d *SOCKS5Dialer) Close() error { return nil }
