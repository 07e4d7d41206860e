package capability

import (
	"context"
	"encoding/hex"

	"tcpdial/internal/session"
	"tcpdial/util"
)

// Hexdump relays like Relay but renders received bytes as a canonical
// hex dump (offset, hex columns, ASCII gutter) instead of raw output.
// Useful when poking at binary protocols.
type Hexdump struct{}

// Handle copies stdin to the connection unchanged and the connection's
// output through a hex dumper to stdout.
func (h *Hexdump) Handle(ctx context.Context, sess *session.Session) error {
	dumper := hex.Dumper(sess.Stdout)

	stats, err := util.BidirectionalCopy(ctx, sess.Conn, sess.Stdin, dumper)

	// Close flushes any partial final line.
	if cerr := dumper.Close(); cerr != nil && err == nil {
		err = cerr
	}

	sess.Metrics.BytesReceived(stats.BytesIn)
	sess.Metrics.BytesSent(stats.BytesOut)
	sess.Logger.Verbose("hexdump done: %d bytes in, %d bytes out",
		stats.BytesIn, stats.BytesOut)

	return err
}
