package capability

import (
	"context"

	"tcpdial/internal/session"
	"tcpdial/util"
)

// Relay copies data bidirectionally between the connection and the
// session's stdin/stdout — the default interactive / pipe mode.
type Relay struct{}

// Handle shuttles bytes between the network connection and the local
// I/O endpoints until one side closes or the context is cancelled.
// Transfer totals are recorded on the session's metrics collector.
func (r *Relay) Handle(ctx context.Context, sess *session.Session) error {
	stats, err := util.BidirectionalCopy(ctx, sess.Conn, sess.Stdin, sess.Stdout)

	sess.Metrics.BytesReceived(stats.BytesIn)
	sess.Metrics.BytesSent(stats.BytesOut)
	sess.Logger.Verbose("relay done: %d bytes in, %d bytes out",
		stats.BytesIn, stats.BytesOut)

	return err
}
