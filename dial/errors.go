package dial

import (
	"errors"
	"fmt"
	"net"
	"syscall"
)

// ── Sentinel errors ──────────────────────────────────────────────────
//
// Every failure mode of a dial maps onto one of these, so callers can
// branch with errors.Is regardless of which resolver or syscall
// produced the underlying condition.

var (
	// ErrProtocolUnavailable means the host cannot identify the TCP
	// protocol at all — the system protocol database has no "tcp"
	// entry (on Linux the database is /etc/protocols).
	ErrProtocolUnavailable = errors.New("tcp protocol is not available in the system protocol database")

	// ErrPermissionDenied means the process lacks privilege to create
	// the connection endpoint.
	ErrPermissionDenied = errors.New("permission denied creating socket")

	// ErrOutOfMemory means resolution or endpoint allocation could not
	// complete for lack of memory.
	ErrOutOfMemory = errors.New("insufficient memory to complete the dial")

	// ErrNetworkUnreachable means the name server is currently
	// unreachable. The condition is temporary; retry later.
	ErrNetworkUnreachable = errors.New("name server is unreachable")

	// ErrNetworkDown means name resolution failed non-recoverably —
	// the name server is down.
	ErrNetworkDown = errors.New("name server is down")

	// ErrInvalidArgument means the host or port does not resolve to
	// anything the resolver recognizes.
	ErrInvalidArgument = errors.New("host or port is invalid")

	// ErrNotConnected means resolution succeeded but every candidate
	// address refused the connection, or there were no candidates.
	ErrNotConnected = errors.New("no candidate address accepted the connection")
)

// ── Structured error type ────────────────────────────────────────────

// Error carries the host/port context of a failed dial alongside the
// normalized cause. Use errors.Is against the sentinels above to
// branch on the cause.
type Error struct {
	Op   string // "resolve", "connect", "protocol"
	Host string
	Port string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("dial %s %s:%s: %v", e.Op, e.Host, e.Port, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ── Classification ───────────────────────────────────────────────────

// IsRetryable reports whether a later dial of the same host/port has
// a reasonable chance of succeeding: the name-resolution
// infrastructure was only temporarily unreachable, or the candidates
// merely refused the connection this time.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrNetworkUnreachable) || errors.Is(err, ErrNotConnected)
}

// normalizeLookupError maps resolver failures onto the sentinel
// taxonomy. Anything that is not a recognized resolution condition is
// passed through unchanged.
func normalizeLookupError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, syscall.ENOMEM) {
		return ErrOutOfMemory
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		switch {
		case dnsErr.IsNotFound:
			// Unknown host or unknown service name.
			return ErrInvalidArgument
		case dnsErr.IsTemporary || dnsErr.IsTimeout:
			// Resolution may work if tried again later.
			return ErrNetworkUnreachable
		default:
			return ErrNetworkDown
		}
	}
	var addrErr *net.AddrError
	if errors.As(err, &addrErr) {
		// LookupPort reports unknown service names this way.
		return ErrInvalidArgument
	}
	return err
}

// normalizeConnectError distinguishes process-wide endpoint-creation
// failures from per-candidate connect failures. The former are
// returned as a sentinel and abort the candidate loop; for the latter
// it returns nil and the loop moves on to the next candidate.
func normalizeConnectError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, syscall.EACCES), errors.Is(err, syscall.EPERM):
		return ErrPermissionDenied
	case errors.Is(err, syscall.ENOMEM), errors.Is(err, syscall.ENOBUFS):
		return ErrOutOfMemory
	}
	return nil
}
