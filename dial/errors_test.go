package dial

import (
	"errors"
	"net"
	"os"
	"syscall"
	"testing"
)

// TestNormalizeLookupError walks the resolution-failure taxonomy.
func TestNormalizeLookupError(t *testing.T) {
	passthrough := errors.New("resolver exploded in a novel way")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"unknown host", &net.DNSError{Err: "no such host", IsNotFound: true}, ErrInvalidArgument},
		{"temporary", &net.DNSError{Err: "try again", IsTemporary: true}, ErrNetworkUnreachable},
		{"timeout", &net.DNSError{Err: "i/o timeout", IsTimeout: true}, ErrNetworkUnreachable},
		{"non-recoverable", &net.DNSError{Err: "server failure"}, ErrNetworkDown},
		{"unknown service", &net.AddrError{Err: "unknown port", Addr: "tcp/nope"}, ErrInvalidArgument},
		{"out of memory", os.NewSyscallError("getaddrinfo", syscall.ENOMEM), ErrOutOfMemory},
		{"passthrough", passthrough, passthrough},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeLookupError(tt.in)
			if got != tt.want { //nolint:errorlint // mapping is identity-exact
				t.Errorf("normalizeLookupError(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// TestNormalizeConnectError verifies that only process-wide failures
// abort the candidate loop.
func TestNormalizeConnectError(t *testing.T) {
	refused := &net.OpError{Op: "dial", Net: "tcp",
		Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)}
	denied := &net.OpError{Op: "dial", Net: "tcp",
		Err: os.NewSyscallError("socket", syscall.EACCES)}
	nobufs := &net.OpError{Op: "dial", Net: "tcp",
		Err: os.NewSyscallError("socket", syscall.ENOBUFS)}

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"refused is discardable", refused, nil},
		{"permission", denied, ErrPermissionDenied},
		{"no buffers", nobufs, ErrOutOfMemory},
		{"memory", syscall.ENOMEM, ErrOutOfMemory},
		{"unreachable is discardable", syscall.EHOSTUNREACH, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeConnectError(tt.in); !errors.Is(got, tt.want) || (tt.want == nil && got != nil) {
				t.Errorf("normalizeConnectError(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// TestError_Format checks the rendered message and unwrapping.
func TestError_Format(t *testing.T) {
	err := &Error{Op: "resolve", Host: "db.internal", Port: "5432", Err: ErrNetworkDown}

	want := "dial resolve db.internal:5432: name server is down"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrNetworkDown) {
		t.Error("errors.Is failed to reach the wrapped sentinel")
	}
}

// TestIsRetryable pins the retry guidance per sentinel.
func TestIsRetryable(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{ErrNetworkUnreachable, true},
		{ErrNotConnected, true},
		{ErrNetworkDown, false},
		{ErrInvalidArgument, false},
		{ErrProtocolUnavailable, false},
		{ErrPermissionDenied, false},
		{ErrOutOfMemory, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := IsRetryable(tt.err); got != tt.want {
			t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
	// Wrapped sentinels classify the same way.
	wrapped := &Error{Op: "connect", Host: "h", Port: "80", Err: ErrNotConnected}
	if !IsRetryable(wrapped) {
		t.Error("IsRetryable should see through dial.Error")
	}
}
