package util

import (
	"context"
	"testing"
)

func TestFormatAddr(t *testing.T) {
	tests := []struct {
		host, port, want string
	}{
		{"1.2.3.4", "22", "1.2.3.4:22"},
		{"::1", "443", "[::1]:443"},
		{"example.com", "ssh", "example.com:ssh"},
	}
	for _, tt := range tests {
		if got := FormatAddr(tt.host, tt.port); got != tt.want {
			t.Errorf("FormatAddr(%q, %q) = %q, want %q", tt.host, tt.port, got, tt.want)
		}
	}
}

func TestLiteralIPAddrs(t *testing.T) {
	addrs, err := LiteralIPAddrs(context.Background(), "192.168.1.1")
	if err != nil {
		t.Fatal(err)
	}
	if len(addrs) != 1 || addrs[0].IP.String() != "192.168.1.1" {
		t.Errorf("got %v", addrs)
	}

	if _, err := LiteralIPAddrs(context.Background(), "::1"); err != nil {
		t.Errorf("IPv6 literal rejected: %v", err)
	}

	if _, err := LiteralIPAddrs(context.Background(), "not-an-ip"); err == nil {
		t.Error("expected error for hostname with DNS disabled")
	}
}

func TestFindFreePort(t *testing.T) {
	port, err := FindFreePort()
	if err != nil {
		t.Fatal(err)
	}
	if port < 1 || port > 65535 {
		t.Errorf("port %d out of range", port)
	}
}
