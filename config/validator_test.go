package config

import (
	"strings"
	"testing"
)

// TestValidate_ErrorMessages verifies that Validate returns actionable
// error messages with hints.
func TestValidate_ErrorMessages(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantSub string // substring expected in error
	}{
		{
			name:    "listen no port has hint",
			cfg:     Config{Listen: true},
			wantSub: "hint:",
		},
		{
			name:    "listen excludes probe",
			cfg:     Config{Listen: true, LocalPort: 8080, Probe: true},
			wantSub: "mutually exclusive",
		},
		{
			name:    "jump and proxy conflict",
			cfg:     Config{Host: "x", Port: "80", JumpEnabled: true, JumpHost: "gw", ProxyAddr: "127.0.0.1:1080"},
			wantSub: "-J and --proxy are mutually exclusive",
		},
		{
			name:    "missing port",
			cfg:     Config{Host: "x"},
			wantSub: "port or service name",
		},
		{
			name:    "negative retries",
			cfg:     Config{Host: "x", Port: "80", Retries: -1},
			wantSub: "cannot be negative",
		},
		{
			name:    "no-dns with hostname",
			cfg:     Config{Host: "example.com", Port: "80", NoDNS: true},
			wantSub: "as an IP address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q should contain %q", err.Error(), tt.wantSub)
			}
		})
	}
}

// TestValidate_OK covers configurations that must pass.
func TestValidate_OK(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"plain connect", Config{Host: "example.com", Port: "80"}},
		{"service name", Config{Host: "example.com", Port: "http"}},
		{"empty host is resolver-defined", Config{Host: "", Port: "0"}},
		{"numeric with no-dns", Config{Host: "127.0.0.1", Port: "80", NoDNS: true}},
		{"ipv6 with no-dns", Config{Host: "::1", Port: "80", NoDNS: true}},
		{"listen", Config{Listen: true, LocalPort: 9090}},
		{"probe ranges", Config{Host: "h", Probe: true, Ports: []PortSpec{{Start: 20, End: 25}}}},
		{"jump", Config{Host: "db", Port: "5432", JumpEnabled: true, JumpHost: "bastion"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

// TestParsePortSpec_EdgeCases covers odd port specs; invalid ones just
// return errors, valid ones must hold the range invariants.
func TestParsePortSpec_EdgeCases(t *testing.T) {
	edgeCases := []string{
		"1", "65535", "1-1", "1-65535",
		"-1", "65536", "-", "1-", "-1",
		"0", "99999", "1-0", "http", "x11",
	}
	for _, s := range edgeCases {
		t.Run(s, func(t *testing.T) {
			ps, err := ParsePortSpec(s)
			if err != nil || ps.Service != "" {
				return
			}
			if ps.Start < 1 || ps.End > 65535 || ps.Start > ps.End {
				t.Errorf("invalid range: %+v", ps)
			}
		})
	}
}
