package config

import (
	"testing"
)

// ── ParseJumpSpec ────────────────────────────────────────────────────

func TestParseJumpSpec(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantUser string
		wantHost string
		wantPort int
		wantErr  bool
	}{
		{"full", "admin@bastion.example.com:2222", "admin", "bastion.example.com", 2222, false},
		{"no port", "root@gateway", "root", "gateway", 22, false},
		{"no user", "jump-host:2200", "", "jump-host", 2200, false},
		{"host only", "gateway.local", "", "gateway.local", 22, false},
		{"bad port", "user@host:999999", "", "", 0, true},
		{"empty", "", "", "", 0, true},
		{"colon only", ":", "", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, host, port, err := ParseJumpSpec(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr = %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if user != tt.wantUser || host != tt.wantHost || port != tt.wantPort {
				t.Errorf("got (%q, %q, %d), want (%q, %q, %d)",
					user, host, port, tt.wantUser, tt.wantHost, tt.wantPort)
			}
		})
	}
}

// ── ParsePortSpec ────────────────────────────────────────────────────

func TestParsePortSpec(t *testing.T) {
	tests := []struct {
		input       string
		wantService string
		wantStart   int
		wantEnd     int
		wantErr     bool
	}{
		{"80", "", 80, 80, false},
		{"443", "", 443, 443, false},
		{"80-90", "", 80, 90, false},
		{"1-65535", "", 1, 65535, false},
		{"http", "http", 0, 0, false},
		{"domain-s", "domain-s", 0, 0, false},
		{"0", "", 0, 0, true},
		{"70000", "", 0, 0, true},
		{"90-80", "", 0, 0, true}, // reversed range
		{"0-100", "", 0, 0, true}, // start below 1
		{"", "", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ps, err := ParsePortSpec(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePortSpec(%q) error = %v, wantErr = %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if ps.Service != tt.wantService || ps.Start != tt.wantStart || ps.End != tt.wantEnd {
				t.Errorf("got %+v, want {%q, %d, %d}", ps, tt.wantService, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

// ── PortSpec.Expand ──────────────────────────────────────────────────

func TestPortSpecExpand(t *testing.T) {
	ps := PortSpec{Start: 20, End: 25}
	got := ps.Expand()
	want := []string{"20", "21", "22", "23", "24", "25"}

	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expand()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPortSpecExpand_Service(t *testing.T) {
	ps := PortSpec{Service: "http"}
	got := ps.Expand()
	if len(got) != 1 || got[0] != "http" {
		t.Errorf("Expand() = %v, want [http]", got)
	}
}

func TestAllPorts(t *testing.T) {
	cfg := &Config{Ports: []PortSpec{
		{Start: 80, End: 81},
		{Service: "ssh"},
	}}
	got := cfg.AllPorts()
	want := []string{"80", "81", "ssh"}
	if len(got) != len(want) {
		t.Fatalf("AllPorts() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("AllPorts()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
