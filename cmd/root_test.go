package cmd

import (
	"bytes"
	"context"
	"io"
	"net"
	"os"
	"strconv"
	"testing"
	"time"

	"tcpdial/config"
)

// TestExecute_Version verifies --version returns without error.
func TestExecute_Version(t *testing.T) {
	if err := Execute(context.Background(), []string{"--version"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestExecute_Help verifies --help (and no args) returns without error.
func TestExecute_Help(t *testing.T) {
	for _, args := range [][]string{{"--help"}, {}} {
		name := "no-args"
		if len(args) > 0 {
			name = args[0]
		}
		t.Run(name, func(t *testing.T) {
			if err := Execute(context.Background(), args); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

// TestExecute_MissingArgs verifies argument errors surface.
func TestExecute_MissingArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"host without port", []string{"example.com"}},
		{"listen without -p", []string{"-l"}},
		{"bad port spec", []string{"example.com", "99999"}},
		{"bad jump spec", []string{"-J", "@", "example.com", "80"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Execute(context.Background(), tt.args); err == nil {
				t.Error("expected error")
			}
		})
	}
}

// TestExecute_Probe runs a real probe against a loopback listener.
func TestExecute_Probe(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()
	port := ln.Addr().(*net.TCPAddr).Port

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = Execute(ctx, []string{"-z", "-w", "2", "127.0.0.1", strconv.Itoa(port)})
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
}

// TestExecute_Connect pipes data to a loopback echo server through
// the full CLI path, with stdin/stdout redirected.
func TestExecute_Connect(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		io.Copy(conn, conn) //nolint:errcheck
	}()
	port := ln.Addr().(*net.TCPAddr).Port

	restore := redirectStdio(t, "roundtrip\n")
	defer restore()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = Execute(ctx, []string{"-w", "3", "127.0.0.1", strconv.Itoa(port)})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
}

// TestParsePositional covers the argument mapping table.
func TestParsePositional(t *testing.T) {
	tests := []struct {
		name     string
		listen   bool
		args     []string
		wantHost string
		wantPort string
		wantErr  bool
	}{
		{"connect host+port", false, []string{"example.com", "80"}, "example.com", "80", false},
		{"connect service name", false, []string{"example.com", "https"}, "example.com", "https", false},
		{"connect port range", false, []string{"example.com", "80-82"}, "example.com", "80", false},
		{"connect no port", false, []string{"example.com"}, "", "", true},
		{"connect no host", false, nil, "", "", true},
		{"listen bare", true, nil, "", "", false},
		{"listen with host", true, []string{"0.0.0.0"}, "0.0.0.0", "", false},
		{"listen too many", true, []string{"a", "b", "c"}, "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Listen: tt.listen}
			err := parsePositional(cfg, tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if cfg.Host != tt.wantHost {
				t.Errorf("Host = %q, want %q", cfg.Host, tt.wantHost)
			}
			if cfg.Port != tt.wantPort {
				t.Errorf("Port = %q, want %q", cfg.Port, tt.wantPort)
			}
		})
	}
}

// redirectStdio points os.Stdin at the given input and os.Stdout at a
// pipe, restoring both via the returned func.
func redirectStdio(t *testing.T, input string) func() {
	t.Helper()

	inR, inW, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	outR, outW, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}

	go func() {
		inW.WriteString(input) //nolint:errcheck
		inW.Close()
	}()
	go func() {
		var sink bytes.Buffer
		io.Copy(&sink, outR) //nolint:errcheck
	}()

	origIn, origOut := os.Stdin, os.Stdout
	os.Stdin, os.Stdout = inR, outW

	return func() {
		os.Stdin, os.Stdout = origIn, origOut
		outW.Close()
		inR.Close()
	}
}
