// Package config defines the runtime configuration for tcpdial and
// provides helpers for parsing jump-host specifications and port
// specs (numeric, ranges, or service names).
package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Config holds every tuneable for a single tcpdial invocation.
type Config struct {
	// ── Connection ───────────────────────────────────────────────────
	Host      string
	Port      string     // primary destination: decimal port or service name
	Ports     []PortSpec // all destination specs (probe mode)
	LocalPort int        // -p: local listen port
	Listen    bool
	Probe     bool // -z: reachability probe, no I/O
	Timeout   time.Duration
	KeepOpen  bool
	NoDNS     bool

	// ── Retry (external to the dial core) ────────────────────────────
	Retries   int // extra connect attempts after the first failure
	RetryWait time.Duration

	// ── SSH jump host ────────────────────────────────────────────────
	JumpSpec       string // raw user@host[:port] from -J
	JumpEnabled    bool
	JumpUser       string
	JumpHost       string
	JumpPort       int
	SSHKeyPath     string
	SSHPassword    bool // true → prompt interactively
	UseSSHAgent    bool
	StrictHostKey  bool
	KnownHostsPath string

	// ── SOCKS5 proxy ─────────────────────────────────────────────────
	ProxyAddr string // host:port of a SOCKS5 server

	// ── Output ───────────────────────────────────────────────────────
	Verbose int
	Hexdump bool // dump received bytes instead of relaying to stdout
}

// ── Errors ───────────────────────────────────────────────────────────

// ConfigError represents an invalid configuration value.
type ConfigError struct {
	Field   string // flag name
	Message string // human-readable explanation
	Hint    string // suggestion for the user (optional)
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("config: --%s: %s", e.Field, e.Message)
	if e.Hint != "" {
		msg += "\n  hint: " + e.Hint
	}
	return msg
}

// ── Port specs ───────────────────────────────────────────────────────

// PortSpec is one destination port argument: either a service name
// ("http") resolved at dial time, or an inclusive numeric range.
type PortSpec struct {
	Service string // set for service names; Start/End are then unused
	Start   int
	End     int
}

// Expand returns every port in the spec as a dialable string.
func (ps PortSpec) Expand() []string {
	if ps.Service != "" {
		return []string{ps.Service}
	}
	out := make([]string, 0, ps.End-ps.Start+1)
	for p := ps.Start; p <= ps.End; p++ {
		out = append(out, strconv.Itoa(p))
	}
	return out
}

// AllPorts flattens every PortSpec into a single slice.
func (c *Config) AllPorts() []string {
	var out []string
	for _, ps := range c.Ports {
		out = append(out, ps.Expand()...)
	}
	return out
}

// serviceNameRe matches IANA-style service names ("http", "domain-s").
var serviceNameRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9*+._-]*$`)

// ParsePortSpec accepts "80", "80-90", or a service name like "http".
// Whether a service name actually resolves is decided by the system
// services database at dial time, not here.
func ParsePortSpec(spec string) (PortSpec, error) {
	if spec == "" {
		return PortSpec{}, fmt.Errorf("empty port spec")
	}

	if serviceNameRe.MatchString(spec) {
		return PortSpec{Service: spec}, nil
	}

	if strings.Contains(spec, "-") {
		parts := strings.SplitN(spec, "-", 2)
		start, err := strconv.Atoi(parts[0])
		if err != nil {
			return PortSpec{}, fmt.Errorf("invalid port range start %q", parts[0])
		}
		end, err := strconv.Atoi(parts[1])
		if err != nil {
			return PortSpec{}, fmt.Errorf("invalid port range end %q", parts[1])
		}
		if start < 1 || end > 65535 || start > end {
			return PortSpec{}, fmt.Errorf("invalid port range %d-%d", start, end)
		}
		return PortSpec{Start: start, End: end}, nil
	}

	port, err := strconv.Atoi(spec)
	if err != nil {
		return PortSpec{}, fmt.Errorf("invalid port %q", spec)
	}
	if port < 1 || port > 65535 {
		return PortSpec{}, fmt.Errorf("port %d out of range 1-65535", port)
	}
	return PortSpec{Start: port, End: port}, nil
}

// ── Jump-spec parser ─────────────────────────────────────────────────

// jumpRe matches [user@]host[:port].
var jumpRe = regexp.MustCompile(`^(?:([^@]+)@)?([^:]+)(?::(\d+))?$`)

// ParseJumpSpec extracts user, host, and port from a string such as
// "admin@bastion.example.com:2222".  Port defaults to 22.
func ParseJumpSpec(spec string) (user, host string, port int, err error) {
	m := jumpRe.FindStringSubmatch(spec)
	if m == nil {
		return "", "", 0, fmt.Errorf("invalid jump spec %q – expected [user@]host[:port]", spec)
	}
	user = m[1]
	host = m[2]
	port = DefaultSSHPort
	if m[3] != "" {
		port, err = strconv.Atoi(m[3])
		if err != nil || port < 1 || port > 65535 {
			return "", "", 0, fmt.Errorf("invalid jump port %q", m[3])
		}
	}
	if host == "" {
		return "", "", 0, fmt.Errorf("jump host is required")
	}
	return user, host, port, nil
}

// ── Validation ───────────────────────────────────────────────────────

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Listen {
		if c.LocalPort == 0 {
			return &ConfigError{
				Field:   "port",
				Message: "listen mode requires a local port",
				Hint:    "use -l -p <port>",
			}
		}
		if c.Probe {
			return &ConfigError{
				Field:   "probe",
				Message: "listen mode and probe mode are mutually exclusive",
			}
		}
		if c.JumpEnabled {
			return &ConfigError{
				Field:   "jump",
				Message: "listen mode through an SSH jump host is not supported",
			}
		}
	} else {
		// An empty Host is legal: the dial core hands it to the
		// platform resolver, which decides what it means.  A missing
		// host argument is caught at flag-parse time instead.
		if c.Port == "" && len(c.Ports) == 0 {
			return &ConfigError{
				Field:   "port",
				Message: "destination port or service name is required",
			}
		}
	}

	if c.JumpEnabled && c.ProxyAddr != "" {
		return &ConfigError{
			Field:   "proxy",
			Message: "-J and --proxy are mutually exclusive",
			Hint:    "chain through the jump host or the proxy, not both",
		}
	}

	if c.JumpEnabled && c.JumpHost == "" {
		return &ConfigError{Field: "jump", Message: "jump host is required"}
	}

	if c.Retries < 0 {
		return &ConfigError{Field: "retry", Message: "retry count cannot be negative"}
	}

	if c.NoDNS && c.Host != "" {
		// Fail early instead of at dial time.
		if !looksNumericHost(c.Host) {
			return &ConfigError{
				Field:   "no-dns",
				Message: fmt.Sprintf("cannot parse %q as an IP address", c.Host),
				Hint:    "drop -n or use a numeric address",
			}
		}
	}

	return nil
}

// looksNumericHost is a cheap syntactic check; the authoritative parse
// happens in util.LiteralIPAddrs at dial time.
func looksNumericHost(host string) bool {
	for _, r := range host {
		if (r >= '0' && r <= '9') || r == '.' || r == ':' ||
			(r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F') || r == '%' {
			continue
		}
		return false
	}
	return true
}
