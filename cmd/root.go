// Package cmd wires up the CLI flags and dispatches to the core
// mode builder.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	flag "github.com/spf13/pflag"

	"tcpdial/config"
	"tcpdial/internal/core"
	"tcpdial/internal/metrics"
	"tcpdial/util"
)

// version is overridable at link time:
//
//	go build -ldflags "-X tcpdial/cmd.version=2.0.0"
var version = "1.0.0" //nolint:gochecknoglobals

// Execute parses args and runs the appropriate tcpdial mode.
func Execute(ctx context.Context, args []string) error {
	cfg := &config.Config{}
	config.LoadFromEnv(cfg)

	fs := flag.NewFlagSet("tcpdial", flag.ContinueOnError)

	// ── connection ───────────────────────────────────────────────
	fs.BoolVarP(&cfg.Listen, "listen", "l", cfg.Listen, "Listen mode")
	fs.IntVarP(&cfg.LocalPort, "port", "p", cfg.LocalPort, "Local port number")
	fs.BoolVarP(&cfg.NoDNS, "no-dns", "n", cfg.NoDNS, "Numeric-only, no DNS resolution")
	fs.BoolVarP(&cfg.KeepOpen, "keep-open", "k", cfg.KeepOpen, "Accept multiple connections (with -l)")
	fs.BoolVarP(&cfg.Probe, "probe", "z", cfg.Probe, "Probe mode: report reachability, no I/O")

	var timeoutSec int
	fs.IntVarP(&timeoutSec, "timeout", "w", 0, "Per-attempt timeout in seconds")

	fs.IntVar(&cfg.Retries, "retry", cfg.Retries, "Extra connect attempts after a retryable failure")
	fs.DurationVar(&cfg.RetryWait, "retry-wait", cfg.RetryWait, "Initial wait between retries")

	// ── routing ──────────────────────────────────────────────────
	fs.StringVarP(&cfg.JumpSpec, "jump", "J", cfg.JumpSpec, "SSH jump host as [user@]host[:port]")
	fs.StringVar(&cfg.SSHKeyPath, "ssh-key", cfg.SSHKeyPath, "SSH private key file")
	fs.BoolVar(&cfg.SSHPassword, "ssh-password", cfg.SSHPassword, "Prompt for SSH password")
	fs.BoolVar(&cfg.UseSSHAgent, "ssh-agent", cfg.UseSSHAgent, "Use SSH agent")
	fs.BoolVar(&cfg.StrictHostKey, "strict-hostkey", cfg.StrictHostKey, "Verify SSH host keys")
	fs.StringVar(&cfg.KnownHostsPath, "known-hosts", cfg.KnownHostsPath, "Custom known_hosts path")
	fs.StringVar(&cfg.ProxyAddr, "proxy", cfg.ProxyAddr, "SOCKS5 proxy as host:port")

	// ── output ───────────────────────────────────────────────────
	fs.CountVarP(&cfg.Verbose, "verbose", "v", "Increase verbosity (repeatable)")
	fs.BoolVar(&cfg.Hexdump, "hex", cfg.Hexdump, "Hex-dump received bytes")

	var showStats, showVersion, showHelp bool
	fs.BoolVar(&showStats, "stats", false, "Print transfer statistics on exit")
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVarP(&showHelp, "help", "h", false, "Show this help")

	fs.Usage = func() { printUsage(fs) }

	// ── parse ────────────────────────────────────────────────────
	if err := fs.Parse(args); err != nil {
		return err
	}

	if showHelp || len(args) == 0 {
		printUsage(fs)
		return nil
	}
	if showVersion {
		fmt.Printf("tcpdial %s\n", version)
		return nil
	}

	if timeoutSec > 0 {
		cfg.Timeout = time.Duration(timeoutSec) * time.Second
	}
	if cfg.Retries > 0 && cfg.RetryWait == 0 {
		cfg.RetryWait = config.DefaultRetryWait
	}

	// ── positional arguments ─────────────────────────────────────
	if err := parsePositional(cfg, fs.Args()); err != nil {
		return err
	}

	// ── jump spec ────────────────────────────────────────────────
	if cfg.JumpSpec != "" {
		user, host, port, err := config.ParseJumpSpec(cfg.JumpSpec)
		if err != nil {
			return fmt.Errorf("jump: %w", err)
		}
		cfg.JumpEnabled = true
		cfg.JumpUser = user
		cfg.JumpHost = host
		cfg.JumpPort = port
	}

	// ── validate ─────────────────────────────────────────────────
	if err := cfg.Validate(); err != nil {
		return err
	}

	// ── build and run ────────────────────────────────────────────
	logger := util.NewLogger(cfg.Verbose)

	var mtr *metrics.Collector
	if showStats || cfg.Verbose >= int(util.LogDebug) {
		mtr = metrics.New()
	}

	mode, err := core.Build(cfg, logger, mtr)
	if err != nil {
		return err
	}

	runErr := mode.Run(ctx)
	if mtr != nil {
		fmt.Fprintln(os.Stderr, mtr.JSON())
	}
	return runErr
}

// ── helpers ──────────────────────────────────────────────────────────

func parsePositional(cfg *config.Config, remaining []string) error {
	if cfg.Listen {
		switch len(remaining) {
		case 0: // tcpdial -l -p PORT
		case 1:
			cfg.Host = remaining[0]
		case 2:
			cfg.Host = remaining[0]
			pr, err := config.ParsePortSpec(remaining[1])
			if err != nil {
				return fmt.Errorf("port: %w", err)
			}
			cfg.Port = firstPort(pr)
		default:
			return fmt.Errorf("too many arguments for listen mode")
		}
		return nil
	}

	// Connect / probe mode: host port [port …]
	if len(remaining) < 1 {
		return fmt.Errorf("hostname required (use --help for usage)")
	}
	cfg.Host = remaining[0]

	if len(remaining) < 2 {
		return fmt.Errorf("port required")
	}

	for _, arg := range remaining[1:] {
		pr, err := config.ParsePortSpec(arg)
		if err != nil {
			return fmt.Errorf("port %q: %w", arg, err)
		}
		cfg.Ports = append(cfg.Ports, pr)
	}
	cfg.Port = firstPort(cfg.Ports[0])
	return nil
}

// firstPort renders the first port of a spec as a dial-ready string.
func firstPort(pr config.PortSpec) string {
	if pr.Service != "" {
		return pr.Service
	}
	return strconv.Itoa(pr.Start)
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `tcpdial – TCP connection tool v%s

Dials TCP endpoints by name, with SSH jump hosts, SOCKS5 proxies,
reachability probes, and a listen mode.

Usage:
  tcpdial [options] <host> <port>             Connect
  tcpdial -l -p <port> [options]              Listen
  tcpdial -z [options] <host> <ports...>      Probe
  tcpdial -J user@bastion <host> <port>       Jump host

Options:
`, version)
	fs.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Examples:
  tcpdial example.com 80                      TCP connect
  tcpdial example.com https                   Service-name port
  tcpdial -l -p 8080 -k                       Listen on 8080
  tcpdial -vz host.example.com 20-25 80 443   Reachability probe
  tcpdial -J admin@bastion db-internal 5432   Via SSH jump host
  tcpdial --proxy 127.0.0.1:1080 host 443     Via SOCKS5
  echo "hello" | tcpdial host.example.com 9000
`)
}
