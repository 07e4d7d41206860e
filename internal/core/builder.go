package core

import (
	"net"
	"strconv"

	"tcpdial/config"
	"tcpdial/internal/capability"
	"tcpdial/internal/metrics"
	"tcpdial/internal/transport"
	"tcpdial/tunnel"
	"tcpdial/util"
)

// Build constructs the appropriate Mode from the given configuration.
// The metrics collector may be nil.
func Build(cfg *config.Config, logger *util.Logger, mtr *metrics.Collector) (Mode, error) {
	switch {
	case cfg.Listen:
		return buildListen(cfg, logger, mtr)
	case cfg.Probe:
		return buildProbe(cfg, logger, mtr)
	default:
		return buildConnect(cfg, logger, mtr)
	}
}

// ── mode builders ────────────────────────────────────────────────────

func buildConnect(cfg *config.Config, logger *util.Logger, mtr *metrics.Collector) (Mode, error) {
	return &ConnectMode{
		Dialer:     buildDialer(cfg, logger, mtr),
		Capability: buildCapability(cfg),
		Host:       cfg.Host,
		Port:       cfg.Port,
		Retries:    cfg.Retries,
		RetryWait:  cfg.RetryWait,
		Timeout:    cfg.Timeout,
		Logger:     logger,
		Metrics:    mtr,
	}, nil
}

func buildListen(cfg *config.Config, logger *util.Logger, mtr *metrics.Collector) (Mode, error) {
	// Bind loopback unless the user named an address; exposing the
	// listener on all interfaces must be an explicit choice.
	host := cfg.Host
	if host == "" {
		host = config.DefaultLocalAddress
	}
	return &ListenMode{
		Address:    net.JoinHostPort(host, strconv.Itoa(cfg.LocalPort)),
		KeepOpen:   cfg.KeepOpen,
		Timeout:    cfg.Timeout,
		Capability: buildCapability(cfg),
		Logger:     logger,
		Metrics:    mtr,
	}, nil
}

func buildProbe(cfg *config.Config, logger *util.Logger, mtr *metrics.Collector) (Mode, error) {
	ports := cfg.AllPorts()
	if len(ports) == 0 && cfg.Port != "" {
		ports = []string{cfg.Port}
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = config.DefaultProbeTimeout
	}

	return &ProbeMode{
		Dialer:  buildDialer(cfg, logger, mtr),
		Host:    cfg.Host,
		Ports:   ports,
		Timeout: timeout,
		Logger:  logger,
		Verbose: cfg.Verbose,
		Metrics: mtr,
	}, nil
}

// ── shared helpers ───────────────────────────────────────────────────

// buildDialer creates the right transport.Dialer for the given config.
func buildDialer(cfg *config.Config, logger *util.Logger, mtr *metrics.Collector) transport.Dialer {
	switch {
	case cfg.JumpEnabled:
		return transport.NewSSHDialer(&tunnel.SSHConfig{
			User:          cfg.JumpUser,
			Host:          cfg.JumpHost,
			Port:          cfg.JumpPort,
			KeyPath:       cfg.SSHKeyPath,
			PromptPass:    cfg.SSHPassword,
			UseAgent:      cfg.UseSSHAgent,
			StrictHostKey: cfg.StrictHostKey,
			KnownHosts:    cfg.KnownHostsPath,
			ConnTimeout:   config.DefaultSSHConnTimeout,
		}, logger)

	case cfg.ProxyAddr != "":
		return &transport.SOCKS5Dialer{
			ProxyAddr: cfg.ProxyAddr,
			Logger:    logger,
		}

	default:
		return &transport.TCPDialer{
			NumericOnly: cfg.NoDNS,
			Metrics:     mtr,
		}
	}
}

// buildCapability selects the per-connection behaviour.
func buildCapability(cfg *config.Config) capability.Capability {
	if cfg.Hexdump {
		return &capability.Hexdump{}
	}
	return &capability.Relay{}
}
