package config

// loader.go - configuration loading from environment variables.
//
// Precedence order (highest wins):
//   1. CLI flags  (handled by cmd/root.go)
//   2. Environment variables  (this file)
//   3. Defaults   (defaults.go)

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ── Environment variable mapping ─────────────────────────────────────
//
// Every supported env var uses the TCPDIAL_ prefix.  Boolean values
// accept "1", "true", "yes" (case-insensitive).

// LoadFromEnv overlays environment variables onto cfg.  Only non-empty
// env vars override the existing value.  This should be called BEFORE
// CLI flag parsing so that flags take precedence.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("TCPDIAL_HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("TCPDIAL_PORT"); v != "" {
		cfg.Port = v
	}
	if v := envInt("TCPDIAL_LOCAL_PORT"); v > 0 {
		cfg.LocalPort = v
	}
	if envBool("TCPDIAL_LISTEN") {
		cfg.Listen = true
	}
	if envBool("TCPDIAL_NO_DNS") {
		cfg.NoDNS = true
	}
	if envBool("TCPDIAL_KEEP_OPEN") {
		cfg.KeepOpen = true
	}
	if v := envInt("TCPDIAL_TIMEOUT"); v > 0 {
		cfg.Timeout = secondsDuration(v)
	}

	// Retry
	if v := envInt("TCPDIAL_RETRIES"); v > 0 {
		cfg.Retries = v
	}
	if v := envInt("TCPDIAL_RETRY_WAIT"); v > 0 {
		cfg.RetryWait = secondsDuration(v)
	}

	// SSH jump host
	if v := os.Getenv("TCPDIAL_JUMP"); v != "" {
		cfg.JumpSpec = v
	}
	if v := os.Getenv("TCPDIAL_SSH_KEY"); v != "" {
		cfg.SSHKeyPath = v
	}
	if envBool("TCPDIAL_SSH_PASSWORD") {
		cfg.SSHPassword = true
	}
	if envBool("TCPDIAL_SSH_AGENT") {
		cfg.UseSSHAgent = true
	}
	if envBool("TCPDIAL_STRICT_HOSTKEY") {
		cfg.StrictHostKey = true
	}
	if v := os.Getenv("TCPDIAL_KNOWN_HOSTS"); v != "" {
		cfg.KnownHostsPath = v
	}

	// SOCKS5 proxy
	if v := os.Getenv("TCPDIAL_PROXY"); v != "" {
		cfg.ProxyAddr = v
	}

	// Output
	if v := envInt("TCPDIAL_VERBOSE"); v > 0 {
		cfg.Verbose = v
	}
	if envBool("TCPDIAL_HEXDUMP") {
		cfg.Hexdump = true
	}
}

// ── helpers ──────────────────────────────────────────────────────────

func envInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "1" || v == "true" || v == "yes"
}

func secondsDuration(sec int) time.Duration {
	return time.Duration(sec) * time.Second
}
