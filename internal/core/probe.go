package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"tcpdial/config"
	"tcpdial/dial"
	"tcpdial/internal/metrics"
	"tcpdial/internal/retry"
	"tcpdial/internal/transport"
	"tcpdial/util"
)

// ProbeResult records the reachability of a single port.
type ProbeResult struct {
	Port string
	Open bool
	Err  error
}

// ProbeMode checks a set of TCP ports on a target host for
// reachability without transferring any data (-z).  A circuit
// breaker trips the sweep short when the host is clearly down, so a
// wide range does not mean one timeout per port.
type ProbeMode struct {
	Dialer  transport.Dialer
	Host    string
	Ports   []string
	Timeout time.Duration
	Logger  *util.Logger
	Verbose int
	Metrics *metrics.Collector
}

// Run probes all configured ports and logs the results.  The
// underlying transport is closed when Run returns.
func (m *ProbeMode) Run(ctx context.Context) error {
	defer m.Dialer.Close()

	if len(m.Ports) == 0 {
		return fmt.Errorf("no ports specified for probing")
	}

	timeout := m.Timeout
	if timeout == 0 {
		timeout = config.DefaultProbeTimeout
	}

	m.Logger.Verbose("probing %s - %d port(s)", m.Host, len(m.Ports))

	results := m.probePorts(ctx, timeout)

	open := 0
	for _, r := range results {
		if r.Open {
			open++
			m.Logger.Info("%s %s/tcp open", m.Host, r.Port)
		} else if m.Verbose >= 2 {
			m.Logger.Verbose("%s %s/tcp closed - %v", m.Host, r.Port, r.Err)
		}
	}

	if open == 0 && m.Verbose >= 1 {
		m.Logger.Info("no open ports found on %s", m.Host)
	}
	return nil
}

// probePorts checks every port concurrently and returns results in
// the same order as the input slice.
func (m *ProbeMode) probePorts(ctx context.Context, timeout time.Duration) []ProbeResult {
	results := make([]ProbeResult, len(m.Ports))
	sem := make(chan struct{}, config.DefaultMaxConcurrentProbes)
	var wg sync.WaitGroup

	breaker := retry.NewCircuitBreaker(&retry.CircuitBreakerConfig{
		MaxFailures:  config.DefaultProbeFailureThreshold,
		ResetTimeout: timeout,
		OnStateChange: func(from, to retry.State) {
			if to == retry.StateOpen {
				m.Logger.Warn("%s looks down, short-circuiting remaining probes", m.Host)
			}
		},
	})

	for i, port := range m.Ports {
		wg.Add(1)
		go func(idx int, p string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			// A refused connection is a definitive answer from a
			// live host, so it does not count against the breaker.
			// Timeouts and unreachable errors do.
			var dialErr error
			err := breaker.Execute(func() error {
				probeCtx, cancel := context.WithTimeout(ctx, timeout)
				defer cancel()

				conn, err := m.Dialer.Dial(probeCtx, m.Host, p)
				if err != nil {
					dialErr = err
					if errors.Is(err, dial.ErrNotConnected) {
						return nil
					}
					return err
				}
				conn.Close()
				return nil
			})
			switch {
			case err != nil:
				m.Metrics.RecordError(err.Error())
				results[idx] = ProbeResult{Port: p, Open: false, Err: err}
			case dialErr != nil:
				results[idx] = ProbeResult{Port: p, Open: false, Err: dialErr}
			default:
				results[idx] = ProbeResult{Port: p, Open: true}
			}
		}(i, port)
	}

	wg.Wait()
	return results
}
