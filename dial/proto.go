package dial

import (
	"bufio"
	"os"
	"strconv"
	"strings"
	"sync"
)

// protocolsFile is the system protocol database on POSIX hosts.
const protocolsFile = "/etc/protocols"

// builtinProtocols covers hosts without a readable protocol database
// (the handful of numbers every IP stack hard-codes anyway).
var builtinProtocols = map[string]int{
	"ip":   0,
	"icmp": 1,
	"tcp":  6,
	"udp":  17,
	"ipv6": 41,
}

var (
	protoOnce sync.Once
	protoMap  map[string]int
)

// lookupProtocolNumber returns the numeric identifier registered for a
// protocol name, consulting /etc/protocols first and falling back to
// the built-in table. The name match is case-insensitive and includes
// aliases, like getprotobyname(3).
func lookupProtocolNumber(name string) (int, error) {
	protoOnce.Do(loadProtocols)

	if n, ok := protoMap[strings.ToLower(name)]; ok {
		return n, nil
	}
	return 0, ErrProtocolUnavailable
}

// loadProtocols parses the protocol database once per process. The
// database is read-only, process-global system state; there is no
// reason to re-read it per dial.
func loadProtocols() {
	protoMap = make(map[string]int, len(builtinProtocols))
	for name, n := range builtinProtocols {
		protoMap[name] = n
	}

	f, err := os.Open(protocolsFile)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		// Format: name number [alias...]
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		num, err := strconv.Atoi(fields[1])
		if err != nil {
			continue
		}
		protoMap[strings.ToLower(fields[0])] = num
		for _, alias := range fields[2:] {
			protoMap[strings.ToLower(alias)] = num
		}
	}
}
