// tcpdial - dial TCP endpoints by name, through jump hosts and
// proxies, with a listen mode and reachability probes.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tcpdial/cmd"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cmd.Execute(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "tcpdial: %v\n", err)
		os.Exit(1)
	}
}
