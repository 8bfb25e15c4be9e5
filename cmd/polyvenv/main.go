// Package main is the entry point for polyvenv.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/polyvenv/cmd/polyvenv/commands"
	"go.trai.ch/polyvenv/internal/app"
	_ "go.trai.ch/polyvenv/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run(opts ...func(*app.Components)) int {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. Initialize application components
	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}
	defer func() { _ = components.Telemetry.Close() }()

	for _, opt := range opts {
		opt(components)
	}

	// 2. Interface - CLI
	cli := commands.New(components)

	// 3. Execution
	if err := cli.Execute(ctx); err != nil {
		if commands.IsStale(err) {
			return 1
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}
