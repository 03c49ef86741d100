package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"log-analyzer/internal/cmd"
)

func main() {
	// Interrupts stop the aggregation between files
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cmd.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
