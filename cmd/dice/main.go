package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	dicecmd "github.com/louisbranch/dicebag/internal/cmd/dice"
	"github.com/louisbranch/dicebag/internal/platform/cmd"
)

// main starts the dice gRPC service.
func main() {
	cfg, err := dicecmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix(cmd.LogPrefix(cmd.ServiceDice))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := dicecmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
