package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	rollcmd "github.com/louisbranch/dicebag/internal/cmd/roll"
	"github.com/louisbranch/dicebag/internal/platform/cmd"
	"github.com/louisbranch/dicebag/internal/platform/config"
	"github.com/louisbranch/dicebag/internal/services/dice/client"
)

// main rolls the notation given on the command line.
func main() {
	cfg, err := rollcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix(cmd.LogPrefix(cmd.ServiceRoll))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rollcmd.Run(ctx, cfg, os.Stdout); err != nil {
		log.Fatalf("%s", client.UserMessage(err, cfg.Locale))
	}
}
