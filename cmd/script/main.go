package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	scriptcmd "github.com/louisbranch/dicebag/internal/cmd/script"
	"github.com/louisbranch/dicebag/internal/platform/cmd"
	"github.com/louisbranch/dicebag/internal/platform/config"
	"github.com/louisbranch/dicebag/internal/services/dice/client"
)

// main runs a Lua roll script.
func main() {
	cfg, err := scriptcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix(cmd.LogPrefix(cmd.ServiceScript))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := scriptcmd.Run(ctx, cfg, os.Stdout); err != nil {
		log.Fatalf("%s", client.UserMessage(err, cfg.Locale))
	}
}
