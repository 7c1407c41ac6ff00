// Package dice parses dice command flags and starts the gRPC dice service.
package dice

import (
	"context"
	"flag"

	entrypoint "github.com/louisbranch/dicebag/internal/platform/cmd"
	"github.com/louisbranch/dicebag/internal/services/dice/app"
)

// Config holds dice command configuration.
type Config struct {
	Addr   string `env:"DICE_LISTEN_ADDR" envDefault:"localhost:8082"`
	Roller entrypoint.RollerConfig
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "The dice server listen address")
	cfg.Roller.BindFlags(fs)
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the dice gRPC service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceDice, func(ctx context.Context) error {
		return app.Run(ctx, cfg.Addr, cfg.Roller.Roller())
	})
}
