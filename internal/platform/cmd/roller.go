package cmd

import (
	"flag"

	"github.com/louisbranch/dicebag/internal/core/roller"
)

// RollerConfig holds the roll limits shared by commands that roll in-process.
type RollerConfig struct {
	MaxDice  int `env:"MAX_DICE"  envDefault:"100"`
	MaxSides int `env:"MAX_SIDES" envDefault:"1000"`
}

// BindFlags registers the limit flags on fs, defaulting to the current values.
func (c *RollerConfig) BindFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.MaxDice, "max-dice", c.MaxDice, "largest dice count per roll (0 = unlimited)")
	fs.IntVar(&c.MaxSides, "max-sides", c.MaxSides, "largest side count per die (0 = unlimited)")
}

// Limits returns the configured roller limits.
func (c RollerConfig) Limits() roller.Limits {
	return roller.Limits{MaxDice: c.MaxDice, MaxSides: c.MaxSides}
}

// Roller creates a roller enforcing the configured limits.
func (c RollerConfig) Roller() *roller.Roller {
	return roller.New(roller.WithLimits(c.Limits()))
}
