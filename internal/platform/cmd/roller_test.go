package cmd

import (
	"context"
	"flag"
	"testing"

	"github.com/louisbranch/dicebag/internal/core/roller"
)

func TestRollerConfigDefaultsAndFlags(t *testing.T) {
	var cfg struct {
		Roller RollerConfig
	}
	if err := ParseConfig(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Roller.MaxDice != 100 || cfg.Roller.MaxSides != 1000 {
		t.Fatalf("unexpected defaults %+v", cfg.Roller)
	}

	fs := flag.NewFlagSet("roll", flag.ContinueOnError)
	cfg.Roller.BindFlags(fs)
	if err := ParseArgs(fs, []string{"-max-dice", "2"}); err != nil {
		t.Fatalf("parse args: %v", err)
	}
	if got := cfg.Roller.Limits(); got != (roller.Limits{MaxDice: 2, MaxSides: 1000}) {
		t.Fatalf("limits = %+v", got)
	}

	if _, err := cfg.Roller.Roller().Roll(context.Background(), roller.Request{Notation: "3d6"}); err == nil {
		t.Fatal("expected limit error for 3d6")
	}
}

func TestRollerConfigFromEnv(t *testing.T) {
	t.Setenv("DICEBAG_MAX_SIDES", "8")
	var cfg RollerConfig
	if err := ParseConfig(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.MaxSides != 8 {
		t.Fatalf("MaxSides = %d, want 8", cfg.MaxSides)
	}
}
