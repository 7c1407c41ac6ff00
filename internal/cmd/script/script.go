// Package script parses script command flags and runs a Lua roll script.
package script

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	entrypoint "github.com/louisbranch/dicebag/internal/platform/cmd"
	"github.com/louisbranch/dicebag/internal/platform/timeouts"
	"github.com/louisbranch/dicebag/internal/services/dice/client"
	"github.com/louisbranch/dicebag/internal/services/script"
)

// Config holds script command configuration.
type Config struct {
	DiceAddr string        `env:"DICE_ADDR"`
	Locale   string        `env:"LOCALE"         envDefault:"en-US"`
	Timeout  time.Duration `env:"SCRIPT_TIMEOUT"`
	JSON     bool          `env:"SCRIPT_JSON"`
	Roller   entrypoint.RollerConfig

	Path string
}

// ParseConfig parses environment and flags into a Config. The script path is
// the first remaining argument.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Config{Timeout: timeouts.Script}
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DiceAddr, "addr", cfg.DiceAddr, "dice service address (empty rolls in-process)")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale for error messages (en-US, pt-BR)")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "maximum run time of the script")
	fs.BoolVar(&cfg.JSON, "json", cfg.JSON, "print output, rolls and return value as JSON")
	cfg.Roller.BindFlags(fs)
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if fs.NArg() != 1 {
		return Config{}, errors.New("exactly one script path is required")
	}
	cfg.Path = fs.Arg(0)
	return cfg, nil
}

// Run executes the configured script and writes its output to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceScript, func(ctx context.Context) error {
		dice, err := client.Open(ctx, cfg.DiceAddr, cfg.Locale, cfg.Roller.Roller())
		if err != nil {
			return err
		}
		defer dice.Close()

		runner := script.NewRunner(dice, script.WithTimeout(cfg.Timeout), script.WithLocale(cfg.Locale))
		result, err := runner.RunFile(ctx, cfg.Path)
		if err != nil {
			return err
		}
		if cfg.JSON {
			return writeJSON(out, result)
		}
		for _, line := range result.Output {
			if _, err := fmt.Fprintln(out, line); err != nil {
				return err
			}
		}
		if result.Value != "" {
			_, err = fmt.Fprintf(out, "=> %s\n", result.Value)
		}
		return err
	})
}

func writeJSON(out io.Writer, result script.Result) error {
	rolls := make([]any, 0, len(result.Rolls))
	for _, roll := range result.Rolls {
		st, err := roll.ToStruct()
		if err != nil {
			return err
		}
		rolls = append(rolls, st.AsMap())
	}
	payload := map[string]any{
		"output": result.Output,
		"rolls":  rolls,
	}
	if result.Value != "" {
		payload["value"] = result.Value
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
