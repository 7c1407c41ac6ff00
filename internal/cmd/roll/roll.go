// Package roll parses roll command flags and prints one resolved roll.
package roll

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	entrypoint "github.com/louisbranch/dicebag/internal/platform/cmd"
	"github.com/louisbranch/dicebag/internal/services/dice/api/grpc/dicev1"
	"github.com/louisbranch/dicebag/internal/services/dice/client"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds roll command configuration.
type Config struct {
	DiceAddr string `env:"DICE_ADDR"`
	Locale   string `env:"LOCALE"      envDefault:"en-US"`
	Format   string `env:"ROLL_FORMAT" envDefault:"text"`
	Seed     string `env:"SEED"`
	Roller   entrypoint.RollerConfig

	Difficulty string
	PlusHalf   bool
	ParseOnly  bool
	Notation   string
}

// ParseConfig parses environment and flags into a Config. The notation is
// the remaining arguments joined by spaces.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DiceAddr, "addr", cfg.DiceAddr, "dice service address (empty rolls in-process)")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale for error messages (en-US, pt-BR)")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "output format: text or json")
	fs.StringVar(&cfg.Seed, "seed", cfg.Seed, "seed to replay a roll (empty = random)")
	fs.StringVar(&cfg.Difficulty, "difficulty", "", "target the total must meet or beat")
	fs.BoolVar(&cfg.PlusHalf, "plus-half", false, "add a half die (d6 halved, rounded down)")
	fs.BoolVar(&cfg.ParseOnly, "parse", false, "validate the notation without rolling")
	cfg.Roller.BindFlags(fs)
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}

	cfg.Notation = strings.TrimSpace(strings.Join(fs.Args(), " "))
	if cfg.Notation == "" {
		return Config{}, errors.New("notation is required, e.g. roll 3d6+1")
	}
	switch cfg.Format {
	case FormatText, FormatJSON:
	default:
		return Config{}, fmt.Errorf("format %q is not supported", cfg.Format)
	}
	return cfg, nil
}

// RollRequest builds the dice request described by cfg.
func (cfg Config) RollRequest() (*dicev1.RollRequest, error) {
	req := &dicev1.RollRequest{Notation: cfg.Notation, PlusHalf: cfg.PlusHalf}
	if s := strings.TrimSpace(cfg.Seed); s != "" {
		seed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("seed %q is not an integer", cfg.Seed)
		}
		req.Seed = &seed
	}
	if d := strings.TrimSpace(cfg.Difficulty); d != "" {
		difficulty, err := strconv.Atoi(d)
		if err != nil {
			return nil, fmt.Errorf("difficulty %q is not an integer", cfg.Difficulty)
		}
		req.Difficulty = &difficulty
	}
	return req, nil
}

// Run rolls (or parses) the configured notation and writes the result to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceRoll, func(ctx context.Context) error {
		return run(ctx, cfg, out)
	})
}

func run(ctx context.Context, cfg Config, out io.Writer) error {
	dice, err := client.Open(ctx, cfg.DiceAddr, cfg.Locale, cfg.Roller.Roller())
	if err != nil {
		return err
	}
	defer dice.Close()

	if cfg.ParseOnly {
		resp, err := dice.Parse(ctx, &dicev1.ParseRequest{Notation: cfg.Notation})
		if err != nil {
			return err
		}
		if cfg.Format == FormatJSON {
			return writeJSON(out, resp.ToStruct)
		}
		_, err = fmt.Fprintln(out, FormatParse(resp))
		return err
	}

	req, err := cfg.RollRequest()
	if err != nil {
		return err
	}
	resp, err := dice.Roll(ctx, req)
	if err != nil {
		return err
	}
	if cfg.Format == FormatJSON {
		return writeJSON(out, resp.ToStruct)
	}
	_, err = fmt.Fprintln(out, FormatRoll(resp))
	return err
}

// FormatRoll renders a roll for a terminal.
func FormatRoll(resp *dicev1.RollResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", resp.Notation, resp.Text)
	fmt.Fprintf(&b, "seed %d (%s, %s)", resp.Rng.SeedUsed, resp.Rng.SeedSource, resp.Rng.Algorithm)
	if resp.Check != nil {
		outcome := "failure"
		if resp.Check.Success {
			outcome = "success"
		}
		fmt.Fprintf(&b, "\ndifficulty %d: %s (margin %+d)", resp.Check.Difficulty, outcome, resp.Check.Margin)
	}
	return b.String()
}

// FormatParse renders parsed notation for a terminal.
func FormatParse(resp *dicev1.ParseResponse) string {
	keep := "all dice"
	if resp.KeepCount > 0 {
		keep = fmt.Sprintf("%s %d", resp.KeepDirection, resp.KeepCount)
	}
	return fmt.Sprintf("%s: %d dice of %d sides, keep %s, modifier %+d, totals %d..%d",
		resp.Notation, resp.Dice, resp.Sides, keep, resp.Modifier, resp.MinTotal, resp.MaxTotal)
}

func writeJSON(out io.Writer, encode func() (*structpb.Struct, error)) error {
	st, err := encode()
	if err != nil {
		return err
	}
	data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
