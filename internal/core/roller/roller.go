// Package roller turns notation into resolved rolls.
//
// It is the only place where the notation parser and the dice model meet: the
// parser hands over a notation.Spec, the roller builds the dice, throws them
// from a seeded source and applies the keep-selector and modifier.
package roller

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/dicebag/internal/core/check"
	"github.com/louisbranch/dicebag/internal/core/dice"
	"github.com/louisbranch/dicebag/internal/core/notation"
	"github.com/louisbranch/dicebag/internal/random"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/louisbranch/dicebag/internal/core/roller"

// ErrTooManyDice indicates a roll asks for more dice than the roller allows.
var ErrTooManyDice = errors.New("roll exceeds the dice limit")

// ErrTooManySides indicates a die has more sides than the roller allows.
var ErrTooManySides = errors.New("die exceeds the sides limit")

// Limits caps the size of a single roll. Zero means unlimited.
type Limits struct {
	MaxDice  int
	MaxSides int
}

// DefaultLimits are the limits of a Roller created without WithLimits.
var DefaultLimits = Limits{MaxDice: 100, MaxSides: 1000}

// Request describes one roll.
type Request struct {
	Notation   string
	Seed       *int64 // Optional; a server seed is generated when nil
	PlusHalf   bool   // Add a half die (d6 halved, rounded down) to the throw
	Difficulty *int   // Optional target for the total
}

// Rng describes the generator used for a roll so it can be replayed.
type Rng struct {
	Seed      int64             `json:"seed_used"`
	Source    random.SeedSource `json:"seed_source"`
	Algorithm string            `json:"rng_algo"`
}

// Outcome is a resolved roll plus everything needed to audit or replay it.
type Outcome struct {
	Spec  notation.Spec
	Roll  *dice.Roll
	Check *check.Result
	Rng   Rng
}

// Roller parses and rolls notation. It is safe for concurrent use: each call
// builds its own source from its own seed.
type Roller struct {
	limits  Limits
	newSeed func() (int64, error)
	tracer  trace.Tracer
}

// Option configures a Roller.
type Option func(*Roller)

// WithLimits replaces DefaultLimits. Limits{} lifts every cap.
func WithLimits(limits Limits) Option {
	return func(r *Roller) {
		r.limits = limits
	}
}

// WithSeedGenerator replaces the crypto/rand seed generator.
func WithSeedGenerator(fn func() (int64, error)) Option {
	return func(r *Roller) {
		r.newSeed = fn
	}
}

// New creates a Roller enforcing DefaultLimits unless WithLimits is given.
func New(opts ...Option) *Roller {
	r := &Roller{
		limits:  DefaultLimits,
		newSeed: random.NewSeed,
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Parse parses text and enforces the roller limits.
func (r *Roller) Parse(text string) (notation.Spec, error) {
	spec, err := notation.Parse(strings.TrimSpace(text))
	if err != nil {
		return notation.Spec{}, err
	}
	if err := r.checkLimits(spec); err != nil {
		return notation.Spec{}, err
	}
	return spec, nil
}

func (r *Roller) checkLimits(spec notation.Spec) error {
	if r.limits.MaxDice > 0 && spec.Dice > r.limits.MaxDice {
		return fmt.Errorf("%d dice, limit %d: %w", spec.Dice, r.limits.MaxDice, ErrTooManyDice)
	}
	if r.limits.MaxSides > 0 && spec.Sides > r.limits.MaxSides {
		return fmt.Errorf("%d sides, limit %d: %w", spec.Sides, r.limits.MaxSides, ErrTooManySides)
	}
	return nil
}

// Roll parses the request notation and rolls it.
//
// # Determinism
//
// Roll is deterministic with respect to Request.Seed: the same notation,
// PlusHalf flag and seed always produce the same Outcome. When Seed is nil a
// seed is generated and reported in Outcome.Rng so the roll can be replayed.
func (r *Roller) Roll(ctx context.Context, req Request) (Outcome, error) {
	_, span := r.tracer.Start(ctx, "roller.Roll", trace.WithAttributes(
		attribute.String("dice.notation", req.Notation),
		attribute.Bool("dice.plus_half", req.PlusHalf),
	))
	defer span.End()

	outcome, err := r.roll(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return Outcome{}, err
	}
	span.SetAttributes(
		attribute.Int64("dice.seed", outcome.Rng.Seed),
		attribute.String("dice.seed_source", string(outcome.Rng.Source)),
		attribute.Int("dice.total", outcome.Roll.Total()),
	)
	return outcome, nil
}

func (r *Roller) roll(req Request) (Outcome, error) {
	spec, err := r.Parse(req.Notation)
	if err != nil {
		return Outcome{}, err
	}

	seed, source, err := random.ResolveSeed(req.Seed, r.newSeed)
	if err != nil {
		return Outcome{}, fmt.Errorf("resolve seed: %w", err)
	}

	roll, err := Build(spec, dice.NewRandSource(seed), req.PlusHalf)
	if err != nil {
		return Outcome{}, err
	}

	result, err := check.Optional(roll.Total(), req.Difficulty)
	if err != nil {
		return Outcome{}, err
	}

	return Outcome{
		Spec:  spec,
		Roll:  roll,
		Check: result,
		Rng: Rng{
			Seed:      seed,
			Source:    source,
			Algorithm: dice.RandAlgorithm,
		},
	}, nil
}

// Build creates the dice described by spec, throws them from src and applies
// the keep-selector and modifier. With plusHalf a half die is appended after
// the notation dice and takes part in keep-selection like any other die.
func Build(spec notation.Spec, src dice.Source, plusHalf bool) (*dice.Roll, error) {
	pool, err := dice.NDX(spec.Dice, spec.Sides)
	if err != nil {
		return nil, err
	}
	if plusHalf {
		pool = append(pool, dice.NewHalfDie())
	}
	throw, err := dice.ThrowNow(src, pool...)
	if err != nil {
		return nil, err
	}
	return dice.NewRoll(throw,
		dice.WithTotalModifier(spec.Modifier),
		dice.WithKeep(spec.Keep),
	)
}
