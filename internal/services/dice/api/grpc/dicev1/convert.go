package dicev1

import (
	"github.com/louisbranch/dicebag/internal/core/dice"
	"github.com/louisbranch/dicebag/internal/core/notation"
	"github.com/louisbranch/dicebag/internal/core/roller"
)

// RollerRequest maps a wire request onto a roller request.
func (r *RollRequest) RollerRequest() roller.Request {
	return roller.Request{
		Notation:   r.Notation,
		Seed:       r.Seed,
		PlusHalf:   r.PlusHalf,
		Difficulty: r.Difficulty,
	}
}

// NewRollResponse builds the wire form of a resolved roll.
func NewRollResponse(outcome roller.Outcome) *RollResponse {
	roll := outcome.Roll
	kept := make(map[*dice.Die]bool, len(roll.Kept()))
	for _, die := range roll.Kept() {
		kept[die] = true
	}

	resp := &RollResponse{
		Notation: outcome.Spec.String(),
		Sum:      roll.Sum(),
		Total:    roll.Total(),
		ThrowMod: roll.Modifier(),
		Faces:    roll.Faces(),
		Dropped:  roll.DroppedFaces(),
		Dice:     make([]DieResult, 0, len(roll.Dice())),
		Rng: RngResult{
			SeedUsed:   outcome.Rng.Seed,
			SeedSource: string(outcome.Rng.Source),
			Algorithm:  outcome.Rng.Algorithm,
		},
		Text: roll.String(),
	}
	for _, die := range roll.Dice() {
		raw, _ := die.Raw()
		result, _ := die.Result()
		resp.Dice = append(resp.Dice, DieResult{
			Name:   die.Name(),
			Raw:    raw,
			Result: result,
			Kept:   kept[die],
		})
	}
	if outcome.Check != nil {
		resp.Check = &CheckResult{
			Difficulty: outcome.Check.Difficulty,
			Success:    outcome.Check.Success,
			Margin:     outcome.Check.Margin,
		}
	}
	return resp
}

// NewParseResponse builds the wire form of parsed notation.
func NewParseResponse(spec notation.Spec) *ParseResponse {
	return &ParseResponse{
		Notation:      spec.String(),
		Dice:          spec.Dice,
		Sides:         spec.Sides,
		KeepDirection: spec.Keep.Direction.String(),
		KeepCount:     spec.Keep.Count,
		Modifier:      spec.Modifier,
		MinTotal:      spec.MinTotal(),
		MaxTotal:      spec.MaxTotal(),
	}
}
