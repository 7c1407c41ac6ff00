package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/dicebag/internal/core/notation"
	"github.com/louisbranch/dicebag/internal/services/dice/api/grpc/dicev1"
	"github.com/louisbranch/dicebag/internal/services/dice/client"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RollDiceInput is the MCP tool input for rolling notation.
type RollDiceInput struct {
	Notation   string `json:"notation" jsonschema:"dice notation such as 3d6+1, 6d6^3 or 4d8v2-2"`
	Seed       *int64 `json:"seed,omitempty" jsonschema:"optional seed to replay a previous roll"`
	PlusHalf   bool   `json:"plus_half,omitempty" jsonschema:"add a half die (d6 halved, rounded down)"`
	Difficulty *int   `json:"difficulty,omitempty" jsonschema:"optional target the total must meet or beat"`
}

// DieResult describes one thrown die.
type DieResult struct {
	Name   string `json:"name" jsonschema:"die label, e.g. Die (d6)"`
	Raw    int    `json:"raw" jsonschema:"face the die landed on"`
	Result int    `json:"result" jsonschema:"face after the die modifier and clamping"`
	Kept   bool   `json:"kept" jsonschema:"whether the die counts toward the sum"`
}

// CheckResult is the comparison against a difficulty.
type CheckResult struct {
	Difficulty int  `json:"difficulty" jsonschema:"target total"`
	Success    bool `json:"success" jsonschema:"true when the total meets or beats the difficulty"`
	Margin     int  `json:"margin" jsonschema:"total minus difficulty"`
}

// RngResult identifies how to replay the roll.
type RngResult struct {
	SeedUsed   int64  `json:"seed_used" jsonschema:"seed value used for the roll"`
	SeedSource string `json:"seed_source" jsonschema:"CLIENT when the seed was supplied, SERVER when generated"`
	RngAlgo    string `json:"rng_algo" jsonschema:"generator algorithm"`
}

// RollDiceResult is the MCP tool output for a roll.
type RollDiceResult struct {
	Notation string       `json:"notation" jsonschema:"canonical notation that was rolled"`
	Sum      int          `json:"sum" jsonschema:"sum of kept dice"`
	Total    int          `json:"total" jsonschema:"sum plus modifier"`
	ThrowMod int          `json:"throw_mod" jsonschema:"modifier added to the sum"`
	Faces    []int        `json:"faces" jsonschema:"kept results in kept order"`
	Dropped  []int        `json:"dropped" jsonschema:"results removed by the keep selector"`
	Dice     []DieResult  `json:"dice" jsonschema:"every die in throw order"`
	Check    *CheckResult `json:"check,omitempty" jsonschema:"difficulty check, when a difficulty was given"`
	Rng      RngResult    `json:"rng" jsonschema:"rng details"`
	Text     string       `json:"text" jsonschema:"human-readable summary"`
}

// ParseNotationInput is the MCP tool input for validating notation.
type ParseNotationInput struct {
	Notation string `json:"notation" jsonschema:"dice notation to validate"`
}

// ParseNotationResult describes parsed notation.
type ParseNotationResult struct {
	Notation      string `json:"notation" jsonschema:"canonical notation"`
	Dice          int    `json:"dice" jsonschema:"number of dice"`
	Sides         int    `json:"sides" jsonschema:"sides per die"`
	KeepDirection string `json:"keep_direction" jsonschema:"none, highest or lowest"`
	KeepCount     int    `json:"keep_count" jsonschema:"dice kept, 0 when every die counts"`
	Modifier      int    `json:"modifier" jsonschema:"signed modifier added to the sum"`
	MinTotal      int    `json:"min_total" jsonschema:"smallest possible total"`
	MaxTotal      int    `json:"max_total" jsonschema:"largest possible total"`
}

// RollDiceTool defines the MCP tool schema for rolling dice.
func RollDiceTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "roll_dice",
		Description: "Rolls dice notation (" + notation.Grammar + ") and reports kept and dropped dice",
	}
}

// ParseNotationTool defines the MCP tool schema for validating notation.
func ParseNotationTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "parse_notation",
		Description: "Validates dice notation without rolling and reports its bounds",
	}
}

// RollDiceHandler rolls notation through dice.
func RollDiceHandler(dice client.Dice, locale string) mcp.ToolHandlerFor[RollDiceInput, RollDiceResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RollDiceInput) (*mcp.CallToolResult, RollDiceResult, error) {
		callCtx, callMeta, err := NewOutgoingContext(ctx)
		if err != nil {
			return nil, RollDiceResult{}, fmt.Errorf("create request metadata: %w", err)
		}

		response, err := dice.Roll(callCtx, &dicev1.RollRequest{
			Notation:   strings.TrimSpace(input.Notation),
			Seed:       input.Seed,
			PlusHalf:   input.PlusHalf,
			Difficulty: input.Difficulty,
		})
		if err != nil {
			return nil, RollDiceResult{}, newToolError("dice roll failed", err, locale)
		}
		if response == nil {
			return nil, RollDiceResult{}, fmt.Errorf("dice roll response is missing")
		}

		return CallToolResultWithMetadata(callMeta), rollDiceResult(response), nil
	}
}

// ParseNotationHandler validates notation through dice.
func ParseNotationHandler(dice client.Dice, locale string) mcp.ToolHandlerFor[ParseNotationInput, ParseNotationResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ParseNotationInput) (*mcp.CallToolResult, ParseNotationResult, error) {
		callCtx, callMeta, err := NewOutgoingContext(ctx)
		if err != nil {
			return nil, ParseNotationResult{}, fmt.Errorf("create request metadata: %w", err)
		}

		response, err := dice.Parse(callCtx, &dicev1.ParseRequest{Notation: strings.TrimSpace(input.Notation)})
		if err != nil {
			return nil, ParseNotationResult{}, newToolError("parse notation failed", err, locale)
		}
		if response == nil {
			return nil, ParseNotationResult{}, fmt.Errorf("parse notation response is missing")
		}

		return CallToolResultWithMetadata(callMeta), ParseNotationResult{
			Notation:      response.Notation,
			Dice:          response.Dice,
			Sides:         response.Sides,
			KeepDirection: response.KeepDirection,
			KeepCount:     response.KeepCount,
			Modifier:      response.Modifier,
			MinTotal:      response.MinTotal,
			MaxTotal:      response.MaxTotal,
		}, nil
	}
}

func rollDiceResult(response *dicev1.RollResponse) RollDiceResult {
	result := RollDiceResult{
		Notation: response.Notation,
		Sum:      response.Sum,
		Total:    response.Total,
		ThrowMod: response.ThrowMod,
		Faces:    nonNil(response.Faces),
		Dropped:  nonNil(response.Dropped),
		Dice:     make([]DieResult, 0, len(response.Dice)),
		Rng: RngResult{
			SeedUsed:   response.Rng.SeedUsed,
			SeedSource: response.Rng.SeedSource,
			RngAlgo:    response.Rng.Algorithm,
		},
		Text: response.Text,
	}
	for _, die := range response.Dice {
		result.Dice = append(result.Dice, DieResult{
			Name:   die.Name,
			Raw:    die.Raw,
			Result: die.Result,
			Kept:   die.Kept,
		})
	}
	if response.Check != nil {
		result.Check = &CheckResult{
			Difficulty: response.Check.Difficulty,
			Success:    response.Check.Success,
			Margin:     response.Check.Margin,
		}
	}
	return result
}

func nonNil(values []int) []int {
	if values == nil {
		return []int{}
	}
	return values
}

// toolError shows the localized message to the MCP client and keeps the dice
// error reachable through errors.Is and errors.As.
type toolError struct {
	op      string
	message string
	cause   error
}

func newToolError(op string, cause error, locale string) *toolError {
	return &toolError{op: op, message: client.UserMessage(cause, locale), cause: cause}
}

func (e *toolError) Error() string {
	return e.op + ": " + e.message
}

func (e *toolError) Unwrap() error {
	return e.cause
}
