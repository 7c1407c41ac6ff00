// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Notation errors
	CodeNotationInvalid Code = "NOTATION_INVALID"

	// Dice errors
	CodeDiceInvalidCount  Code = "DICE_INVALID_COUNT"
	CodeDiceInvalidSides  Code = "DICE_INVALID_SIDES"
	CodeDiceInvalidKeep   Code = "DICE_INVALID_KEEP"
	CodeDiceKeepExceeds   Code = "DICE_KEEP_EXCEEDS_DICE"
	CodeDiceLimitExceeded Code = "DICE_LIMIT_EXCEEDED"
	CodeDieUnrolled       Code = "DIE_UNROLLED"

	// Check errors
	CodeDifficultyInvalid Code = "DIFFICULTY_INVALID"

	// Script errors
	CodeScriptFailed Code = "SCRIPT_FAILED"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - the caller sent something we cannot roll
	case CodeNotationInvalid,
		CodeDiceInvalidCount,
		CodeDiceInvalidSides,
		CodeDiceInvalidKeep,
		CodeDiceKeepExceeds,
		CodeDifficultyInvalid,
		CodeScriptFailed:
		return codes.InvalidArgument

	// OutOfRange - valid notation beyond configured limits
	case CodeDiceLimitExceeded:
		return codes.OutOfRange

	// FailedPrecondition - usage-order bug
	case CodeDieUnrolled:
		return codes.FailedPrecondition

	default:
		return codes.Internal
	}
}
