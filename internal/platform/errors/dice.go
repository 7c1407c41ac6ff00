package errors

import (
	"errors"

	"github.com/louisbranch/dicebag/internal/core/check"
	"github.com/louisbranch/dicebag/internal/core/dice"
	"github.com/louisbranch/dicebag/internal/core/notation"
	"github.com/louisbranch/dicebag/internal/core/roller"
)

// FromRoll classifies an error returned while parsing or rolling input.
// Errors that are already domain errors are returned unchanged; anything
// unrecognized becomes CodeUnknown.
func FromRoll(err error, input string) *Error {
	if err == nil {
		return nil
	}
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr
	}

	metadata := map[string]string{"Input": input, "Reason": err.Error()}
	var perr *notation.Error
	if errors.As(err, &perr) {
		metadata["Reason"] = perr.Reason
	}

	return WrapWithMetadata(classify(err), err.Error(), metadata, err)
}

func classify(err error) Code {
	switch {
	case errors.Is(err, roller.ErrTooManyDice), errors.Is(err, roller.ErrTooManySides):
		return CodeDiceLimitExceeded
	case errors.Is(err, dice.ErrKeepExceedsDice):
		return CodeDiceKeepExceeds
	case errors.Is(err, dice.ErrInvalidKeep):
		return CodeDiceInvalidKeep
	case errors.Is(err, dice.ErrInvalidSides):
		return CodeDiceInvalidSides
	case errors.Is(err, dice.ErrInvalidCount):
		return CodeDiceInvalidCount
	case errors.Is(err, notation.ErrInvalid):
		return CodeNotationInvalid
	case errors.Is(err, dice.ErrUnrolled):
		return CodeDieUnrolled
	case errors.Is(err, check.ErrInvalidDifficulty):
		return CodeDifficultyInvalid
	default:
		return CodeUnknown
	}
}

// GetCode extracts the error code from any error.
// Returns CodeUnknown if the error is not a domain error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// IsCode checks if the error has the specified code.
func IsCode(err error, code Code) bool {
	return GetCode(err) == code
}
