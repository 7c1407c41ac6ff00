package dice

import "errors"

// ErrEmptyFaces indicates a die was constructed without any faces.
var ErrEmptyFaces = errors.New("die must have at least one face")

// ErrInvalidSides indicates a numeric die was requested with fewer than one side.
var ErrInvalidSides = errors.New("die must have positive sides")

// ErrInvalidCount indicates a dice pool was requested with fewer than one die.
var ErrInvalidCount = errors.New("dice count must be positive")

// ErrUnrolled indicates a die result was read before the die was rolled.
var ErrUnrolled = errors.New("die has not been rolled")

// ErrNilSource indicates a roll was attempted without a random source.
var ErrNilSource = errors.New("random source is required")

// ErrDrawOutsideFaces indicates a source returned a value that is not on the die.
var ErrDrawOutsideFaces = errors.New("drawn value is not a face of the die")

// ErrMissingThrow indicates a roll was constructed without a throw.
var ErrMissingThrow = errors.New("throw is required")

// ErrInvalidKeep indicates a keep-selector asked for fewer than one die.
var ErrInvalidKeep = errors.New("keep count must be positive")

// ErrKeepExceedsDice indicates a keep-selector asked for more dice than were thrown.
var ErrKeepExceedsDice = errors.New("keep count exceeds the number of dice")
