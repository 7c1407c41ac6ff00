// Package notation parses compact dice notation such as 3d6+1 or 6d6^3.
//
// The grammar is flat: a dice count, the letter d, a side count, an optional
// keep-selector (^K keeps the K highest, vK the K lowest) and an optional
// signed modifier. Matching is anchored at the start of the input and anything
// after a full match is ignored, so "2d6+1 to hit" parses as 2d6+1.
package notation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/louisbranch/dicebag/internal/core/dice"
)

// Grammar is the human-readable form of the accepted notation.
const Grammar = "NdX[^K|vK][+M|-M]"

var rollPattern = regexp.MustCompile(`^(\d+)d(\d+)(?:([\^v])(\d+))?(?:([+-]\d+))?`)

// Spec is a parsed roll: everything needed to build the dice and the roll.
type Spec struct {
	Dice     int
	Sides    int
	Keep     dice.Keep
	Modifier int
}

// Parse reads a roll from text.
//
// Parse performs no I/O and keeps no state between calls. On failure the
// returned error is a *Error carrying the original input and matches
// ErrInvalid under errors.Is.
func Parse(text string) (Spec, error) {
	m := rollPattern.FindStringSubmatch(text)
	if m == nil {
		return Spec{}, newError(text, "expected "+Grammar, nil)
	}

	n, err := strconv.Atoi(m[1])
	if err != nil {
		return Spec{}, newError(text, "dice count out of range", nil)
	}
	if n < 1 {
		return Spec{}, newError(text, "dice count must be positive", dice.ErrInvalidCount)
	}

	sides, err := strconv.Atoi(m[2])
	if err != nil {
		return Spec{}, newError(text, "sides out of range", nil)
	}
	if sides < 1 {
		return Spec{}, newError(text, "sides must be positive", dice.ErrInvalidSides)
	}

	spec := Spec{Dice: n, Sides: sides}

	if m[3] != "" {
		count, err := strconv.Atoi(m[4])
		if err != nil {
			return Spec{}, newError(text, "keep count out of range", nil)
		}
		if count < 1 {
			return Spec{}, newError(text, "keep count must be positive", dice.ErrInvalidKeep)
		}
		if count > n {
			return Spec{}, newError(text, fmt.Sprintf("cannot keep %d of %d dice", count, n), dice.ErrKeepExceedsDice)
		}
		spec.Keep = dice.Keep{Direction: dice.KeepHighest, Count: count}
		if m[3] == "v" {
			spec.Keep.Direction = dice.KeepLowest
		}
	}

	if m[5] != "" {
		mod, err := strconv.Atoi(m[5])
		if err != nil {
			return Spec{}, newError(text, "modifier out of range", nil)
		}
		spec.Modifier = mod
	}

	return spec, nil
}

// MustParse parses text and panics on error. Useful for package-level values.
func MustParse(text string) Spec {
	spec, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return spec
}

// String renders s in canonical notation; Parse(s.String()) == s.
func (s Spec) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%dd%d", s.Dice, s.Sides)
	switch s.Keep.Direction {
	case dice.KeepHighest:
		fmt.Fprintf(&b, "^%d", s.Keep.Count)
	case dice.KeepLowest:
		fmt.Fprintf(&b, "v%d", s.Keep.Count)
	}
	if s.Modifier != 0 {
		fmt.Fprintf(&b, "%+d", s.Modifier)
	}
	return b.String()
}

// MinTotal returns the smallest total s can produce.
func (s Spec) MinTotal() int {
	return s.counted() + s.Modifier
}

// MaxTotal returns the largest total s can produce.
func (s Spec) MaxTotal() int {
	return s.counted()*s.Sides + s.Modifier
}

func (s Spec) counted() int {
	if s.Keep.Direction != dice.KeepNone {
		return s.Keep.Count
	}
	return s.Dice
}
