package dice

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// KeepDirection selects which end of a sorted throw a keep-selector retains.
type KeepDirection int

const (
	KeepNone KeepDirection = iota
	KeepHighest
	KeepLowest
)

func (k KeepDirection) String() string {
	switch k {
	case KeepNone:
		return "none"
	case KeepHighest:
		return "highest"
	case KeepLowest:
		return "lowest"
	default:
		return "unknown"
	}
}

// Keep retains Count dice from one end of a throw. The zero value keeps all dice.
type Keep struct {
	Direction KeepDirection
	Count     int
}

// Result is the aggregate outcome of a roll as handed to serializers.
type Result struct {
	Sum      int   `json:"sum"`
	Total    int   `json:"total"`
	Faces    []int `json:"faces"`
	ThrowMod int   `json:"throw_mod"`
}

// Compare is a comparison used when counting dice results.
type Compare int

const (
	CompareEqual Compare = iota
	CompareAtLeast
	CompareAtMost
)

func (c Compare) match(result, value int) bool {
	switch c {
	case CompareAtLeast:
		return result >= value
	case CompareAtMost:
		return result <= value
	default:
		return result == value
	}
}

// RollOption configures NewRoll.
type RollOption func(*rollConfig)

type rollConfig struct {
	modifier int
	keep     Keep
}

// WithTotalModifier adds mod to the roll total (not to any single die).
func WithTotalModifier(mod int) RollOption {
	return func(c *rollConfig) {
		c.modifier = mod
	}
}

// WithKeep applies a keep-selector to the throw.
func WithKeep(keep Keep) RollOption {
	return func(c *rollConfig) {
		c.keep = keep
	}
}

// Roll is a resolved throw with a roll-level modifier and keep-selection.
//
// A Roll captures die results when it is built; re-throwing the underlying
// dice afterwards does not change the sum, total or partition of a Roll.
type Roll struct {
	modifier int
	keep     Keep
	all      []*Die
	allRes   []int
	kept     []*Die
	keptRes  []int
	dropped  []*Die
	dropRes  []int
}

// NewRoll builds a roll from a resolved throw.
//
// # Keep selection
//
// When a keep-selector is present the dice are stable-sorted by result,
// descending for KeepHighest and ascending for KeepLowest, and the first
// Count dice are kept. Dice with equal results keep their throw order, which
// decides which of several tied dice is kept when the cut falls mid-tie. All
// other dice are dropped: they never contribute to the sum but remain
// available through Dropped. Without a selector every die is kept in throw
// order. Faces reports the kept results sorted ascending either way.
//
// # Errors
//
//   - throw must be non-nil, otherwise ErrMissingThrow is returned.
//   - every die must have been rolled, otherwise ErrUnrolled is returned.
//   - a keep Count below 1 returns ErrInvalidKeep.
//   - a keep Count above the number of dice returns ErrKeepExceedsDice; the
//     roll is not silently truncated to all dice.
//
// Example:
//
//	src := NewSequence(1, 2, 3, 4, 5, 6)
//	dice, _ := NDX(6, 6)
//	throw, _ := ThrowNow(src, dice...)
//	roll, _ := NewRoll(throw, WithKeep(Keep{Direction: KeepHighest, Count: 3}))
//	roll.Faces() // [4 5 6]
func NewRoll(throw *Throw, opts ...RollOption) (*Roll, error) {
	if throw == nil {
		return nil, ErrMissingThrow
	}
	var cfg rollConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	all := throw.Dice()
	allRes, err := throw.Results()
	if err != nil {
		return nil, err
	}

	r := &Roll{
		modifier: cfg.modifier,
		keep:     cfg.keep,
		all:      all,
		allRes:   allRes,
	}

	if cfg.keep.Direction == KeepNone {
		r.kept = slices.Clone(all)
		r.keptRes = slices.Clone(allRes)
		return r, nil
	}

	if cfg.keep.Count < 1 {
		return nil, ErrInvalidKeep
	}
	if cfg.keep.Count > len(all) {
		return nil, fmt.Errorf("keep %d of %d dice: %w", cfg.keep.Count, len(all), ErrKeepExceedsDice)
	}

	order := make([]int, len(all))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := allRes[order[i]], allRes[order[j]]
		if cfg.keep.Direction == KeepLowest {
			return a < b
		}
		return a > b
	})

	for pos, idx := range order {
		if pos < cfg.keep.Count {
			r.kept = append(r.kept, all[idx])
			r.keptRes = append(r.keptRes, allRes[idx])
			continue
		}
		r.dropped = append(r.dropped, all[idx])
		r.dropRes = append(r.dropRes, allRes[idx])
	}
	return r, nil
}

// Sum returns the sum of the kept dice results.
func (r *Roll) Sum() int {
	sum := 0
	for _, v := range r.keptRes {
		sum += v
	}
	return sum
}

// Total returns Sum plus the roll modifier.
func (r *Roll) Total() int {
	return r.Sum() + r.modifier
}

// Modifier returns the roll-level modifier.
func (r *Roll) Modifier() int {
	return r.modifier
}

// Keep returns the keep-selector the roll was built with.
func (r *Roll) Keep() Keep {
	return r.keep
}

// Faces returns the kept dice results sorted ascending.
func (r *Roll) Faces() []int {
	faces := slices.Clone(r.keptRes)
	slices.Sort(faces)
	return faces
}

// DroppedFaces returns the dropped dice results in selection order.
func (r *Roll) DroppedFaces() []int {
	return slices.Clone(r.dropRes)
}

// Kept returns the dice contributing to the sum.
func (r *Roll) Kept() []*Die {
	return slices.Clone(r.kept)
}

// Dropped returns the dice excluded by keep-selection.
func (r *Roll) Dropped() []*Die {
	return slices.Clone(r.dropped)
}

// Dice returns every die in throw order.
func (r *Roll) Dice() []*Die {
	return slices.Clone(r.all)
}

// RawDice returns the kept dice followed by the dropped dice.
func (r *Roll) RawDice() []*Die {
	out := make([]*Die, 0, len(r.kept)+len(r.dropped))
	out = append(out, r.kept...)
	return append(out, r.dropped...)
}

// Count returns how many thrown dice, kept or dropped, compare true against value.
func (r *Roll) Count(cmp Compare, value int) int {
	n := 0
	for _, v := range r.allRes {
		if cmp.match(v, value) {
			n++
		}
	}
	return n
}

// Body tallies the throw as 0 for a 1, 1 for a 2 through 5, and 2 for a 6.
func (r *Roll) Body() int {
	return r.Count(CompareAtLeast, 2) + r.Count(CompareEqual, 6)
}

// Result returns the serializable aggregate of the roll.
func (r *Roll) Result() Result {
	return Result{
		Sum:      r.Sum(),
		Total:    r.Total(),
		Faces:    r.Faces(),
		ThrowMod: r.modifier,
	}
}

func (r *Roll) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v", r.Faces())
	if len(r.dropRes) > 0 {
		fmt.Fprintf(&b, " dropped %v", r.dropRes)
	}
	if r.modifier != 0 {
		fmt.Fprintf(&b, " %+d", r.modifier)
	}
	fmt.Fprintf(&b, " = %d", r.Total())
	return b.String()
}
