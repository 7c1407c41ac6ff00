package dice

import (
	"fmt"
	"slices"
)

// Throw is an ordered group of dice rolled together.
type Throw struct {
	dice []*Die
	src  Source
}

// NewThrow groups dice without rolling them. The source is kept for every
// later call to Throw.
func NewThrow(src Source, dice ...*Die) *Throw {
	return &Throw{
		dice: slices.Clone(dice),
		src:  src,
	}
}

// ThrowNow groups dice and rolls each of them once.
func ThrowNow(src Source, dice ...*Die) (*Throw, error) {
	t := NewThrow(src, dice...)
	if err := t.Throw(); err != nil {
		return nil, err
	}
	return t, nil
}

// Throw rolls every die exactly once, in slice order. It may be called again
// to re-roll the same dice together. Faces are only stored once every draw
// succeeded, so a failed throw leaves the dice as they were.
func (t *Throw) Throw() error {
	if t.src == nil {
		return ErrNilSource
	}
	raws := make([]int, len(t.dice))
	for i, d := range t.dice {
		raw, err := d.draw(t.src)
		if err != nil {
			return fmt.Errorf("roll die %d: %w", i, err)
		}
		raws[i] = raw
	}
	for i, d := range t.dice {
		d.set(raws[i])
	}
	return nil
}

// Rolled reports whether every die in the throw has a face.
func (t *Throw) Rolled() bool {
	for _, d := range t.dice {
		if !d.Rolled() {
			return false
		}
	}
	return true
}

// Results returns the result of each die in throw order.
func (t *Throw) Results() ([]int, error) {
	results := make([]int, len(t.dice))
	for i, d := range t.dice {
		r, err := d.Result()
		if err != nil {
			return nil, err
		}
		results[i] = r
	}
	return results, nil
}

// Dice returns the dice in throw order.
func (t *Throw) Dice() []*Die {
	return slices.Clone(t.dice)
}

// Len returns the number of dice in the throw.
func (t *Throw) Len() int {
	return len(t.dice)
}
