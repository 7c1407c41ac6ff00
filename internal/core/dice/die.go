// Package dice models dice, throws of dice, and rolls with keep-selection.
//
// # Randomness
//
// Nothing in this package reaches for a global generator. Every roll draws
// from a caller-provided Source, so replaying a seed (or scripting draws with
// Sequence) reproduces a result exactly.
//
// # Clamping
//
// A die result is its raw face passed through the die Modifier. Unless the die
// allows it, a modified result never leaves the [LowFace, HighFace] range of
// the die's own faces.
package dice

import (
	"fmt"
	"slices"
)

// Die is a single randomizable unit with a set of equally likely faces.
type Die struct {
	name       string
	faces      []int
	low        int
	high       int
	modifier   Modifier
	allowAbove bool
	allowBelow bool
	raw        int
	rolled     bool
}

// DieOption configures a Die at construction.
type DieOption func(*Die)

// WithModifier sets the transform applied to the raw face.
func WithModifier(m Modifier) DieOption {
	return func(d *Die) {
		d.modifier = m
	}
}

// WithName overrides the display name of the die.
func WithName(name string) DieOption {
	return func(d *Die) {
		d.name = name
	}
}

// AllowAbove lets a modified result exceed the highest face.
func AllowAbove() DieOption {
	return func(d *Die) {
		d.allowAbove = true
	}
}

// AllowBelow lets a modified result fall under the lowest face.
func AllowBelow() DieOption {
	return func(d *Die) {
		d.allowBelow = true
	}
}

// NewDie creates an unrolled die with the given faces.
// Faces may repeat and need not be contiguous or start at 1.
func NewDie(faces []int, opts ...DieOption) (*Die, error) {
	if len(faces) == 0 {
		return nil, ErrEmptyFaces
	}
	d := &Die{
		name:  "Die",
		faces: slices.Clone(faces),
		low:   slices.Min(faces),
		high:  slices.Max(faces),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// NewDN creates an unrolled die with faces 1 through size.
func NewDN(size int, opts ...DieOption) (*Die, error) {
	if size <= 0 {
		return nil, ErrInvalidSides
	}
	faces := make([]int, size)
	for i := range faces {
		faces[i] = i + 1
	}
	opts = append([]DieOption{WithName(fmt.Sprintf("Die (d%d)", size))}, opts...)
	return NewDie(faces, opts...)
}

// maxPrealloc bounds the capacity NDX reserves up front.
const maxPrealloc = 1024

// NDX creates n unrolled dice with faces 1 through x.
func NDX(n, x int) ([]*Die, error) {
	if n <= 0 {
		return nil, ErrInvalidCount
	}
	dice := make([]*Die, 0, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		d, err := NewDN(x)
		if err != nil {
			return nil, err
		}
		dice = append(dice, d)
	}
	return dice, nil
}

// NewHalfDie creates the d6 whose result is half its raw face, rounded down.
// Half of a 1 is clamped back up to 1.
func NewHalfDie() *Die {
	d, _ := NewDN(6, WithModifier(HalfFloor()), WithName("Half die (d6)"))
	return d
}

// Roll draws a new raw face from src and returns the resulting value.
// Rolling an already rolled die replaces its previous face.
func (d *Die) Roll(src Source) (int, error) {
	raw, err := d.draw(src)
	if err != nil {
		return 0, err
	}
	d.set(raw)
	return d.result(), nil
}

// draw takes a raw face from src without changing the die.
func (d *Die) draw(src Source) (int, error) {
	if src == nil {
		return 0, ErrNilSource
	}
	raw := src.Draw(d.faces)
	if !slices.Contains(d.faces, raw) {
		return 0, fmt.Errorf("%s drew %d: %w", d.Name(), raw, ErrDrawOutsideFaces)
	}
	return raw, nil
}

func (d *Die) set(raw int) {
	d.raw = raw
	d.rolled = true
}

// Result returns the modified, clamped value of the last roll.
func (d *Die) Result() (int, error) {
	if !d.rolled {
		return 0, ErrUnrolled
	}
	return d.result(), nil
}

func (d *Die) result() int {
	m := d.modifier.Apply(d.raw)
	switch {
	case m > d.high && !d.allowAbove:
		return d.high
	case m < d.low && !d.allowBelow:
		return d.low
	default:
		return m
	}
}

// Raw returns the unmodified face of the last roll and whether the die has
// been rolled.
func (d *Die) Raw() (int, bool) {
	return d.raw, d.rolled
}

// Rolled reports whether the die has a face.
func (d *Die) Rolled() bool {
	return d.rolled
}

// Faces returns a copy of the die faces in construction order.
func (d *Die) Faces() []int {
	return slices.Clone(d.faces)
}

// HighFace returns the largest face value.
func (d *Die) HighFace() int {
	return d.high
}

// LowFace returns the smallest face value.
func (d *Die) LowFace() int {
	return d.low
}

// Modifier returns the transform applied to the raw face.
func (d *Die) Modifier() Modifier {
	return d.modifier
}

// Name returns the display name of the die.
func (d *Die) Name() string {
	return d.name
}

func (d *Die) String() string {
	if !d.rolled {
		return fmt.Sprintf("<%s: faces=%v, unrolled>", d.name, d.faces)
	}
	return fmt.Sprintf("<%s: faces=%v, result=%d>", d.name, d.faces, d.result())
}
