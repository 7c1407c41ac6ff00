package dice

import (
	"errors"
	"math/rand"
	"slices"
	"testing"
)

// TestNewDieRejectsEmptyFaces ensures a die needs at least one face.
func TestNewDieRejectsEmptyFaces(t *testing.T) {
	if _, err := NewDie(nil); !errors.Is(err, ErrEmptyFaces) {
		t.Fatalf("NewDie error = %v, want %v", err, ErrEmptyFaces)
	}
}

// TestNewDNRejectsInvalidSides ensures numeric dice need positive sides.
func TestNewDNRejectsInvalidSides(t *testing.T) {
	for _, size := range []int{0, -1, -20} {
		if _, err := NewDN(size); !errors.Is(err, ErrInvalidSides) {
			t.Fatalf("NewDN(%d) error = %v, want %v", size, err, ErrInvalidSides)
		}
	}
}

// TestNewDNNamesAndFaces ensures numeric dice carry faces 1..size and a d-name.
func TestNewDNNamesAndFaces(t *testing.T) {
	d, err := NewDN(4)
	if err != nil {
		t.Fatalf("NewDN returned error: %v", err)
	}
	if got := d.Faces(); !slices.Equal(got, []int{1, 2, 3, 4}) {
		t.Fatalf("faces = %v, want [1 2 3 4]", got)
	}
	if d.Name() != "Die (d4)" {
		t.Fatalf("name = %q, want %q", d.Name(), "Die (d4)")
	}
	if d.LowFace() != 1 || d.HighFace() != 4 {
		t.Fatalf("bounds = [%d, %d], want [1, 4]", d.LowFace(), d.HighFace())
	}
}

// TestDieResultBeforeRoll ensures reading an unrolled die is an error.
func TestDieResultBeforeRoll(t *testing.T) {
	d, err := NewDN(6)
	if err != nil {
		t.Fatalf("NewDN returned error: %v", err)
	}
	if _, err := d.Result(); !errors.Is(err, ErrUnrolled) {
		t.Fatalf("Result error = %v, want %v", err, ErrUnrolled)
	}
	if _, ok := d.Raw(); ok {
		t.Fatal("expected unrolled die to report no raw face")
	}
}

// TestDieRollRequiresSource ensures a nil source is rejected.
func TestDieRollRequiresSource(t *testing.T) {
	d, _ := NewDN(6)
	if _, err := d.Roll(nil); !errors.Is(err, ErrNilSource) {
		t.Fatalf("Roll error = %v, want %v", err, ErrNilSource)
	}
}

// TestDieRollRejectsForeignDraw ensures scripted draws must land on a face.
func TestDieRollRejectsForeignDraw(t *testing.T) {
	d, _ := NewDN(6)
	if _, err := d.Roll(NewSequence(7)); !errors.Is(err, ErrDrawOutsideFaces) {
		t.Fatalf("Roll error = %v, want %v", err, ErrDrawOutsideFaces)
	}
	if d.Rolled() {
		t.Fatal("expected die to stay unrolled after a rejected draw")
	}
}

// TestDieClamping covers the modifier and clamp-flag combinations.
func TestDieClamping(t *testing.T) {
	tests := []struct {
		name string
		opts []DieOption
		raw  int
		want int
	}{
		{name: "identity", raw: 4, want: 4},
		{name: "add within bounds", opts: []DieOption{WithModifier(Add(1))}, raw: 4, want: 5},
		{name: "add clamps high", opts: []DieOption{WithModifier(Add(3))}, raw: 5, want: 6},
		{name: "subtract clamps low", opts: []DieOption{WithModifier(Add(-3))}, raw: 2, want: 1},
		{name: "allow above", opts: []DieOption{WithModifier(Add(3)), AllowAbove()}, raw: 5, want: 8},
		{name: "allow below", opts: []DieOption{WithModifier(Add(-3)), AllowBelow()}, raw: 2, want: -1},
		{name: "allow above keeps low clamp", opts: []DieOption{WithModifier(Add(-3)), AllowAbove()}, raw: 2, want: 1},
		{name: "half floor", opts: []DieOption{WithModifier(HalfFloor())}, raw: 5, want: 2},
		{name: "half floor clamps low", opts: []DieOption{WithModifier(HalfFloor())}, raw: 1, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDN(6, tt.opts...)
			if err != nil {
				t.Fatalf("NewDN returned error: %v", err)
			}
			got, err := d.Roll(NewSequence(tt.raw))
			if err != nil {
				t.Fatalf("Roll returned error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Roll() = %d, want %d", got, tt.want)
			}
			if result, _ := d.Result(); result != got {
				t.Fatalf("Result() = %d, want %d", result, got)
			}
			if raw, _ := d.Raw(); raw != tt.raw {
				t.Fatalf("Raw() = %d, want %d", raw, tt.raw)
			}
		})
	}
}

// TestDieBoundsFromFaces ensures min and max come from the faces, not from 1..size.
func TestDieBoundsFromFaces(t *testing.T) {
	d, err := NewDie([]int{10, -2, 4}, WithModifier(Add(100)))
	if err != nil {
		t.Fatalf("NewDie returned error: %v", err)
	}
	if d.LowFace() != -2 || d.HighFace() != 10 {
		t.Fatalf("bounds = [%d, %d], want [-2, 10]", d.LowFace(), d.HighFace())
	}
	got, err := d.Roll(NewSequence(-2))
	if err != nil {
		t.Fatalf("Roll returned error: %v", err)
	}
	if got != 10 {
		t.Fatalf("Roll() = %d, want clamp to 10", got)
	}
}

// TestDieDuplicateFaces ensures repeated faces do not disturb bounds or clamping.
func TestDieDuplicateFaces(t *testing.T) {
	d, err := NewDie([]int{1, 1, 2, 2, 3, 3}, WithModifier(Add(-5)))
	if err != nil {
		t.Fatalf("NewDie returned error: %v", err)
	}
	if d.LowFace() != 1 || d.HighFace() != 3 {
		t.Fatalf("bounds = [%d, %d], want [1, 3]", d.LowFace(), d.HighFace())
	}
	got, err := d.Roll(NewSequence(3))
	if err != nil {
		t.Fatalf("Roll returned error: %v", err)
	}
	if got != 1 {
		t.Fatalf("Roll() = %d, want 1", got)
	}

	rng := NewRandSource(3)
	plain, _ := NewDie([]int{2, 2, 5})
	for i := 0; i < 200; i++ {
		v, err := plain.Roll(rng)
		if err != nil {
			t.Fatalf("Roll returned error: %v", err)
		}
		if v != 2 && v != 5 {
			t.Fatalf("Roll() = %d, want 2 or 5", v)
		}
	}
}

// TestDieResultWithinFaces mirrors the stochastic bounds check: with clamping
// on both sides no modifier can push a result out of the face range.
func TestDieResultWithinFaces(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	src := NewRandSourceFrom(rng)
	for i := 0; i < 5000; i++ {
		size := rng.Intn(20) + 1
		mod := rng.Intn(41) - 20
		d, err := NewDN(size, WithModifier(Add(mod)))
		if err != nil {
			t.Fatalf("NewDN returned error: %v", err)
		}
		got, err := d.Roll(src)
		if err != nil {
			t.Fatalf("Roll returned error: %v", err)
		}
		if got < d.LowFace() || got > d.HighFace() {
			t.Fatalf("d%d%+d rolled %d, outside [%d, %d]", size, mod, got, d.LowFace(), d.HighFace())
		}
	}
}

// TestRandSourceDeterminism ensures the same seed replays the same faces.
func TestRandSourceDeterminism(t *testing.T) {
	first, _ := NDX(2, 12)
	second, _ := NDX(2, 12)
	a, err := ThrowNow(NewRandSource(0), first...)
	if err != nil {
		t.Fatalf("ThrowNow returned error: %v", err)
	}
	b, err := ThrowNow(NewRandSource(0), second...)
	if err != nil {
		t.Fatalf("ThrowNow returned error: %v", err)
	}
	ra, _ := a.Results()
	rb, _ := b.Results()
	if !slices.Equal(ra, rb) {
		t.Fatalf("seeded throws differ: %v vs %v", ra, rb)
	}
	if !slices.Equal(ra, []int{7, 7}) {
		t.Fatalf("seed 0 results = %v, want [7 7]", ra)
	}
}

// TestSequenceCycles ensures scripted draws repeat once exhausted.
func TestSequenceCycles(t *testing.T) {
	s := NewSequence(2, 5)
	faces := []int{1, 2, 3, 4, 5, 6}
	got := []int{s.Draw(faces), s.Draw(faces), s.Draw(faces)}
	if !slices.Equal(got, []int{2, 5, 2}) {
		t.Fatalf("draws = %v, want [2 5 2]", got)
	}
	if s.Drawn() != 3 {
		t.Fatalf("Drawn() = %d, want 3", s.Drawn())
	}
	if v := NewSequence().Draw(faces); v != 1 {
		t.Fatalf("empty sequence draw = %d, want 1", v)
	}
}

// TestHalfFloorNegative ensures halving rounds toward negative infinity.
func TestHalfFloorNegative(t *testing.T) {
	cases := map[int]int{-3: -2, -2: -1, -1: -1, 0: 0, 1: 0, 7: 3}
	for raw, want := range cases {
		if got := HalfFloor().Apply(raw); got != want {
			t.Fatalf("HalfFloor(%d) = %d, want %d", raw, got, want)
		}
	}
}

// TestHalfDie ensures the half die stays within 1..3.
func TestHalfDie(t *testing.T) {
	want := map[int]int{1: 1, 2: 1, 3: 1, 4: 2, 5: 2, 6: 3}
	for raw, result := range want {
		d := NewHalfDie()
		got, err := d.Roll(NewSequence(raw))
		if err != nil {
			t.Fatalf("Roll returned error: %v", err)
		}
		if got != result {
			t.Fatalf("half die raw %d = %d, want %d", raw, got, result)
		}
	}
}
