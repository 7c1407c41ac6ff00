package dice

import (
	"encoding/json"
	"errors"
	"math/rand"
	"slices"
	"testing"
)

func mustThrow(t *testing.T, src Source, n, x int) *Throw {
	t.Helper()
	dice, err := NDX(n, x)
	if err != nil {
		t.Fatalf("NDX(%d, %d) returned error: %v", n, x, err)
	}
	throw, err := ThrowNow(src, dice...)
	if err != nil {
		t.Fatalf("ThrowNow returned error: %v", err)
	}
	return throw
}

func results(t *testing.T, dice []*Die) []int {
	t.Helper()
	out := make([]int, len(dice))
	for i, d := range dice {
		r, err := d.Result()
		if err != nil {
			t.Fatalf("Result returned error: %v", err)
		}
		out[i] = r
	}
	return out
}

// TestRollSingleDie ensures 1d6 totals to its only face.
func TestRollSingleDie(t *testing.T) {
	roll, err := NewRoll(mustThrow(t, NewRandSource(7), 1, 6))
	if err != nil {
		t.Fatalf("NewRoll returned error: %v", err)
	}
	faces := roll.Faces()
	if len(faces) != 1 {
		t.Fatalf("expected 1 face, got %v", faces)
	}
	if roll.Total() != faces[0] {
		t.Fatalf("total = %d, want %d", roll.Total(), faces[0])
	}
	if roll.Modifier() != 0 || roll.Result().ThrowMod != 0 {
		t.Fatalf("expected no throw modifier, got %d", roll.Modifier())
	}
}

// TestRollModifier ensures 3d6+1 with draws 2, 4, 6 sums to 12 and totals 13.
func TestRollModifier(t *testing.T) {
	roll, err := NewRoll(mustThrow(t, NewSequence(2, 4, 6), 3, 6), WithTotalModifier(1))
	if err != nil {
		t.Fatalf("NewRoll returned error: %v", err)
	}
	if roll.Sum() != 12 {
		t.Fatalf("sum = %d, want 12", roll.Sum())
	}
	if roll.Total() != 13 {
		t.Fatalf("total = %d, want 13", roll.Total())
	}
	if got := roll.Faces(); !slices.Equal(got, []int{2, 4, 6}) {
		t.Fatalf("faces = %v, want [2 4 6]", got)
	}
	if len(roll.Dropped()) != 0 {
		t.Fatalf("expected no dropped dice, got %d", len(roll.Dropped()))
	}
}

// TestRollKeepHighest ensures 6d6^3 with draws 1..6 keeps 4, 5, 6.
func TestRollKeepHighest(t *testing.T) {
	roll, err := NewRoll(mustThrow(t, NewSequence(1, 2, 3, 4, 5, 6), 6, 6),
		WithKeep(Keep{Direction: KeepHighest, Count: 3}))
	if err != nil {
		t.Fatalf("NewRoll returned error: %v", err)
	}
	if got := roll.Faces(); !slices.Equal(got, []int{4, 5, 6}) {
		t.Fatalf("kept = %v, want [4 5 6]", got)
	}
	if got := results(t, roll.Kept()); !slices.Equal(got, []int{6, 5, 4}) {
		t.Fatalf("kept dice = %v, want selection order [6 5 4]", got)
	}
	if got := results(t, roll.Dropped()); !slices.Equal(got, []int{3, 2, 1}) {
		t.Fatalf("dropped = %v, want [3 2 1]", got)
	}
	if got := roll.DroppedFaces(); !slices.Equal(got, []int{3, 2, 1}) {
		t.Fatalf("dropped faces = %v, want [3 2 1]", got)
	}
	if roll.Sum() != 15 {
		t.Fatalf("sum = %d, want 15", roll.Sum())
	}
}

// TestRollKeepLowest ensures 4d8v2-2 keeps the two lowest and subtracts 2.
func TestRollKeepLowest(t *testing.T) {
	roll, err := NewRoll(mustThrow(t, NewSequence(7, 3, 8, 2), 4, 8),
		WithKeep(Keep{Direction: KeepLowest, Count: 2}), WithTotalModifier(-2))
	if err != nil {
		t.Fatalf("NewRoll returned error: %v", err)
	}
	if got := roll.Faces(); !slices.Equal(got, []int{2, 3}) {
		t.Fatalf("kept = %v, want [2 3]", got)
	}
	if roll.Sum() != 5 || roll.Total() != 3 {
		t.Fatalf("sum/total = %d/%d, want 5/3", roll.Sum(), roll.Total())
	}
}

// TestRollKeepTiesFollowThrowOrder ensures the stable sort decides mid-tie cuts.
func TestRollKeepTiesFollowThrowOrder(t *testing.T) {
	throw := mustThrow(t, NewSequence(4, 6, 4, 4), 4, 6)
	dice := throw.Dice()
	roll, err := NewRoll(throw, WithKeep(Keep{Direction: KeepHighest, Count: 2}))
	if err != nil {
		t.Fatalf("NewRoll returned error: %v", err)
	}
	kept := roll.Kept()
	if kept[0] != dice[1] || kept[1] != dice[0] {
		t.Fatalf("expected the 6 then the first 4 to be kept")
	}
	dropped := roll.Dropped()
	if dropped[0] != dice[2] || dropped[1] != dice[3] {
		t.Fatalf("expected the later 4s to be dropped in throw order")
	}

	low, err := NewRoll(throw, WithKeep(Keep{Direction: KeepLowest, Count: 1}))
	if err != nil {
		t.Fatalf("NewRoll returned error: %v", err)
	}
	if low.Kept()[0] != dice[0] {
		t.Fatal("expected the first 4 to be kept for keep lowest")
	}
}

// TestRollKeepErrors covers invalid keep-selectors.
func TestRollKeepErrors(t *testing.T) {
	tests := []struct {
		name string
		keep Keep
		want error
	}{
		{name: "zero count", keep: Keep{Direction: KeepHighest}, want: ErrInvalidKeep},
		{name: "negative count", keep: Keep{Direction: KeepLowest, Count: -1}, want: ErrInvalidKeep},
		{name: "more than thrown", keep: Keep{Direction: KeepHighest, Count: 4}, want: ErrKeepExceedsDice},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRoll(mustThrow(t, NewSequence(1), 3, 6), WithKeep(tt.keep))
			if !errors.Is(err, tt.want) {
				t.Fatalf("NewRoll error = %v, want %v", err, tt.want)
			}
		})
	}
}

// TestRollKeepAll ensures keeping exactly every die drops nothing.
func TestRollKeepAll(t *testing.T) {
	roll, err := NewRoll(mustThrow(t, NewSequence(2, 5, 3), 3, 6),
		WithKeep(Keep{Direction: KeepHighest, Count: 3}))
	if err != nil {
		t.Fatalf("NewRoll returned error: %v", err)
	}
	if len(roll.Dropped()) != 0 || roll.Sum() != 10 {
		t.Fatalf("unexpected roll: %s", roll)
	}
}

// TestNewRollRequiresResolvedThrow ensures unrolled or missing throws fail.
func TestNewRollRequiresResolvedThrow(t *testing.T) {
	if _, err := NewRoll(nil); !errors.Is(err, ErrMissingThrow) {
		t.Fatalf("NewRoll(nil) error = %v, want %v", err, ErrMissingThrow)
	}
	dice, _ := NDX(2, 6)
	if _, err := NewRoll(NewThrow(NewRandSource(1), dice...)); !errors.Is(err, ErrUnrolled) {
		t.Fatalf("NewRoll(unrolled) error = %v, want %v", err, ErrUnrolled)
	}
}

// TestRollEmptyThrow ensures an empty throw sums to zero.
func TestRollEmptyThrow(t *testing.T) {
	throw, err := ThrowNow(NewRandSource(1))
	if err != nil {
		t.Fatalf("ThrowNow returned error: %v", err)
	}
	roll, err := NewRoll(throw, WithTotalModifier(3))
	if err != nil {
		t.Fatalf("NewRoll returned error: %v", err)
	}
	if roll.Sum() != 0 || roll.Total() != 3 {
		t.Fatalf("sum/total = %d/%d, want 0/3", roll.Sum(), roll.Total())
	}
}

// TestRollIsSnapshot ensures re-throwing after construction leaves the roll intact.
func TestRollIsSnapshot(t *testing.T) {
	throw := mustThrow(t, NewSequence(1, 2, 3), 3, 6)
	roll, err := NewRoll(throw)
	if err != nil {
		t.Fatalf("NewRoll returned error: %v", err)
	}
	before := roll.Result()
	throw.src = NewSequence(6)
	if err := throw.Throw(); err != nil {
		t.Fatalf("Throw returned error: %v", err)
	}
	after := roll.Result()
	if before.Sum != after.Sum || !slices.Equal(before.Faces, after.Faces) {
		t.Fatalf("roll changed after re-throw: %+v -> %+v", before, after)
	}
}

// TestThrowRethrowKeepsDice ensures re-throwing reuses the same dice.
func TestThrowRethrowKeepsDice(t *testing.T) {
	dice, _ := NDX(5, 20)
	throw := NewThrow(NewRandSource(11), dice...)
	if throw.Rolled() {
		t.Fatal("expected a fresh throw to be unrolled")
	}
	if _, err := throw.Results(); !errors.Is(err, ErrUnrolled) {
		t.Fatalf("Results error = %v, want %v", err, ErrUnrolled)
	}
	for i := 0; i < 2; i++ {
		if err := throw.Throw(); err != nil {
			t.Fatalf("Throw returned error: %v", err)
		}
		got := throw.Dice()
		for j := range dice {
			if got[j] != dice[j] {
				t.Fatalf("die %d changed identity after throw %d", j, i)
			}
			if !slices.Equal(got[j].Faces(), dice[j].Faces()) {
				t.Fatalf("die %d changed faces after throw %d", j, i)
			}
		}
		if !throw.Rolled() {
			t.Fatal("expected every die to be rolled")
		}
	}
}

// TestThrowRequiresSource ensures a throw without a source fails.
func TestThrowRequiresSource(t *testing.T) {
	dice, _ := NDX(1, 6)
	if _, err := ThrowNow(nil, dice...); !errors.Is(err, ErrNilSource) {
		t.Fatalf("ThrowNow error = %v, want %v", err, ErrNilSource)
	}
}

// TestNDXRejectsInvalidCount ensures a pool needs at least one die.
func TestNDXRejectsInvalidCount(t *testing.T) {
	if _, err := NDX(0, 6); !errors.Is(err, ErrInvalidCount) {
		t.Fatalf("NDX error = %v, want %v", err, ErrInvalidCount)
	}
	if _, err := NDX(2, 0); !errors.Is(err, ErrInvalidSides) {
		t.Fatalf("NDX error = %v, want %v", err, ErrInvalidSides)
	}
}

// TestRollProperties checks sum bounds, keep counts and keep ordering over many
// random rolls.
func TestRollProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(2024))
	src := NewRandSourceFrom(rng)
	for i := 0; i < 2000; i++ {
		n := rng.Intn(20) + 1
		x := rng.Intn(20) + 1
		mod := rng.Intn(41) - 20

		plain, err := NewRoll(mustThrow(t, src, n, x), WithTotalModifier(mod))
		if err != nil {
			t.Fatalf("NewRoll returned error: %v", err)
		}
		if plain.Total() < n+mod || plain.Total() > n*x+mod {
			t.Fatalf("%dd%d%+d total %d outside [%d, %d]", n, x, mod, plain.Total(), n+mod, n*x+mod)
		}

		k := rng.Intn(n) + 1
		direction := KeepHighest
		if rng.Intn(2) == 0 {
			direction = KeepLowest
		}
		kept, err := NewRoll(mustThrow(t, src, n, x), WithKeep(Keep{Direction: direction, Count: k}))
		if err != nil {
			t.Fatalf("NewRoll returned error: %v", err)
		}
		if len(kept.Kept()) != k || len(kept.Kept())+len(kept.Dropped()) != n {
			t.Fatalf("keep %d of %d: kept %d dropped %d", k, n, len(kept.Kept()), len(kept.Dropped()))
		}
		for _, kv := range kept.Faces() {
			for _, dv := range kept.DroppedFaces() {
				if direction == KeepHighest && kv < dv {
					t.Fatalf("kept %d below dropped %d", kv, dv)
				}
				if direction == KeepLowest && kv > dv {
					t.Fatalf("kept %d above dropped %d", kv, dv)
				}
			}
		}
		if len(kept.RawDice()) != n {
			t.Fatalf("raw dice = %d, want %d", len(kept.RawDice()), n)
		}
	}
}

// TestRollBody ensures the body tally counts 2-5 once and 6 twice.
func TestRollBody(t *testing.T) {
	roll, err := NewRoll(mustThrow(t, NewSequence(1, 2, 5, 6), 4, 6))
	if err != nil {
		t.Fatalf("NewRoll returned error: %v", err)
	}
	if got := roll.Body(); got != 4 {
		t.Fatalf("body = %d, want 4", got)
	}
	if got := roll.Count(CompareAtMost, 2); got != 2 {
		t.Fatalf("count <= 2 = %d, want 2", got)
	}
}

// TestRollResultJSON ensures the result mapping uses the documented keys.
func TestRollResultJSON(t *testing.T) {
	roll, err := NewRoll(mustThrow(t, NewSequence(3, 4), 2, 6), WithTotalModifier(-1))
	if err != nil {
		t.Fatalf("NewRoll returned error: %v", err)
	}
	data, err := json.Marshal(roll.Result())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"sum":7,"total":6,"faces":[3,4],"throw_mod":-1}`
	if string(data) != want {
		t.Fatalf("json = %s, want %s", data, want)
	}
}

// TestRollString ensures the audit line lists kept, dropped and modifier.
func TestRollString(t *testing.T) {
	roll, err := NewRoll(mustThrow(t, NewSequence(2, 5), 2, 6),
		WithKeep(Keep{Direction: KeepHighest, Count: 1}), WithTotalModifier(2))
	if err != nil {
		t.Fatalf("NewRoll returned error: %v", err)
	}
	if got, want := roll.String(), "[5] dropped [2] +2 = 7"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

// TestRollFacesSortedAscending ensures faces are listed low to high whatever
// the throw or selection order.
func TestRollFacesSortedAscending(t *testing.T) {
	plain, err := NewRoll(mustThrow(t, NewSequence(5, 1, 3), 3, 6))
	if err != nil {
		t.Fatalf("NewRoll returned error: %v", err)
	}
	if got := plain.Faces(); !slices.Equal(got, []int{1, 3, 5}) {
		t.Fatalf("faces = %v, want [1 3 5]", got)
	}
	if got := plain.Result().Faces; !slices.Equal(got, []int{1, 3, 5}) {
		t.Fatalf("result faces = %v, want [1 3 5]", got)
	}
	if got := results(t, plain.Dice()); !slices.Equal(got, []int{5, 1, 3}) {
		t.Fatalf("dice = %v, want throw order [5 1 3]", got)
	}

	kept, err := NewRoll(mustThrow(t, NewSequence(4, 6, 1, 5), 4, 6),
		WithKeep(Keep{Direction: KeepHighest, Count: 3}))
	if err != nil {
		t.Fatalf("NewRoll returned error: %v", err)
	}
	if got := kept.Faces(); !slices.Equal(got, []int{4, 5, 6}) {
		t.Fatalf("kept faces = %v, want [4 5 6]", got)
	}
	if got, want := kept.String(), "[4 5 6] dropped [1] = 15"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

// TestThrowFailureKeepsPreviousFaces ensures a draw outside the faces leaves
// every die as it was before the throw.
func TestThrowFailureKeepsPreviousFaces(t *testing.T) {
	throw := mustThrow(t, NewSequence(1, 2, 3), 3, 6)
	throw.src = NewSequence(4, 5, 9)
	if err := throw.Throw(); !errors.Is(err, ErrDrawOutsideFaces) {
		t.Fatalf("Throw error = %v, want %v", err, ErrDrawOutsideFaces)
	}
	got, err := throw.Results()
	if err != nil {
		t.Fatalf("Results returned error: %v", err)
	}
	if !slices.Equal(got, []int{1, 2, 3}) {
		t.Fatalf("results = %v, want [1 2 3]", got)
	}

	dice, _ := NDX(2, 6)
	if _, err := ThrowNow(NewSequence(3, 7), dice...); !errors.Is(err, ErrDrawOutsideFaces) {
		t.Fatalf("ThrowNow error = %v, want %v", err, ErrDrawOutsideFaces)
	}
	for i, d := range dice {
		if d.Rolled() {
			t.Fatalf("die %d rolled after a failed throw", i)
		}
	}
}
