package dice

import "math/rand"

// RandAlgorithm identifies the generator behind RandSource in roll metadata.
const RandAlgorithm = "math/rand"

// Source draws one value from a non-empty set of equally likely values.
//
// Implementations are not required to be safe for concurrent use; callers that
// roll from several goroutines should build one Source per goroutine.
type Source interface {
	Draw(values []int) int
}

// RandSource draws uniformly using a seeded math/rand generator.
//
// Given the same seed and the same sequence of Draw calls (including the length
// of each values slice), RandSource always returns the same values.
type RandSource struct {
	rng *rand.Rand
}

// NewRandSource creates a deterministic source from seed.
func NewRandSource(seed int64) *RandSource {
	return &RandSource{rng: rand.New(rand.NewSource(seed))}
}

// NewRandSourceFrom wraps an existing generator.
// This is useful when you want to control the RNG directly.
func NewRandSourceFrom(rng *rand.Rand) *RandSource {
	return &RandSource{rng: rng}
}

// Draw returns one element of values chosen uniformly at random.
func (s *RandSource) Draw(values []int) int {
	return values[s.rng.Intn(len(values))]
}

// Sequence replays scripted draws in order, ignoring the candidate values.
//
// Once every scripted value has been returned the sequence starts over, so a
// single value can stand in for an arbitrary number of draws.
type Sequence struct {
	values []int
	next   int
}

// NewSequence creates a source that returns values in order.
func NewSequence(values ...int) *Sequence {
	return &Sequence{values: append([]int(nil), values...)}
}

// Draw returns the next scripted value. An empty sequence yields the first
// candidate value.
func (s *Sequence) Draw(values []int) int {
	if len(s.values) == 0 {
		return values[0]
	}
	value := s.values[s.next%len(s.values)]
	s.next++
	return value
}

// Drawn reports how many values have been returned so far.
func (s *Sequence) Drawn() int {
	return s.next
}
