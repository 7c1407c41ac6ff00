// Package random provides seed generation and resolution for rolls.
//
// Server-generated seeds come from crypto/rand so that they cannot be predicted,
// while the generator they seed stays deterministic for replays.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// SeedSource records who chose the seed for a roll.
type SeedSource string

const (
	// SeedSourceClient means the caller supplied the seed.
	SeedSourceClient SeedSource = "CLIENT"
	// SeedSourceServer means the seed was generated for the caller.
	SeedSourceServer SeedSource = "SERVER"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// ResolveSeed returns the requested seed when present and a fresh one otherwise.
func ResolveSeed(requested *int64, generate func() (int64, error)) (int64, SeedSource, error) {
	if requested != nil {
		return *requested, SeedSourceClient, nil
	}
	if generate == nil {
		generate = NewSeed
	}
	seed, err := generate()
	if err != nil {
		return 0, "", err
	}
	return seed, SeedSourceServer, nil
}
