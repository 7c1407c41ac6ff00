package random

import (
	"errors"
	"testing"
)

func TestNewSeedVaries(t *testing.T) {
	a, err := NewSeed()
	if err != nil {
		t.Fatalf("NewSeed returned error: %v", err)
	}
	b, err := NewSeed()
	if err != nil {
		t.Fatalf("NewSeed returned error: %v", err)
	}
	if a == b {
		t.Fatalf("expected two seeds to differ, got %d twice", a)
	}
}

func TestResolveSeed(t *testing.T) {
	requested := int64(42)
	seed, source, err := ResolveSeed(&requested, func() (int64, error) {
		t.Fatal("generator must not run when a seed is requested")
		return 0, nil
	})
	if err != nil {
		t.Fatalf("ResolveSeed returned error: %v", err)
	}
	if seed != 42 || source != SeedSourceClient {
		t.Fatalf("ResolveSeed = %d, %s; want 42, CLIENT", seed, source)
	}

	seed, source, err = ResolveSeed(nil, func() (int64, error) { return 7, nil })
	if err != nil {
		t.Fatalf("ResolveSeed returned error: %v", err)
	}
	if seed != 7 || source != SeedSourceServer {
		t.Fatalf("ResolveSeed = %d, %s; want 7, SERVER", seed, source)
	}
}

func TestResolveSeedGeneratorError(t *testing.T) {
	boom := errors.New("boom")
	if _, _, err := ResolveSeed(nil, func() (int64, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Fatalf("ResolveSeed error = %v, want %v", err, boom)
	}
}
