// Package check compares roll totals against a difficulty.
package check

import "errors"

// ErrInvalidDifficulty indicates a difficulty below zero.
var ErrInvalidDifficulty = errors.New("difficulty must be non-negative")

// Result is the outcome of comparing a roll total with a difficulty.
type Result struct {
	Difficulty int  `json:"difficulty"`
	Success    bool `json:"success"`
	Margin     int  `json:"margin"`
}

// MeetsDifficulty returns true if total >= difficulty.
func MeetsDifficulty(total, difficulty int) bool {
	return total >= difficulty
}

// Margin calculates the margin of success (positive) or failure (negative).
func Margin(total, difficulty int) int {
	return total - difficulty
}

// Against compares total with difficulty.
func Against(total, difficulty int) (Result, error) {
	if difficulty < 0 {
		return Result{}, ErrInvalidDifficulty
	}
	return Result{
		Difficulty: difficulty,
		Success:    MeetsDifficulty(total, difficulty),
		Margin:     Margin(total, difficulty),
	}, nil
}

// Optional runs Against when a difficulty is present and returns nil otherwise.
func Optional(total int, difficulty *int) (*Result, error) {
	if difficulty == nil {
		return nil, nil
	}
	result, err := Against(total, *difficulty)
	if err != nil {
		return nil, err
	}
	return &result, nil
}
