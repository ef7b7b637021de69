package models

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the calendar date format stored in LastCheckedDate.
const DateLayout = "2006-01-02"

// ErrInvalidState is returned when a persisted streak record breaks its invariants.
var ErrInvalidState = errors.New("invalid streak state")

// StreakState is the only persisted record: how many qualifying days in a row
// and the last day that was evaluated.
type StreakState struct {
	Streak          int    `json:"streak"`
	LastCheckedDate string `json:"lastCheckedDate"`
}

// DefaultStreakState is the state of a tracker that has never run.
func DefaultStreakState() StreakState {
	return StreakState{Streak: 0, LastCheckedDate: ""}
}

// PartialStreakState mirrors StreakState with optional fields so that a
// stored record missing a key can be told apart from a zero value.
type PartialStreakState struct {
	Streak          *int    `json:"streak"`
	LastCheckedDate *string `json:"lastCheckedDate"`
}

// Merge fills the fields missing from p with the defaults.
func (p PartialStreakState) Merge() StreakState {
	state := DefaultStreakState()
	if p.Streak != nil {
		state.Streak = *p.Streak
	}
	if p.LastCheckedDate != nil {
		state.LastCheckedDate = *p.LastCheckedDate
	}
	return state
}

// Validate checks that the streak is non-negative and the date is empty or YYYY-MM-DD.
func (s StreakState) Validate() error {
	if s.Streak < 0 {
		return fmt.Errorf("%w: negative streak %d", ErrInvalidState, s.Streak)
	}
	if s.LastCheckedDate == "" {
		return nil
	}
	if _, err := time.Parse(DateLayout, s.LastCheckedDate); err != nil {
		return fmt.Errorf("%w: last checked date %q", ErrInvalidState, s.LastCheckedDate)
	}
	return nil
}

// Checked reports whether the state has been evaluated for the given date key.
func (s StreakState) Checked(date string) bool {
	return s.LastCheckedDate != "" && s.LastCheckedDate == date
}
