// Package streak decides, once per calendar day, whether the day's note
// keeps the writing streak alive.
package streak

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/writewithwrabit/wordstreak/models"
)

// ErrLookupFailure marks a note lookup that could not reach its storage.
// It is never a reason to reset the streak.
var ErrLookupFailure = errors.New("note lookup failed")

// NoteLookup finds the note for a day. A missing note is reported as
// ok == false with a nil error.
type NoteLookup interface {
	Lookup(ctx context.Context, day time.Time) (note models.Note, ok bool, err error)
}

// LookupFunc adapts a function to NoteLookup.
type LookupFunc func(ctx context.Context, day time.Time) (models.Note, bool, error)

// Lookup calls f.
func (f LookupFunc) Lookup(ctx context.Context, day time.Time) (models.Note, bool, error) {
	return f(ctx, day)
}

// Outcome says why an evaluation produced its state.
type Outcome string

const (
	OutcomeAlreadyChecked Outcome = "already_checked"
	OutcomeNoteMissing    Outcome = "note_missing"
	OutcomeGoalMet        Outcome = "goal_met"
	OutcomeGoalMissed     Outcome = "goal_missed"
)

// Assessment is the result of one evaluation.
type Assessment struct {
	State   models.StreakState
	Outcome Outcome
	Words   int
	Note    string
}

// Changed reports whether the assessment produced a new state to persist.
func (a Assessment) Changed() bool {
	return a.Outcome != OutcomeAlreadyChecked
}

// DateKey formats a day the way LastCheckedDate stores it.
func DateKey(day time.Time) string {
	return day.Format(models.DateLayout)
}

// Evaluate returns the state after checking today's note.
func Evaluate(ctx context.Context, today time.Time, previous models.StreakState, lookup NoteLookup) (models.StreakState, error) {
	a, err := Assess(ctx, today, previous, lookup)
	return a.State, err
}

// Assess is Evaluate with the reason attached. A lookup error leaves the
// previous state in place and wraps ErrLookupFailure.
func Assess(ctx context.Context, today time.Time, previous models.StreakState, lookup NoteLookup) (Assessment, error) {
	key := DateKey(today)
	if previous.Checked(key) {
		return Assessment{State: previous, Outcome: OutcomeAlreadyChecked}, nil
	}

	note, ok, err := lookup.Lookup(ctx, today)
	if err != nil {
		return Assessment{State: previous}, fmt.Errorf("%w for %s: %v", ErrLookupFailure, key, err)
	}

	next := models.StreakState{LastCheckedDate: key}
	if !ok {
		return Assessment{State: next, Outcome: OutcomeNoteMissing}, nil
	}

	words := WordCount(note.Content)
	if !GoalMet(words) {
		return Assessment{State: next, Outcome: OutcomeGoalMissed, Words: words, Note: note.Path}, nil
	}

	next.Streak = previous.Streak + 1
	return Assessment{State: next, Outcome: OutcomeGoalMet, Words: words, Note: note.Path}, nil
}
