// Package tracker runs the daily streak check against the configured note
// source and settings store.
package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/writewithwrabit/wordstreak/models"
	"github.com/writewithwrabit/wordstreak/notify"
	"github.com/writewithwrabit/wordstreak/settings"
	"github.com/writewithwrabit/wordstreak/streak"
)

// Result is what a check produced.
type Result struct {
	State   models.StreakState
	Outcome streak.Outcome
	Words   int
}

// Tracker serialises checks so that two triggers on the same day cannot
// both see the day as unchecked.
type Tracker struct {
	mu       sync.Mutex
	notes    streak.NoteLookup
	store    settings.Store
	notifier notify.Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// Option customises a Tracker.
type Option func(*Tracker)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

// WithNotifier sets where Trigger reports the streak.
func WithNotifier(n notify.Notifier) Option {
	return func(t *Tracker) {
		t.notifier = n
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) {
		t.logger = logger
	}
}

func New(notes streak.NoteLookup, store settings.Store, opts ...Option) *Tracker {
	t := &Tracker{
		notes:    notes,
		store:    store,
		notifier: notify.Discard{},
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Check evaluates today's note once per day and persists a changed state.
// A lookup failure leaves the stored state untouched.
func (t *Tracker) Check(ctx context.Context) (Result, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	previous, err := t.store.Load(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load streak: %w", err)
	}

	today := t.now()
	a, err := streak.Assess(ctx, today, previous, t.notes)
	if err != nil {
		t.logger.WarnContext(ctx, "streak check failed", "date", streak.DateKey(today), "err", err)
		return Result{State: previous}, err
	}

	res := Result{State: a.State, Outcome: a.Outcome, Words: a.Words}
	if !a.Changed() {
		t.logger.DebugContext(ctx, "streak already checked", "date", a.State.LastCheckedDate, "streak", a.State.Streak)
		return res, nil
	}

	if err := t.store.Save(ctx, a.State); err != nil {
		return Result{State: previous}, fmt.Errorf("save streak: %w", err)
	}

	t.logger.InfoContext(ctx, "streak checked",
		"date", a.State.LastCheckedDate,
		"outcome", string(a.Outcome),
		"words", a.Words,
		"note", a.Note,
		"previous", previous.Streak,
		"streak", a.State.Streak,
	)
	return res, nil
}

// Trigger is the manual check: it runs Check and reports the streak.
// A failed notification is logged, not returned.
func (t *Tracker) Trigger(ctx context.Context) (Result, error) {
	res, err := t.Check(ctx)
	if err != nil {
		return res, err
	}

	if err := t.notifier.Notify(ctx, streak.NoticeText(res.State)); err != nil {
		t.logger.WarnContext(ctx, "notify failed", "err", err)
	}
	return res, nil
}

// Current returns the stored state without checking.
func (t *Tracker) Current(ctx context.Context) (models.StreakState, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	state, err := t.store.Load(ctx)
	if err != nil {
		return models.StreakState{}, fmt.Errorf("load streak: %w", err)
	}
	return state, nil
}
