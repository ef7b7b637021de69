package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/writewithwrabit/wordstreak/config"
	"github.com/writewithwrabit/wordstreak/db"
	"github.com/writewithwrabit/wordstreak/notes"
	"github.com/writewithwrabit/wordstreak/notify"
	"github.com/writewithwrabit/wordstreak/settings"
	"github.com/writewithwrabit/wordstreak/streak"
	"github.com/writewithwrabit/wordstreak/tracker"
)

// app holds everything a command needs, built from the configuration.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   settings.Store
	entries *sql.DB
	tracker *tracker.Tracker
}

func loadConfig(opts *rootOptions) (*config.Config, error) {
	if err := config.LoadEnv(opts.envFile); err != nil {
		return nil, err
	}
	cfg, err := config.Read()
	if err != nil {
		return nil, err
	}

	if opts.notesDir != "" {
		cfg.NotesDir = opts.notesDir
	}
	if opts.engine != "" {
		cfg.StoreEngine = strings.ToLower(strings.TrimSpace(opts.engine))
	}
	if opts.storePath != "" {
		cfg.StorePath = opts.storePath
	}
	if opts.verbose {
		cfg.LogLevel = slog.LevelDebug
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// newApp wires the note source, settings store and notifiers. notifiers
// are added to any configured email notifier.
func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger, notifiers ...notify.Notifier) (*app, error) {
	a := &app{cfg: cfg, logger: logger}

	store, err := settings.NewByEngine(ctx, settings.Options{
		Engine:   cfg.StoreEngine,
		Path:     cfg.StorePath,
		Database: cfg.Database,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}
	a.store = store

	var lookup streak.NoteLookup
	switch cfg.NotesSource {
	case config.SourceEntries:
		conn, err := db.Open(ctx, cfg.Database)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.entries = conn
		lookup = notes.NewEntryStore(conn, logger)
	default:
		lookup = notes.NewVault(cfg.NotesDir, cfg.NoteLayout, cfg.NoteExtension)
	}

	if cfg.Mailgun.Enabled() {
		notifiers = append(notifiers, notify.NewMailgun(cfg.Mailgun.Domain, cfg.Mailgun.Key, cfg.Mailgun.Sender, cfg.Mailgun.Recipient))
	}

	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}

	a.tracker = tracker.New(lookup, store,
		tracker.WithLogger(logger),
		tracker.WithNotifier(notify.Multi(notifiers)),
		tracker.WithClock(func() time.Time { return time.Now().In(loc) }),
	)
	return a, nil
}

func (a *app) Close() error {
	var errs []error
	if a.store != nil {
		errs = append(errs, a.store.Close())
	}
	if a.entries != nil {
		errs = append(errs, a.entries.Close())
	}
	return errors.Join(errs...)
}
