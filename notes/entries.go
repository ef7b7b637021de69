package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	wrabitDB "github.com/writewithwrabit/wordstreak/db"
	"github.com/writewithwrabit/wordstreak/models"
	"github.com/writewithwrabit/wordstreak/streak"
)

const dailyEntryQuery = "SELECT id, content FROM entries WHERE created_at >= $1 AND created_at < $2 ORDER BY created_at DESC LIMIT 1"

// EntryStore reads the day's entry from the entries table.
type EntryStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewEntryStore returns an EntryStore backed by db.
func NewEntryStore(db *sql.DB, logger *slog.Logger) *EntryStore {
	return &EntryStore{db: db, logger: logger}
}

var _ streak.NoteLookup = (*EntryStore)(nil)

// Lookup returns the newest entry created on day, in day's location.
func (s *EntryStore) Lookup(ctx context.Context, day time.Time) (models.Note, bool, error) {
	y, m, d := day.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var id, content string
	err := wrabitDB.LogAndQueryRow(ctx, s.logger, s.db, dailyEntryQuery, start, end).Scan(&id, &content)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Note{}, false, nil
	}
	if err != nil {
		return models.Note{}, false, fmt.Errorf("query daily entry: %w", err)
	}

	return models.Note{Date: streak.DateKey(day), Path: "entries/" + id, Content: content}, true, nil
}
