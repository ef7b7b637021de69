package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/writewithwrabit/wordstreak/models"
)

// SQLiteStore keeps the record as the single row of streak_state.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(ctx context.Context, filePath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", filePath)
	if err != nil {
		return nil, err
	}
	st := &SQLiteStore{db: db}
	if err := st.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return st, nil
}

var _ Store = (*SQLiteStore)(nil)

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Load(ctx context.Context) (models.StreakState, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT streak, last_checked_date
		FROM streak_state
		WHERE id = 1`)

	state, err := scanState(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DefaultStreakState(), nil
	}
	if err != nil {
		return models.StreakState{}, fmt.Errorf("load streak state: %w", err)
	}
	return state, nil
}

func (s *SQLiteStore) Save(ctx context.Context, state models.StreakState) error {
	if err := state.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO streak_state (id, streak, last_checked_date)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			streak = excluded.streak,
			last_checked_date = excluded.last_checked_date`,
		state.Streak,
		state.LastCheckedDate,
	)
	if err != nil {
		return fmt.Errorf("save streak state: %w", err)
	}
	return nil
}

func (s *SQLiteStore) initSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS streak_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			streak INTEGER,
			last_checked_date TEXT
		);
	`)
	return err
}

// scanState reads a (streak, last_checked_date) row, filling NULL columns
// from the defaults.
func scanState(row *sql.Row) (models.StreakState, error) {
	var streak sql.NullInt64
	var date sql.NullString
	if err := row.Scan(&streak, &date); err != nil {
		return models.StreakState{}, err
	}

	var partial models.PartialStreakState
	if streak.Valid {
		n := int(streak.Int64)
		partial.Streak = &n
	}
	if date.Valid {
		partial.LastCheckedDate = &date.String
	}
	state := partial.Merge()
	if err := state.Validate(); err != nil {
		return models.StreakState{}, err
	}
	return state, nil
}
