package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	wrabitDB "github.com/writewithwrabit/wordstreak/db"
	"github.com/writewithwrabit/wordstreak/models"
)

const (
	postgresSchema = "CREATE TABLE IF NOT EXISTS streak_state (id INTEGER PRIMARY KEY CHECK (id = 1), streak INTEGER, last_checked_date TEXT, updated_at TIMESTAMPTZ NOT NULL DEFAULT now())"
	postgresLoad   = "SELECT streak, last_checked_date FROM streak_state WHERE id = 1"
	postgresSave   = "INSERT INTO streak_state (id, streak, last_checked_date, updated_at) VALUES (1, $1, $2, now()) ON CONFLICT (id) DO UPDATE SET streak = EXCLUDED.streak, last_checked_date = EXCLUDED.last_checked_date, updated_at = now()"
)

// PostgresStore keeps the record as the single row of streak_state.
type PostgresStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresStore creates the streak_state table if needed.
func NewPostgresStore(ctx context.Context, db *sql.DB, logger *slog.Logger) (*PostgresStore, error) {
	st := &PostgresStore{db: db, logger: logger}
	if _, err := wrabitDB.LogAndExec(ctx, logger, db, postgresSchema); err != nil {
		return nil, fmt.Errorf("create streak_state: %w", err)
	}
	return st, nil
}

var _ Store = (*PostgresStore)(nil)

func (s *PostgresStore) Load(ctx context.Context) (models.StreakState, error) {
	state, err := scanState(wrabitDB.LogAndQueryRow(ctx, s.logger, s.db, postgresLoad))
	if errors.Is(err, sql.ErrNoRows) {
		return models.DefaultStreakState(), nil
	}
	if err != nil {
		return models.StreakState{}, fmt.Errorf("load streak state: %w", err)
	}
	return state, nil
}

func (s *PostgresStore) Save(ctx context.Context, state models.StreakState) error {
	if err := state.Validate(); err != nil {
		return err
	}
	if _, err := wrabitDB.LogAndExec(ctx, s.logger, s.db, postgresSave, state.Streak, state.LastCheckedDate); err != nil {
		return fmt.Errorf("save streak state: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
