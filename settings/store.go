// Package settings persists the streak record between runs.
package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/writewithwrabit/wordstreak/db"
	"github.com/writewithwrabit/wordstreak/models"
)

// Store loads and saves the streak record. Load returns the defaults for a
// store that has never been saved to, and fills any missing field.
type Store interface {
	Load(ctx context.Context) (models.StreakState, error)
	Save(ctx context.Context, state models.StreakState) error
	Close() error
}

const (
	EngineJSON     = "json"
	EngineSQLite   = "sqlite"
	EnginePostgres = "postgres"
	EngineMemory   = "memory"
)

// ErrUnknownEngine is returned by NewByEngine for an unsupported engine name.
var ErrUnknownEngine = errors.New("unsupported store engine")

// Options configures NewByEngine.
type Options struct {
	Engine   string
	Path     string
	Database db.Options
	Logger   *slog.Logger
}

// NewByEngine opens the store named by opts.Engine. An empty engine means json.
func NewByEngine(ctx context.Context, opts Options) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Engine)) {
	case "", EngineJSON:
		return NewJSONStore(opts.Path)
	case EngineSQLite:
		return NewSQLiteStore(ctx, opts.Path)
	case EnginePostgres:
		conn, err := db.Open(ctx, opts.Database)
		if err != nil {
			return nil, err
		}
		st, err := NewPostgresStore(ctx, conn, opts.Logger)
		if err != nil {
			conn.Close()
			return nil, err
		}
		return st, nil
	case EngineMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEngine, opts.Engine)
	}
}
