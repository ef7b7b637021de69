package settings

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/writewithwrabit/wordstreak/db"
	"github.com/writewithwrabit/wordstreak/models"
)

func TestNewByEngine(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	st, err := NewByEngine(ctx, Options{Path: filepath.Join(dir, "data.json")})
	require.NoError(t, err)
	assert.IsType(t, &JSONStore{}, st)

	st, err = NewByEngine(ctx, Options{Engine: " SQLite ", Path: filepath.Join(dir, "streak.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, st)
	assert.NoError(t, st.Close())

	st, err = NewByEngine(ctx, Options{Engine: EngineMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, st)
}

func TestNewByEngineUnknown(t *testing.T) {
	_, err := NewByEngine(context.Background(), Options{Engine: "redis"})

	assert.True(t, errors.Is(err, ErrUnknownEngine))
}

func TestNewByEnginePostgresWithoutDatabase(t *testing.T) {
	_, err := NewByEngine(context.Background(), Options{Engine: EnginePostgres})

	assert.True(t, errors.Is(err, db.ErrNoDatabase))
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	state, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultStreakState(), state)

	require.NoError(t, st.Save(ctx, models.StreakState{Streak: 1, LastCheckedDate: "2024-01-02"}))
	assert.Error(t, st.Save(ctx, models.StreakState{Streak: -1}))

	state, err = st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, state.Streak)
	assert.Equal(t, 1, st.Saves())
}
