package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type workspace struct {
	notes string
	store string
	env   string
}

func newWorkspace(t *testing.T) workspace {
	t.Helper()
	for _, key := range []string{"NOTES_SOURCE", "STORE_ENGINE", "TZ_NAME", "LOG_LEVEL", "MAILGUN_DOMAIN", "MAILGUN_KEY"} {
		if value, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, value) })
			os.Unsetenv(key)
		}
	}

	dir := t.TempDir()
	ws := workspace{
		notes: filepath.Join(dir, "notes"),
		store: filepath.Join(dir, "data", "streak.json"),
		env:   filepath.Join(dir, "missing.env"),
	}
	require.NoError(t, os.MkdirAll(ws.notes, 0o755))
	return ws
}

func (ws workspace) writeToday(t *testing.T, words int) {
	t.Helper()
	name := time.Now().Format("2006-01-02") + ".md"
	content := strings.Repeat("lorem ", words)
	require.NoError(t, os.WriteFile(filepath.Join(ws.notes, name), []byte(content), 0o644))
}

func (ws workspace) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd("test")
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--env-file", ws.env, "--notes", ws.notes, "--store", "json", "--store-path", ws.store}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestCheckCommandExtendsStreak(t *testing.T) {
	ws := newWorkspace(t)
	ws.writeToday(t, 800)

	out, err := ws.run(t, "check")

	require.NoError(t, err)
	assert.Equal(t, "Your current streak is 1 days!\n", out)

	data, err := os.ReadFile(ws.store)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"streak": 1`)
}

func TestCheckCommandTwiceSameDay(t *testing.T) {
	ws := newWorkspace(t)
	ws.writeToday(t, 750)

	_, err := ws.run(t, "check")
	require.NoError(t, err)
	out, err := ws.run(t, "check")

	require.NoError(t, err)
	assert.Equal(t, "Your current streak is 1 days!\n", out)
}

func TestCheckCommandShortNote(t *testing.T) {
	ws := newWorkspace(t)
	ws.writeToday(t, 749)

	out, err := ws.run(t, "check", "-v")

	require.NoError(t, err)
	assert.Contains(t, out, "Your current streak is 0 days!")
	assert.Contains(t, out, "goal_missed (749 words)")
}

func TestStatusCommand(t *testing.T) {
	ws := newWorkspace(t)

	out, err := ws.run(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Streak: 0 days")
	assert.Contains(t, out, "Last checked date: never")

	ws.writeToday(t, 1000)
	_, err = ws.run(t, "check")
	require.NoError(t, err)

	out, err = ws.run(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Streak: 1 days")
	assert.Contains(t, out, "Last checked date: "+time.Now().Format("2006-01-02"))
}

func TestWordsCommand(t *testing.T) {
	ws := newWorkspace(t)
	path := filepath.Join(ws.notes, "draft.md")
	require.NoError(t, os.WriteFile(path, []byte("a b  c\n d"), 0o644))

	out, err := ws.run(t, "words", path)

	require.NoError(t, err)
	assert.Contains(t, out, "     4  "+path)
}

func TestWordsCommandStdin(t *testing.T) {
	cmd := NewRootCmd("test")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader(strings.Repeat("w ", 750)))
	cmd.SetArgs([]string{"words"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "✓    750  -\n", out.String())
}

func TestUnknownStoreEngine(t *testing.T) {
	ws := newWorkspace(t)

	_, err := ws.run(t, "status", "--store", "redis")

	assert.EqualError(t, err, `invalid configuration: STORE_ENGINE "redis" is not supported`)
}
