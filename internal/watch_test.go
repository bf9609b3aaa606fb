package internal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tt "github.com/gnolang/neume/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type watchResult struct {
	filename string
	glyphs   []tt.Glyph
	err      error
}

func newWatchEngine(t *testing.T) *Engine {
	t.Helper()
	cfg := NewDefaultConfig()
	cfg.Watch.Debounce = 10 * time.Millisecond
	engine, err := NewEngine(cfg, zap.NewNop())
	require.NoError(t, err)
	return engine
}

// placeFile writes the file elsewhere and renames it into dir, so the
// watcher never sees it half written.
func placeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	staged := filepath.Join(createTempDir(t, "watch-staging"), name)
	require.NoError(t, os.WriteFile(staged, []byte(content), 0o644))
	path := filepath.Join(dir, name)
	require.NoError(t, os.Rename(staged, path))
	return path
}

func TestWatch(t *testing.T) {
	dir := createTempDir(t, "watch-test")
	engine := newWatchEngine(t)

	results := make(chan watchResult, 8)
	require.NoError(t, engine.StartWatching(func(filename string, glyphs []tt.Glyph, err error) {
		results <- watchResult{filename, glyphs, err}
	}, dir))
	t.Cleanup(func() { _ = engine.StopWatching() })

	// ignored: not a score file
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0o644))

	path := placeFile(t, dir, "gloria.neume", podatusScore)

	select {
	case r := <-results:
		assert.Equal(t, path, r.filename)
		require.NoError(t, r.err)
		require.Len(t, r.glyphs, 1)
		assert.Equal(t, tt.GlyphPodatus, r.glyphs[0].Type)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch result")
	}
}

func TestWatchReportsErrors(t *testing.T) {
	dir := createTempDir(t, "watch-error-test")
	engine := newWatchEngine(t)

	results := make(chan watchResult, 8)
	require.NoError(t, engine.StartWatching(func(filename string, glyphs []tt.Glyph, err error) {
		results <- watchResult{filename, glyphs, err}
	}, dir))
	t.Cleanup(func() { _ = engine.StopWatching() })

	placeFile(t, dir, "broken.neume", "notes:\n  - {pitch: z}\n")

	select {
	case r := <-results:
		assert.Error(t, r.err)
		assert.Nil(t, r.glyphs)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch result")
	}
}

func TestWatchState(t *testing.T) {
	dir := createTempDir(t, "watch-state-test")
	engine := newWatchEngine(t)

	assert.ErrorIs(t, engine.StopWatching(), ErrNotWatching)

	require.NoError(t, engine.StartWatching(nil, dir))
	assert.ErrorIs(t, engine.StartWatching(nil, dir), ErrAlreadyWatching)

	require.NoError(t, engine.StopWatching())
	assert.ErrorIs(t, engine.StopWatching(), ErrNotWatching)

	// watching can start again once stopped
	require.NoError(t, engine.StartWatching(nil, dir))
	require.NoError(t, engine.StopWatching())
}

func TestWatchMissingDirectory(t *testing.T) {
	engine := newWatchEngine(t)

	err := engine.StartWatching(nil, filepath.Join(createTempDir(t, "watch-missing"), "nope"))
	assert.Error(t, err)

	// a failed start leaves the engine idle
	assert.ErrorIs(t, engine.StopWatching(), ErrNotWatching)
}
