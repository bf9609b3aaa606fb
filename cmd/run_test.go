package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gnolang/neume/formatter"
	"github.com/gnolang/neume/internal"
	tt "github.com/gnolang/neume/internal/types"
	"github.com/gnolang/neume/segment"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func newTestEngine(t *testing.T) *internal.Engine {
	t.Helper()
	cfg := internal.NewDefaultConfig()
	cfg.Watch.Debounce = 10 * time.Millisecond
	engine, err := internal.NewEngine(cfg, zap.NewNop())
	require.NoError(t, err)
	return engine
}

func TestOutputOptions(t *testing.T) {
	cfg := internal.NewDefaultConfig()

	opts := outputOptions(cfg)
	assert.False(t, opts.json)
	assert.True(t, opts.color)

	cfg.Output.Format = internal.FormatJSON
	assert.True(t, outputOptions(cfg).json)

	noColor = true
	t.Cleanup(func() { noColor = false })
	assert.False(t, outputOptions(cfg).color)
}

func TestRootOutputFlags(t *testing.T) {
	for _, name := range []string{"json", "no-color", "output", "clear-cache"} {
		require.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
		assert.NotNil(t, runCmd.InheritedFlags().Lookup(name), name)
		assert.NotNil(t, watchCmd.InheritedFlags().Lookup(name), name)
	}

	t.Cleanup(func() {
		jsonOutput, noColor, outPath, clearCache = false, false, "", false
		for _, name := range []string{"json", "no-color", "output", "clear-cache"} {
			rootCmd.PersistentFlags().Lookup(name).Changed = false
		}
	})

	// neume --json --no-color -o glyphs.json --clear-cache kyrie.neume
	require.NoError(t, rootCmd.ParseFlags([]string{"--json", "--no-color", "-o", "glyphs.json", "--clear-cache", "kyrie.neume"}))
	assert.Equal(t, []string{"kyrie.neume"}, rootCmd.Flags().Args())
	assert.True(t, clearCache)

	opts := outputOptions(internal.NewDefaultConfig())
	assert.Equal(t, printOptions{json: true, color: false, outPath: "glyphs.json"}, opts)
}

func TestRunSegmentation(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.neume"), []byte("notes:\n  - {pitch: f}\n  - {pitch: d}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.neume"), []byte("notes:\n  - {pitch: q}\n"), 0o644))
	out := filepath.Join(dir, "glyphs.json")

	engine := newTestEngine(t)
	stdin := strings.NewReader("notes:\n  - {pitch: c}\n  - {pitch: e}\n")

	failed, err := runSegmentation(context.Background(), zap.NewNop(), engine,
		[]string{dir, stdinPath}, stdin, printOptions{json: true, outPath: out})
	require.NoError(t, err)
	assert.True(t, failed)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var reports []formatter.Report
	require.NoError(t, json.Unmarshal(data, &reports))
	require.Len(t, reports, 3)

	assert.Equal(t, filepath.Join(dir, "a.neume"), reports[0].Filename)
	require.Len(t, reports[0].Glyphs, 1)
	assert.Equal(t, tt.GlyphFlexa, reports[0].Glyphs[0].Type)

	assert.Contains(t, reports[1].Error, "invalid pitch")

	assert.Equal(t, "<stdin>", reports[2].Filename)
	require.Len(t, reports[2].Glyphs, 1)
	assert.Equal(t, tt.GlyphPodatus, reports[2].Glyphs[0].Type)
}

func TestRunSegmentationMissingPath(t *testing.T) {
	engine := newTestEngine(t)
	_, err := runSegmentation(context.Background(), zap.NewNop(), engine,
		[]string{filepath.Join(t.TempDir(), "missing")}, strings.NewReader(""), printOptions{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteResultsText(t *testing.T) {
	results := []segment.Result{
		{
			Filename: "a.neume",
			Glyphs: []tt.Glyph{{
				Type:  tt.GlyphPunctum,
				Notes: []tt.Note{{Kind: tt.Pitched, Pitch: 5, Shape: tt.ShapePunctum}},
				Start: 0, End: 1,
			}},
		},
		{Filename: "b.neume", Err: errors.New("note 1: invalid pitch \"q\"")},
	}

	var buf bytes.Buffer
	require.NoError(t, writeResults(&buf, results, printOptions{}))

	expected := `a.neume: 1 note in 1 glyph
  |
1 | punctum e
  |
  = 1 punctum

error: b.neume: note 1: invalid pitch "q"

`
	assert.Equal(t, expected, buf.String())
}

func TestInitConfigurationFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")

	got, err := initConfigurationFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	cfg, err := internal.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, internal.NewDefaultConfig(), cfg)
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	engine := newTestEngine(t)
	ctx, cancel := context.WithCancel(context.Background())

	var out syncBuffer
	done := make(chan error, 1)
	go func() { done <- watch(ctx, engine, []string{dir}, &out, printOptions{}) }()

	// give the watcher time to register the directory
	time.Sleep(100 * time.Millisecond)

	staged := filepath.Join(t.TempDir(), "salve.neume")
	require.NoError(t, os.WriteFile(staged, []byte("notes:\n  - {pitch: g, shape: virga}\n"), 0o644))
	require.NoError(t, os.Rename(staged, filepath.Join(dir, "salve.neume")))

	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "1 | virga g(virga)")
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
