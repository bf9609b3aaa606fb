package internal

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/gnolang/neume/internal/glyphs"
	"github.com/gnolang/neume/internal/score"
	tt "github.com/gnolang/neume/internal/types"
)

// Engine runs glyph determination over score files.
type Engine struct {
	config     *Config
	extensions map[string]bool
	cache      *Cache
	logger     *zap.Logger

	mu         sync.Mutex
	watcher    *fsnotify.Watcher
	isWatching bool
	onResult   ResultHandler
	pending    map[string]*time.Timer
}

// ResultHandler receives the glyphs of a file segmented in watch mode.
type ResultHandler func(filename string, glyphs []tt.Glyph, err error)

// NewEngine creates an engine for the given configuration. A nil config
// means the defaults, a nil logger discards log output.
func NewEngine(config *Config, logger *zap.Logger) (*Engine, error) {
	if config == nil {
		config = NewDefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	engine := &Engine{
		config:     config,
		extensions: make(map[string]bool, len(config.Extensions)),
		logger:     logger,
		pending:    make(map[string]*time.Timer),
	}
	for _, ext := range config.Extensions {
		engine.extensions[strings.ToLower(ext)] = true
	}

	if config.Cache.Enabled {
		cache, err := NewCache(config.Cache.Dir)
		if err != nil {
			return nil, err
		}
		cache.SetMaxAge(config.Cache.MaxAge)
		engine.cache = cache
	}

	return engine, nil
}

// Config returns the configuration the engine runs with.
func (e *Engine) Config() *Config {
	return e.config
}

// ClearCache drops every cached result. It does nothing when the cache is
// disabled.
func (e *Engine) ClearCache() {
	if e.cache != nil {
		e.cache.InvalidateAll()
	}
}

// Accepts reports whether filename has one of the score file extensions.
func (e *Engine) Accepts(filename string) bool {
	return e.extensions[strings.ToLower(filepath.Ext(filename))]
}

// Run segments the score file at filename.
func (e *Engine) Run(filename string) ([]tt.Glyph, error) {
	if e.cache != nil {
		if cached, ok := e.cache.Get(filename); ok {
			return cached, nil
		}
	}

	s, err := score.Read(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading score: %w", err)
	}
	result := e.RunNotes(s.Notes)

	if e.cache != nil {
		if err := e.cache.Set(filename, result); err != nil {
			e.logger.Warn("Failed to cache glyphs", zap.String("file", filename), zap.Error(err))
		}
	}

	return result, nil
}

// RunSource segments an in-memory score document.
func (e *Engine) RunSource(source []byte) ([]tt.Glyph, error) {
	s, err := score.Parse(source)
	if err != nil {
		return nil, err
	}
	return e.RunNotes(s.Notes), nil
}

// RunNotes segments an already lexed note sequence.
func (e *Engine) RunNotes(notes []tt.Note) []tt.Glyph {
	return glyphs.Determine(notes)
}
