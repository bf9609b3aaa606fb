package internal

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	tt "github.com/gnolang/neume/internal/types"
)

var (
	ErrAlreadyWatching = errors.New("already watching")
	ErrNotWatching     = errors.New("not watching")
)

// StartWatching segments score files under dirs again each time they are
// written and hands the result to handler.
func (e *Engine) StartWatching(handler ResultHandler, dirs ...string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.isWatching {
		return ErrAlreadyWatching
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}

	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			watcher.Close()
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	e.watcher = watcher
	e.onResult = handler
	e.isWatching = true
	go e.watchLoop(watcher)
	return nil
}

func (e *Engine) StopWatching() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.isWatching {
		return ErrNotWatching
	}

	e.isWatching = false
	for name, timer := range e.pending {
		timer.Stop()
		delete(e.pending, name)
	}
	return e.watcher.Close()
}

func (e *Engine) watchLoop(watcher *fsnotify.Watcher) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			e.handleFileEvent(event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			e.logger.Error("Watcher error", zap.Error(err))
		}
	}
}

func (e *Engine) handleFileEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	if !e.Accepts(event.Name) {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.isWatching {
		return
	}

	// several writes within the debounce window count as one
	if timer, ok := e.pending[event.Name]; ok {
		timer.Reset(e.config.Watch.Debounce)
		return
	}
	name := event.Name
	e.pending[name] = time.AfterFunc(e.config.Watch.Debounce, func() {
		e.mu.Lock()
		delete(e.pending, name)
		handler := e.onResult
		watching := e.isWatching
		e.mu.Unlock()

		if !watching {
			return
		}
		result, err := e.Run(name)
		e.reportGlyphs(name, result, err)
		if handler != nil {
			handler(name, result, err)
		}
	})
}

func (e *Engine) reportGlyphs(filename string, glyphs []tt.Glyph, err error) {
	if err != nil {
		e.logger.Error("Error segmenting file", zap.String("file", filename), zap.Error(err))
		return
	}

	notes := 0
	for _, g := range glyphs {
		notes += g.Len()
	}
	e.logger.Info("Segmented file",
		zap.String("file", filename),
		zap.Int("notes", notes),
		zap.Int("glyphs", len(glyphs)))
}
