// Package segment runs glyph determination over score files, directories
// and in-memory sources.
package segment

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gnolang/neume/internal"
	tt "github.com/gnolang/neume/internal/types"
)

type Engine interface {
	Run(filename string) ([]tt.Glyph, error)
	RunSource(source []byte) ([]tt.Glyph, error)
	Accepts(filename string) bool
}

// Result is the segmentation of one score file. Err is set when the file
// could not be read or parsed.
type Result struct {
	Filename string
	Glyphs   []tt.Glyph
	Err      error
}

// Processor segments one file with the given engine.
type Processor func(Engine, string) ([]tt.Glyph, error)

// New creates an engine from the configuration file at configurationPath.
// An empty path looks for the default configuration file.
func New(configurationPath string, logger *zap.Logger) (*internal.Engine, error) {
	config, err := internal.LoadConfig(configurationPath)
	if err != nil {
		return nil, err
	}
	return internal.NewEngine(config, logger)
}

// ProcessSources segments each source in turn. On the first failure it
// returns the glyphs of the sources before it along with the error.
func ProcessSources(
	ctx context.Context,
	logger *zap.Logger,
	engine Engine,
	sources [][]byte,
	processor func(Engine, []byte) ([]tt.Glyph, error),
) ([][]tt.Glyph, error) {
	all := make([][]tt.Glyph, 0, len(sources))
	for i, source := range sources {
		if err := ctx.Err(); err != nil {
			return all, err
		}
		glyphs, err := processor(engine, source)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing source", zap.Int("source", i), zap.Error(err))
			}
			return all, err
		}
		all = append(all, glyphs)
	}
	return all, nil
}

// ProcessFiles processes every path in turn. Results come back in path
// order, each directory sorted by file name.
func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine Engine,
	paths []string,
	processor Processor,
) ([]Result, error) {
	var all []Result
	for _, path := range paths {
		results, err := ProcessPath(ctx, logger, engine, path, processor)
		all = append(all, results...)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return all, err
		}
	}
	return all, nil
}

// ProcessPath processes a single score file or every accepted file below a
// directory. Files of a directory are segmented concurrently. When ctx is
// cancelled the results gathered so far are returned with ctx's error.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine Engine,
	path string,
	processor Processor,
) ([]Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		if !engine.Accepts(path) {
			if logger != nil {
				logger.Warn("Skipping file without a score extension", zap.String("file", path))
			}
			return nil, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		glyphs, err := processor(engine, path)
		return []Result{{Filename: path, Glyphs: glyphs, Err: err}}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && engine.Accepts(filePath) {
			files = append(files, filePath)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory %s: %w", path, err)
	}
	sort.Strings(files)

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	// each worker owns one slot, so no locking is needed
	results := make([]Result, len(files))
	done := make([]bool, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, filePath := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			glyphs, err := processor(engine, filePath)
			if err != nil && logger != nil {
				logger.Error("Error processing file", zap.String("file", filePath), zap.Error(err))
			}
			results[i] = Result{Filename: filePath, Glyphs: glyphs, Err: err}
			done[i] = true
			_ = bar.Add(1)
			return nil
		})
	}
	waitErr := g.Wait()
	_ = bar.Finish()

	processed := make([]Result, 0, len(files))
	for i := range results {
		if done[i] {
			processed = append(processed, results[i])
		}
	}
	if len(processed) < len(files) {
		if waitErr != nil {
			return processed, waitErr
		}
		return processed, ctx.Err()
	}
	return processed, nil
}

func ProcessFile(engine Engine, filename string) ([]tt.Glyph, error) {
	return engine.Run(filename)
}

func ProcessSource(engine Engine, source []byte) ([]tt.Glyph, error) {
	return engine.RunSource(source)
}
