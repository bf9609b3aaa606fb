package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/neume/formatter"
	"github.com/gnolang/neume/internal"
	tt "github.com/gnolang/neume/internal/types"
	"github.com/gnolang/neume/segment"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Segment score files again whenever they change",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			args = []string{"."}
		}

		engine, err := segment.New(cfgFile, logger)
		if err != nil {
			logger.Fatal("Failed to initialize engine", zap.Error(err))
		}
		if clearCache {
			engine.ClearCache()
		}

		w := cmd.OutOrStdout()
		if outPath != "" {
			f, err := os.OpenFile(outPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				logger.Fatal("Failed to open output file", zap.Error(err))
			}
			defer f.Close()
			w = f
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		opts := outputOptions(engine.Config())
		if err := watch(ctx, engine, args, w, opts); err != nil {
			logger.Fatal("Failed to watch", zap.Error(err))
		}
	},
}

// watch prints the glyphs of every score file written under dirs until ctx
// is done.
func watch(ctx context.Context, engine *internal.Engine, dirs []string, w io.Writer, opts printOptions) error {
	if !opts.color {
		color.NoColor = true
	}

	var mu sync.Mutex
	handler := func(filename string, glyphs []tt.Glyph, err error) {
		mu.Lock()
		defer mu.Unlock()
		if opts.json {
			_ = formatter.WriteJSON(w, []formatter.Report{formatter.NewReport(filename, glyphs, err)})
			return
		}
		if err != nil {
			fmt.Fprintln(w, formatter.GenerateFormattedError(filename, err))
			return
		}
		fmt.Fprintln(w, formatter.GenerateFormattedGlyphs(filename, glyphs))
	}

	if err := engine.StartWatching(handler, dirs...); err != nil {
		return err
	}
	<-ctx.Done()
	return engine.StopWatching()
}
