package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/neume/formatter"
	"github.com/gnolang/neume/internal"
	"github.com/gnolang/neume/segment"
)

// stdinPath reads a score document from standard input.
const stdinPath = "-"

var runCmd = &cobra.Command{
	Use:   "run [paths...]",
	Short: "Segment score files into glyphs",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine, err := segment.New(cfgFile, logger)
		if err != nil {
			logger.Fatal("Failed to initialize engine", zap.Error(err))
		}
		if clearCache {
			engine.ClearCache()
		}

		opts := outputOptions(engine.Config())
		failed, err := runSegmentation(ctx, logger, engine, args, os.Stdin, opts)
		if err != nil {
			logger.Error("Error processing files", zap.Error(err))
			os.Exit(1)
		}
		if failed {
			os.Exit(1)
		}
	},
}

type printOptions struct {
	json    bool
	color   bool
	outPath string
}

// outputOptions merges the command line flags over the configuration.
func outputOptions(config *internal.Config) printOptions {
	return printOptions{
		json:    jsonOutput || config.Output.Format == internal.FormatJSON,
		color:   config.Output.Color && !noColor && outPath == "",
		outPath: outPath,
	}
}

// runSegmentation segments every path and prints the results. It reports
// whether any file failed to segment.
func runSegmentation(
	ctx context.Context,
	logger *zap.Logger,
	engine segment.Engine,
	paths []string,
	stdin io.Reader,
	opts printOptions,
) (bool, error) {
	var results []segment.Result
	for _, path := range paths {
		if path == stdinPath {
			source, err := io.ReadAll(stdin)
			if err != nil {
				return false, fmt.Errorf("error reading standard input: %w", err)
			}
			glyphs, err := segment.ProcessSource(engine, source)
			results = append(results, segment.Result{Filename: "<stdin>", Glyphs: glyphs, Err: err})
			continue
		}
		r, err := segment.ProcessPath(ctx, logger, engine, path, segment.ProcessFile)
		results = append(results, r...)
		if err != nil {
			return false, err
		}
	}

	if err := printResults(results, opts); err != nil {
		return false, err
	}

	for _, r := range results {
		if r.Err != nil {
			return true, nil
		}
	}
	return false, nil
}

func printResults(results []segment.Result, opts printOptions) error {
	w := io.Writer(os.Stdout)
	if opts.outPath != "" {
		f, err := os.Create(opts.outPath)
		if err != nil {
			return fmt.Errorf("error creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	return writeResults(w, results, opts)
}

func writeResults(w io.Writer, results []segment.Result, opts printOptions) error {
	if opts.json {
		reports := make([]formatter.Report, len(results))
		for i, r := range results {
			reports[i] = formatter.NewReport(r.Filename, r.Glyphs, r.Err)
		}
		return formatter.WriteJSON(w, reports)
	}

	if !opts.color {
		color.NoColor = true
	}
	for _, r := range results {
		var output string
		if r.Err != nil {
			output = formatter.GenerateFormattedError(r.Filename, r.Err)
		} else {
			output = formatter.GenerateFormattedGlyphs(r.Filename, r.Glyphs)
		}
		if _, err := fmt.Fprintln(w, output); err != nil {
			return err
		}
	}
	return nil
}
