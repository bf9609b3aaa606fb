// Package internal provides the engine that turns score files into glyphs.
//
// Key components:
//
// Engine: reads score files, runs glyph determination over their notes and
// optionally caches the result. It can also watch directories and segment
// files again as they change.
//
// Config: the YAML configuration, loaded from .neume.yaml by default, with
// environment variables expanded before parsing.
//
// Cache: a gob file of previous results, keyed by file content hash and
// modification time.
//
// Usage:
//
//	cfg, err := internal.LoadConfig("")
//	if err != nil {
//	    // handle error
//	}
//
//	engine, err := internal.NewEngine(cfg, logger)
//	if err != nil {
//	    // handle error
//	}
//
//	glyphs, err := engine.Run("path/to/kyrie.neume")
//	if err != nil {
//	    // handle error
//	}
//
//	for _, g := range glyphs {
//	    fmt.Printf("%s %d..%d\n", g.Type, g.Start, g.End)
//	}
//
// This package is intended for internal use within the tool and should not be
// imported by external packages.
package internal
