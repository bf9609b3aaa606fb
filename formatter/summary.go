package formatter

import (
	"sort"

	tt "github.com/gnolang/neume/internal/types"
)

// TypeCount is the number of glyphs of one type.
type TypeCount struct {
	Type  tt.GlyphType `json:"type"`
	Count int          `json:"count"`
}

// Summary counts the notes and glyphs of a segmentation.
type Summary struct {
	Notes  int         `json:"notes"`
	Glyphs int         `json:"glyphs"`
	Counts []TypeCount `json:"counts"`
}

// Summarize counts glyphs per type, in glyph type order. Special tokens
// count as notes.
func Summarize(glyphs []tt.Glyph) Summary {
	s := Summary{Glyphs: len(glyphs), Counts: []TypeCount{}}
	byType := make(map[tt.GlyphType]int)
	for _, g := range glyphs {
		s.Notes += g.Len()
		byType[g.Type]++
	}
	for typ, n := range byType {
		s.Counts = append(s.Counts, TypeCount{Type: typ, Count: n})
	}
	sort.Slice(s.Counts, func(i, j int) bool {
		return s.Counts[i].Type < s.Counts[j].Type
	})
	return s
}
