package formatter

import (
	"encoding/json"
	"io"

	tt "github.com/gnolang/neume/internal/types"
)

// Report is the JSON rendering of one segmented score file.
type Report struct {
	Filename string     `json:"filename"`
	Glyphs   []tt.Glyph `json:"glyphs"`
	Summary  Summary    `json:"summary"`
	Error    string     `json:"error,omitempty"`
}

// NewReport builds the report of a file, recording err in place of glyphs
// when segmentation failed.
func NewReport(filename string, glyphs []tt.Glyph, err error) Report {
	if glyphs == nil {
		glyphs = []tt.Glyph{}
	}
	r := Report{
		Filename: filename,
		Glyphs:   glyphs,
		Summary:  Summarize(glyphs),
	}
	if err != nil {
		r.Error = err.Error()
	}
	return r
}

// WriteJSON writes reports as an indented JSON array.
func WriteJSON(w io.Writer, reports []Report) error {
	if reports == nil {
		reports = []Report{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}
