package formatter

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/fatih/color"

	tt "github.com/gnolang/neume/internal/types"
)

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgHiBlue, color.Bold)
	glyphStyle   = color.New(color.FgYellow, color.Bold)
	specialStyle = color.New(color.FgMagenta)
	liqStyle     = color.New(color.FgGreen)
	noStyle      = color.New(color.FgWhite)
)

const glyphTemplate = `{{header .Filename .Padding .Summary -}}
{{range .Lines}}{{glyph . $.MaxIndexWidth $.MaxTypeWidth}}{{end -}}
{{summary .Summary .Padding}}`

var tmpl = template.Must(template.New("glyphs").Funcs(template.FuncMap{
	"header":  header,
	"glyph":   glyphLine,
	"summary": summaryLine,
}).Parse(glyphTemplate))

// GlyphLine is one row of the text rendering.
type GlyphLine struct {
	Index int
	Glyph tt.Glyph
}

// GlyphData holds everything the text template needs for one file.
type GlyphData struct {
	Filename      string
	Padding       string
	MaxIndexWidth int
	MaxTypeWidth  int
	Lines         []GlyphLine
	Summary       Summary
}

// GenerateFormattedGlyphs renders the glyphs of one score file, one glyph
// per line, followed by a count of each glyph type.
//
//	kyrie.neume: 7 notes in 3 glyphs
//	  |
//	1 | special  c-clef d
//	2 | torculus g h g
//	3 | podatus  f g +deminutus
//	  |
//	  = 1 podatus, 1 torculus, 1 special
func GenerateFormattedGlyphs(filename string, glyphs []tt.Glyph) string {
	width := len(strconv.Itoa(len(glyphs)))
	data := GlyphData{
		Filename:      filename,
		Padding:       strings.Repeat(" ", width+1),
		MaxIndexWidth: width,
		Lines:         make([]GlyphLine, len(glyphs)),
		Summary:       Summarize(glyphs),
	}
	for i, g := range glyphs {
		data.Lines[i] = GlyphLine{Index: i + 1, Glyph: g}
		if n := len(g.Type.String()); n > data.MaxTypeWidth {
			data.MaxTypeWidth = n
		}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return errorStyle.Sprintf("Error formatting glyphs: %v\n", err)
	}
	return buf.String()
}

// utils functions used in the text template

func header(filename string, padding string, s Summary) string {
	var endString string
	endString = fileStyle.Sprint(filename)
	endString += noStyle.Sprintf(": %d %s in %d %s\n",
		s.Notes, plural(s.Notes, "note"), s.Glyphs, plural(s.Glyphs, "glyph"))
	endString += lineStyle.Sprintf("%s|\n", padding)
	return endString
}

func glyphLine(line GlyphLine, maxIndexWidth, maxTypeWidth int) string {
	g := line.Glyph
	lineNum := fmt.Sprintf("%*d", maxIndexWidth, line.Index)

	var endString string
	endString = lineStyle.Sprintf("%s | ", lineNum)

	name := fmt.Sprintf("%-*s", maxTypeWidth, g.Type)
	if g.Type == tt.GlyphSpecial {
		endString += specialStyle.Sprint(name)
	} else {
		endString += glyphStyle.Sprint(name)
	}

	endString += " " + notesText(g)
	if g.Liquescence != tt.NoLiquescence {
		endString += " " + liqStyle.Sprintf("+%s", g.Liquescence)
	}
	return endString + "\n"
}

func summaryLine(s Summary, padding string) string {
	var endString string
	endString = lineStyle.Sprintf("%s|\n", padding)
	if len(s.Counts) == 0 {
		return endString + lineStyle.Sprintf("%s= ", padding) + noStyle.Sprint("no glyphs\n")
	}

	counts := make([]string, len(s.Counts))
	for i, c := range s.Counts {
		counts[i] = fmt.Sprintf("%d %s", c.Count, c.Type)
	}
	endString += lineStyle.Sprintf("%s= ", padding)
	endString += noStyle.Sprintf("%s\n", strings.Join(counts, ", "))
	return endString
}

func notesText(g tt.Glyph) string {
	parts := make([]string, 0, len(g.Notes))
	for _, n := range g.Notes {
		if n.IsSpecial() {
			s := n.Special.String()
			if n.Pitch > 0 {
				s += " " + PitchName(n.Pitch)
			}
			parts = append(parts, s)
			continue
		}
		s := PitchName(n.Pitch)
		if n.Shape != tt.ShapePunctum {
			s += "(" + n.Shape.String() + ")"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}

// PitchName writes a pitch as its staff letter, a for 1 up to m for 13, and
// as a number outside that range.
func PitchName(p tt.Pitch) string {
	if p >= 1 && p <= 13 {
		return string(rune('a' + p - 1))
	}
	return strconv.Itoa(int(p))
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// GenerateFormattedError renders a file that could not be segmented.
func GenerateFormattedError(filename string, err error) string {
	return errorStyle.Sprint("error: ") + fileStyle.Sprint(filename) + noStyle.Sprintf(": %v\n", err)
}
