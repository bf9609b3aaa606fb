package glyphs

import (
	"slices"

	tt "github.com/gnolang/neume/internal/types"
)

// determiner walks a note sequence once and cuts it into glyphs.
//
// The notes of the glyph under construction are always notes[first:i] where
// i is the note being classified. Closing a glyph records a range and moves
// first forward; notes are never relinked.
type determiner struct {
	notes  []tt.Note
	glyphs []tt.Glyph

	first   int            // first note of the glyph under construction
	current tt.GlyphType   // tentative type, GlyphUndetermined when idle
	liq     tt.Liquescence // liquescence accumulated for the current glyph
	last    LastPitch      // pitch of the previous pitched note, if any
}

// Determine segments notes into glyphs.
//
// The returned glyphs cover the input in order, every note in exactly one
// glyph. Notes of shape quadratum and quilisma quadratum are stored as
// punctum and quilisma: the glyph type carries the distinction. The input
// slice is not modified.
func Determine(notes []tt.Note) []tt.Glyph {
	if len(notes) == 0 {
		return nil
	}

	d := &determiner{
		notes:  slices.Clone(notes),
		glyphs: make([]tt.Glyph, 0, len(notes)),
	}
	for i := range d.notes {
		if d.notes[i].IsSpecial() {
			d.special(i)
			continue
		}
		d.pitched(i)
	}

	// whatever is still open ends with the last note
	if d.current != tt.GlyphUndetermined {
		d.close(d.current, d.liq, len(d.notes))
	}

	return d.glyphs
}

// special closes the open glyph and emits the token as a glyph of its own.
func (d *determiner) special(i int) {
	if d.current != tt.GlyphUndetermined {
		d.close(d.current, d.liq, i)
		d.reset()
	}

	n := d.notes[i]
	d.glyphs = append(d.glyphs, tt.Glyph{
		Type:    tt.GlyphSpecial,
		Special: n.Special,
		Notes:   d.notes[i : i+1 : i+1],
		Start:   i,
		End:     i + 1,
	})
	d.first = i + 1
}

func (d *determiner) pitched(i int) {
	n := &d.notes[i]

	if n.Liquescence.IsInitioDebilis() {
		// a weak initial note always opens a new glyph
		if d.current != tt.GlyphUndetermined {
			d.close(d.current, d.liq, i)
			d.current = tt.GlyphUndetermined
		}
		d.liq = tt.InitioDebilis
	}

	t := Classify(d.current, n.Pitch, d.last, n.Shape)

	switch n.Shape {
	case tt.ShapeQuadratum:
		n.Shape = tt.ShapePunctum
	case tt.ShapeQuilismaQuadratum:
		n.Shape = tt.ShapeQuilisma
	}

	switch t.Signal {
	case Continue:
		d.current = t.Type
		if n.Liquescence.IsEnd() {
			d.close(d.current, d.liq|n.Liquescence, i+1)
			d.reset()
		}

	case ClosePrevious:
		d.close(d.current, d.liq, i)
		d.current = t.Type
		d.liq = n.Liquescence & tt.InitioDebilis
		if n.Liquescence.IsEnd() {
			d.close(d.current, n.Liquescence, i+1)
			d.reset()
		}

	case CloseCurrent:
		d.close(t.Type, d.liq|n.Liquescence, i+1)
		d.reset()

	case CloseBoth:
		d.close(d.current, d.liq, i)
		d.close(t.Type, n.Liquescence, i+1)
		d.reset()
	}

	d.last = Last(n.Pitch)
}

// close finalizes notes[first:end] as a glyph of type typ. An empty range
// records nothing.
func (d *determiner) close(typ tt.GlyphType, liq tt.Liquescence, end int) {
	if end <= d.first {
		return
	}

	// a first part that found no second note is an ordinary punctum
	if typ.IsFirstPartMarker() {
		typ = tt.GlyphPunctum
	}

	d.glyphs = append(d.glyphs, tt.Glyph{
		Type:        typ,
		Liquescence: liq,
		Notes:       d.notes[d.first:end:end],
		Start:       d.first,
		End:         end,
	})
	d.first = end
}

func (d *determiner) reset() {
	d.current = tt.GlyphUndetermined
	d.liq = tt.NoLiquescence
}
