/*
Package glyphs groups a note sequence into glyphs, the units a chant
engraver draws: puncta, ligatures such as podatus or torculus, runs of
puncta inclinata, strophae and virgae.

# Overview

Segmentation is a single left-to-right pass. The driver (Determine) keeps one
glyph under construction and asks the transition table (Classify) what the
next pitched note does to it. Classify answers with the new glyph type and a
Signal:

  - Continue: the note joins the glyph, more notes may follow.
  - ClosePrevious: the glyph closes before the note, which starts a new one.
  - CloseCurrent: the note joins the glyph, which closes right after it.
  - CloseBoth: the glyph closes before the note and the note forms a
    one-note glyph that closes immediately.

Special tokens (clefs, bars, custodes, ...) close the glyph under
construction and become glyphs of their own.

# Boundaries forced outside the table

  - Two notes more than MaxInterval apart never share a glyph.
  - A note marked initio debilis always starts a glyph.
  - A note carrying an end liquescence always ends its glyph.

# Pes quadratum

A note of shape quadratum (or quilisma quadratum) opens a glyph of a
transient first-part type that only the next punctum resolves, into a pes
quadratum when it rises. A first part left alone is emitted as a punctum.

# Usage

	notes := []types.Note{
		{Kind: types.Pitched, Pitch: 5, Shape: types.ShapePunctum},
		{Kind: types.Pitched, Pitch: 7, Shape: types.ShapePunctum},
	}
	for _, g := range glyphs.Determine(notes) {
		fmt.Println(g.Type) // podatus
	}
*/
package glyphs
