package glyphs

import (
	"fmt"

	tt "github.com/gnolang/neume/internal/types"
)

// MaxInterval is the widest pitch step the glyph font can draw inside one
// ligature. Two notes further apart never share a glyph.
const MaxInterval = 5

// Signal tells the driver where the glyph boundary falls relative to the
// note that was just classified.
type Signal uint8

const (
	// Continue adds the note to the glyph, more notes may follow.
	Continue Signal = iota
	// ClosePrevious closes the glyph without the note, which starts a new one.
	ClosePrevious
	// CloseCurrent adds the note to the glyph and closes it.
	CloseCurrent
	// CloseBoth closes the glyph without the note, then closes the one-note
	// glyph the note starts.
	CloseBoth
)

func (s Signal) String() string {
	switch s {
	case Continue:
		return "continue"
	case ClosePrevious:
		return "close-previous"
	case CloseCurrent:
		return "close-current"
	case CloseBoth:
		return "close-both"
	default:
		return fmt.Sprintf("Signal(%d)", s)
	}
}

// Transition is the outcome of classifying one note: the type of the glyph
// the note ends up in and where the boundary falls.
type Transition struct {
	Type   tt.GlyphType
	Signal Signal
}

func (t Transition) String() string {
	return fmt.Sprintf("%s(%s)", t.Signal, t.Type)
}

// direction of a pitch step, used to index the two-column tables below
const (
	ascending = iota
	descending
)

// punctumTable[context] holds the transitions for a punctum
// {above the last note, below the last note}.
var punctumTable = map[tt.GlyphType][2]Transition{
	tt.GlyphPunctum: {
		{tt.GlyphPodatus, Continue},
		{tt.GlyphFlexa, Continue},
	},
	tt.GlyphPodatus: {
		{tt.GlyphScandicus, CloseCurrent},
		{tt.GlyphTorculus, Continue},
	},
	tt.GlyphPesQuadratumFirstPart: {
		{tt.GlyphPesQuadratum, CloseCurrent},
		{tt.GlyphFlexa, Continue},
	},
	tt.GlyphPesQuilismaQuadratumFirstPart: {
		{tt.GlyphPesQuadratum, CloseCurrent},
		{tt.GlyphPunctum, ClosePrevious},
	},
	tt.GlyphFlexa: {
		{tt.GlyphPorrectus, Continue},
		{tt.GlyphPunctum, ClosePrevious},
	},
	tt.GlyphTorculus: {
		{tt.GlyphTorculusResupinus, Continue},
		{tt.GlyphPunctum, ClosePrevious},
	},
	tt.GlyphTorculusResupinus: {
		{tt.GlyphPunctum, ClosePrevious},
		{tt.GlyphTorculusResupinusFlexus, CloseCurrent},
	},
	tt.GlyphPorrectus: {
		{tt.GlyphPunctum, ClosePrevious},
		{tt.GlyphPorrectusFlexus, CloseCurrent},
	},
}

// inclinataTable[context] holds the next member of a run of puncta inclinata
// {ascending, descending}. Contexts missing here (trigonus, puncta inclinata
// and the five-member runs) continue as the direction-agnostic puncta inclinata.
var inclinataTable = map[tt.GlyphType][2]tt.GlyphType{
	tt.GlyphPunctumInclinatum:          {tt.Glyph2PunctaInclinataAscendens, tt.Glyph2PunctaInclinataDescendens},
	tt.Glyph2PunctaInclinataAscendens:  {tt.Glyph3PunctaInclinataAscendens, tt.GlyphTrigonus},
	tt.Glyph3PunctaInclinataAscendens:  {tt.Glyph4PunctaInclinataAscendens, tt.GlyphPunctaInclinata},
	tt.Glyph4PunctaInclinataAscendens:  {tt.Glyph5PunctaInclinataAscendens, tt.GlyphPunctaInclinata},
	tt.Glyph2PunctaInclinataDescendens: {tt.GlyphTrigonus, tt.Glyph3PunctaInclinataDescendens},
	tt.Glyph3PunctaInclinataDescendens: {tt.GlyphPunctaInclinata, tt.Glyph4PunctaInclinataDescendens},
	tt.Glyph4PunctaInclinataDescendens: {tt.GlyphPunctaInclinata, tt.Glyph5PunctaInclinataDescendens},
}

// LastPitch is the pitch of the previous pitched note. The zero value means
// no pitched note came before.
type LastPitch struct {
	Pitch tt.Pitch
	Known bool
}

// Last records p as the previous pitch.
func Last(p tt.Pitch) LastPitch {
	return LastPitch{Pitch: p, Known: true}
}

// Classify decides what happens to the glyph under construction, of type
// current, when a note of the given pitch and shape is added to it. last is
// the pitch of the previous pitched note, if any.
//
// Classify is total: combinations without a dedicated rule start a new
// punctum.
func Classify(current tt.GlyphType, pitch tt.Pitch, last LastPitch, shape tt.Shape) Transition {
	tooFar := outOfReach(pitch, last)
	if tooFar {
		current = tt.GlyphUndetermined
	}

	t := classifyShape(current, pitch, last, shape)

	// nothing to close yet
	if current == tt.GlyphUndetermined {
		switch t.Signal {
		case ClosePrevious:
			t.Signal = Continue
		case CloseBoth:
			t.Signal = CloseCurrent
		}
	}

	if tooFar {
		if t.Signal == CloseCurrent || t.Signal == CloseBoth {
			t.Signal = CloseBoth
		} else {
			t.Signal = ClosePrevious
		}
	}

	return t
}

// outOfReach reports whether pitch is more than MaxInterval away from the
// previous pitch. The distance is taken in unsigned arithmetic so that it
// stays exact across the whole int range.
func outOfReach(pitch tt.Pitch, last LastPitch) bool {
	if !last.Known {
		return false
	}
	var dist uint64
	if pitch >= last.Pitch {
		dist = uint64(pitch) - uint64(last.Pitch)
	} else {
		dist = uint64(last.Pitch) - uint64(pitch)
	}
	return dist > MaxInterval
}

func classifyShape(current tt.GlyphType, pitch tt.Pitch, last LastPitch, shape tt.Shape) Transition {
	same := last.Known && pitch == last.Pitch

	switch shape {
	case tt.ShapePunctum:
		return classifyPunctum(current, pitch, last.Pitch, same)

	case tt.ShapeOriscus, tt.ShapeOriscusAuctus, tt.ShapeQuilisma:
		return Transition{tt.GlyphPunctum, ClosePrevious}

	case tt.ShapeVirga:
		switch {
		case same && current == tt.GlyphVirga:
			return Transition{tt.GlyphBivirga, Continue}
		case same && current == tt.GlyphBivirga:
			return Transition{tt.GlyphTrivirga, Continue}
		}
		return Transition{tt.GlyphVirga, ClosePrevious}

	case tt.ShapeBivirga:
		if same && current == tt.GlyphVirga {
			return Transition{tt.GlyphTrivirga, Continue}
		}
		return Transition{tt.GlyphBivirga, ClosePrevious}

	case tt.ShapeTrivirga:
		return Transition{tt.GlyphTrivirga, CloseBoth}

	case tt.ShapeQuadratum:
		return Transition{tt.GlyphPesQuadratumFirstPart, ClosePrevious}

	case tt.ShapeQuilismaQuadratum:
		return Transition{tt.GlyphPesQuilismaQuadratumFirstPart, ClosePrevious}

	case tt.ShapePunctumInclinatum:
		return classifyInclinatum(current, pitch, last.Pitch, same)

	case tt.ShapeStropha:
		if !same {
			return Transition{tt.GlyphStropha, ClosePrevious}
		}
		switch current {
		case tt.GlyphStropha:
			return Transition{tt.GlyphDistropha, Continue}
		case tt.GlyphDistropha:
			return Transition{tt.GlyphTristropha, CloseCurrent}
		}
		return Transition{tt.GlyphStropha, ClosePrevious}

	case tt.ShapeDistropha:
		if same && current == tt.GlyphStropha {
			return Transition{tt.GlyphTristropha, CloseCurrent}
		}
		return Transition{tt.GlyphDistropha, ClosePrevious}

	case tt.ShapeTristropha:
		return Transition{tt.GlyphTristropha, CloseBoth}
	}

	return Transition{tt.GlyphPunctum, ClosePrevious}
}

func classifyPunctum(current tt.GlyphType, pitch, last tt.Pitch, same bool) Transition {
	if same {
		return Transition{tt.GlyphPunctum, ClosePrevious}
	}
	moves, ok := punctumTable[current]
	if !ok {
		return Transition{tt.GlyphPunctum, ClosePrevious}
	}
	if pitch > last {
		return moves[ascending]
	}
	return moves[descending]
}

func classifyInclinatum(current tt.GlyphType, pitch, last tt.Pitch, same bool) Transition {
	if same || !current.IsPunctaInclinata() {
		return Transition{tt.GlyphPunctumInclinatum, ClosePrevious}
	}
	next, ok := inclinataTable[current]
	if !ok {
		return Transition{tt.GlyphPunctaInclinata, Continue}
	}
	if last < pitch {
		return Transition{next[ascending], Continue}
	}
	return Transition{next[descending], Continue}
}
