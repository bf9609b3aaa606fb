package types

// Pitch is the height of a note on the staff.
type Pitch int

// Pitches read from a score fit in a signed byte.
const (
	MinPitch Pitch = -128
	MaxPitch Pitch = 127
)

// NoteKind tells pitched notes apart from special tokens.
type NoteKind uint8

const (
	Pitched NoteKind = iota
	Special
)

// Note is one record of the sequence produced by the lexer.
type Note struct {
	Kind        NoteKind    `json:"kind" yaml:"kind"`
	Pitch       Pitch       `json:"pitch" yaml:"pitch"`
	Shape       Shape       `json:"shape,omitempty" yaml:"shape,omitempty"`
	Liquescence Liquescence `json:"liquescence,omitempty" yaml:"liquescence,omitempty"`
	Special     SpecialKind `json:"special,omitempty" yaml:"special,omitempty"`
}

// IsSpecial reports whether the note is a non-pitched token.
func (n Note) IsSpecial() bool {
	return n.Kind == Special
}

// Shape is the mark shape of a pitched note.
type Shape uint8

const (
	ShapeUndefined Shape = iota
	ShapePunctum
	ShapeVirga
	ShapeBivirga
	ShapeTrivirga
	ShapeQuilisma
	ShapeOriscus
	ShapeOriscusAuctus
	ShapeStropha
	ShapeDistropha
	ShapeTristropha
	ShapePunctumInclinatum
	// ShapeQuadratum and ShapeQuilismaQuadratum only exist in the input.
	// They are stored as ShapePunctum and ShapeQuilisma once classified.
	ShapeQuadratum
	ShapeQuilismaQuadratum
)

// Liquescence is a set of liquescence flags. Flags occupy disjoint bits so a
// glyph's liquescence is the union of the liquescence of its notes.
type Liquescence uint8

const (
	Deminutus Liquescence = 1 << iota
	AuctusAscendens
	AuctusDescendens
	Auctus
	InitioDebilis

	NoLiquescence Liquescence = 0

	// EndLiquescence holds every flag that applies to the end of a glyph.
	EndLiquescence = Deminutus | AuctusAscendens | AuctusDescendens | Auctus
)

// Has reports whether every flag of f is set in l.
func (l Liquescence) Has(f Liquescence) bool {
	return f != 0 && l&f == f
}

// IsInitioDebilis reports whether l marks a weak glyph-initial note.
func (l Liquescence) IsInitioDebilis() bool {
	return l&InitioDebilis != 0
}

// IsEnd reports whether l carries a flag closing the glyph it belongs to.
func (l Liquescence) IsEnd() bool {
	return l&EndLiquescence != 0
}

// SpecialKind identifies a non-pitched token.
type SpecialKind uint8

const (
	SpecialNone SpecialKind = iota
	CClef
	FClef
	Custos
	Bar
	Space
	EndOfLine
	Flat
	Natural
)

// GlyphType is the family of a glyph.
type GlyphType uint8

const (
	GlyphUndetermined GlyphType = iota
	GlyphPunctum
	GlyphPodatus
	GlyphFlexa
	GlyphScandicus
	GlyphTorculus
	GlyphTorculusResupinus
	GlyphTorculusResupinusFlexus
	GlyphPorrectus
	GlyphPorrectusFlexus
	GlyphPesQuadratum
	// The two first-part markers never leave the segmentation driver.
	GlyphPesQuadratumFirstPart
	GlyphPesQuilismaQuadratumFirstPart
	GlyphVirga
	GlyphBivirga
	GlyphTrivirga
	GlyphPunctumInclinatum
	Glyph2PunctaInclinataAscendens
	Glyph3PunctaInclinataAscendens
	Glyph4PunctaInclinataAscendens
	Glyph5PunctaInclinataAscendens
	Glyph2PunctaInclinataDescendens
	Glyph3PunctaInclinataDescendens
	Glyph4PunctaInclinataDescendens
	Glyph5PunctaInclinataDescendens
	GlyphTrigonus
	GlyphPunctaInclinata
	GlyphStropha
	GlyphDistropha
	GlyphTristropha
	GlyphSpecial
)

var inclinataFamily = map[GlyphType]bool{
	GlyphPunctumInclinatum:          true,
	Glyph2PunctaInclinataAscendens:  true,
	Glyph3PunctaInclinataAscendens:  true,
	Glyph4PunctaInclinataAscendens:  true,
	Glyph5PunctaInclinataAscendens:  true,
	Glyph2PunctaInclinataDescendens: true,
	Glyph3PunctaInclinataDescendens: true,
	Glyph4PunctaInclinataDescendens: true,
	Glyph5PunctaInclinataDescendens: true,
	GlyphTrigonus:                   true,
	GlyphPunctaInclinata:            true,
}

// IsPunctaInclinata reports whether t belongs to the punctum inclinatum family.
func (t GlyphType) IsPunctaInclinata() bool {
	return inclinataFamily[t]
}

// IsFirstPartMarker reports whether t is one of the transient pes quadratum
// first-part markers.
func (t GlyphType) IsFirstPartMarker() bool {
	return t == GlyphPesQuadratumFirstPart || t == GlyphPesQuilismaQuadratumFirstPart
}

// Glyph is a closed run of notes drawn as one unit.
//
// Notes is a sub-slice of the segmented sequence covering [Start, End).
// Its capacity is capped so appending to it never touches the next glyph.
type Glyph struct {
	Type        GlyphType   `json:"type" yaml:"type"`
	Liquescence Liquescence `json:"liquescence,omitempty" yaml:"liquescence,omitempty"`
	Special     SpecialKind `json:"special,omitempty" yaml:"special,omitempty"`
	Notes       []Note      `json:"notes" yaml:"notes"`
	Start       int         `json:"start" yaml:"start"`
	End         int         `json:"end" yaml:"end"`
}

// Len returns the number of notes in the glyph.
func (g Glyph) Len() int {
	return len(g.Notes)
}
