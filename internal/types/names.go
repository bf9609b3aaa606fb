package types

import (
	"fmt"
	"strings"
)

var noteKindNames = [...]string{
	Pitched: "pitched",
	Special: "special",
}

var shapeNames = [...]string{
	ShapeUndefined:         "undefined",
	ShapePunctum:           "punctum",
	ShapeVirga:             "virga",
	ShapeBivirga:           "bivirga",
	ShapeTrivirga:          "trivirga",
	ShapeQuilisma:          "quilisma",
	ShapeOriscus:           "oriscus",
	ShapeOriscusAuctus:     "oriscus-auctus",
	ShapeStropha:           "stropha",
	ShapeDistropha:         "distropha",
	ShapeTristropha:        "tristropha",
	ShapePunctumInclinatum: "punctum-inclinatum",
	ShapeQuadratum:         "quadratum",
	ShapeQuilismaQuadratum: "quilisma-quadratum",
}

var specialNames = [...]string{
	SpecialNone: "none",
	CClef:       "c-clef",
	FClef:       "f-clef",
	Custos:      "custos",
	Bar:         "bar",
	Space:       "space",
	EndOfLine:   "end-of-line",
	Flat:        "flat",
	Natural:     "natural",
}

var glyphNames = [...]string{
	GlyphUndetermined:                  "undetermined",
	GlyphPunctum:                       "punctum",
	GlyphPodatus:                       "podatus",
	GlyphFlexa:                         "flexa",
	GlyphScandicus:                     "scandicus",
	GlyphTorculus:                      "torculus",
	GlyphTorculusResupinus:             "torculus-resupinus",
	GlyphTorculusResupinusFlexus:       "torculus-resupinus-flexus",
	GlyphPorrectus:                     "porrectus",
	GlyphPorrectusFlexus:               "porrectus-flexus",
	GlyphPesQuadratum:                  "pes-quadratum",
	GlyphPesQuadratumFirstPart:         "pes-quadratum-first-part",
	GlyphPesQuilismaQuadratumFirstPart: "pes-quilisma-quadratum-first-part",
	GlyphVirga:                         "virga",
	GlyphBivirga:                       "bivirga",
	GlyphTrivirga:                      "trivirga",
	GlyphPunctumInclinatum:             "punctum-inclinatum",
	Glyph2PunctaInclinataAscendens:     "2-puncta-inclinata-ascendens",
	Glyph3PunctaInclinataAscendens:     "3-puncta-inclinata-ascendens",
	Glyph4PunctaInclinataAscendens:     "4-puncta-inclinata-ascendens",
	Glyph5PunctaInclinataAscendens:     "5-puncta-inclinata-ascendens",
	Glyph2PunctaInclinataDescendens:    "2-puncta-inclinata-descendens",
	Glyph3PunctaInclinataDescendens:    "3-puncta-inclinata-descendens",
	Glyph4PunctaInclinataDescendens:    "4-puncta-inclinata-descendens",
	Glyph5PunctaInclinataDescendens:    "5-puncta-inclinata-descendens",
	GlyphTrigonus:                      "trigonus",
	GlyphPunctaInclinata:               "puncta-inclinata",
	GlyphStropha:                       "stropha",
	GlyphDistropha:                     "distropha",
	GlyphTristropha:                    "tristropha",
	GlyphSpecial:                       "special",
}

// liquescence flags in rendering order
var liquescenceNames = []struct {
	flag Liquescence
	name string
}{
	{InitioDebilis, "initio-debilis"},
	{Deminutus, "deminutus"},
	{AuctusAscendens, "auctus-ascendens"},
	{AuctusDescendens, "auctus-descendens"},
	{Auctus, "auctus"},
}

func lookup(names []string, name string) (int, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range names {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

func nameOf(names []string, i int, kind string) string {
	if i >= 0 && i < len(names) {
		return names[i]
	}
	return fmt.Sprintf("%s(%d)", kind, i)
}

func (k NoteKind) String() string { return nameOf(noteKindNames[:], int(k), "NoteKind") }
func (s Shape) String() string    { return nameOf(shapeNames[:], int(s), "Shape") }
func (s SpecialKind) String() string {
	return nameOf(specialNames[:], int(s), "SpecialKind")
}
func (t GlyphType) String() string { return nameOf(glyphNames[:], int(t), "GlyphType") }

func (l Liquescence) String() string {
	if l == NoLiquescence {
		return ""
	}
	var parts []string
	for _, ln := range liquescenceNames {
		if l&ln.flag != 0 {
			parts = append(parts, ln.name)
		}
	}
	return strings.Join(parts, "+")
}

// ParseShape returns the shape with the given name.
func ParseShape(name string) (Shape, bool) {
	i, ok := lookup(shapeNames[:], name)
	return Shape(i), ok
}

// ParseSpecialKind returns the special token kind with the given name.
func ParseSpecialKind(name string) (SpecialKind, bool) {
	i, ok := lookup(specialNames[:], name)
	return SpecialKind(i), ok
}

// ParseGlyphType returns the glyph type with the given name.
func ParseGlyphType(name string) (GlyphType, bool) {
	i, ok := lookup(glyphNames[:], name)
	return GlyphType(i), ok
}

// ParseLiquescence parses a single flag name or several joined with '+'.
// The empty string is the empty set.
func ParseLiquescence(s string) (Liquescence, bool) {
	var l Liquescence
	for _, part := range strings.Split(s, "+") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		found := false
		for _, ln := range liquescenceNames {
			if ln.name == part {
				l |= ln.flag
				found = true
				break
			}
		}
		if !found {
			return NoLiquescence, false
		}
	}
	return l, true
}

func (k NoteKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *NoteKind) UnmarshalText(b []byte) error {
	i, ok := lookup(noteKindNames[:], string(b))
	if !ok {
		return fmt.Errorf("unknown note kind %q", b)
	}
	*k = NoteKind(i)
	return nil
}

func (s Shape) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Shape) UnmarshalText(b []byte) error {
	v, ok := ParseShape(string(b))
	if !ok {
		return fmt.Errorf("unknown shape %q", b)
	}
	*s = v
	return nil
}

func (s SpecialKind) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *SpecialKind) UnmarshalText(b []byte) error {
	v, ok := ParseSpecialKind(string(b))
	if !ok {
		return fmt.Errorf("unknown special token %q", b)
	}
	*s = v
	return nil
}

func (t GlyphType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *GlyphType) UnmarshalText(b []byte) error {
	v, ok := ParseGlyphType(string(b))
	if !ok {
		return fmt.Errorf("unknown glyph type %q", b)
	}
	*t = v
	return nil
}

func (l Liquescence) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

func (l *Liquescence) UnmarshalText(b []byte) error {
	v, ok := ParseLiquescence(string(b))
	if !ok {
		return fmt.Errorf("unknown liquescence %q", b)
	}
	*l = v
	return nil
}
