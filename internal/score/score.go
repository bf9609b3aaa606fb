// Package score reads score files: YAML documents listing the note records
// that glyph determination consumes.
//
//	name: Kyrie
//	notes:
//	  - {special: c-clef, pitch: 4}
//	  - {pitch: f}
//	  - {pitch: h, shape: virga}
//	  - {pitch: g, liquescence: [initio-debilis, deminutus]}
//	  - {special: bar}
//
// A pitch is an integer or a staff letter from a to m (a is 1). A record
// without a shape is a punctum. A record naming a special token is a special
// token whatever else it carries.
package score

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	tt "github.com/gnolang/neume/internal/types"
)

var (
	ErrEmptyNote          = errors.New("note has neither pitch nor special token")
	ErrBadPitch           = errors.New("invalid pitch")
	ErrUnknownShape       = errors.New("unknown shape")
	ErrUnknownLiquescence = errors.New("unknown liquescence")
	ErrUnknownSpecial     = errors.New("unknown special token")
)

// Score is a named note sequence.
type Score struct {
	Name  string
	Notes []tt.Note
}

type document struct {
	Name  string   `yaml:"name"`
	Notes []record `yaml:"notes"`
}

type record struct {
	Pitch       string `yaml:"pitch"`
	Shape       string `yaml:"shape"`
	Liquescence flags  `yaml:"liquescence"`
	Special     string `yaml:"special"`
}

// flags accepts either a single '+'-joined scalar or a sequence of names.
type flags []string

func (f *flags) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*f = flags{value.Value}
		return nil
	case yaml.SequenceNode:
		var names []string
		if err := value.Decode(&names); err != nil {
			return err
		}
		*f = names
		return nil
	}
	return fmt.Errorf("line %d: liquescence must be a name or a list of names", value.Line)
}

// Read parses the score file at filename.
func Read(filename string) (*Score, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

// Parse parses a score document.
func Parse(data []byte) (*Score, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode score: %w", err)
	}

	s := &Score{
		Name:  doc.Name,
		Notes: make([]tt.Note, 0, len(doc.Notes)),
	}
	for i, r := range doc.Notes {
		n, err := r.note()
		if err != nil {
			return nil, fmt.Errorf("note %d: %w", i+1, err)
		}
		s.Notes = append(s.Notes, n)
	}
	return s, nil
}

func (r record) note() (tt.Note, error) {
	if r.Special != "" {
		kind, ok := tt.ParseSpecialKind(r.Special)
		if !ok || kind == tt.SpecialNone {
			return tt.Note{}, fmt.Errorf("%w %q", ErrUnknownSpecial, r.Special)
		}
		n := tt.Note{Kind: tt.Special, Special: kind}
		if r.Pitch != "" {
			p, err := ParsePitch(r.Pitch)
			if err != nil {
				return tt.Note{}, err
			}
			n.Pitch = p
		}
		return n, nil
	}

	if r.Pitch == "" {
		return tt.Note{}, ErrEmptyNote
	}
	p, err := ParsePitch(r.Pitch)
	if err != nil {
		return tt.Note{}, err
	}

	shape := tt.ShapePunctum
	if r.Shape != "" {
		var ok bool
		if shape, ok = tt.ParseShape(r.Shape); !ok || shape == tt.ShapeUndefined {
			return tt.Note{}, fmt.Errorf("%w %q", ErrUnknownShape, r.Shape)
		}
	}

	var liq tt.Liquescence
	for _, name := range r.Liquescence {
		l, ok := tt.ParseLiquescence(name)
		if !ok {
			return tt.Note{}, fmt.Errorf("%w %q", ErrUnknownLiquescence, name)
		}
		liq |= l
	}

	return tt.Note{Kind: tt.Pitched, Pitch: p, Shape: shape, Liquescence: liq}, nil
}

// ParsePitch reads an integer pitch between tt.MinPitch and tt.MaxPitch, or a
// staff letter from a to m.
func ParsePitch(s string) (tt.Pitch, error) {
	s = strings.TrimSpace(s)
	if len(s) == 1 {
		c := s[0] | 0x20 // lower case
		if c >= 'a' && c <= 'm' {
			return tt.Pitch(c-'a') + 1, nil
		}
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w %q", ErrBadPitch, s)
	}
	if v < int(tt.MinPitch) || v > int(tt.MaxPitch) {
		return 0, fmt.Errorf("%w %q: out of range [%d, %d]", ErrBadPitch, s, tt.MinPitch, tt.MaxPitch)
	}
	return tt.Pitch(v), nil
}
