package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLiquescence(t *testing.T) {
	t.Parallel()
	l := InitioDebilis | Deminutus

	assert.True(t, l.IsInitioDebilis())
	assert.True(t, l.IsEnd())
	assert.True(t, l.Has(Deminutus))
	assert.False(t, l.Has(Auctus))
	assert.False(t, l.Has(NoLiquescence))
	assert.False(t, InitioDebilis.IsEnd())
	assert.False(t, NoLiquescence.IsEnd())
	assert.Equal(t, "initio-debilis+deminutus", l.String())
	assert.Equal(t, "", NoLiquescence.String())
}

func TestParseLiquescence(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want Liquescence
		ok   bool
	}{
		{"", NoLiquescence, true},
		{"deminutus", Deminutus, true},
		{"Auctus-Ascendens", AuctusAscendens, true},
		{"initio-debilis+auctus-descendens", InitioDebilis | AuctusDescendens, true},
		{"deminutus + auctus", Deminutus | Auctus, true},
		{"cavum", NoLiquescence, false},
	}
	for _, tc := range tests {
		got, ok := ParseLiquescence(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestGlyphTypeFamilies(t *testing.T) {
	t.Parallel()
	for typ := GlyphUndetermined; typ <= GlyphSpecial; typ++ {
		name := typ.String()
		parsed, ok := ParseGlyphType(name)
		require.True(t, ok, name)
		assert.Equal(t, typ, parsed)
	}

	assert.True(t, GlyphPunctumInclinatum.IsPunctaInclinata())
	assert.True(t, GlyphTrigonus.IsPunctaInclinata())
	assert.True(t, GlyphPunctaInclinata.IsPunctaInclinata())
	assert.False(t, GlyphUndetermined.IsPunctaInclinata())
	assert.False(t, GlyphStropha.IsPunctaInclinata())
	assert.True(t, GlyphPesQuilismaQuadratumFirstPart.IsFirstPartMarker())
	assert.False(t, GlyphPesQuadratum.IsFirstPartMarker())
	assert.Equal(t, "GlyphType(250)", GlyphType(250).String())
}

func TestNoteEncoding(t *testing.T) {
	t.Parallel()
	n := Note{Kind: Pitched, Pitch: 7, Shape: ShapeOriscusAuctus, Liquescence: Auctus}

	data, err := json.Marshal(n)
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"pitched","pitch":7,"shape":"oriscus-auctus","liquescence":"auctus"}`, string(data))

	var back Note
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, n, back)

	var fromYAML Note
	err = yaml.Unmarshal([]byte("kind: special\npitch: 3\nspecial: c-clef\n"), &fromYAML)
	require.NoError(t, err)
	assert.Equal(t, Note{Kind: Special, Pitch: 3, Special: CClef}, fromYAML)

	err = yaml.Unmarshal([]byte("shape: podatus\n"), &fromYAML)
	assert.Error(t, err)
}
