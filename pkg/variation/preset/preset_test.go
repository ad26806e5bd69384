package preset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/soundvariation/pkg/variation"
)

const soloViolin = `
name: Solo Violin
path: solo-violin
variations:
  - id: 1
    title: Sustain
    default: true
    trigger_pitch: 24
    sequence:
      - note_on: 24
  - folder: Shorts
    prepend_title: true
    color: "#AA0000"
    children:
      - id: 2
        title: Staccato
        color: "#80FFCC00"
        symbols: [stac, acce]
        sequence:
          - note_on: 25
      - id: 3
        title: Marcato
        momentary: true
        sequence:
          - note: 26
            velocity: 0.9
  - id: 4
    title: Con Sordino
    sequence:
      - controller: 32
        value: 2
      - program: 12
`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(soloViolin))
	require.NoError(t, err)

	assert.Equal(t, "Solo Violin", c.PresetInfo().Name)
	assert.Equal(t, "solo-violin", c.PresetInfo().Path)
	assert.Equal(t, 4, c.Len())
	assert.Equal(t, variation.VariationID(1), c.DefaultVariation())

	t.Run("Variation", func(t *testing.T) {
		v, ok := c.Get(1)
		require.True(t, ok)
		assert.Equal(t, "Sustain", v.Title)
		assert.Equal(t, variation.Pitch(24), v.TriggerPitch)
		assert.True(t, v.Flags.Has(variation.FlagDefault))
		require.Equal(t, 1, v.Sequence.Len())
		assert.Equal(t, variation.ItemNoteOn, v.Sequence.At(0).Type)
		assert.Equal(t, variation.Pitch(24), v.Sequence.At(0).Pitch)
	})

	t.Run("FolderAndColors", func(t *testing.T) {
		root := c.Root()
		require.Len(t, root.Items, 3)
		require.NotNil(t, root.Items[1].Folder)
		folder := root.Items[1].Folder
		assert.Equal(t, "Shorts", folder.Data.Title)
		assert.Equal(t, variation.Color(0xFFAA0000), folder.Data.Color, "RGB color gets opaque alpha")
		assert.True(t, folder.Data.Flags.Has(variation.FolderFlagPrependTitle))

		v, ok := c.Get(2)
		require.True(t, ok)
		assert.Equal(t, variation.Color(0x80FFCC00), v.Color, "ARGB color passes through")
		assert.Equal(t, "Shorts Staccato", c.DisplayTitle(2))
	})

	t.Run("Symbols", func(t *testing.T) {
		v, ok := c.Get(2)
		require.True(t, ok)
		require.Equal(t, 2, v.Symbols.Len())
		assert.Equal(t, variation.SymbolStaccato, v.Symbols.At(0))
		assert.Equal(t, variation.SymbolAccent, v.Symbols.At(1))
	})

	t.Run("Momentary", func(t *testing.T) {
		v, ok := c.Get(3)
		require.True(t, ok)
		assert.True(t, v.Flags.Has(variation.FlagMomentary))
		require.Equal(t, 1, v.Sequence.Len())
		item := v.Sequence.At(0)
		assert.Equal(t, variation.ItemNote, item.Type)
		assert.Equal(t, variation.Pitch(26), item.Pitch)
		assert.Equal(t, float32(0.9), item.Velocity)
	})

	t.Run("MultiStepSequence", func(t *testing.T) {
		v, ok := c.Get(4)
		require.True(t, ok)
		require.Equal(t, 2, v.Sequence.Len())
		assert.Equal(t, variation.ItemController, v.Sequence.At(0).Type)
		assert.Equal(t, variation.CCNumber(32), v.Sequence.At(0).Number)
		assert.Equal(t, variation.CCValue(2), v.Sequence.At(0).Value)
		assert.Equal(t, variation.ItemProgramChange, v.Sequence.At(1).Type)
		assert.Equal(t, variation.CCValue(12), v.Sequence.At(1).Value)
	})
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"NotYAML", "{{{"},
		{"MissingID", `
variations:
  - title: Sustain
    sequence:
      - note_on: 24
`},
		{"DuplicateID", `
variations:
  - id: 1
    title: Sustain
    sequence:
      - note_on: 24
  - id: 1
    title: Staccato
    sequence:
      - note_on: 25
`},
		{"MalformedSymbol", `
variations:
  - id: 1
    title: Sustain
    symbols: [staccato]
    sequence:
      - note_on: 24
`},
		{"BadColor", `
variations:
  - id: 1
    title: Sustain
    color: "#XYZ"
    sequence:
      - note_on: 24
`},
		{"ControllerWithoutValue", `
variations:
  - id: 1
    title: Sustain
    sequence:
      - controller: 32
`},
		{"EmptyStep", `
variations:
  - id: 1
    title: Sustain
    sequence:
      - velocity: 0.5
`},
		{"SequenceTooLong", `
variations:
  - id: 1
    title: Sustain
    sequence:
      - note_on: 1
      - note_on: 2
      - note_on: 3
      - note_on: 4
      - note_on: 5
      - note_on: 6
      - note_on: 7
      - note_on: 8
      - note_on: 9
`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			require.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "solo-violin.yaml")
	require.NoError(t, os.WriteFile(path, []byte(soloViolin), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, c.Len())

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#336699")
	require.NoError(t, err)
	assert.Equal(t, variation.Color(0xFF336699), c)

	c, err = ParseColor("80336699")
	require.NoError(t, err)
	assert.Equal(t, variation.Color(0x80336699), c)

	for _, bad := range []string{"", "#12345", "#GGGGGG", "#123456789"} {
		_, err := ParseColor(bad)
		require.Error(t, err, "input %q", bad)
	}
}
