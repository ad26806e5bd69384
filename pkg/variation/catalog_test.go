package variation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	t.Run("IdentifierStability", func(t *testing.T) {
		c := NewBuilder().
			AddVariation(legato(10, "Sustain", 24)).
			AddVariation(legato(11, "Staccato", 25)).
			MustBuild()

		// Two successive queries of an unchanged catalog return identical
		// identifiers for identical variations.
		first := make([]VariationID, 0, c.Len())
		for _, v := range c.Variations() {
			first = append(first, v.ID)
		}
		second := make([]VariationID, 0, c.Len())
		for _, v := range c.Variations() {
			second = append(second, v.ID)
		}
		assert.Equal(t, first, second)
	})

	t.Run("DisplayTitlePrepending", func(t *testing.T) {
		c := NewBuilder().
			AddVariation(legato(1, "Sustain", 24)).
			BeginFolder(FolderData{Title: "Shorts", Flags: FolderFlagPrependTitle}).
			AddVariation(legato(2, "Staccato", 25)).
			BeginFolder(FolderData{Title: "Hard", Flags: FolderFlagPrependTitle}).
			AddVariation(legato(3, "Staccatissimo", 26)).
			EndFolder().
			EndFolder().
			BeginFolder(FolderData{Title: "Longs"}).
			AddVariation(legato(4, "Tremolo", 27)).
			EndFolder().
			MustBuild()

		assert.Equal(t, "Sustain", c.DisplayTitle(1))
		assert.Equal(t, "Shorts Staccato", c.DisplayTitle(2))
		assert.Equal(t, "Shorts Hard Staccatissimo", c.DisplayTitle(3))
		// Folder without the flag contributes nothing.
		assert.Equal(t, "Tremolo", c.DisplayTitle(4))
		assert.Equal(t, "", c.DisplayTitle(99))

		// Stored titles stay plain; composition happens at display time.
		v, ok := c.Get(3)
		require.True(t, ok)
		assert.Equal(t, "Staccatissimo", v.Title)
	})

	t.Run("Walk", func(t *testing.T) {
		c := NewBuilder().
			AddVariation(legato(1, "Sustain", 24)).
			BeginFolder(FolderData{Title: "Shorts"}).
			AddVariation(legato(2, "Staccato", 25)).
			EndFolder().
			MustBuild()

		var visited []VariationID
		var depths []int
		c.Walk(func(folders []*Folder, v *Data) {
			visited = append(visited, v.ID)
			depths = append(depths, len(folders))
		})
		assert.Equal(t, []VariationID{1, 2}, visited)
		assert.Equal(t, []int{0, 1}, depths)
	})

	t.Run("SameIdentifiers", func(t *testing.T) {
		build := func() *Catalog {
			return NewBuilder().
				AddVariation(legato(1, "Sustain", 24)).
				AddVariation(legato(2, "Staccato", 25)).
				MustBuild()
		}
		a := build()
		b := build()
		assert.True(t, a.SameIdentifiers(b))

		// A renamed variation keeps identifiers; live state stays valid.
		renamed := NewBuilder().
			AddVariation(legato(1, "Long", 24)).
			AddVariation(legato(2, "Short", 25)).
			MustBuild()
		assert.True(t, a.SameIdentifiers(renamed))

		resequenced := NewBuilder().
			AddVariation(legato(1, "Sustain", 30)).
			AddVariation(legato(2, "Staccato", 25)).
			MustBuild()
		assert.False(t, a.SameIdentifiers(resequenced))

		reordered := NewBuilder().
			AddVariation(legato(2, "Staccato", 25)).
			AddVariation(legato(1, "Sustain", 24)).
			MustBuild()
		assert.False(t, a.SameIdentifiers(reordered))

		assert.False(t, a.SameIdentifiers(nil))
	})
}
