package pkg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateGameID(t *testing.T) {
	t.Run("Has 20 distinct alphanumeric characters", func(t *testing.T) {
		// Given: a seeded random source
		rng := NewRandom(42)

		for i := 0; i < 100; i++ {
			// When: generating an id
			id := GenerateGameID(rng)

			// Then: it has the expected length, alphabet and no repeats
			require.Len(t, id, GameIDLength)

			seen := make(map[rune]bool, GameIDLength)
			for _, r := range id {
				assert.True(t, strings.ContainsRune(gameIDAlphabet, r), "unexpected char %q", r)
				assert.False(t, seen[r], "repeated char %q in %s", r, id)
				seen[r] = true
			}
		}
	})

	t.Run("Same seed gives same ids", func(t *testing.T) {
		first := GenerateGameID(NewRandom(7))
		second := GenerateGameID(NewRandom(7))

		assert.Equal(t, first, second)
	})

	t.Run("Different calls give different ids", func(t *testing.T) {
		rng := NewRandom(7)

		assert.NotEqual(t, GenerateGameID(rng), GenerateGameID(rng))
	})
}

func TestGenerateConnID(t *testing.T) {
	assert.NotEqual(t, GenerateConnID(), GenerateConnID())
}
