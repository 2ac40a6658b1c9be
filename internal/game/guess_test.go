package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeGuess(t *testing.T) {
	assert.Equal(t, "sunflower", normalizeGuess("  SunFlower "))
	assert.Equal(t, "sun flower", normalizeGuess("SUN FLOWER"))
	assert.Equal(t, "", normalizeGuess("   "))
}

func TestDrawGuessPoints(t *testing.T) {
	tests := []struct {
		name      string
		remaining int
		duration  int
		want      int
	}{
		{"instant guess", 60, 60, 500},
		{"halfway", 30, 60, 300},
		{"last second", 0, 60, 100},
		{"three quarters left", 45, 60, 400},
		{"uneven fraction floors", 20, 60, 233},
		{"negative remaining clamps", -3, 60, 100},
		{"zero duration falls back", 60, 0, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, drawGuessPoints(tt.remaining, tt.duration))
		})
	}
}

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 0, levenshtein("cat", "cat"))
	assert.Equal(t, 1, levenshtein("cat", "cut"))
	assert.Equal(t, 1, levenshtein("cat", "cats"))
	assert.Equal(t, 3, levenshtein("cat", "dog"))
	assert.Equal(t, 3, levenshtein("", "dog"))
	assert.Equal(t, 1, levenshtein("naïve", "naive"))
}

func TestIsCloseGuess(t *testing.T) {
	assert.True(t, isCloseGuess("elephant", "elephant"))
	assert.True(t, isCloseGuess("elephamt", "elephant"))
	assert.True(t, isCloseGuess("elephan", "elephant"))
	assert.False(t, isCloseGuess("eleph", "elephant"))
}
