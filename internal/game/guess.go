package game

import (
	"math"
	"strings"
)

// Pure guess evaluation and scoring. No room state in here.

const (
	riddleGuessPoints     = 100
	drawGuessBasePoints   = 100
	drawGuessBonusPoints  = 400
	drawerPointsPerGuess  = 50
	closeGuessMaxDistance = 1
)

func normalizeGuess(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// drawGuessPoints decays linearly with elapsed turn time: a guess with
// the full turn remaining is worth 500, one in the final instant 100.
func drawGuessPoints(remaining, turnDuration int) int {
	if turnDuration <= 0 {
		turnDuration = defaultTurnTime
	}
	if remaining < 0 {
		remaining = 0
	}
	fraction := float64(remaining) / float64(turnDuration)
	return int(math.Floor(drawGuessBasePoints + drawGuessBonusPoints*fraction))
}

// levenshtein computes edit distance over runes.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(rb); i++ {
		curr[0] = i
		for j := 1; j <= len(ra); j++ {
			cost := 1
			if rb[i-1] == ra[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j-1]+cost, min(curr[j-1]+1, prev[j]+1))
		}
		prev, curr = curr, prev
	}
	return prev[len(ra)]
}

func isCloseGuess(guess, answer string) bool {
	return levenshtein(guess, answer) <= closeGuessMaxDistance
}
