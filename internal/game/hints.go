package game

import (
	"math/rand"
	"strings"
	"unicode"
)

// Masked-answer handling. Only alphanumeric positions are ever masked;
// spaces and punctuation stay visible so word shapes read through.

const maskPlaceholder = '_'

// toDisplayAnswer is the shape an answer is shown in once revealed.
func toDisplayAnswer(answer string) string {
	return strings.ToUpper(answer)
}

func isMaskable(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func buildMask(answer string) []rune {
	mask := []rune(answer)
	for i, r := range mask {
		if isMaskable(r) {
			mask[i] = maskPlaceholder
		}
	}
	return mask
}

func maskableIndices(answer []rune) []int {
	var indices []int
	for i, r := range answer {
		if isMaskable(r) {
			indices = append(indices, i)
		}
	}
	return indices
}

func hiddenIndices(mask, answer []rune) []int {
	var indices []int
	for i, r := range mask {
		if r == maskPlaceholder && isMaskable(answer[i]) {
			indices = append(indices, i)
		}
	}
	return indices
}

// upfrontRevealCount decides how many characters a fresh riddle mask
// shows. Fixed thresholds: longer answers in small rooms get more help,
// hardcore gets none.
func upfrontRevealCount(hardcore bool, playerCount, letterCount int) int {
	switch {
	case hardcore:
		return 0
	case playerCount <= 6 && letterCount > 15:
		return 3
	case letterCount > 10:
		return 2
	default:
		return 1
	}
}

// revealUpfront unmasks count random positions in place. The cap at
// len(revealable)-1 intentionally keeps at least one position hidden
// and can under-reveal by one on short answers.
func revealUpfront(mask, answer []rune, count int) {
	revealable := maskableIndices(answer)
	rand.Shuffle(len(revealable), func(i, j int) {
		revealable[i], revealable[j] = revealable[j], revealable[i]
	})

	for i := 0; i < min(count, len(revealable)-1); i++ {
		idx := revealable[i]
		mask[idx] = answer[idx]
	}
}

// revealOneHint unmasks one random hidden position in place. It refuses
// once half (rounded up) of the maskable characters are visible, or when
// nothing is hidden.
func revealOneHint(mask, answer []rune) bool {
	hidden := hiddenIndices(mask, answer)
	total := len(maskableIndices(answer))
	revealed := total - len(hidden)

	if revealed >= (total+1)/2 {
		return false
	}
	if len(hidden) == 0 {
		return false
	}

	idx := hidden[rand.Intn(len(hidden))]
	mask[idx] = answer[idx]
	return true
}
