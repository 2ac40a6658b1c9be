package pool

import (
	"math/rand"

	"github.com/samber/lo"
)

// Puzzle is one riddle entry. Content is rendered by the client
// (emoji sequence, text fragment or markup depending on Type).
type Puzzle struct {
	Type       string   `json:"type"`
	Content    []string `json:"content"`
	Answers    []string `json:"answers"`
	Hint       string   `json:"hint"`
	Difficulty int      `json:"difficulty"`
}

// Word is one draw-mode entry.
type Word struct {
	Word       string `json:"word"`
	Difficulty int    `json:"difficulty"`
}

type PuzzlePool struct {
	puzzles []Puzzle
}

func NewPuzzlePool(puzzles []Puzzle) *PuzzlePool {
	return &PuzzlePool{puzzles: puzzles}
}

func (p *PuzzlePool) Size() int {
	return len(p.puzzles)
}

type indexedPuzzle struct {
	Puzzle
	index int
}

// Draw picks a random unused puzzle, preferring the target difficulty.
// When no unused entry matches the target it falls back to any unused
// entry; when the whole pool is exhausted it clears the used set and
// draws from the full pool again. The drawn index is added to used.
// The second return reports whether the pool was recycled.
func (p *PuzzlePool) Draw(used map[int]struct{}, targetDifficulty int) (Puzzle, bool) {
	indexed := lo.Map(p.puzzles, func(pz Puzzle, i int) indexedPuzzle {
		return indexedPuzzle{Puzzle: pz, index: i}
	})

	unused := lo.Filter(indexed, func(pz indexedPuzzle, _ int) bool {
		_, ok := used[pz.index]
		return !ok
	})

	best := lo.Filter(unused, func(pz indexedPuzzle, _ int) bool {
		return pz.Difficulty == targetDifficulty
	})
	if len(best) == 0 {
		best = unused
	}

	recycled := false
	if len(best) == 0 {
		for k := range used {
			delete(used, k)
		}
		best = indexed
		recycled = true
	}

	selected := best[rand.Intn(len(best))]
	used[selected.index] = struct{}{}
	return selected.Puzzle, recycled
}

type WordPool struct {
	words []Word
}

func NewWordPool(words []Word) *WordPool {
	return &WordPool{words: words}
}

func (w *WordPool) Size() int {
	return len(w.words)
}

// Choices returns n random entries. Duplicates are possible on small pools.
func (w *WordPool) Choices(n int) []Word {
	choices := make([]Word, 0, n)
	for i := 0; i < n; i++ {
		choices = append(choices, w.words[rand.Intn(len(w.words))])
	}
	return choices
}
