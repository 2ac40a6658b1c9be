package pool

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/deepaksivamani/virtualgames/internal/logger"
)

// LoadPuzzles reads a JSON puzzle file, or returns the built-in pool
// when path is empty.
func LoadPuzzles(path string) (*PuzzlePool, error) {
	if path == "" {
		logger.Infof("Using built-in puzzle pool (%d entries)", len(defaultPuzzles))
		return NewPuzzlePool(defaultPuzzles), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open puzzle file %s: %w", path, err)
	}

	var puzzles []Puzzle
	if err := json.Unmarshal(data, &puzzles); err != nil {
		return nil, fmt.Errorf("could not parse puzzle file %s: %w", path, err)
	}
	if len(puzzles) == 0 {
		return nil, fmt.Errorf("puzzle file %s is empty", path)
	}

	logger.Infof("Puzzles count: %d", len(puzzles))
	return NewPuzzlePool(puzzles), nil
}

// LoadWords reads a file where each line is a word, or returns the
// built-in pool when path is empty. Lines may carry a difficulty suffix
// separated by a tab; words without one default to difficulty 1.
func LoadWords(path string) (*WordPool, error) {
	if path == "" {
		logger.Infof("Using built-in word pool (%d entries)", len(defaultWords))
		return NewWordPool(defaultWords), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open word file %s: %w", path, err)
	}
	defer file.Close()

	var words []Word
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		entry := Word{Word: line, Difficulty: 1}
		if word, diff, found := strings.Cut(line, "\t"); found {
			entry.Word = strings.TrimSpace(word)
			if d, err := strconv.Atoi(strings.TrimSpace(diff)); err == nil {
				entry.Difficulty = d
			}
		}
		words = append(words, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error while reading word file %s: %w", path, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word file %s is empty", path)
	}

	logger.Infof("Words count: %d", len(words))
	return NewWordPool(words), nil
}
