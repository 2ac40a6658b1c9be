package game

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/deepaksivamani/virtualgames/internal/logger"
)

// Riddle mode: the whole room races to solve one puzzle at a time.
// Phases cycle Lobby → Active ⇄ RoundEnd → … → Ended.

func (r *Room) startRiddleMatch(settings Settings) {
	r.puzzleTime = defaultPuzzleTime
	if settings.PuzzleTime > 0 {
		r.puzzleTime = settings.PuzzleTime
	}
	r.usedPuzzles = make(map[int]struct{})

	r.transition(eventActivate)
	r.broadcastRoomUpdate()
	r.nextPuzzle()
}

// difficultyTarget ramps up with the round number.
func difficultyTarget(round int) int {
	switch {
	case round > 12:
		return 3
	case round > 5:
		return 2
	default:
		return 1
	}
}

func (r *Room) nextPuzzle() {
	if r.timeLeft <= 0 {
		r.endGame()
		return
	}
	if len(r.players) == 0 {
		return
	}
	if r.currentPhase() == PhaseRoundEnd && !r.transition(eventActivate) {
		return
	}

	r.round++
	r.resetGuessFlags()

	puzzle, recycled := r.puzzles.Draw(r.usedPuzzles, difficultyTarget(r.round))
	if recycled {
		logger.Infof("[Room %s] Puzzle pool exhausted, recycling", r.code)
	}
	r.currentPuzzle = &puzzle

	r.answer = normalizeGuess(puzzle.Answers[0])
	r.accepted = lo.Map(puzzle.Answers, func(a string, _ int) string { return normalizeGuess(a) })

	display := []rune(toDisplayAnswer(puzzle.Answers[0]))
	r.masked = buildMask(string(display))
	letters := len(maskableIndices(display))
	revealUpfront(r.masked, display, upfrontRevealCount(r.hardcore, len(r.players), letters))

	r.phaseTimeLeft = r.puzzleTime

	r.bc.ToRoom(r.code, EventRoundStart, RiddleRoundStart{
		Round:        r.round,
		PuzzleType:   puzzle.Type,
		Content:      puzzle.Content,
		Hint:         puzzle.Hint,
		MaskedAnswer: string(r.masked),
		TimeLeft:     r.timeLeft,
		PuzzleTime:   r.puzzleTime,
	})
	r.broadcastRoomUpdate()
	logger.Infof("[Room %s] Round %d started (difficulty %d)", r.code, r.round, puzzle.Difficulty)
}

// endRiddleRound closes the current puzzle and schedules the next one
// after a short pause. The mask is left exactly as the round left it:
// fully revealed on a solve, untouched on a timeout.
func (r *Room) endRiddleRound(reason string) {
	if !r.transition(eventEndRound) {
		return
	}
	answer := ""
	if r.currentPuzzle != nil {
		answer = r.currentPuzzle.Answers[0]
	}
	r.bc.ToRoom(r.code, EventRoundEnd, RoundEnd{
		Reason: reason,
		Answer: answer,
		Scores: r.scoreEntries(),
	})
	r.timers.arm(timerRestart, riddleRestartDelay)
}

func (r *Room) handleRiddleGuess(p *Player, text string) {
	if r.currentPhase() != PhaseActive || r.currentPuzzle == nil {
		return
	}
	if p.hasGuessed {
		return
	}

	guess := normalizeGuess(text)
	if !lo.Contains(r.accepted, guess) {
		r.broadcastChat(p.id, p.name, text, "chat")
		return
	}

	p.hasGuessed = true
	r.awardPoints(p, riddleGuessPoints)

	// First correct guess reveals the full answer and closes the round.
	display := []rune(toDisplayAnswer(r.currentPuzzle.Answers[0]))
	r.masked = display

	r.bc.ToRoom(r.code, EventPlayerGuessed, PlayerGuessed{PlayerID: p.id, Points: riddleGuessPoints})
	r.bc.ToConn(p.id, EventCorrectGuess, CorrectGuess{Points: riddleGuessPoints})
	r.broadcastChat(p.id, "System", fmt.Sprintf("%s solved the riddle!", p.name), "success")
	r.broadcastRoomUpdate()
	r.endRiddleRound("solved")
}
