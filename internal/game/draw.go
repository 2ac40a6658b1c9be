package game

import (
	"encoding/json"
	"fmt"

	"github.com/samber/lo"

	"github.com/deepaksivamani/virtualgames/internal/logger"
	"github.com/deepaksivamani/virtualgames/internal/pool"
)

// Draw mode: one drawer per round, everyone else guesses against the
// clock. Phases cycle Lobby → Selecting → Active → RoundEnd → Selecting
// → … → Ended.

func (r *Room) startDrawMatch(settings Settings) {
	r.turnTime = defaultTurnTime
	if settings.TurnTime > 0 {
		r.turnTime = settings.TurnTime
	}

	ids := lo.Map(r.players, func(p *Player, _ int) string { return p.id })
	r.drawerQueue = lo.Shuffle(ids)

	r.broadcastRoomUpdate()
	r.startDrawRound()
}

// nextDrawer dequeues until it finds someone still in the room,
// refilling the queue from current membership when it runs dry.
func (r *Room) nextDrawer() (string, bool) {
	for attempts := 0; attempts < 2; attempts++ {
		for len(r.drawerQueue) > 0 {
			id := r.drawerQueue[0]
			r.drawerQueue = r.drawerQueue[1:]
			if r.findPlayer(id) != nil {
				return id, true
			}
		}
		r.drawerQueue = lo.Map(r.players, func(p *Player, _ int) string { return p.id })
	}
	return "", false
}

func (r *Room) startDrawRound() {
	r.timers.cancelPhase()

	if r.timeLeft <= 0 {
		r.endGame()
		return
	}
	if len(r.players) == 0 {
		return
	}

	drawerID, ok := r.nextDrawer()
	if !ok {
		return
	}
	if !r.transition(eventSelect) {
		return
	}

	r.round++
	r.drawerID = drawerID
	r.answer = ""
	r.accepted = nil
	r.masked = nil
	r.resetGuessFlags()

	r.canvas = nil
	r.bc.ToRoom(r.code, EventClearCanvas, struct{}{})

	r.wordChoices = r.words.Choices(wordChoiceCount)

	r.broadcastRoomUpdate()
	r.bc.ToRoom(r.code, EventRoundStartSelecting, SelectingStart{Drawer: drawerID})
	r.bc.ToConn(drawerID, EventYourTurnToDraw, WordChoiceOffer{
		Choices: lo.Map(r.wordChoices, func(w pool.Word, _ int) string { return w.Word }),
	})

	r.timers.arm(timerSelect, selectionTimeout)
	logger.Infof("[Room %s] Round %d: %s is selecting a word", r.code, r.round, drawerID)
}

func (r *Room) handleSelectWord(connID, word string) {
	if r.currentPhase() != PhaseSelecting || connID != r.drawerID {
		return
	}
	offered := lo.ContainsBy(r.wordChoices, func(w pool.Word) bool { return w.Word == word })
	if !offered {
		return
	}
	r.beginDrawing(word)
}

// beginDrawing moves Selecting → Active for the chosen word. Also the
// landing point of the selection timeout, which picks the first offer.
func (r *Room) beginDrawing(word string) {
	r.timers.cancel(timerSelect)
	if !r.transition(eventActivate) {
		return
	}

	r.answer = word
	r.accepted = []string{normalizeGuess(word)}
	r.masked = buildMask(word)
	r.phaseTimeLeft = r.turnTime

	r.bc.ToRoom(r.code, EventStartDrawingPhase, DrawingPhaseStart{
		Drawer:       r.drawerID,
		TimeLeft:     r.phaseTimeLeft,
		MaskedAnswer: string(r.masked),
		Length:       len([]rune(word)),
	})
	r.bc.ToConn(r.drawerID, EventYouAreDrawing, DrawerWord{Word: word})
	r.broadcastRoomUpdate()
	logger.Infof("[Room %s] Drawing phase started (%ds)", r.code, r.turnTime)
}

// handleStroke fans a stroke out verbatim and records it for late
// joiners. Strokes from anyone but the drawer, or outside the drawing
// phase, are dropped without a reply.
func (r *Room) handleStroke(connID string, data json.RawMessage) {
	if r.mode != ModeDraw || r.currentPhase() != PhaseActive || connID != r.drawerID {
		return
	}
	r.canvas = append(r.canvas, data)
	r.bc.ToRoom(r.code, EventDrawStroke, data)
}

func (r *Room) endDrawRound(reason string) {
	if !r.transition(eventEndRound) {
		return
	}
	r.timers.cancel(timerSelect)

	r.bc.ToRoom(r.code, EventRoundEnd, RoundEnd{
		Reason: reason,
		Answer: r.answer,
		Scores: r.scoreEntries(),
	})
	r.timers.arm(timerRestart, drawRestartDelay)
	logger.Infof("[Room %s] Draw round %d ended: %s", r.code, r.round, reason)
}

// revealHint unmasks one character, if the reveal engine allows it.
func (r *Room) revealHint() {
	if r.hardcore || r.answer == "" || len(r.masked) == 0 {
		return
	}
	if !revealOneHint(r.masked, []rune(r.answer)) {
		return
	}
	r.broadcastRoomUpdate()
	r.broadcastSystemChat("A hint has been revealed!")
}

// relevantGuessers are the players whose correct guesses can finish the
// round early: every non-drawer, narrowed to the drawer's own team in a
// team battle.
func (r *Room) relevantGuessers() []*Player {
	guessers := lo.Filter(r.players, func(p *Player, _ int) bool { return p.id != r.drawerID })
	if r.teamMode {
		if drawer := r.findPlayer(r.drawerID); drawer != nil && drawer.team != "" {
			guessers = lo.Filter(guessers, func(p *Player, _ int) bool { return p.team == drawer.team })
		}
	}
	return guessers
}

func (r *Room) handleDrawGuess(p *Player, text string) {
	if p.id == r.drawerID {
		return
	}
	if p.hasGuessed {
		return
	}
	if r.currentPhase() != PhaseActive || r.answer == "" {
		r.broadcastChat(p.id, p.name, text, "chat")
		return
	}

	// Cross-team guesses in a team battle are chat only, never scored.
	if r.teamMode {
		drawer := r.findPlayer(r.drawerID)
		if drawer != nil && drawer.team != "" && p.team != "" && drawer.team != p.team {
			r.broadcastChat(p.id, p.name, text, "chat")
			return
		}
	}

	guess := normalizeGuess(text)
	if !lo.Contains(r.accepted, guess) {
		if isCloseGuess(guess, r.accepted[0]) {
			r.bc.ToConn(p.id, EventSystemMessage, SystemMessage{Text: "You are very close!"})
		}
		r.broadcastChat(p.id, p.name, text, "chat")
		return
	}

	p.hasGuessed = true
	points := drawGuessPoints(r.phaseTimeLeft, r.turnTime)
	r.awardPoints(p, points)
	if drawer := r.findPlayer(r.drawerID); drawer != nil {
		r.awardPoints(drawer, drawerPointsPerGuess)
	}

	r.bc.ToConn(p.id, EventCorrectGuess, CorrectGuess{Points: points})
	r.bc.ToRoom(r.code, EventPlayerGuessed, PlayerGuessed{PlayerID: p.id, Points: points})
	r.broadcastChat(p.id, "System", fmt.Sprintf("%s guessed the word!", p.name), "success")
	r.broadcastRoomUpdate()

	guessers := r.relevantGuessers()
	allGuessed := len(guessers) > 0 && lo.EveryBy(guessers, func(p *Player) bool { return p.hasGuessed })
	if allGuessed {
		r.endDrawRound("All teammates guessed!")
	}
}
