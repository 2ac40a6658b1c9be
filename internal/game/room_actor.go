package game

import (
	"context"
	"encoding/json"
	"time"

	"github.com/deepaksivamani/virtualgames/internal/logger"
)

type actionKind int

const (
	actionStartGame actionKind = iota
	actionRestartGame
	actionGuess
	actionSelectWord
	actionStroke
)

type actionEnvelope struct {
	kind     actionKind
	connID   string
	text     string
	settings Settings
	stroke   json.RawMessage
}

type joinRequest struct {
	name   string
	connID string
	resp   chan joinResult
}

type joinResult struct {
	snapshot       RoomSnapshot
	replacedConnID string
	err            error
}

// Run is the room actor loop. Every mutation of room state happens
// here, one message at a time.
func (r *Room) Run() {
	for {
		select {
		case env := <-r.inbox:
			r.dispatch(env)
		case req := <-r.joinReqs:
			req.resp <- r.handleJoin(req.name, req.connID)
		case connID := <-r.removals:
			r.handleRemovePlayer(connID)
		case now := <-r.ticks:
			r.handleTick(now)
		case ev := <-r.timerEvents:
			r.handleTimer(ev)
		case <-r.done:
			return
		}
	}
}

// Tick posts a clock tick without blocking; a busy room drops it.
func (r *Room) Tick(now time.Time) {
	select {
	case r.ticks <- now:
	default:
	}
}

// Join posts a join request and waits for the actor's answer.
func (r *Room) Join(ctx context.Context, name, connID string) joinResult {
	req := joinRequest{name: name, connID: connID, resp: make(chan joinResult, 1)}
	select {
	case r.joinReqs <- req:
	case <-r.done:
		return joinResult{err: ErrRoomClosed}
	case <-ctx.Done():
		return joinResult{err: ctx.Err()}
	}
	select {
	case res := <-req.resp:
		return res
	case <-r.done:
		return joinResult{err: ErrRoomClosed}
	case <-ctx.Done():
		return joinResult{err: ctx.Err()}
	}
}

// RequestRemove posts a disconnect for the given connection.
func (r *Room) RequestRemove(connID string) {
	select {
	case r.removals <- connID:
	case <-r.done:
	}
}

func (r *Room) post(env actionEnvelope) {
	select {
	case r.inbox <- env:
	case <-r.done:
	}
}

func (r *Room) dispatch(env actionEnvelope) {
	switch env.kind {
	case actionStartGame:
		r.handleStartGame(env.connID, env.settings)
	case actionRestartGame:
		r.handleRestartGame(env.connID)
	case actionGuess:
		r.handleGuess(env.connID, env.text)
	case actionSelectWord:
		r.handleSelectWord(env.connID, env.text)
	case actionStroke:
		r.handleStroke(env.connID, env.stroke)
	}
}

// handleJoin adds a player, or rebinds an existing one when the name is
// already present (reconnection: score, host flag and team survive, the
// stale connection id does not).
func (r *Room) handleJoin(name, connID string) joinResult {
	r.timers.cancel(timerDelete)

	if existing := r.findPlayerByName(name); existing != nil {
		replaced := existing.id
		if r.drawerID == replaced {
			r.drawerID = connID
		}
		existing.id = connID
		r.broadcastRoomUpdate()
		if r.mode == ModeDraw && len(r.canvas) > 0 {
			r.bc.ToConn(connID, EventCanvasHistory, r.canvas)
		}
		logger.Infof("[Room %s] Player %s reconnected", r.code, name)
		return joinResult{snapshot: r.snapshot(), replacedConnID: replaced}
	}

	player := &Player{
		id:     connID,
		name:   name,
		isHost: len(r.players) == 0,
	}
	if r.teamMode {
		player.team = balancedTeam(r.players)
	}
	r.players = append(r.players, player)
	r.broadcastRoomUpdate()
	logger.Infof("[Room %s] Player %s joined (%d players)", r.code, name, len(r.players))
	return joinResult{snapshot: r.snapshot()}
}

func (r *Room) handleRemovePlayer(connID string) {
	idx := -1
	for i, p := range r.players {
		if p.id == connID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return
	}

	removed := r.players[idx]
	wasDrawer := r.mode == ModeDraw && r.drawerID == connID
	r.players = append(r.players[:idx], r.players[idx+1:]...)
	logger.Infof("[Room %s] Player %s left (%d players)", r.code, removed.name, len(r.players))

	if len(r.players) == 0 {
		r.timers.arm(timerDelete, r.graceWindow)
		return
	}

	if removed.isHost {
		r.players[0].isHost = true
	}
	if wasDrawer {
		switch r.currentPhase() {
		case PhaseActive, PhaseSelecting:
			r.endDrawRound("Drawer left!")
		}
	}
	r.broadcastRoomUpdate()
}

// handleTick drives both countdowns. The global clock runs through
// every in-game phase and ends the match regardless of round state; the
// phase clock only runs while a puzzle or drawing turn is live.
func (r *Room) handleTick(time.Time) {
	switch r.currentPhase() {
	case PhaseLobby, PhaseEnded:
		return
	}

	r.timeLeft--
	if r.timeLeft <= 0 {
		r.endGame()
		return
	}

	if r.currentPhase() != PhaseActive {
		return
	}
	r.phaseTimeLeft--

	if r.mode == ModeDraw {
		for _, checkpoint := range hintCheckpoints {
			if r.phaseTimeLeft == checkpoint {
				r.revealHint()
			}
		}
		if r.phaseTimeLeft <= 0 {
			r.endDrawRound("Time is up!")
		}
		return
	}

	if r.phaseTimeLeft <= 0 {
		r.endRiddleRound("timeout")
	}
}

func (r *Room) handleTimer(ev timerEvent) {
	if !r.timers.valid(ev) {
		logger.Debugf("[Room %s] Dropping stale %s timer", r.code, ev.name)
		return
	}

	switch ev.name {
	case timerSelect:
		if r.currentPhase() == PhaseSelecting && len(r.wordChoices) > 0 {
			r.beginDrawing(r.wordChoices[0].Word)
		}
	case timerRestart:
		if r.currentPhase() != PhaseRoundEnd {
			return
		}
		if r.mode == ModeDraw {
			r.startDrawRound()
		} else {
			r.nextPuzzle()
		}
	case timerDelete:
		if len(r.players) == 0 && r.onDelete != nil {
			logger.Infof("[Room %s] Grace window elapsed, deleting room", r.code)
			r.onDelete(r.code)
		}
	}
}

func (r *Room) handleStartGame(connID string, settings Settings) {
	p := r.findPlayer(connID)
	if p == nil || !p.isHost {
		return
	}
	if r.currentPhase() != PhaseLobby {
		logger.Warningf("[Room %s] Ignoring start_game in phase %q", r.code, r.currentPhase())
		return
	}
	r.startMatch(settings)
}

func (r *Room) handleRestartGame(connID string) {
	p := r.findPlayer(connID)
	if p == nil || !p.isHost {
		return
	}
	if !r.transition(eventReset) {
		return
	}
	r.startMatch(r.lastSettings)
}

func (r *Room) startMatch(settings Settings) {
	r.applySettings(settings)
	logger.Infof("[Room %s] Starting %s match (duration %ds, hardcore=%v, teams=%v)",
		r.code, r.mode, r.duration, r.hardcore, r.teamMode)

	if r.mode == ModeDraw {
		r.startDrawMatch(settings)
	} else {
		r.startRiddleMatch(settings)
	}
}

func (r *Room) handleGuess(connID, text string) {
	p := r.findPlayer(connID)
	if p == nil {
		return
	}
	if r.mode == ModeDraw {
		r.handleDrawGuess(p, text)
	} else {
		r.handleRiddleGuess(p, text)
	}
}
