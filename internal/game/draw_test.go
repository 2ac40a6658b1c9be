package game

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

func startDraw(t *testing.T, names ...string) (*Room, *fakeBroadcaster, []string) {
	t.Helper()
	r, bc, _ := newTestRoom(t, ModeDraw)
	conns := joinPlayers(r, names...)
	r.handleStartGame(conns[0], Settings{Duration: 1, TurnTime: 60})
	return r, bc, conns
}

func guesserConns(r *Room, conns []string) []string {
	return lo.Filter(conns, func(c string, _ int) bool { return c != r.drawerID })
}

func TestDraw_StartGameEntersSelecting(t *testing.T) {
	r, bc, conns := startDraw(t, "Alice", "Bob", "Carol")

	assert.Equal(t, PhaseSelecting, r.currentPhase())
	assert.Equal(t, 1, r.round)
	assert.Contains(t, conns, r.drawerID)
	assert.True(t, bc.sentTo(r.drawerID, EventYourTurnToDraw))

	payload, ok := bc.lastPayload(EventRoundStartSelecting)
	assert.True(t, ok)
	assert.Equal(t, r.drawerID, payload.(SelectingStart).Drawer)
}

func TestDraw_SelectWordBeginsDrawing(t *testing.T) {
	r, bc, _ := startDraw(t, "Alice", "Bob")

	r.handleSelectWord(r.drawerID, "elephant")

	assert.Equal(t, PhaseActive, r.currentPhase())
	assert.Equal(t, "elephant", r.answer)
	assert.Equal(t, "________", string(r.masked))
	assert.Equal(t, 60, r.phaseTimeLeft)
	assert.True(t, bc.sentTo(r.drawerID, EventYouAreDrawing))

	payload, _ := bc.lastPayload(EventStartDrawingPhase)
	start := payload.(DrawingPhaseStart)
	assert.Equal(t, "________", start.MaskedAnswer)
	assert.Equal(t, 8, start.Length)
}

func TestDraw_OnlyDrawerSelectsOfferedWord(t *testing.T) {
	r, _, conns := startDraw(t, "Alice", "Bob")
	guesser := guesserConns(r, conns)[0]

	r.handleSelectWord(guesser, "elephant")
	assert.Equal(t, PhaseSelecting, r.currentPhase())

	r.handleSelectWord(r.drawerID, "giraffe") // never offered
	assert.Equal(t, PhaseSelecting, r.currentPhase())
}

func TestDraw_SelectionTimeoutPicksFirstChoice(t *testing.T) {
	r, _, _ := startDraw(t, "Alice", "Bob")

	r.handleTimer(timerEvent{name: timerSelect, gen: r.timers.gens[timerSelect]})

	assert.Equal(t, PhaseActive, r.currentPhase())
	assert.Equal(t, "elephant", r.answer)
}

func TestDraw_GuessScoring(t *testing.T) {
	r, bc, conns := startDraw(t, "Alice", "Bob", "Carol")
	r.handleSelectWord(r.drawerID, "elephant")
	guessers := guesserConns(r, conns)

	r.handleGuess(guessers[0], "ELEPHANT")

	assert.Equal(t, 500, r.findPlayer(guessers[0]).score)
	assert.Equal(t, 50, r.findPlayer(r.drawerID).score)
	assert.True(t, bc.sentTo(guessers[0], EventCorrectGuess))
	assert.Equal(t, PhaseActive, r.currentPhase(), "one guesser left")

	r.phaseTimeLeft = 30
	r.handleGuess(guessers[1], "elephant")

	assert.Equal(t, 300, r.findPlayer(guessers[1]).score)
	assert.Equal(t, 100, r.findPlayer(r.drawerID).score)
	assert.Equal(t, PhaseRoundEnd, r.currentPhase())

	payload, _ := bc.lastPayload(EventRoundEnd)
	assert.Equal(t, "All teammates guessed!", payload.(RoundEnd).Reason)
}

func TestDraw_DrawerCannotGuess(t *testing.T) {
	r, _, _ := startDraw(t, "Alice", "Bob")
	r.handleSelectWord(r.drawerID, "elephant")

	r.handleGuess(r.drawerID, "elephant")

	assert.Zero(t, r.findPlayer(r.drawerID).score)
	assert.Equal(t, PhaseActive, r.currentPhase())
}

func TestDraw_CloseGuessGetsPrivateNudge(t *testing.T) {
	r, bc, conns := startDraw(t, "Alice", "Bob")
	r.handleSelectWord(r.drawerID, "elephant")
	guesser := guesserConns(r, conns)[0]

	r.handleGuess(guesser, "elephamt")

	assert.Zero(t, r.findPlayer(guesser).score)
	assert.True(t, bc.sentTo(guesser, EventSystemMessage))
	assert.Equal(t, 1, bc.count(EventChatMessage), "close guess still lands in chat")
}

func TestDraw_TimeUpEndsRound(t *testing.T) {
	r, bc, _ := startDraw(t, "Alice", "Bob")
	r.handleSelectWord(r.drawerID, "elephant")

	r.phaseTimeLeft = 1
	r.handleTick(time.Now())

	assert.Equal(t, PhaseRoundEnd, r.currentPhase())
	payload, _ := bc.lastPayload(EventRoundEnd)
	end := payload.(RoundEnd)
	assert.Equal(t, "Time is up!", end.Reason)
	assert.Equal(t, "elephant", end.Answer)
}

func TestDraw_HintCheckpointRevealsOneCharacter(t *testing.T) {
	r, _, _ := startDraw(t, "Alice", "Bob")
	r.handleSelectWord(r.drawerID, "elephant")

	r.phaseTimeLeft = 31
	r.handleTick(time.Now())

	assert.Equal(t, 30, r.phaseTimeLeft)
	assert.Equal(t, 1, countRevealed(r.masked))
}

func TestDraw_HardcoreSkipsHints(t *testing.T) {
	r, _, _ := newTestRoom(t, ModeDraw)
	conns := joinPlayers(r, "Alice", "Bob")
	r.handleStartGame(conns[0], Settings{Duration: 1, TurnTime: 60, Hardcore: true})
	r.handleSelectWord(r.drawerID, "elephant")

	r.phaseTimeLeft = 31
	r.handleTick(time.Now())

	assert.Zero(t, countRevealed(r.masked))
}

func TestDraw_DrawerLeavingEndsRound(t *testing.T) {
	r, bc, _ := startDraw(t, "Alice", "Bob", "Carol")
	r.handleSelectWord(r.drawerID, "elephant")

	r.handleRemovePlayer(r.drawerID)

	assert.Equal(t, PhaseRoundEnd, r.currentPhase())
	payload, _ := bc.lastPayload(EventRoundEnd)
	assert.Equal(t, "Drawer left!", payload.(RoundEnd).Reason)
}

func TestDraw_StrokesFanOutAndReplayOnReconnect(t *testing.T) {
	r, bc, conns := startDraw(t, "Alice", "Bob")
	r.handleSelectWord(r.drawerID, "elephant")
	guesser := guesserConns(r, conns)[0]

	stroke := json.RawMessage(`{"x":1,"y":2}`)
	r.handleStroke(r.drawerID, stroke)
	r.handleStroke(guesser, json.RawMessage(`{"x":9}`)) // not the drawer

	assert.Len(t, r.canvas, 1)
	assert.Equal(t, 1, bc.count(EventDrawStroke))

	// Reconnecting under the same name replays the canvas.
	name := r.findPlayer(guesser).name
	r.handleJoin(name, "connR")
	assert.True(t, bc.sentTo("connR", EventCanvasHistory))
}

func TestDraw_DrawerReconnectKeepsTheTurn(t *testing.T) {
	r, _, _ := startDraw(t, "Alice", "Bob")
	r.handleSelectWord(r.drawerID, "elephant")

	name := r.findPlayer(r.drawerID).name
	r.handleJoin(name, "connR")

	assert.Equal(t, "connR", r.drawerID)
	assert.Equal(t, PhaseActive, r.currentPhase())
}

func TestDraw_TeamBattleRestrictsScoring(t *testing.T) {
	r, bc, _ := newTestRoom(t, ModeDraw)
	conns := joinPlayers(r, "Alice", "Bob", "Carol", "Dave")
	r.handleStartGame(conns[0], Settings{
		Duration: 1,
		TurnTime: 60,
		TeamMode: true,
		TeamConfig: &TeamConfig{
			Mode: "manual",
			Teams: map[string]Team{
				conns[0]: TeamRed, conns[1]: TeamRed,
				conns[2]: TeamBlue, conns[3]: TeamBlue,
			},
		},
	})
	r.handleSelectWord(r.drawerID, "elephant")

	drawer := r.findPlayer(r.drawerID)
	teammate, _ := lo.Find(r.players, func(p *Player) bool {
		return p.id != r.drawerID && p.team == drawer.team
	})
	opponent, _ := lo.Find(r.players, func(p *Player) bool {
		return p.team != drawer.team
	})

	r.handleGuess(opponent.id, "elephant")
	assert.Zero(t, opponent.score, "cross-team guess is chat only")
	assert.Equal(t, PhaseActive, r.currentPhase())
	assert.Equal(t, 1, bc.count(EventChatMessage))

	r.handleGuess(teammate.id, "elephant")
	assert.Equal(t, 500, teammate.score)
	assert.Equal(t, 550, r.teams[drawer.team], "guesser points plus drawer bonus")
	assert.Equal(t, PhaseRoundEnd, r.currentPhase(), "all teammates guessed")
}

func TestDraw_NextRoundRotatesDrawer(t *testing.T) {
	r, _, _ := startDraw(t, "Alice", "Bob")
	first := r.drawerID
	r.handleSelectWord(first, "elephant")
	r.endDrawRound("Time is up!")

	r.handleTimer(timerEvent{name: timerRestart, gen: r.timers.gens[timerRestart]})

	assert.Equal(t, PhaseSelecting, r.currentPhase())
	assert.Equal(t, 2, r.round)
	assert.NotEqual(t, first, r.drawerID)
}
