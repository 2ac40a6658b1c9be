package game

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"github.com/samber/lo"

	"github.com/deepaksivamani/virtualgames/internal/logger"
	"github.com/deepaksivamani/virtualgames/internal/pool"
)

type Mode int

const (
	ModeRiddle Mode = iota
	ModeDraw
)

func (m Mode) String() string {
	if m == ModeDraw {
		return "draw"
	}
	return "riddle"
}

func ParseMode(s string) Mode {
	if s == "draw" {
		return ModeDraw
	}
	return ModeRiddle
}

// Room phases. Riddle mode never visits PhaseSelecting.
const (
	PhaseLobby     = "lobby"
	PhaseSelecting = "selecting"
	PhaseActive    = "active"
	PhaseRoundEnd  = "round_end"
	PhaseEnded     = "ended"
)

const (
	eventSelect   = "select"
	eventActivate = "activate"
	eventEndRound = "end_round"
	eventEndGame  = "end_game"
	eventReset    = "reset"
)

const (
	defaultDurationSeconds = 300
	defaultTurnTime        = 60
	defaultPuzzleTime      = 30
	wordChoiceCount        = 3
	selectionTimeout       = 15 * time.Second
	riddleRestartDelay     = 3 * time.Second
	drawRestartDelay       = 5 * time.Second
)

// Remaining-second checkpoints at which draw mode reveals a hint.
var hintCheckpoints = []int{30, 15}

type Player struct {
	id         string // connection id, replaced on reconnect
	name       string
	score      int
	team       Team
	isHost     bool
	hasGuessed bool
}

// Settings configure one match. Duration is in minutes, the rest in
// seconds; zero values fall back to defaults.
type Settings struct {
	Duration   int         `json:"duration"`
	TurnTime   int         `json:"turnTime"`
	PuzzleTime int         `json:"puzzleTime"`
	Hardcore   bool        `json:"hardcore"`
	TeamMode   bool        `json:"teamMode"`
	TeamConfig *TeamConfig `json:"teamConfig,omitempty"`
}

// Room is one isolated game session. All fields are owned by the room
// actor goroutine; nothing outside the actor touches them.
type Room struct {
	code     string
	mode     Mode
	metadata map[string]any
	phase    *fsm.FSM

	players []*Player
	teams   map[Team]int

	hardcore     bool
	teamMode     bool
	duration     int // seconds
	turnTime     int
	puzzleTime   int
	lastSettings Settings

	round         int
	timeLeft      int
	phaseTimeLeft int

	currentPuzzle *pool.Puzzle
	usedPuzzles   map[int]struct{}

	answer   string   // canonical answer, never leaves the server unmasked
	accepted []string // normalized accepted answers
	masked   []rune

	drawerID    string
	drawerQueue []string
	wordChoices []pool.Word
	canvas      []json.RawMessage

	puzzles *pool.PuzzlePool
	words   *pool.WordPool

	timers      *timerSet
	bc          Broadcaster
	sink        ResultSink
	graceWindow time.Duration
	onDelete    func(code string)

	inbox       chan actionEnvelope
	joinReqs    chan joinRequest
	removals    chan string
	ticks       chan time.Time
	timerEvents chan timerEvent
	done        chan struct{}
	closeOnce   sync.Once
}

func newPhaseFSM() *fsm.FSM {
	return fsm.NewFSM(
		PhaseLobby,
		fsm.Events{
			{Name: eventSelect, Src: []string{PhaseLobby, PhaseRoundEnd}, Dst: PhaseSelecting},
			{Name: eventActivate, Src: []string{PhaseLobby, PhaseSelecting, PhaseRoundEnd}, Dst: PhaseActive},
			{Name: eventEndRound, Src: []string{PhaseSelecting, PhaseActive}, Dst: PhaseRoundEnd},
			{Name: eventEndGame, Src: []string{PhaseLobby, PhaseSelecting, PhaseActive, PhaseRoundEnd}, Dst: PhaseEnded},
			{Name: eventReset, Src: []string{PhaseEnded}, Dst: PhaseLobby},
		},
		fsm.Callbacks{},
	)
}

func NewRoom(code string, mode Mode, metadata map[string]any, puzzles *pool.PuzzlePool, words *pool.WordPool, bc Broadcaster, sink ResultSink, graceWindow time.Duration, onDelete func(code string)) *Room {
	timerEvents := make(chan timerEvent, 16)
	return &Room{
		code:        code,
		mode:        mode,
		metadata:    metadata,
		phase:       newPhaseFSM(),
		teams:       map[Team]int{TeamRed: 0, TeamBlue: 0},
		usedPuzzles: make(map[int]struct{}),
		puzzles:     puzzles,
		words:       words,
		timers:      newTimerSet(timerEvents),
		bc:          bc,
		sink:        sink,
		graceWindow: graceWindow,
		onDelete:    onDelete,
		inbox:       make(chan actionEnvelope, 256),
		joinReqs:    make(chan joinRequest, 8),
		removals:    make(chan string, 64),
		ticks:       make(chan time.Time, 4),
		timerEvents: timerEvents,
		done:        make(chan struct{}),
	}
}

func (r *Room) Code() string {
	return r.code
}

// Close stops the actor loop. Idempotent and safe from any goroutine.
// Timers still armed may fire afterwards; their events go unread.
func (r *Room) Close() {
	r.closeOnce.Do(func() {
		close(r.done)
	})
}

func (r *Room) currentPhase() string {
	return r.phase.Current()
}

// transition fires an FSM event and reports whether it was legal from
// the current phase. Illegal transitions are the idempotency guard for
// late timer callbacks and duplicate triggers.
func (r *Room) transition(event string) bool {
	if err := r.phase.Event(context.Background(), event); err != nil {
		logger.Debugf("[Room %s] Ignored transition %q from phase %q: %v", r.code, event, r.currentPhase(), err)
		return false
	}
	return true
}

func (r *Room) findPlayer(connID string) *Player {
	p, _ := lo.Find(r.players, func(p *Player) bool { return p.id == connID })
	return p
}

func (r *Room) findPlayerByName(name string) *Player {
	p, _ := lo.Find(r.players, func(p *Player) bool { return p.name == name })
	return p
}

func (r *Room) resetGuessFlags() {
	for _, p := range r.players {
		p.hasGuessed = false
	}
}

func (r *Room) awardPoints(p *Player, points int) {
	p.score += points
	if r.teamMode && p.team != "" {
		r.teams[p.team] += points
	}
}

func (r *Room) snapshot() RoomSnapshot {
	snap := RoomSnapshot{
		Code:     r.code,
		Mode:     r.mode.String(),
		Phase:    r.currentPhase(),
		Round:    r.round,
		TimeLeft: r.timeLeft,
		Players: lo.Map(r.players, func(p *Player, _ int) PlayerSnapshot {
			return PlayerSnapshot{
				ID:         p.id,
				Name:       p.name,
				Score:      p.score,
				Team:       p.team,
				IsHost:     p.isHost,
				HasGuessed: p.hasGuessed,
			}
		}),
		MaskedAnswer:  string(r.masked),
		PhaseTimeLeft: r.phaseTimeLeft,
		Metadata:      r.metadata,
	}
	if r.teamMode {
		snap.Teams = r.teams
	}
	if r.mode == ModeDraw {
		snap.CurrentDrawer = r.drawerID
		snap.PhaseTimeLimit = r.turnTime
	} else {
		snap.PhaseTimeLimit = r.puzzleTime
	}
	return snap
}

func (r *Room) broadcastRoomUpdate() {
	r.bc.ToRoom(r.code, EventUpdateRoom, r.snapshot())
}

func (r *Room) broadcastChat(playerID, playerName, text, kind string) {
	r.bc.ToRoom(r.code, EventChatMessage, ChatMessage{
		ID:         uuid.NewString(),
		PlayerID:   playerID,
		PlayerName: playerName,
		Text:       text,
		Type:       kind,
	})
}

func (r *Room) broadcastSystemChat(text string) {
	r.broadcastChat("GAME", "System", text, "system")
}

func (r *Room) scoreEntries() []ScoreEntry {
	return lo.Map(r.players, func(p *Player, _ int) ScoreEntry {
		return ScoreEntry{ID: p.id, Score: p.score}
	})
}

// applySettings resets per-match state and applies the team policy.
func (r *Room) applySettings(settings Settings) {
	r.lastSettings = settings
	r.round = 0
	r.hardcore = settings.Hardcore
	r.teamMode = settings.TeamMode
	r.teams = map[Team]int{TeamRed: 0, TeamBlue: 0}

	for _, p := range r.players {
		p.score = 0
		p.hasGuessed = false
	}

	if r.teamMode {
		if settings.TeamConfig != nil && settings.TeamConfig.Mode == "manual" && settings.TeamConfig.Teams != nil {
			assignTeamsManual(r.players, settings.TeamConfig.Teams)
		} else {
			assignTeamsAuto(r.players)
		}
	} else {
		clearTeams(r.players)
	}

	r.duration = defaultDurationSeconds
	if settings.Duration > 0 {
		r.duration = settings.Duration * 60
	}
	r.timeLeft = r.duration
}

// endGame concludes the match: phase goes to Ended, phase timers die,
// the result sink gets the standings. The delete timer is left alone so
// a room whose match runs out while empty is still collected. Safe to
// call from any phase; a second call is a no-op.
func (r *Room) endGame() {
	if !r.transition(eventEndGame) {
		return
	}
	r.timers.cancelPhase()
	r.timeLeft = 0

	sorted := append([]*Player{}, r.players...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].score > sorted[j].score })

	standings := lo.Map(sorted, func(p *Player, i int) Standing {
		return Standing{Name: p.name, Score: p.score, IsWinner: i == 0 && p.score > 0}
	})

	if len(standings) > 0 {
		go func() {
			if err := r.sink.RecordResult(context.Background(), standings, r.mode.String()); err != nil {
				logger.Criticalf("[Room %s] Failed to record game result: %v", r.code, err)
			}
		}()
	}

	r.broadcastRoomUpdate()
	over := GameOver{
		Players: lo.Map(sorted, func(p *Player, _ int) FinalStanding {
			return FinalStanding{ID: p.id, Name: p.name, Score: p.score}
		}),
	}
	if r.teamMode {
		over.Teams = r.teams
	}
	r.bc.ToRoom(r.code, EventGameOver, over)
	logger.Infof("[Room %s] Game over after round %d", r.code, r.round)
}
