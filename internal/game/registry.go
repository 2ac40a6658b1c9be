package game

import (
	"context"
	"encoding/json"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/deepaksivamani/virtualgames/internal/logger"
	"github.com/deepaksivamani/virtualgames/internal/pool"
)

const (
	roomCodeLength  = 4
	roomCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Registry owns the room table and the shared one-second clock. Rooms
// run their own actor goroutines; the registry only routes to them.
type Registry struct {
	mu     sync.RWMutex
	rooms  map[string]*Room
	byConn map[string]string // connection id -> room code

	puzzles     *pool.PuzzlePool
	words       *pool.WordPool
	bc          Broadcaster
	sink        ResultSink
	graceWindow time.Duration

	stop     chan struct{}
	stopOnce sync.Once
}

func NewRegistry(puzzles *pool.PuzzlePool, words *pool.WordPool, bc Broadcaster, sink ResultSink, graceWindow time.Duration) *Registry {
	return &Registry{
		rooms:       make(map[string]*Room),
		byConn:      make(map[string]string),
		puzzles:     puzzles,
		words:       words,
		bc:          bc,
		sink:        sink,
		graceWindow: graceWindow,
		stop:        make(chan struct{}),
	}
}

// Run drives every room's countdown off one shared ticker. Ticks are
// posted without blocking, so a slow room cannot stall its neighbors.
func (g *Registry) Run() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			g.mu.RLock()
			for _, room := range g.rooms {
				room.Tick(now)
			}
			g.mu.RUnlock()
		case <-g.stop:
			return
		}
	}
}

// Close stops the clock and every room actor.
func (g *Registry) Close() {
	g.stopOnce.Do(func() { close(g.stop) })

	g.mu.Lock()
	defer g.mu.Unlock()
	for _, room := range g.rooms {
		room.Close()
	}
	g.rooms = make(map[string]*Room)
	g.byConn = make(map[string]string)
}

func (g *Registry) RoomCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.rooms)
}

// newCode draws an unused room code. Caller holds g.mu.
func (g *Registry) newCode() string {
	buf := make([]byte, roomCodeLength)
	for {
		for i := range buf {
			buf[i] = roomCodeCharset[rand.Intn(len(roomCodeCharset))]
		}
		if _, taken := g.rooms[string(buf)]; !taken {
			return string(buf)
		}
	}
}

// JoinOutcome is what a successful create or join hands the transport:
// the sanitized snapshot to reply with, and the stale connection id to
// unsubscribe when the join was a reconnection.
type JoinOutcome struct {
	Snapshot       RoomSnapshot
	ReplacedConnID string
}

// CreateRoom spins up a room actor and joins the creator as its host.
func (g *Registry) CreateRoom(ctx context.Context, mode Mode, metadata map[string]any, name, connID string) (JoinOutcome, error) {
	g.mu.Lock()
	code := g.newCode()
	room := NewRoom(code, mode, metadata, g.puzzles, g.words, g.bc, g.sink, g.graceWindow, g.removeRoom)
	g.rooms[code] = room
	g.mu.Unlock()

	go room.Run()
	logger.Infof("[Registry] Room %s created (mode %s)", code, mode)
	return g.join(ctx, room, name, connID)
}

// JoinRoom adds a player to an existing room. Codes are matched
// case-insensitively.
func (g *Registry) JoinRoom(ctx context.Context, code, name, connID string) (JoinOutcome, error) {
	g.mu.RLock()
	room := g.rooms[strings.ToUpper(strings.TrimSpace(code))]
	g.mu.RUnlock()
	if room == nil {
		return JoinOutcome{}, ErrRoomNotFound
	}
	return g.join(ctx, room, name, connID)
}

func (g *Registry) join(ctx context.Context, room *Room, name, connID string) (JoinOutcome, error) {
	res := room.Join(ctx, name, connID)
	if res.err != nil {
		return JoinOutcome{}, res.err
	}

	g.mu.Lock()
	if res.replacedConnID != "" {
		delete(g.byConn, res.replacedConnID)
	}
	g.byConn[connID] = room.Code()
	g.mu.Unlock()

	return JoinOutcome{Snapshot: res.snapshot, ReplacedConnID: res.replacedConnID}, nil
}

// Disconnect routes a dropped connection to its room, if it had one.
func (g *Registry) Disconnect(connID string) {
	g.mu.Lock()
	code, ok := g.byConn[connID]
	delete(g.byConn, connID)
	room := g.rooms[code]
	g.mu.Unlock()

	if ok && room != nil {
		room.RequestRemove(connID)
	}
}

// removeRoom is the onDelete callback a room fires once its deletion
// grace window elapses with nobody inside.
func (g *Registry) removeRoom(code string) {
	g.mu.Lock()
	room := g.rooms[code]
	delete(g.rooms, code)
	g.mu.Unlock()

	if room != nil {
		room.Close()
		logger.Infof("[Registry] Room %s deleted (%d rooms active)", code, g.RoomCount())
	}
}

func (g *Registry) roomFor(connID string) *Room {
	g.mu.RLock()
	defer g.mu.RUnlock()
	code, ok := g.byConn[connID]
	if !ok {
		return nil
	}
	return g.rooms[code]
}

func (g *Registry) StartGame(connID string, settings Settings) {
	if room := g.roomFor(connID); room != nil {
		room.post(actionEnvelope{kind: actionStartGame, connID: connID, settings: settings})
	}
}

func (g *Registry) RestartGame(connID string) {
	if room := g.roomFor(connID); room != nil {
		room.post(actionEnvelope{kind: actionRestartGame, connID: connID})
	}
}

func (g *Registry) SubmitGuess(connID, text string) {
	if room := g.roomFor(connID); room != nil {
		room.post(actionEnvelope{kind: actionGuess, connID: connID, text: text})
	}
}

func (g *Registry) SelectWord(connID, word string) {
	if room := g.roomFor(connID); room != nil {
		room.post(actionEnvelope{kind: actionSelectWord, connID: connID, text: word})
	}
}

func (g *Registry) DrawStroke(connID string, stroke json.RawMessage) {
	if room := g.roomFor(connID); room != nil {
		room.post(actionEnvelope{kind: actionStroke, connID: connID, stroke: stroke})
	}
}
