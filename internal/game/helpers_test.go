package game

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/deepaksivamani/virtualgames/internal/pool"
)

// Handlers under test run on the calling goroutine; the actor loop is
// only started where a test needs it.

type sentEvent struct {
	target  string // "room:<code>" or "conn:<id>"
	event   string
	payload any
}

type fakeBroadcaster struct {
	mu     sync.Mutex
	events []sentEvent
}

func (f *fakeBroadcaster) ToRoom(roomCode, event string, payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, sentEvent{target: "room:" + roomCode, event: event, payload: payload})
}

func (f *fakeBroadcaster) ToConn(connID, event string, payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, sentEvent{target: "conn:" + connID, event: event, payload: payload})
}

func (f *fakeBroadcaster) lastPayload(event string) (any, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.events) - 1; i >= 0; i-- {
		if f.events[i].event == event {
			return f.events[i].payload, true
		}
	}
	return nil, false
}

func (f *fakeBroadcaster) count(event string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, e := range f.events {
		if e.event == event {
			n++
		}
	}
	return n
}

// sentTo reports whether event went to the given connection.
func (f *fakeBroadcaster) sentTo(connID, event string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.events {
		if e.target == "conn:"+connID && e.event == event {
			return true
		}
	}
	return false
}

type recordedResult struct {
	standings []Standing
	mode      string
}

type fakeSink struct {
	results chan recordedResult
}

func newFakeSink() *fakeSink {
	return &fakeSink{results: make(chan recordedResult, 4)}
}

func (f *fakeSink) RecordResult(_ context.Context, standings []Standing, mode string) error {
	f.results <- recordedResult{standings: standings, mode: mode}
	return nil
}

func (f *fakeSink) wait(t *testing.T) recordedResult {
	t.Helper()
	select {
	case res := <-f.results:
		return res
	case <-time.After(time.Second):
		t.Fatal("no result reached the sink")
		return recordedResult{}
	}
}

// Single-entry pools keep drawn answers and offered words predictable.
var testPuzzles = []pool.Puzzle{
	{Type: "text", Content: []string{"yellow flower"}, Answers: []string{"sunflower", "sun flower"}, Hint: "Plant", Difficulty: 1},
}

var testWords = []pool.Word{
	{Word: "elephant", Difficulty: 1},
}

func newTestRoom(t *testing.T, mode Mode) (*Room, *fakeBroadcaster, *fakeSink) {
	t.Helper()
	bc := &fakeBroadcaster{}
	sink := newFakeSink()
	r := NewRoom("TEST", mode, nil,
		pool.NewPuzzlePool(testPuzzles), pool.NewWordPool(testWords),
		bc, sink, 10*time.Second, nil)
	t.Cleanup(r.Close)
	return r, bc, sink
}

func joinPlayers(r *Room, names ...string) []string {
	conns := make([]string, 0, len(names))
	for i, name := range names {
		connID := "conn" + string(rune('1'+i))
		r.handleJoin(name, connID)
		conns = append(conns, connID)
	}
	return conns
}
