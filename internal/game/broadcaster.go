package game

import "context"

// Broadcaster is the injected fan-out capability. The engine only ever
// writes to it; delivery is the transport's problem.
type Broadcaster interface {
	ToRoom(roomCode string, event string, payload any)
	ToConn(connID string, event string, payload any)
}

// Standing is one row of the end-of-game result, sorted by score
// descending before it reaches the sink.
type Standing struct {
	Name     string
	Score    int
	IsWinner bool
}

// ResultSink receives final standings exactly once per completed match.
// A sink failure must never affect room state.
type ResultSink interface {
	RecordResult(ctx context.Context, standings []Standing, mode string) error
}
