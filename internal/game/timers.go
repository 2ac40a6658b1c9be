package game

import "time"

// Named one-shot timers owned by a room actor. A firing posts a
// timerEvent carrying the generation it was armed with; the actor drops
// events whose generation no longer matches, so a timer that fires after
// its phase ended is a no-op. arm/cancel/valid run only on the actor
// goroutine.

type timerName string

const (
	timerSelect  timerName = "selection"
	timerRestart timerName = "restart"
	timerDelete  timerName = "delete"
)

type timerEvent struct {
	name timerName
	gen  uint64
}

type timerSet struct {
	gens    map[timerName]uint64
	handles map[timerName]*time.Timer
	out     chan<- timerEvent
}

func newTimerSet(out chan<- timerEvent) *timerSet {
	return &timerSet{
		gens:    make(map[timerName]uint64),
		handles: make(map[timerName]*time.Timer),
		out:     out,
	}
}

func (ts *timerSet) arm(name timerName, d time.Duration) {
	ts.cancel(name)
	gen := ts.gens[name]
	out := ts.out
	ts.handles[name] = time.AfterFunc(d, func() {
		select {
		case out <- timerEvent{name: name, gen: gen}:
		default:
		}
	})
}

func (ts *timerSet) cancel(name timerName) {
	if h, ok := ts.handles[name]; ok {
		h.Stop()
		delete(ts.handles, name)
	}
	ts.gens[name]++
}

// cancelPhase revokes the timers tied to the current phase. The delete
// timer outlives phases and is managed separately.
func (ts *timerSet) cancelPhase() {
	ts.cancel(timerSelect)
	ts.cancel(timerRestart)
}

func (ts *timerSet) cancelAll() {
	ts.cancel(timerSelect)
	ts.cancel(timerRestart)
	ts.cancel(timerDelete)
}

func (ts *timerSet) valid(ev timerEvent) bool {
	return ts.gens[ev.name] == ev.gen
}
