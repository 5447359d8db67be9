package cpu

import "github.com/vtsched/osim/pkg/types"

// Event names one trace record's outcome.
type Event string

const (
	// EventRan records a process consuming its quantum with work left,
	// after which it is READY again.
	EventRan Event = "ran"
	// EventBlocked records a process blocking on I/O mid-quantum.
	EventBlocked Event = "blocked"
	// EventTerminated records a process running its last tick of work.
	EventTerminated Event = "terminated"
	// EventIdle records the clock advancing with no runnable process.
	EventIdle Event = "idle"
)

// TraceEntry is one observable step of the dispatch loop (spec.md §6): the
// clock value immediately after the step, which process acted (zero for an
// idle tick), how many ticks it consumed, and what happened to it.
type TraceEntry struct {
	Tick  types.Ticks
	PID   int
	Ran   int
	Event Event
}
