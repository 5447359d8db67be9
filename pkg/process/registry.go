package process

import (
	"fmt"

	"github.com/vtsched/osim/pkg/prng"
	"github.com/vtsched/osim/pkg/types"
)

// Registry is the process-wide "pid -> Process" mapping (spec.md §3). A
// systems-language implementation passes an explicit Registry handle into
// Spawn and into the schedulers that need cleanup rather than relying on a
// true global, so independent simulations (e.g. cmd/osim's concurrent
// sweep) never share state (spec.md §9, Design Notes).
type Registry struct {
	processes map[int]*Process
	nextPID   int
}

// NewRegistry returns an empty process table. The first Spawn call
// assigns pid 1, per spec.md §3.
func NewRegistry() *Registry {
	return &Registry{processes: make(map[int]*Process), nextPID: 1}
}

// Spawn creates a new READY process and adds it to the table. Pass
// timeToCompletion=0 to draw the initial work uniformly from [5, 10]
// (the process factory default in spec.md §6); a process's work is always
// strictly positive at creation, so 0 is otherwise not a meaningful input.
func (r *Registry) Spawn(rng *prng.Source, arrivalTime types.Ticks, ioProbability float64, timeToCompletion int) (*Process, error) {
	if ioProbability < 0 || ioProbability > 1 {
		return nil, fmt.Errorf("%w: got %f", ErrBadIOProbability, ioProbability)
	}
	if timeToCompletion < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrBadWork, timeToCompletion)
	}
	if timeToCompletion == 0 {
		timeToCompletion = rng.IntRange(defaultWorkLo, defaultWorkHi)
	}

	p := &Process{
		PID:              r.nextPID,
		ArrivalTime:      arrivalTime,
		TimeToCompletion: timeToCompletion,
		IOProbability:    ioProbability,
		State:            Ready,
		initialWork:      timeToCompletion,
	}
	r.nextPID++
	r.processes[p.PID] = p
	return p, nil
}

// Get returns the process registered under pid, or ErrUnknownPID.
func (r *Registry) Get(pid int) (*Process, error) {
	p, ok := r.processes[pid]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPID, pid)
	}
	return p, nil
}

// Contains reports whether pid is still in the table. Schedulers use this
// (plus State == Terminated) to implement the common cleanup contract in
// spec.md §4.1.6.
func (r *Registry) Contains(pid int) bool {
	_, ok := r.processes[pid]
	return ok
}

// Remove drops pid from the table. It is idempotent: removing an
// already-absent pid is a no-op, matching "cleanup is idempotent"
// (spec.md §4.1.6).
func (r *Registry) Remove(pid int) {
	delete(r.processes, pid)
}

// Len returns the number of live (non-removed) processes.
func (r *Registry) Len() int {
	return len(r.processes)
}
