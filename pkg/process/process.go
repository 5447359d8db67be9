package process

import (
	"fmt"

	"github.com/vtsched/osim/pkg/prng"
	"github.com/vtsched/osim/pkg/types"
)

// Process is a value object carrying everything the scheduler and
// dispatcher need: identity, remaining work, cumulative work run so far,
// the probability it blocks on I/O mid-quantum, and its lifecycle state.
type Process struct {
	PID               int
	ArrivalTime       types.Ticks
	TimeToCompletion  int
	CumulativeTimeRan int
	IOProbability     float64
	State             State

	initialWork int
}

// InitialWork returns the time_to_completion the process was created with.
// CumulativeTimeRan + TimeToCompletion == InitialWork holds for the life of
// the process (spec.md §8).
func (p *Process) InitialWork() int { return p.initialWork }

func (p *Process) String() string {
	return fmt.Sprintf("P%d[%s ttc=%d ran=%d]", p.PID, p.State, p.TimeToCompletion, p.CumulativeTimeRan)
}

// defaultWorkLo/defaultWorkHi bound the default random initial work a
// Spawn call with timeToCompletion=0 draws from, per the process factory
// in spec.md §6 and both original_source drafts.
const (
	defaultWorkLo = 5
	defaultWorkHi = 10
)

// RunFor advances p by up to q ticks of simulated work, per the
// Process.run_for semantics in spec.md §4.3. p must be RUNNING and q must
// be >= 1. It returns the number of ticks actually consumed.
//
// With probability p.IOProbability (and only when more than one tick of
// the quantum remains), the process blocks mid-quantum: a uniformly drawn
// effective run r in [1, maxRun-1] ticks is consumed and p transitions to
// WAITING. Otherwise the full maxRun = min(q, TimeToCompletion) ticks run;
// if that empties TimeToCompletion, p transitions to TERMINATED.
//
// Both branches decrement TimeToCompletion and increment
// CumulativeTimeRan by exactly the ticks consumed, preserving the
// cumulative+remaining == initial invariant in every case (spec.md §9,
// resolving the source ambiguity in favor of always accounting for the
// partial run).
func (p *Process) RunFor(rng *prng.Source, q int) (int, error) {
	if p.State != Running {
		return 0, fmt.Errorf("%w: pid %d is %s", ErrNotRunning, p.PID, p.State)
	}
	if q < 1 {
		return 0, fmt.Errorf("%w: got %d", ErrBadQuantum, q)
	}

	maxRun := q
	if p.TimeToCompletion < maxRun {
		maxRun = p.TimeToCompletion
	}

	if maxRun > 1 && rng.Bool(p.IOProbability) {
		r := rng.IntRange(1, maxRun-1)
		p.TimeToCompletion -= r
		p.CumulativeTimeRan += r
		p.State = Waiting
		return r, nil
	}

	p.TimeToCompletion -= maxRun
	p.CumulativeTimeRan += maxRun
	if p.TimeToCompletion == 0 {
		p.State = Terminated
	}
	return maxRun, nil
}
