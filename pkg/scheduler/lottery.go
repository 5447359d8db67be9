package scheduler

import (
	"fmt"

	"github.com/vtsched/osim/pkg/process"
	"github.com/vtsched/osim/pkg/prng"
)

// DefaultTicketsPerAdmission and DefaultLotteryQuantum are Lottery's
// defaults (spec.md §4.1.4).
const (
	DefaultTicketsPerAdmission = 10
	DefaultLotteryQuantum      = 5
)

// Lottery picks the next process by a weighted random draw over tickets
// held, deterministic given the injected prng.Source and insertion order
// (spec.md §4.1.4) — the same Source the rest of the simulation uses, so a
// seeded run is fully reproducible.
type Lottery struct {
	rng             *prng.Source
	defaultQuantum  int
	ticketsPerAdmit int

	order        []*process.Process
	tickets      map[int]int
	totalTickets int

	registry *process.Registry
}

// NewLottery returns a Lottery scheduler drawing from rng. A non-positive
// defaultQuantum falls back to DefaultLotteryQuantum.
func NewLottery(reg *process.Registry, rng *prng.Source, defaultQuantum int) *Lottery {
	if defaultQuantum <= 0 {
		defaultQuantum = DefaultLotteryQuantum
	}
	return &Lottery{
		rng:             rng,
		defaultQuantum:  defaultQuantum,
		ticketsPerAdmit: DefaultTicketsPerAdmission,
		tickets:         make(map[int]int),
		registry:        reg,
	}
}

func (l *Lottery) Admit(p *process.Process) error {
	if p.State != process.Ready {
		return fmt.Errorf("scheduler: admit pid %d: %w", p.PID, process.ErrNotReady)
	}
	l.order = append(l.order, p)
	l.tickets[p.PID] = l.ticketsPerAdmit
	l.totalTickets += l.ticketsPerAdmit
	return nil
}

// cleanup drops terminated or unknown entries and their ticket
// contribution, preserving insertion order among survivors (spec.md
// §4.1.4, §4.1.6).
func (l *Lottery) cleanup() {
	out := l.order[:0]
	for _, p := range l.order {
		if p.State == process.Terminated || !l.registry.Contains(p.PID) {
			l.totalTickets -= l.tickets[p.PID]
			delete(l.tickets, p.PID)
			continue
		}
		out = append(out, p)
	}
	l.order = out
}

func (l *Lottery) PickNext() (*process.Process, error) {
	l.cleanup()
	if l.totalTickets <= 0 || len(l.order) == 0 {
		return nil, ErrNoRunnable
	}

	w := l.rng.IntRange(1, l.totalTickets)
	sum := 0
	for i, p := range l.order {
		sum += l.tickets[p.PID]
		if sum >= w {
			l.order = append(l.order[:i], l.order[i+1:]...)
			l.totalTickets -= l.tickets[p.PID]
			delete(l.tickets, p.PID)
			return p, nil
		}
	}
	// Unreachable if totalTickets accounting is correct.
	return nil, ErrNoRunnable
}

func (l *Lottery) QuantumFor(p *process.Process) int {
	return l.defaultQuantum
}

func (l *Lottery) HasWork() bool {
	l.cleanup()
	return len(l.order) > 0
}
