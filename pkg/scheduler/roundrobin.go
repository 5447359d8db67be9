package scheduler

import (
	"fmt"

	"github.com/vtsched/osim/pkg/process"
)

// DefaultQuantum is the quantum Round-Robin uses when constructed with a
// non-positive value (spec.md §4.1.2).
const DefaultQuantum = 3

// RoundRobin is the classic fixed-quantum FIFO scheduler (spec.md §4.1.2).
// The dispatcher is responsible for re-admitting a process at the tail
// after each run; RoundRobin itself only orders what it's handed.
type RoundRobin struct {
	registry *process.Registry
	quantum  int
	queue    []*process.Process
}

// NewRoundRobin returns a RoundRobin scheduler with the given quantum. A
// non-positive quantum falls back to DefaultQuantum.
func NewRoundRobin(reg *process.Registry, quantum int) *RoundRobin {
	if quantum <= 0 {
		quantum = DefaultQuantum
	}
	return &RoundRobin{registry: reg, quantum: quantum}
}

func (r *RoundRobin) Admit(p *process.Process) error {
	if p.State != process.Ready {
		return fmt.Errorf("scheduler: admit pid %d: %w", p.PID, process.ErrNotReady)
	}
	r.queue = append(r.queue, p)
	return nil
}

func (r *RoundRobin) cleanup() {
	r.queue = pruneQueue(r.queue, r.registry)
}

func (r *RoundRobin) PickNext() (*process.Process, error) {
	r.cleanup()
	if len(r.queue) == 0 {
		return nil, ErrNoRunnable
	}
	p := r.queue[0]
	r.queue = r.queue[1:]
	return p, nil
}

func (r *RoundRobin) QuantumFor(p *process.Process) int {
	return r.quantum
}

func (r *RoundRobin) HasWork() bool {
	r.cleanup()
	return len(r.queue) > 0
}
