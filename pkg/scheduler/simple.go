package scheduler

import (
	"fmt"

	"github.com/vtsched/osim/pkg/process"
)

// Simple is the FIFO-to-completion scheduler (spec.md §4.1.1): it never
// preempts, so quantum_for(p) = p.TimeToCompletion. A process can still
// voluntarily block on I/O if its io_probability is nonzero — that is
// intentional (spec.md §9).
type Simple struct {
	registry *process.Registry
	queue    []*process.Process
}

// NewSimple returns a Simple scheduler backed by reg for cleanup.
func NewSimple(reg *process.Registry) *Simple {
	return &Simple{registry: reg}
}

func (s *Simple) Admit(p *process.Process) error {
	if p.State != process.Ready {
		return fmt.Errorf("scheduler: admit pid %d: %w", p.PID, process.ErrNotReady)
	}
	s.queue = append(s.queue, p)
	return nil
}

func (s *Simple) cleanup() {
	s.queue = pruneQueue(s.queue, s.registry)
}

func (s *Simple) PickNext() (*process.Process, error) {
	s.cleanup()
	if len(s.queue) == 0 {
		return nil, ErrNoRunnable
	}
	p := s.queue[0]
	s.queue = s.queue[1:]
	return p, nil
}

func (s *Simple) QuantumFor(p *process.Process) int {
	if p.TimeToCompletion < 1 {
		return 1
	}
	return p.TimeToCompletion
}

func (s *Simple) HasWork() bool {
	s.cleanup()
	return len(s.queue) > 0
}

// pruneQueue drops entries whose process has terminated or is no longer in
// reg, implementing the common cleanup contract (spec.md §4.1.6) for the
// plain-FIFO schedulers (Simple, RoundRobin).
func pruneQueue(queue []*process.Process, reg *process.Registry) []*process.Process {
	out := queue[:0]
	for _, p := range queue {
		if p.State == process.Terminated || !reg.Contains(p.PID) {
			continue
		}
		out = append(out, p)
	}
	return out
}
