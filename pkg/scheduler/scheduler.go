package scheduler

import (
	"github.com/vtsched/osim/pkg/process"
	"github.com/vtsched/osim/pkg/types"
)

// Scheduler is the capability set every variant exposes to the dispatcher
// (spec.md §4.1): admit a READY process, pick the next one to run, learn
// its quantum, and report whether any work remains.
type Scheduler interface {
	// Admit makes p eligible for a future PickNext. p.State must be READY;
	// returning process.ErrNotReady otherwise is a contract violation.
	Admit(p *process.Process) error

	// PickNext returns and removes one admitted process. Fails with
	// ErrNoRunnable if HasWork was false immediately before the call.
	PickNext() (*process.Process, error)

	// QuantumFor returns the positive integer quantum p should run for.
	// Never fails; unknown processes get a scheduler-defined default.
	QuantumFor(p *process.Process) int

	// HasWork reports whether at least one ready process is held.
	HasWork() bool
}

// ClockAware is implemented by schedulers whose bookkeeping depends on the
// simulation clock (currently only MLFQ, for its auto-boost timers). The dispatcher calls Tick with the current clock value once
// per loop iteration, before draining I/O or dispatching, for any
// scheduler that implements this interface.
type ClockAware interface {
	Tick(now types.Ticks)
}
