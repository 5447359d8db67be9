package cpu

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/vtsched/osim/pkg/ioman"
	"github.com/vtsched/osim/pkg/prng"
	"github.com/vtsched/osim/pkg/process"
	"github.com/vtsched/osim/pkg/scheduler"
	"github.com/vtsched/osim/pkg/types"
)

// Dispatcher drives one simulation to completion (spec.md §4.3). It is not
// safe for concurrent use: cmd/osim's sweep subcommand runs one Dispatcher
// per goroutine, each with its own Registry, Scheduler, and Manager, rather
// than sharing a Dispatcher across goroutines.
type Dispatcher struct {
	sched    scheduler.Scheduler
	io       *ioman.Manager
	registry *process.Registry
	rng      *prng.Source
	log      *zap.Logger

	clock types.Ticks
	trace []TraceEntry
}

// New returns a Dispatcher wired to sched, io, reg, and rng. A nil log
// defaults to zap.NewNop(), mirroring the rest of the corpus's
// nil-logger-is-a-no-op convention.
func New(sched scheduler.Scheduler, io *ioman.Manager, reg *process.Registry, rng *prng.Source, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		sched:    sched,
		io:       io,
		registry: reg,
		rng:      rng,
		log:      log,
	}
}

// Clock returns the current simulation clock. Only meaningful to call
// after Run has returned, or from within a test inspecting intermediate
// dispatcher state.
func (d *Dispatcher) Clock() types.Ticks { return d.clock }

// tick notifies a ClockAware scheduler of the current clock, a no-op for
// every other variant.
func (d *Dispatcher) tick() {
	if ca, ok := d.sched.(scheduler.ClockAware); ok {
		ca.Tick(d.clock)
	}
}

// Run executes the dispatch loop to exhaustion: it returns once neither the
// scheduler nor the I/O manager holds any work (spec.md §4.3). The returned
// trace is the simulation's complete observable output, one entry per loop
// iteration: one per dispatch (however many ticks it ran) and one per idle
// tick.
func (d *Dispatcher) Run() ([]TraceEntry, error) {
	for d.sched.HasWork() || !d.io.Empty() {
		d.tick()
		for _, p := range d.io.Drain(d.clock) {
			if err := d.sched.Admit(p); err != nil {
				return d.trace, fmt.Errorf("cpu: re-admitting pid %d after I/O: %w", p.PID, err)
			}
		}

		if !d.sched.HasWork() {
			d.clock++
			d.trace = append(d.trace, TraceEntry{Tick: d.clock, Event: EventIdle})
			d.log.Warn("idle tick", zap.Int64("clock", int64(d.clock)))
			continue
		}

		p, err := d.sched.PickNext()
		if err != nil {
			return d.trace, fmt.Errorf("cpu: pick next: %w", err)
		}
		if !d.registry.Contains(p.PID) {
			return d.trace, fmt.Errorf("%w: pid %d", ErrRegistryDesync, p.PID)
		}

		p.State = process.Running
		q := d.sched.QuantumFor(p)
		ran, err := p.RunFor(d.rng, q)
		if err != nil {
			return d.trace, fmt.Errorf("cpu: run pid %d: %w", p.PID, err)
		}
		d.clock += types.Ticks(ran)

		switch p.State {
		case process.Waiting:
			d.trace = append(d.trace, TraceEntry{Tick: d.clock, PID: p.PID, Ran: ran, Event: EventBlocked})
			d.log.Debug("blocked", zap.Int("pid", p.PID), zap.Int("ran", ran), zap.Int64("clock", int64(d.clock)))
			if err := d.io.Park(p, d.clock); err != nil {
				return d.trace, fmt.Errorf("cpu: park pid %d: %w", p.PID, err)
			}
		case process.Terminated:
			d.trace = append(d.trace, TraceEntry{Tick: d.clock, PID: p.PID, Ran: ran, Event: EventTerminated})
			d.log.Debug("terminated", zap.Int("pid", p.PID), zap.Int("ran", ran), zap.Int64("clock", int64(d.clock)))
			d.registry.Remove(p.PID)
		default:
			d.trace = append(d.trace, TraceEntry{Tick: d.clock, PID: p.PID, Ran: ran, Event: EventRan})
			d.log.Debug("ran", zap.Int("pid", p.PID), zap.Int("ran", ran), zap.Int64("clock", int64(d.clock)))
			p.State = process.Ready
			if err := d.sched.Admit(p); err != nil {
				return d.trace, fmt.Errorf("cpu: re-admitting pid %d: %w", p.PID, err)
			}
		}
	}
	return d.trace, nil
}
