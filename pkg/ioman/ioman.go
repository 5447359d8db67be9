// Package ioman implements the I/O manager: a queue of (process,
// completion_tick) entries keyed on a monotonically advancing "next-free"
// watermark, modeling a single serialized I/O device (spec.md §4.2).
package ioman

import (
	"fmt"

	"github.com/vtsched/osim/pkg/prng"
	"github.com/vtsched/osim/pkg/process"
	"github.com/vtsched/osim/pkg/types"
)

// serviceLo and serviceHi bound the uniform service-time draw for a single
// I/O operation (spec.md §4.2).
const (
	serviceLo = 2
	serviceHi = 5
)

// waitEntry is one parked process and the tick its I/O completes.
type waitEntry struct {
	proc       *process.Process
	completion types.Ticks
}

// Manager is a single-server, first-come-first-served I/O device: only one
// I/O operation is "in flight" at a time, so a process parked while the
// device is busy queues behind whatever's already running.
type Manager struct {
	rng          *prng.Source
	wait         []waitEntry
	nextFreeTick types.Ticks
}

// New returns an empty I/O manager drawing service times from rng.
func New(rng *prng.Source) *Manager {
	return &Manager{rng: rng}
}

// Park enqueues p, which must be WAITING, for a uniformly random service
// time in [2, 5] ticks. Because the device is serialized, p's actual start
// is max(now, the watermark left by whatever was parked before it); its
// completion tick becomes the new watermark (spec.md §4.2).
func (m *Manager) Park(p *process.Process, now types.Ticks) error {
	if p.State != process.Waiting {
		return fmt.Errorf("%w: pid %d is %s", ErrNotWaiting, p.PID, p.State)
	}

	service := types.Ticks(m.rng.IntRange(serviceLo, serviceHi))
	start := now
	if m.nextFreeTick > start {
		start = m.nextFreeTick
	}
	completion := start + service

	m.wait = append(m.wait, waitEntry{proc: p, completion: completion})
	m.nextFreeTick = completion
	return nil
}

// Drain returns every process whose I/O has completed by now (inclusive),
// removing them from the wait queue and transitioning them to READY.
// Processes completing at the same tick are returned in the order they
// were parked (spec.md §4.2). Drain never fails.
func (m *Manager) Drain(now types.Ticks) []*process.Process {
	if len(m.wait) == 0 {
		return nil
	}

	var ready []*process.Process
	remaining := m.wait[:0]
	for _, e := range m.wait {
		if e.completion <= now {
			e.proc.State = process.Ready
			ready = append(ready, e.proc)
			continue
		}
		remaining = append(remaining, e)
	}
	m.wait = remaining
	return ready
}

// Empty reports whether any process is currently parked on I/O. The
// dispatcher's loop condition keeps running while either the scheduler or
// the I/O manager still holds work (spec.md §4.3).
func (m *Manager) Empty() bool {
	return len(m.wait) == 0
}
