package scheduler

import (
	"fmt"

	"github.com/vtsched/osim/pkg/process"
	"github.com/vtsched/osim/pkg/types"
)

// DefaultLevels and DefaultBoostThreshold are MLFQ's defaults (spec.md
// §4.1.3).
var DefaultLevels = []int{3, 6, 12}

const DefaultBoostThreshold = 50

// MLFQ is the Multi-Level Feedback Queue scheduler. It demotes CPU-bound
// processes that exhaust their level's quantum, and periodically boosts
// any process that has gone boostThreshold ticks without a boost back to
// level 0, preventing starvation.
//
// This implementation adopts the per-process last_boost scheme spec.md §9
// settles on: every process tracks its own last-boost clock value, so
// fairness doesn't depend on global sweep timing or arrival order. The
// alternative "auto_bump_interval" draft is explicitly excluded.
type MLFQ struct {
	registry       *process.Registry
	levels         []int
	boostThreshold types.Ticks
	now            types.Ticks

	queues         [][]*process.Process
	level          map[int]int
	timeInLevel    map[int]int
	prevCumulative map[int]int
	lastBoost      map[int]types.Ticks
}

// NewMLFQ returns an MLFQ scheduler. A nil or empty levels slice falls
// back to DefaultLevels; a non-positive boostThreshold falls back to
// DefaultBoostThreshold.
func NewMLFQ(reg *process.Registry, levels []int, boostThreshold int) *MLFQ {
	if len(levels) == 0 {
		levels = append([]int(nil), DefaultLevels...)
	}
	if boostThreshold <= 0 {
		boostThreshold = DefaultBoostThreshold
	}
	return &MLFQ{
		registry:       reg,
		levels:         levels,
		boostThreshold: types.Ticks(boostThreshold),
		queues:         make([][]*process.Process, len(levels)),
		level:          make(map[int]int),
		timeInLevel:    make(map[int]int),
		prevCumulative: make(map[int]int),
		lastBoost:      make(map[int]types.Ticks),
	}
}

// Tick records the current simulation clock, against which first-admission
// boost stamps and auto-boost checks are computed. Demotion is driven by
// CumulativeTimeRan, not the clock. Implements ClockAware.
func (m *MLFQ) Tick(now types.Ticks) {
	m.now = now
}

func (m *MLFQ) Admit(p *process.Process) error {
	if p.State != process.Ready {
		return fmt.Errorf("scheduler: admit pid %d: %w", p.PID, process.ErrNotReady)
	}

	lvl, known := m.level[p.PID]
	if !known {
		m.level[p.PID] = 0
		m.timeInLevel[p.PID] = 0
		m.prevCumulative[p.PID] = p.CumulativeTimeRan
		m.lastBoost[p.PID] = m.now
		m.queues[0] = append(m.queues[0], p)
		return nil
	}

	delta := p.CumulativeTimeRan - m.prevCumulative[p.PID]
	m.prevCumulative[p.PID] = p.CumulativeTimeRan
	m.timeInLevel[p.PID] += delta

	if m.timeInLevel[p.PID] >= m.levels[lvl] {
		if lvl < len(m.levels)-1 {
			lvl++
		}
		m.level[p.PID] = lvl
		m.timeInLevel[p.PID] = 0
	}

	m.queues[lvl] = append(m.queues[lvl], p)
	return nil
}

// cleanup drops per-pid state for processes the registry no longer holds
// or that have terminated, from every level queue (spec.md §4.1.6).
func (m *MLFQ) cleanup() {
	for i, q := range m.queues {
		m.queues[i] = pruneQueue(q, m.registry)
	}
	for pid := range m.level {
		if p, err := m.registry.Get(pid); err != nil || p.State == process.Terminated {
			delete(m.level, pid)
			delete(m.timeInLevel, pid)
			delete(m.prevCumulative, pid)
			delete(m.lastBoost, pid)
		}
	}
}

// autoBoost moves any process that has gone boostThreshold ticks without a
// boost back to level 0 (spec.md §4.1.3 rule 3). It runs after cleanup and
// before dequeue on every PickNext.
func (m *MLFQ) autoBoost() {
	for lvl := 1; lvl < len(m.queues); lvl++ {
		kept := m.queues[lvl][:0]
		for _, p := range m.queues[lvl] {
			if m.now-m.lastBoost[p.PID] >= m.boostThreshold {
				m.level[p.PID] = 0
				m.timeInLevel[p.PID] = 0
				m.lastBoost[p.PID] = m.now
				m.queues[0] = append(m.queues[0], p)
				continue
			}
			kept = append(kept, p)
		}
		m.queues[lvl] = kept
	}
}

func (m *MLFQ) PickNext() (*process.Process, error) {
	m.cleanup()
	m.autoBoost()

	for lvl := range m.queues {
		if len(m.queues[lvl]) > 0 {
			p := m.queues[lvl][0]
			m.queues[lvl] = m.queues[lvl][1:]
			return p, nil
		}
	}
	return nil, ErrNoRunnable
}

func (m *MLFQ) QuantumFor(p *process.Process) int {
	lvl, known := m.level[p.PID]
	if !known {
		lvl = 0
	}
	return m.levels[lvl]
}

func (m *MLFQ) HasWork() bool {
	m.cleanup()
	for _, q := range m.queues {
		if len(q) > 0 {
			return true
		}
	}
	return false
}
