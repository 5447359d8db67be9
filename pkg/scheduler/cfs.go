package scheduler

import (
	"fmt"
	"sort"

	"github.com/vtsched/osim/pkg/process"
)

// DefaultBaseQuantum and DefaultMinQuantum are CFS's defaults (spec.md
// §4.1.5).
const (
	DefaultBaseQuantum = 10
	DefaultMinQuantum  = 2
)

// cfsEntry is one (vruntime, pid) -> process.Process mapping. Entries are
// kept in a slice sorted by (vruntime, pid) rather than a balanced tree:
// spec.md §9 accepts "any balanced ordered container"; for the process
// counts this simulator deals with, a sorted slice gives the same
// logarithmic *lookup* behavior at a fraction of the code, at the cost of
// linear insertion/removal, which Design Notes explicitly allow.
type cfsEntry struct {
	vruntime int
	pid      int
	proc     *process.Process
}

// CFS approximates Linux's Completely Fair Scheduler: processes are kept
// ordered by virtual runtime, and PickNext always returns the one with the
// smallest (vruntime, pid) (spec.md §4.1.5).
type CFS struct {
	registry    *process.Registry
	baseQuantum int
	minQuantum  int

	entries     []cfsEntry
	vruntime    map[int]int
	minVruntime int
}

// NewCFS returns a CFS scheduler. Non-positive baseQuantum/minQuantum fall
// back to DefaultBaseQuantum/DefaultMinQuantum.
func NewCFS(reg *process.Registry, baseQuantum, minQuantum int) *CFS {
	if baseQuantum <= 0 {
		baseQuantum = DefaultBaseQuantum
	}
	if minQuantum <= 0 {
		minQuantum = DefaultMinQuantum
	}
	return &CFS{
		registry:    reg,
		baseQuantum: baseQuantum,
		minQuantum:  minQuantum,
		vruntime:    make(map[int]int),
	}
}

func less(a, b cfsEntry) bool {
	if a.vruntime != b.vruntime {
		return a.vruntime < b.vruntime
	}
	return a.pid < b.pid
}

func (c *CFS) insert(e cfsEntry) {
	i := sort.Search(len(c.entries), func(i int) bool { return less(e, c.entries[i]) })
	c.entries = append(c.entries, cfsEntry{})
	copy(c.entries[i+1:], c.entries[i:])
	c.entries[i] = e
}

// Admit inserts p keyed by its vruntime. If processes are already ready, a
// newly admitted process is floored at minVruntime so it can't starve them
// by accumulating credit while it waited to arrive (spec.md §4.1.5).
func (c *CFS) Admit(p *process.Process) error {
	if p.State != process.Ready {
		return fmt.Errorf("scheduler: admit pid %d: %w", p.PID, process.ErrNotReady)
	}

	vr := p.CumulativeTimeRan
	if len(c.entries) > 0 && c.minVruntime > vr {
		vr = c.minVruntime
	}
	c.vruntime[p.PID] = vr
	c.insert(cfsEntry{vruntime: vr, pid: p.PID, proc: p})
	return nil
}

// cleanup removes entries whose process has terminated or is no longer in
// the registry (spec.md §4.1.6), run before every PickNext.
func (c *CFS) cleanup() {
	out := c.entries[:0]
	for _, e := range c.entries {
		if e.proc.State == process.Terminated || !c.registry.Contains(e.pid) {
			delete(c.vruntime, e.pid)
			continue
		}
		out = append(out, e)
	}
	c.entries = out
}

func (c *CFS) PickNext() (*process.Process, error) {
	c.cleanup()
	if len(c.entries) == 0 {
		return nil, ErrNoRunnable
	}
	e := c.entries[0]
	c.entries = c.entries[1:]
	delete(c.vruntime, e.pid)
	if e.vruntime > c.minVruntime {
		c.minVruntime = e.vruntime
	}
	return e.proc, nil
}

// QuantumFor uses the tree size *after* the process has been removed by
// PickNext, freezing the convention spec.md §9 settles the open question
// with: n = len(c.entries) at call time, which the dispatcher always calls
// right after PickNext.
func (c *CFS) QuantumFor(p *process.Process) int {
	n := len(c.entries)
	q := c.baseQuantum / (n + 1)
	if q < c.minQuantum {
		q = c.minQuantum
	}
	return q
}

func (c *CFS) HasWork() bool {
	c.cleanup()
	return len(c.entries) > 0
}
