package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vtsched/osim/pkg/prng"
	"github.com/vtsched/osim/pkg/process"
)

func TestRoundRobin_DefaultQuantum(t *testing.T) {
	reg := process.NewRegistry()
	r := NewRoundRobin(reg, 0)
	rng := prng.New(1)
	p, _ := reg.Spawn(rng, 0, 0, 5)
	assert.Equal(t, DefaultQuantum, r.QuantumFor(p))
}

func TestRoundRobin_CustomQuantum(t *testing.T) {
	reg := process.NewRegistry()
	r := NewRoundRobin(reg, 7)
	rng := prng.New(1)
	p, _ := reg.Spawn(rng, 0, 0, 5)
	assert.Equal(t, 7, r.QuantumFor(p))
}

func TestRoundRobin_FIFOAndReAdmit(t *testing.T) {
	reg := process.NewRegistry()
	rng := prng.New(1)
	r := NewRoundRobin(reg, 3)

	p1, _ := reg.Spawn(rng, 0, 0, 5)
	p2, _ := reg.Spawn(rng, 0, 0, 5)
	require.NoError(t, r.Admit(p1))
	require.NoError(t, r.Admit(p2))

	got, err := r.PickNext()
	require.NoError(t, err)
	assert.Equal(t, p1, got)

	// simulate dispatcher re-admitting p1 at the tail
	require.NoError(t, r.Admit(p1))

	got, err = r.PickNext()
	require.NoError(t, err)
	assert.Equal(t, p2, got)

	got, err = r.PickNext()
	require.NoError(t, err)
	assert.Equal(t, p1, got)
}

func TestRoundRobin_InterRunGapBound(t *testing.T) {
	// k non-blocking processes of equal work, quantum q: each process's
	// inter-run gap is at most (k-1)*q (spec.md §8).
	reg := process.NewRegistry()
	rng := prng.New(1)
	const k, q, work = 4, 3, 30
	r := NewRoundRobin(reg, q)

	procs := make([]*process.Process, k)
	for i := range procs {
		p, _ := reg.Spawn(rng, 0, 0, work)
		procs[i] = p
		require.NoError(t, r.Admit(p))
	}

	lastRun := make(map[int]int)
	tick := 0
	for r.HasWork() {
		p, err := r.PickNext()
		require.NoError(t, err)
		if prev, ok := lastRun[p.PID]; ok {
			gap := tick - prev
			assert.LessOrEqual(t, gap, (k-1)*q)
		}
		p.State = process.Running
		ran, err := p.RunFor(rng, r.QuantumFor(p))
		require.NoError(t, err)
		tick += ran
		lastRun[p.PID] = tick
		if p.State != process.Terminated {
			p.State = process.Ready
			require.NoError(t, r.Admit(p))
		}
	}
}
