package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vtsched/osim/pkg/prng"
	"github.com/vtsched/osim/pkg/process"
)

func TestSimple_FIFOOrder(t *testing.T) {
	reg := process.NewRegistry()
	rng := prng.New(1)
	s := NewSimple(reg)

	p1, _ := reg.Spawn(rng, 0, 0, 5)
	p2, _ := reg.Spawn(rng, 0, 0, 3)
	p3, _ := reg.Spawn(rng, 0, 0, 7)

	require.NoError(t, s.Admit(p1))
	require.NoError(t, s.Admit(p2))
	require.NoError(t, s.Admit(p3))

	require.True(t, s.HasWork())

	got, err := s.PickNext()
	require.NoError(t, err)
	assert.Equal(t, p1, got)

	got, err = s.PickNext()
	require.NoError(t, err)
	assert.Equal(t, p2, got)

	got, err = s.PickNext()
	require.NoError(t, err)
	assert.Equal(t, p3, got)

	assert.False(t, s.HasWork())
}

func TestSimple_QuantumIsRemainingWork(t *testing.T) {
	reg := process.NewRegistry()
	rng := prng.New(1)
	s := NewSimple(reg)
	p, _ := reg.Spawn(rng, 0, 0, 42)
	assert.Equal(t, 42, s.QuantumFor(p))
}

func TestSimple_PickNextOnEmptyFails(t *testing.T) {
	reg := process.NewRegistry()
	s := NewSimple(reg)
	_, err := s.PickNext()
	assert.ErrorIs(t, err, ErrNoRunnable)
}

func TestSimple_AdmitRejectsNonReady(t *testing.T) {
	reg := process.NewRegistry()
	rng := prng.New(1)
	s := NewSimple(reg)
	p, _ := reg.Spawn(rng, 0, 0, 5)
	p.State = process.Running
	err := s.Admit(p)
	assert.ErrorIs(t, err, process.ErrNotReady)
}

func TestSimple_CleanupDropsTerminated(t *testing.T) {
	reg := process.NewRegistry()
	rng := prng.New(1)
	s := NewSimple(reg)
	p1, _ := reg.Spawn(rng, 0, 0, 5)
	p2, _ := reg.Spawn(rng, 0, 0, 5)
	require.NoError(t, s.Admit(p1))
	require.NoError(t, s.Admit(p2))

	p1.State = process.Terminated
	reg.Remove(p1.PID)

	got, err := s.PickNext()
	require.NoError(t, err)
	assert.Equal(t, p2, got)
	assert.False(t, s.HasWork())
}
