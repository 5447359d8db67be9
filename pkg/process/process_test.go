package process

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vtsched/osim/pkg/prng"
)

func TestSpawn_FirstPidIsOne(t *testing.T) {
	r := NewRegistry()
	rng := prng.New(1)
	p, err := r.Spawn(rng, 0, 0.3, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, p.PID)
	assert.Equal(t, Ready, p.State)
}

func TestSpawn_PidsMonotonic(t *testing.T) {
	r := NewRegistry()
	rng := prng.New(1)
	for i := 1; i <= 5; i++ {
		p, err := r.Spawn(rng, 0, 0, 5)
		require.NoError(t, err)
		assert.Equal(t, i, p.PID)
	}
}

func TestSpawn_DefaultWorkRange(t *testing.T) {
	r := NewRegistry()
	rng := prng.New(2)
	for i := 0; i < 200; i++ {
		p, err := r.Spawn(rng, 0, 0, 0)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, p.TimeToCompletion, 5)
		assert.LessOrEqual(t, p.TimeToCompletion, 10)
		assert.Equal(t, p.TimeToCompletion, p.InitialWork())
	}
}

func TestSpawn_RejectsBadIOProbability(t *testing.T) {
	r := NewRegistry()
	rng := prng.New(1)
	_, err := r.Spawn(rng, 0, 1.5, 5)
	assert.ErrorIs(t, err, ErrBadIOProbability)
	_, err = r.Spawn(rng, 0, -0.1, 5)
	assert.ErrorIs(t, err, ErrBadIOProbability)
}

func TestSpawn_RejectsNegativeWork(t *testing.T) {
	r := NewRegistry()
	rng := prng.New(1)
	_, err := r.Spawn(rng, 0, 0, -1)
	assert.ErrorIs(t, err, ErrBadWork)
}

func TestRunFor_NoIO_RunsFullQuantum(t *testing.T) {
	r := NewRegistry()
	rng := prng.New(5)
	p, _ := r.Spawn(rng, 0, 0, 10)
	p.State = Running

	ran, err := p.RunFor(rng, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, ran)
	assert.Equal(t, 7, p.TimeToCompletion)
	assert.Equal(t, 3, p.CumulativeTimeRan)
	assert.Equal(t, Running, p.State)
}

func TestRunFor_TerminatesOnZero(t *testing.T) {
	r := NewRegistry()
	rng := prng.New(5)
	p, _ := r.Spawn(rng, 0, 0, 3)
	p.State = Running

	ran, err := p.RunFor(rng, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, ran)
	assert.Equal(t, 0, p.TimeToCompletion)
	assert.Equal(t, Terminated, p.State)
}

func TestRunFor_AlwaysBlocks_DrawsPartialRun(t *testing.T) {
	r := NewRegistry()
	rng := prng.New(99)
	p, _ := r.Spawn(rng, 0, 1.0, 5)
	p.State = Running

	ran, err := p.RunFor(rng, 3)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, ran, 1)
	assert.LessOrEqual(t, ran, 2) // maxRun-1 = 2
	assert.Equal(t, Waiting, p.State)
	assert.Equal(t, ran, p.CumulativeTimeRan)
	assert.Equal(t, 5-ran, p.TimeToCompletion)
}

func TestRunFor_SingleTickOfWorkNeverBlocksMidRun(t *testing.T) {
	// maxRun == 1 means the spec's "max_run > 1" guard always fails, so
	// even io_probability=1.0 must run to completion of that single tick.
	r := NewRegistry()
	rng := prng.New(3)
	p, _ := r.Spawn(rng, 0, 1.0, 1)
	p.State = Running

	ran, err := p.RunFor(rng, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, ran)
	assert.Equal(t, Terminated, p.State)
}

func TestRunFor_InvariantHoldsAcrossRuns(t *testing.T) {
	r := NewRegistry()
	rng := prng.New(123)
	p, _ := r.Spawn(rng, 0, 0.5, 20)
	initial := p.InitialWork()

	for p.State != Terminated {
		p.State = Running
		_, err := p.RunFor(rng, 3)
		require.NoError(t, err)
		assert.Equal(t, initial, p.CumulativeTimeRan+p.TimeToCompletion)
		if p.State == Waiting {
			p.State = Ready // dispatcher would park/drain; here just resume
		}
	}
}

func TestRunFor_RejectsNonRunning(t *testing.T) {
	r := NewRegistry()
	rng := prng.New(1)
	p, _ := r.Spawn(rng, 0, 0, 5)
	_, err := p.RunFor(rng, 3)
	assert.ErrorIs(t, err, ErrNotRunning)
}

func TestRunFor_RejectsBadQuantum(t *testing.T) {
	r := NewRegistry()
	rng := prng.New(1)
	p, _ := r.Spawn(rng, 0, 0, 5)
	p.State = Running
	_, err := p.RunFor(rng, 0)
	assert.ErrorIs(t, err, ErrBadQuantum)
}

func TestRegistry_RemoveIsIdempotent(t *testing.T) {
	r := NewRegistry()
	rng := prng.New(1)
	p, _ := r.Spawn(rng, 0, 0, 5)
	r.Remove(p.PID)
	assert.False(t, r.Contains(p.PID))
	r.Remove(p.PID) // no panic
}

func TestRegistry_GetUnknownPID(t *testing.T) {
	r := NewRegistry()
	_, err := r.Get(999)
	assert.True(t, errors.Is(err, ErrUnknownPID))
}
