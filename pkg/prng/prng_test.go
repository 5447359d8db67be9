package prng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Deterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 50; i++ {
		require.Equal(t, a.IntRange(0, 1000), b.IntRange(0, 1000))
	}
}

func TestIntRange_Bounds(t *testing.T) {
	s := New(1)
	for i := 0; i < 1000; i++ {
		v := s.IntRange(5, 10)
		assert.GreaterOrEqual(t, v, 5)
		assert.LessOrEqual(t, v, 10)
	}
}

func TestIntRange_SingleValue(t *testing.T) {
	s := New(7)
	assert.Equal(t, 3, s.IntRange(3, 3))
}

func TestIntRange_PanicsOnInvertedRange(t *testing.T) {
	s := New(7)
	assert.Panics(t, func() { s.IntRange(10, 5) })
}

func TestBool_Extremes(t *testing.T) {
	s := New(3)
	for i := 0; i < 100; i++ {
		assert.False(t, s.Bool(0))
		assert.True(t, s.Bool(1))
	}
}

func TestBool_Frequency(t *testing.T) {
	s := New(9)
	const n = 20000
	hits := 0
	for i := 0; i < n; i++ {
		if s.Bool(0.3) {
			hits++
		}
	}
	freq := float64(hits) / float64(n)
	assert.InDelta(t, 0.3, freq, 0.02)
}

func TestFloat64_Range(t *testing.T) {
	s := New(11)
	for i := 0; i < 1000; i++ {
		v := s.Float64()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestUintN_Range(t *testing.T) {
	s := New(13)
	for i := 0; i < 1000; i++ {
		v := s.UintN(5)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 5)
	}
}
