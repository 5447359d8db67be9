package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vtsched/osim/pkg/types"
)

// TestBuddy_SplittingAndCoalescing reproduces spec.md §8 scenario 6: arena
// 64, malloc(1) (effective 16 after header + power-of-two rounding)
// produces pointer 8, with free blocks of size 16 and 32 remaining; then
// freeing it coalesces everything back to a single size-64 free block.
func TestBuddy_SplittingAndCoalescing(t *testing.T) {
	b, err := NewBuddy(64)
	require.NoError(t, err)

	ptr, err := b.Malloc(1)
	require.NoError(t, err)
	assert.Equal(t, types.Address(8), ptr)
	require.NoError(t, b.Verify())

	assert.Len(t, b.free[16], 1)
	assert.Len(t, b.free[32], 1)
	assert.Empty(t, b.free[64])

	require.NoError(t, b.Free(ptr))
	require.NoError(t, b.Verify())

	assert.Equal(t, []types.Address{0}, b.free[64])
	assert.Empty(t, b.free[16])
	assert.Empty(t, b.free[32])
}

func TestBuddy_RejectsNonPowerOfTwoArena(t *testing.T) {
	_, err := NewBuddy(100)
	assert.ErrorIs(t, err, ErrNotPowerOfTwo)
}

func TestBuddy_OutOfMemory(t *testing.T) {
	b, err := NewBuddy(16)
	require.NoError(t, err)
	_, err = b.Malloc(1) // rounds to 16, consumes the whole arena
	require.NoError(t, err)
	_, err = b.Malloc(1)
	assert.ErrorIs(t, err, ErrOutOfMemory)
}

func TestBuddy_PartnerBlocksDoNotCoalesceAcrossNonBuddies(t *testing.T) {
	b, err := NewBuddy(64)
	require.NoError(t, err)

	p1, err := b.Malloc(1) // consumes [0,16)
	require.NoError(t, err)
	p2, err := b.Malloc(1) // consumes [16,32), p1 and p2 are buddies
	require.NoError(t, err)
	p3, err := b.Malloc(1) // consumes [32,48)
	require.NoError(t, err)

	require.NoError(t, b.Free(p1))
	// p1's buddy (p2's block) is still allocated, so [0,16) cannot merge
	// upward; it stays a lone 16-byte free block.
	assert.Contains(t, b.free[16], types.Address(0))

	require.NoError(t, b.Free(p3))
	// p3's buddy at [48,64) is still free (never allocated), so freeing
	// p3 merges into a 32-byte block at [32,64).
	assert.NotContains(t, b.free[16], types.Address(32))

	require.NoError(t, b.Free(p2))
	require.NoError(t, b.Verify())
	assert.Equal(t, []types.Address{0}, b.free[64])
}

func TestBuddy_FreeInvalidPointer(t *testing.T) {
	b, err := NewBuddy(64)
	require.NoError(t, err)
	assert.ErrorIs(t, b.Free(999), ErrInvalidPointer)
}

func TestBuddy_DoubleFreeRejected(t *testing.T) {
	b, err := NewBuddy(64)
	require.NoError(t, err)
	p, err := b.Malloc(4)
	require.NoError(t, err)
	require.NoError(t, b.Free(p))
	assert.ErrorIs(t, b.Free(p), ErrInvalidPointer)
}

func TestBuddy_FreeBlocksStayAlignedToSizeClass(t *testing.T) {
	b, err := NewBuddy(128)
	require.NoError(t, err)
	_, err = b.Malloc(1)
	require.NoError(t, err)
	for size, addrs := range b.free {
		for _, a := range addrs {
			assert.Equal(t, types.Address(0), a%types.Address(size), "size %d block at %s must be aligned", size, a)
		}
	}
}
