package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vtsched/osim/pkg/types"
)

// TestFitList_Coalescing reproduces spec.md §8 scenario 5: arena 64,
// first-fit, a=malloc(8), b=malloc(8), c=malloc(8), then free(b), free(a),
// free(c); the free list must end up as a single (0, 64) region.
func TestFitList_Coalescing(t *testing.T) {
	f := NewFitList(FirstFit, 64)

	a, err := f.Malloc(8)
	require.NoError(t, err)
	b, err := f.Malloc(8)
	require.NoError(t, err)
	c, err := f.Malloc(8)
	require.NoError(t, err)
	require.NoError(t, f.Verify())

	require.NoError(t, f.Free(b))
	require.NoError(t, f.Verify())
	require.NoError(t, f.Free(a))
	require.NoError(t, f.Verify())
	require.NoError(t, f.Free(c))
	require.NoError(t, f.Verify())

	require.Len(t, f.free, 1)
	assert.Equal(t, freeRegion{start: 0, size: 64}, f.free[0])
}

func TestFitList_FirstFitPicksEarliestLargeEnough(t *testing.T) {
	f := NewFitList(FirstFit, 64)
	a, _ := f.Malloc(8) // ptr 8, region [0,16)
	b, _ := f.Malloc(8) // ptr 24, region [16,32)
	require.NoError(t, f.Free(a))
	// Free list now has [0,16) and [32,64). A third malloc(8) should land
	// in the earliest region, [0,16), reusing a's old slot.
	c, err := f.Malloc(8)
	require.NoError(t, err)
	assert.Equal(t, a, c)
	_ = b
}

func TestFitList_BestFitPicksSmallestAdequateRegion(t *testing.T) {
	f := NewFitList(BestFit, 128)
	a, _ := f.Malloc(8)  // [0,16)
	_, _ = f.Malloc(40)  // [16, 64)
	_, _ = f.Malloc(8)   // tail region shrinks further
	require.NoError(t, f.Free(a))
	// Free regions: [0,16) and whatever remains at the tail (much larger).
	// Best-fit must choose the tight 16-byte region over the larger tail.
	p, err := f.Malloc(8)
	require.NoError(t, err)
	assert.Equal(t, a, p)
}

func TestFitList_WorstFitPicksLargestRegion(t *testing.T) {
	f := NewFitList(WorstFit, 128)
	small, _ := f.Malloc(8) // [0,16)
	_, _ = f.Malloc(8)      // [16,32)
	require.NoError(t, f.Free(small))
	// Free regions: [0,16) and [32,128) (96 bytes). Worst-fit takes the
	// larger one, leaving [0,16) untouched.
	p, err := f.Malloc(8)
	require.NoError(t, err)
	assert.NotEqual(t, small, p)
}

func TestFitList_OutOfMemory(t *testing.T) {
	f := NewFitList(FirstFit, 16)
	_, err := f.Malloc(9) // 9+8=17 > 16
	assert.ErrorIs(t, err, ErrOutOfMemory)
}

func TestFitList_FreeInvalidPointer(t *testing.T) {
	f := NewFitList(FirstFit, 64)
	assert.ErrorIs(t, f.Free(999), ErrInvalidPointer)
	assert.ErrorIs(t, f.Free(0), ErrInvalidPointer)
}

func TestFitList_DoubleFreeRejected(t *testing.T) {
	f := NewFitList(FirstFit, 64)
	p, err := f.Malloc(8)
	require.NoError(t, err)
	require.NoError(t, f.Free(p))
	assert.ErrorIs(t, f.Free(p), ErrInvalidPointer)
}

func TestFitList_ZeroSizeRejected(t *testing.T) {
	f := NewFitList(FirstFit, 64)
	_, err := f.Malloc(0)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestFitList_VerifyDetectsUntouchedArena(t *testing.T) {
	f := NewFitList(BestFit, 32)
	require.NoError(t, f.Verify())
	_, err := f.Malloc(4)
	require.NoError(t, err)
	require.NoError(t, f.Verify())
}

func TestFitList_PointerIsPastHeader(t *testing.T) {
	f := NewFitList(FirstFit, 64)
	p, err := f.Malloc(8)
	require.NoError(t, err)
	assert.Equal(t, types.Address(headerSize), p)
}
