package heap

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/vtsched/osim/pkg/types"
)

// minBlock is the smallest block size Buddy will ever hand out: the header
// has to fit inside it, so anything smaller would leave no room for a
// payload at all.
const minBlock = headerSize

// Buddy implements power-of-two splitting with buddy (XOR-partner)
// coalescing (spec.md §4.4.2). The arena size must be a power of two.
type Buddy struct {
	total types.Bytes
	arena []byte

	free      map[types.Bytes][]types.Address // size class -> free addresses, sorted
	allocated map[types.Address]types.Bytes    // header-start -> block size
}

// NewBuddy returns a Buddy allocator managing an arena of total bytes,
// which must be a power of two and at least minBlock.
func NewBuddy(total types.Bytes) (*Buddy, error) {
	if total < minBlock || total&(total-1) != 0 {
		return nil, ErrNotPowerOfTwo
	}
	b := &Buddy{
		total:     total,
		arena:     make([]byte, total),
		free:      make(map[types.Bytes][]types.Address),
		allocated: make(map[types.Address]types.Bytes),
	}
	b.free[total] = []types.Address{0}
	return b, nil
}

// nextPow2 returns the smallest power of two >= n, floored at minBlock.
func nextPow2(n types.Bytes) types.Bytes {
	p := types.Bytes(minBlock)
	for p < n {
		p <<= 1
	}
	return p
}

func (b *Buddy) Malloc(n types.Bytes) (types.Address, error) {
	if n <= 0 {
		return 0, ErrInvalidSize
	}
	want := nextPow2(n + headerSize)

	size := want
	for size <= b.total && len(b.free[size]) == 0 {
		size <<= 1
	}
	if size > b.total || len(b.free[size]) == 0 {
		return 0, ErrOutOfMemory
	}

	addr := b.popLowest(size)

	for size > want {
		half := size / 2
		buddyAddr := addr + types.Address(half)
		b.pushSorted(half, buddyAddr)
		size = half
	}

	binary.LittleEndian.PutUint64(b.arena[addr:], uint64(size))
	b.allocated[addr] = size
	return addr + headerSize, nil
}

// Free recovers the block's size from its header, repeatedly merges with
// its XOR buddy while that buddy is free, and returns the (possibly
// grown) block to its free list (spec.md §4.4.2).
func (b *Buddy) Free(ptr types.Address) error {
	if ptr < headerSize || ptr > types.Address(len(b.arena)) {
		return ErrInvalidPointer
	}
	addr := ptr - headerSize
	if _, ok := b.allocated[addr]; !ok {
		return fmt.Errorf("%w: %s", ErrInvalidPointer, ptr)
	}
	size := types.Bytes(binary.LittleEndian.Uint64(b.arena[addr:]))
	delete(b.allocated, addr)

	for size < b.total {
		partner := addr ^ types.Address(size)
		if !b.remove(size, partner) {
			break
		}
		if partner < addr {
			addr = partner
		}
		size *= 2
	}
	b.pushSorted(size, addr)
	return nil
}

func (b *Buddy) popLowest(size types.Bytes) types.Address {
	list := b.free[size]
	addr := list[0]
	b.free[size] = list[1:]
	return addr
}

func (b *Buddy) pushSorted(size types.Bytes, addr types.Address) {
	list := append(b.free[size], addr)
	sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
	b.free[size] = list
}

// remove deletes addr from the free list of size, reporting whether it was
// present.
func (b *Buddy) remove(size types.Bytes, addr types.Address) bool {
	list := b.free[size]
	for i, a := range list {
		if a == addr {
			b.free[size] = append(list[:i], list[i+1:]...)
			return true
		}
	}
	return false
}

// Verify checks that free blocks are aligned to their size class and that
// free plus allocated blocks tile the arena exactly (spec.md §8 scenario
// 6, §9).
func (b *Buddy) Verify() error {
	type span struct {
		start types.Address
		size  types.Bytes
	}
	var spans []span

	for size, addrs := range b.free {
		for _, a := range addrs {
			if uint64(a)%uint64(size) != 0 {
				return fmt.Errorf("heap: free block %s not aligned to size %d", a, size)
			}
			spans = append(spans, span{a, size})
		}
	}
	for addr, size := range b.allocated {
		spans = append(spans, span{addr, size})
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	var want types.Address
	for _, s := range spans {
		if s.start != want {
			return fmt.Errorf("heap: gap or overlap at %s (expected %s)", s.start, want)
		}
		want = s.start + types.Address(s.size)
	}
	if want != types.Address(b.total) {
		return fmt.Errorf("heap: coverage ends at %s, arena is %d bytes", want, b.total)
	}
	return nil
}
