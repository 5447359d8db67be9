package heap

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/vtsched/osim/pkg/types"
)

// Policy selects which free region a FitList allocator chooses among the
// ones large enough to satisfy a request (spec.md §4.4.1).
type Policy int

const (
	FirstFit Policy = iota
	BestFit
	WorstFit
)

func (p Policy) String() string {
	switch p {
	case FirstFit:
		return "first-fit"
	case BestFit:
		return "best-fit"
	case WorstFit:
		return "worst-fit"
	default:
		return "unknown"
	}
}

type freeRegion struct {
	start types.Address
	size  types.Bytes
}

// FitList is the free-list allocator family: First-fit, Best-fit, and
// Worst-fit over the same (start, size) free-region bookkeeping, differing
// only in which candidate region Malloc picks (spec.md §4.4.1).
type FitList struct {
	policy Policy
	arena  []byte
	free   []freeRegion // sorted by start

	// allocated tracks header-start -> total size for live blocks, used
	// by Free to reject pointers that are not live and by Verify to
	// cross-check arena coverage.
	allocated map[types.Address]types.Bytes
}

// NewFitList returns a FitList allocator of the given policy managing an
// arena of total bytes, entirely free at construction.
func NewFitList(policy Policy, total types.Bytes) *FitList {
	return &FitList{
		policy:    policy,
		arena:     make([]byte, total),
		free:      []freeRegion{{start: 0, size: total}},
		allocated: make(map[types.Address]types.Bytes),
	}
}

// candidate returns the index into f.free of the region Malloc should use
// for a block of total bytes, or -1 if none is large enough.
func (f *FitList) candidate(total types.Bytes) int {
	best := -1
	for i, r := range f.free {
		if r.size < total {
			continue
		}
		switch f.policy {
		case FirstFit:
			return i
		case BestFit:
			if best == -1 || r.size < f.free[best].size {
				best = i
			}
		case WorstFit:
			if best == -1 || r.size > f.free[best].size {
				best = i
			}
		}
	}
	return best
}

func (f *FitList) Malloc(n types.Bytes) (types.Address, error) {
	if n <= 0 {
		return 0, ErrInvalidSize
	}
	total := n + headerSize

	i := f.candidate(total)
	if i == -1 {
		return 0, ErrOutOfMemory
	}

	region := f.free[i]
	binary.LittleEndian.PutUint64(f.arena[region.start:], uint64(total))

	remaining := region.size - total
	if remaining > 0 {
		f.free[i] = freeRegion{start: region.start + types.Address(total), size: remaining}
	} else {
		f.free = append(f.free[:i], f.free[i+1:]...)
	}
	f.allocated[region.start] = total

	return region.start + headerSize, nil
}

// Free reads the header at ptr-headerSize to recover the block's total
// size, returns the block to the free list, and coalesces it with any
// adjacent free regions (spec.md §4.4.1).
func (f *FitList) Free(ptr types.Address) error {
	if ptr < headerSize || ptr > types.Address(len(f.arena)) {
		return ErrInvalidPointer
	}
	headerStart := ptr - headerSize
	if _, ok := f.allocated[headerStart]; !ok {
		return fmt.Errorf("%w: %s", ErrInvalidPointer, ptr)
	}
	total := types.Bytes(binary.LittleEndian.Uint64(f.arena[headerStart:]))
	delete(f.allocated, headerStart)

	f.free = append(f.free, freeRegion{start: headerStart, size: total})
	f.coalesce()
	return nil
}

// coalesce sorts the free list by start address and merges every pair of
// regions where a.start+a.size == b.start (spec.md §4.4.1).
func (f *FitList) coalesce() {
	sort.Slice(f.free, func(i, j int) bool { return f.free[i].start < f.free[j].start })

	out := f.free[:0]
	for _, r := range f.free {
		if n := len(out); n > 0 && out[n-1].start+types.Address(out[n-1].size) == r.start {
			out[n-1].size += r.size
			continue
		}
		out = append(out, r)
	}
	f.free = out
}

// Verify checks that free regions and allocated blocks partition the arena
// exactly, with no gaps or overlaps (spec.md §9).
func (f *FitList) Verify() error {
	type span struct {
		start types.Address
		size  types.Bytes
	}
	spans := make([]span, 0, len(f.free)+len(f.allocated))
	for _, r := range f.free {
		spans = append(spans, span{r.start, r.size})
	}
	for start, size := range f.allocated {
		spans = append(spans, span{start, size})
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	var want types.Address
	for _, s := range spans {
		if s.start != want {
			return fmt.Errorf("heap: gap or overlap at %s (expected %s)", s.start, want)
		}
		want = s.start + types.Address(s.size)
	}
	if want != types.Address(len(f.arena)) {
		return fmt.Errorf("heap: coverage ends at %s, arena is %d bytes", want, len(f.arena))
	}
	return nil
}
