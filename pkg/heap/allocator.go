package heap

import "github.com/vtsched/osim/pkg/types"

// headerSize is the width of the little-endian block-size prefix every
// allocator writes immediately before the pointer it returns (spec.md
// §4.4). Left as an untyped constant so it converts to both types.Address
// (pointer arithmetic) and types.Bytes (size arithmetic) without an
// explicit cast at every use.
const headerSize = 8

// Allocator is the malloc/free interface every heap policy implements
// (spec.md §4.4). All four policies (First-fit, Best-fit, Worst-fit,
// Buddy) share it, so cmd/osim's heap-demo can drive any of them
// identically.
type Allocator interface {
	// Malloc returns a pointer past the header of a block with at least n
	// bytes of payload, or ErrOutOfMemory.
	Malloc(n types.Bytes) (types.Address, error)

	// Free releases the block ptr points into, making its space available
	// to future Malloc calls. ErrInvalidPointer if ptr wasn't live.
	Free(ptr types.Address) error

	// Verify checks the allocator's internal invariant: free regions plus
	// currently allocated blocks tile the arena exactly, with no gaps or
	// overlaps (spec.md §8 scenario 5, §9 heap invariants). It is a
	// self-check for tests and the CLI's heap-demo, not part of the
	// steady-state malloc/free path.
	Verify() error
}
