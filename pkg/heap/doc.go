// Package heap implements the malloc/free allocator family (spec.md §4.4):
// First-fit, Best-fit, and Worst-fit over a single free-list, plus a Buddy
// allocator doing power-of-two splitting and XOR-partner coalescing.
//
// Every allocator manages a fixed-size byte arena. Every allocated block
// carries an 8-byte little-endian header immediately before the returned
// pointer, recording the block's total size (header + payload); free
// regions are tracked externally rather than threaded through the arena.
package heap
