// Package vm implements the virtual-memory façade (spec.md §4.5):
// Base-and-bound, Segmented, and Paging address translators that sit on
// top of a shared RAM byte array or, for Paging, a frame pool and a
// simulated backing disk. These are interface-level demonstration
// managers; none of the scheduler/dispatcher/I/O/heap core depends on
// them.
package vm
